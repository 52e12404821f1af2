// Package autowire is a small configuration-driven dependency injector for Go.
//
// Targets mark interface-typed fields with an `inject` struct tag, a
// properties file maps each interface to an implementation id, and a registry
// of zero-argument constructors turns ids into fresh instances.
//
// See subpackages:
//   - di: the injector, config store, registry and error types
//   - cmd/injcheck: CLI that loads and lints a configuration resource
//   - examples/autowire: runnable end-to-end example
package autowire
