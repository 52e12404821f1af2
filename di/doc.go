// Package di injects configured implementations into interface-typed fields.
//
// A target marks the fields it wants filled with the `inject` struct tag:
//
//	type Service struct {
//		Log Logger `inject:""`
//	}
//
// A configuration resource (inj.properties by default) maps each capability
// (the interface) to an implementation id:
//
//	github.com/acme/app.Logger=github.com/acme/app.ConsoleLogger
//
// and a Registry maps implementation ids to zero-argument constructors,
// registered ahead of time:
//
//	func init() {
//		di.Register(di.DefaultRegistry, func() *ConsoleLogger { return &ConsoleLogger{} })
//	}
//
// Inject then walks the marked fields in declaration order. For each it:
//
//   - rejects non-interface field types (NotAnInterfaceError)
//   - looks the capability up in the config (UnresolvedDependencyError)
//   - finds the implementation in the registry (TypeLoadError)
//   - calls its constructor (NoDefaultConstructorError, InstantiationError)
//   - stores the result in the field (AssignmentError)
//
// The first failure stops the call. Fields handled before the failure keep
// their values; there is no rollback. Nothing is cached: every call builds new
// instances, and the instances themselves are never scanned.
//
// Only exported fields can be injected. Targets that prefer to keep fields
// private implement Injectable and expose setters through Bind.
//
// Design goals:
//   - Small surface: one config, one registry, one Inject call.
//   - No unsafe access: values go through exported fields or explicit setters.
//   - Typed errors carrying the field or type at fault, all matching a sentinel
//     via errors.Is.
//
// Import
//
//	"github.com/sghaida/autowire/di"
package di
