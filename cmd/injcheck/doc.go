// Command injcheck loads an injection configuration the same way the
// injector does and prints the mappings it resolved.
//
// Usage
//
//	injcheck [flags] [resource]
//
// resource defaults to inj.properties and is read relative to --dir (the
// working directory by default). The format follows the extension:
// .properties, .yaml/.yml or .toml.
//
// Flags
//
//	-d, --dir string        base directory for the resource (default ".")
//	-r, --require string    capability id that must have an entry (repeatable)
//	-v, --verbose           debug logging on stderr
//
// Output is one "capability=implementation" line per entry, sorted by
// capability. The command exits 1 when the resource cannot be loaded or a
// required capability is missing:
//
//	$ injcheck --require github.com/acme/app.Logger conf/inj.yaml
//	github.com/acme/app.Logger=github.com/acme/app.ConsoleLogger
package main
