package di

import "reflect"

// TypeID returns the identifier used for t in configuration files.
//
// Named types render as "<import path>.<name>", e.g.
// "github.com/acme/app.Logger". Predeclared and unnamed types fall back to
// reflect's String form ("error", "interface {}", "*app.Thing").
func TypeID(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// ImplementationID is TypeID with one level of pointer removed, so that both
// ConsoleLogger and *ConsoleLogger are registered as
// "github.com/acme/app.ConsoleLogger".
func ImplementationID(t reflect.Type) string {
	if t != nil && t.Kind() == reflect.Pointer && t.Name() == "" {
		return TypeID(t.Elem())
	}
	return TypeID(t)
}

// CapabilityID returns the configuration key for the interface C.
func CapabilityID[C any]() string {
	return TypeID(typeOf[C]())
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
