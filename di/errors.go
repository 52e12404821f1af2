package di

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidTarget is returned when Inject is given something other than a
	// non-nil pointer to a struct.
	ErrInvalidTarget = errors.New("di: target must be a non-nil pointer to a struct")

	// ErrConfigLoad matches every ConfigLoadError.
	ErrConfigLoad = errors.New("di: config load failed")

	// ErrNotAnInterface matches every NotAnInterfaceError.
	ErrNotAnInterface = errors.New("di: injected field is not an interface")

	// ErrUnresolved matches every UnresolvedDependencyError.
	ErrUnresolved = errors.New("di: unresolved dependency")

	// ErrTypeLoad matches every TypeLoadError.
	ErrTypeLoad = errors.New("di: implementation not registered")

	// ErrNoDefaultConstructor matches every NoDefaultConstructorError.
	ErrNoDefaultConstructor = errors.New("di: no zero-argument constructor")

	// ErrInstantiation matches every InstantiationError.
	ErrInstantiation = errors.New("di: instantiation failed")

	// ErrAssignment matches every AssignmentError.
	ErrAssignment = errors.New("di: assignment failed")

	// ErrNilInstance is the cause recorded when a constructor returns an untyped nil.
	ErrNilInstance = errors.New("di: constructor returned nil")
)

// ConfigLoadError is returned when the configuration resource is missing or
// cannot be parsed.
type ConfigLoadError struct {
	// Resource is the name of the configuration resource.
	Resource string

	// Err is the underlying read or parse failure.
	Err error
}

// Error implements the error interface.
func (e *ConfigLoadError) Error() string {
	// Example: di: cannot load config "inj.properties": file does not exist
	msg := "di: cannot load config " + strconv.Quote(e.Resource)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigLoadError) Is(target error) bool { return target == ErrConfigLoad }
func (e *ConfigLoadError) Unwrap() error { return e.Err }

// NotAnInterfaceError is returned when a marked field is declared with a
// concrete type.
type NotAnInterfaceError struct {
	Field string

	// Type is the declared type of the field, e.g. "*app.ConsoleLogger".
	Type string
}

// Error implements the error interface.
func (e *NotAnInterfaceError) Error() string {
	// Example: di: field "Log" has non-interface type *app.ConsoleLogger
	return "di: field " + strconv.Quote(e.Field) + " has non-interface type " + e.Type
}

func (e *NotAnInterfaceError) Is(target error) bool { return target == ErrNotAnInterface }

// UnresolvedDependencyError is returned when the configuration has no entry
// for a field's capability.
type UnresolvedDependencyError struct {
	Field      string
	Capability string
}

// Error implements the error interface.
func (e *UnresolvedDependencyError) Error() string {
	// Example: di: no implementation configured for "github.com/acme/app.Logger" (field "Log")
	return "di: no implementation configured for " + strconv.Quote(e.Capability) +
		" (field " + strconv.Quote(e.Field) + ")"
}

func (e *UnresolvedDependencyError) Is(target error) bool { return target == ErrUnresolved }

// TypeLoadError is returned when a configured implementation id is not known
// to the registry. It usually means a typo in the configuration or a package
// whose init never ran.
type TypeLoadError struct {
	Field          string
	Implementation string
}

// Error implements the error interface.
func (e *TypeLoadError) Error() string {
	return "di: implementation " + strconv.Quote(e.Implementation) +
		" is not registered (field " + strconv.Quote(e.Field) + ")"
}

func (e *TypeLoadError) Is(target error) bool { return target == ErrTypeLoad }

// NoDefaultConstructorError is returned when a registered implementation
// cannot be built without arguments.
type NoDefaultConstructorError struct {
	Implementation string

	// Got describes what was registered, e.g. "func(string) *app.FileLogger".
	Got string
}

// Error implements the error interface.
func (e *NoDefaultConstructorError) Error() string {
	msg := "di: implementation " + strconv.Quote(e.Implementation) + " has no zero-argument constructor"
	if e.Got != "" {
		msg += " (registered " + e.Got + ")"
	}
	return msg
}

func (e *NoDefaultConstructorError) Is(target error) bool { return target == ErrNoDefaultConstructor }

// InstantiationError wraps a failure raised while running a constructor.
type InstantiationError struct {
	Implementation string
	Err            error
}

// Error implements the error interface.
func (e *InstantiationError) Error() string {
	msg := "di: cannot instantiate " + strconv.Quote(e.Implementation)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InstantiationError) Is(target error) bool { return target == ErrInstantiation }
func (e *InstantiationError) Unwrap() error { return e.Err }

// AssignmentError is returned when a built instance cannot be stored in the
// target field.
type AssignmentError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *AssignmentError) Error() string {
	msg := "di: cannot inject field " + strconv.Quote(e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AssignmentError) Is(target error) bool { return target == ErrAssignment }
func (e *AssignmentError) Unwrap() error { return e.Err }

// panicError carries a recovered panic value.
type panicError struct{ val any }

func (e panicError) Error() string {
	if err, ok := e.val.(error); ok {
		return "panic: " + err.Error()
	}
	if s, ok := e.val.(string); ok {
		return "panic: " + s
	}
	return "recovered panic"
}

func (e panicError) Unwrap() error {
	err, _ := e.val.(error)
	return err
}
