package di

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// DefaultRegistry is the registry used by injectors built without
// WithRegistry. Packages typically fill it from init:
//
//	func init() {
//		di.Register(di.DefaultRegistry, NewConsoleLogger)
//	}
var DefaultRegistry = NewRegistry()

// Registry maps implementation ids to the constructors that build them.
//
// It is the typed replacement for loading a type by name: the ids written in
// the configuration are plain keys into this map, filled ahead of time.
// Constructors are not checked on registration; a bad constructor surfaces as
// NoDefaultConstructorError the first time something tries to inject it.
type Registry struct {
	mu    sync.RWMutex
	items map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{items: map[string]Factory{}}
}

// Provide stores ctor under id and returns the registry for chaining.
//
// ctor should be a func() T or func() (T, error). A later Provide with the
// same id replaces the earlier one.
func (r *Registry) Provide(id string, ctor any) *Registry {
	return r.put(Factory{id: id, ctor: ctor})
}

// ProvideType stores a type whose zero value (or new(S) for *S) is the
// instance to inject.
func (r *Registry) ProvideType(id string, t reflect.Type) *Registry {
	return r.put(Factory{id: id, typ: t, byType: true})
}

func (r *Registry) put(f Factory) *Registry {
	r.mu.Lock()
	r.items[f.id] = f
	r.mu.Unlock()
	return r
}

// Register provides ctor under the implementation id of T.
func Register[T any](r *Registry, ctor func() T) *Registry {
	return r.Provide(ImplementationID(typeOf[T]()), ctor)
}

// RegisterFallible is Register for constructors that can fail.
func RegisterFallible[T any](r *Registry, ctor func() (T, error)) *Registry {
	return r.Provide(ImplementationID(typeOf[T]()), ctor)
}

// RegisterType provides T (usually a *struct) under its implementation id.
func RegisterType[T any](r *Registry) *Registry {
	t := typeOf[T]()
	return r.ProvideType(ImplementationID(t), t)
}

// Lookup returns the factory registered under id.
func (r *Registry) Lookup(id string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.items[id]
	return f, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// MustGet is Lookup for ids that are known to be registered; it panics
// naming the id otherwise.
func (r *Registry) MustGet(id string) Factory {
	f, ok := r.Lookup(id)
	if !ok {
		panic(fmt.Errorf("di: registry missing implementation %q", id))
	}
	return f
}

// Factory builds fresh instances of one registered implementation.
type Factory struct {
	id     string
	ctor   any
	typ    reflect.Type
	byType bool
}

// ID returns the implementation id the factory is registered under.
func (f Factory) ID() string { return f.id }

// New builds a new instance.
//
// It returns NoDefaultConstructorError when the registration cannot be called
// without arguments, and InstantiationError when the constructor returns an
// error, returns nil or panics.
func (f Factory) New() (val any, err error) {
	if f.byType {
		return f.newFromType()
	}

	fn := reflect.ValueOf(f.ctor)
	if !isZeroArgConstructor(fn) {
		got := "nil"
		if f.ctor != nil {
			got = fn.Type().String()
		}
		return nil, &NoDefaultConstructorError{Implementation: f.id, Got: got}
	}

	defer func() {
		if rec := recover(); rec != nil {
			val = nil
			err = &InstantiationError{Implementation: f.id, Err: panicError{val: rec}}
		}
	}()

	out := fn.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, &InstantiationError{Implementation: f.id, Err: out[1].Interface().(error)}
	}
	res := out[0]
	if res.Kind() == reflect.Interface && !res.IsNil() {
		res = res.Elem()
	}
	if isNil(res) {
		return nil, &InstantiationError{Implementation: f.id, Err: ErrNilInstance}
	}
	return out[0].Interface(), nil
}

func (f Factory) newFromType() (any, error) {
	t := f.typ
	switch {
	case t == nil:
		return nil, &NoDefaultConstructorError{Implementation: f.id, Got: "nil"}
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return reflect.New(t.Elem()).Interface(), nil
	case t.Kind() == reflect.Struct:
		return reflect.New(t).Elem().Interface(), nil
	default:
		return nil, &NoDefaultConstructorError{Implementation: f.id, Got: t.String()}
	}
}

func isZeroArgConstructor(fn reflect.Value) bool {
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return false
	}
	t := fn.Type()
	if t.NumIn() != 0 {
		return false
	}
	switch t.NumOut() {
	case 1:
		return true
	case 2:
		return t.Out(1) == errorType
	default:
		return false
	}
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
