package di

import (
	"io/fs"
	"os"
	"reflect"

	"github.com/rs/zerolog"
)

// Injector fills marked fields of a target with fresh implementations.
//
// An Injector holds only read-only state and may be shared between
// goroutines, as long as no single target is injected concurrently.
type Injector struct {
	config   ConfigStore
	registry *Registry
	log      zerolog.Logger
	tag      string
}

// Option configures an Injector.
type Option func(*options)

type options struct {
	fsys     fs.FS
	config   ConfigStore
	registry *Registry
	log      zerolog.Logger
	tag      string
}

// WithFS reads configuration resources from fsys instead of the working
// directory. An embed.FS is the usual choice.
func WithFS(fsys fs.FS) Option {
	return func(o *options) { o.fsys = fsys }
}

// WithConfig uses an already built ConfigStore; no resource is loaded.
func WithConfig(c ConfigStore) Option {
	return func(o *options) { o.config = c }
}

// WithRegistry resolves implementation ids against r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTag changes the struct tag key that marks injectable fields.
func WithTag(tag string) Option {
	return func(o *options) { o.tag = tag }
}

// New builds an Injector configured from DefaultResource.
func New(opts ...Option) (*Injector, error) {
	return NewWithResource(DefaultResource, opts...)
}

// NewWithResource builds an Injector configured from the named resource.
func NewWithResource(resource string, opts ...Option) (*Injector, error) {
	o := options{
		registry: DefaultRegistry,
		log:      zerolog.Nop(),
		tag:      DefaultTag,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.config == nil {
		if o.fsys == nil {
			o.fsys = os.DirFS(".")
		}
		cfg, err := LoadConfig(o.fsys, resource)
		if err != nil {
			return nil, err
		}
		o.log.Debug().Str("resource", resource).Int("entries", cfg.Len()).Msg("di: config loaded")
		o.config = cfg
	}
	if o.registry == nil {
		o.registry = DefaultRegistry
	}
	if o.tag == "" {
		o.tag = DefaultTag
	}

	return &Injector{
		config:   o.config,
		registry: o.registry,
		log:      o.log,
		tag:      o.tag,
	}, nil
}

// Inspect returns the injection points of target without resolving them.
func (inj *Injector) Inspect(target any) ([]Point, error) {
	if in, ok := target.(Injectable); ok {
		if isNil(reflect.ValueOf(target)) {
			return nil, ErrInvalidTarget
		}
		return in.InjectionPoints(), nil
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, ErrInvalidTarget
	}
	return scanPoints(rv.Elem(), inj.tag), nil
}

// Inject resolves and assigns every injection point of target, in order.
//
// target must be a non-nil pointer to a struct, or implement Injectable.
// The first failure aborts the call; points handled before it keep their new
// values. Each call builds new instances.
func (inj *Injector) Inject(target any) error {
	points, err := inj.Inspect(target)
	if err != nil {
		return err
	}
	for _, p := range points {
		if err := inj.injectPoint(p); err != nil {
			inj.log.Debug().Err(err).Str("field", p.Name).Msg("di: injection failed")
			return err
		}
	}
	return nil
}

// MustInject is like Inject but panics on error.
func (inj *Injector) MustInject(target any) {
	if err := inj.Inject(target); err != nil {
		panic(err)
	}
}

func (inj *Injector) injectPoint(p Point) error {
	if p.Capability == nil || p.Capability.Kind() != reflect.Interface {
		typ := "<nil>"
		if p.Capability != nil {
			typ = p.Capability.String()
		}
		return &NotAnInterfaceError{Field: p.Name, Type: typ}
	}

	capability := TypeID(p.Capability)
	implID, ok := inj.config.Lookup(capability)
	if !ok {
		return &UnresolvedDependencyError{Field: p.Name, Capability: capability}
	}

	factory, ok := inj.registry.Lookup(implID)
	if !ok {
		return &TypeLoadError{Field: p.Name, Implementation: implID}
	}

	val, err := factory.New()
	if err != nil {
		return err
	}

	if err := assign(p, val); err != nil {
		return &AssignmentError{Field: p.Name, Err: err}
	}

	inj.log.Debug().
		Str("field", p.Name).
		Str("capability", capability).
		Str("implementation", implID).
		Msg("di: injected")
	return nil
}

// assign runs the point's setter, turning a panicking setter into an error.
func assign(p Point, val any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicError{val: rec}
		}
	}()
	return p.Set(val)
}
