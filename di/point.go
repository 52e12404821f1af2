package di

import (
	"errors"
	"reflect"
)

// DefaultTag is the struct tag key that marks a field for injection.
// Only its presence matters:
//
//	type Service struct {
//		Log Logger `inject:""`
//	}
const DefaultTag = "inject"

var errUnexported = errors.New("field is unexported")

// Point is one injectable slot of a target: a name for diagnostics, the
// capability type it accepts and the public mutator that stores a value.
type Point struct {
	Name       string
	Capability reflect.Type

	set func(v any) error
}

// Injectable is implemented by targets that declare their injection points
// explicitly instead of relying on struct tags. The points are processed in
// the order returned.
type Injectable interface {
	InjectionPoints() []Point
}

// Bind declares an injection point for capability C that is filled by
// calling set.
//
//	func (s *Service) InjectionPoints() []di.Point {
//		return []di.Point{
//			di.Bind("log", func(l Logger) { s.log = l }),
//		}
//	}
func Bind[C any](name string, set func(C)) Point {
	return Point{
		Name:       name,
		Capability: typeOf[C](),
		set: func(v any) error {
			if set == nil {
				return errors.New("nil setter")
			}
			c, ok := v.(C)
			if !ok {
				return mismatch(reflect.TypeOf(v), typeOf[C]())
			}
			set(c)
			return nil
		},
	}
}

// Set stores v through the point's mutator.
func (p Point) Set(v any) error {
	if p.set == nil {
		return errors.New("point " + p.Name + " has no setter")
	}
	return p.set(v)
}

// scanPoints lists the fields of the struct behind rv carrying tag, in
// declaration order. Embedded structs are not descended into.
func scanPoints(rv reflect.Value, tag string) []Point {
	rt := rv.Type()
	points := make([]Point, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if _, ok := sf.Tag.Lookup(tag); !ok {
			continue
		}
		fv := rv.Field(i)
		points = append(points, Point{
			Name:       sf.Name,
			Capability: sf.Type,
			set: func(v any) error {
				if !sf.IsExported() || !fv.CanSet() {
					return errUnexported
				}
				val := reflect.ValueOf(v)
				if !val.IsValid() || !val.Type().AssignableTo(fv.Type()) {
					return mismatch(reflect.TypeOf(v), fv.Type())
				}
				fv.Set(val)
				return nil
			},
		})
	}
	return points
}

func mismatch(got, want reflect.Type) error {
	g := "<nil>"
	if got != nil {
		g = got.String()
	}
	return errors.New(g + " is not assignable to " + want.String())
}
