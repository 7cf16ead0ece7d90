package endpoint

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// TypeRegistry maps type expressions to concrete types so that declared
// signatures can be documented without reflection.
type TypeRegistry struct {
	// mu guards write-side consistency and count.
	mu    sync.Mutex
	m     sync.Map // map[string]reflect.Type
	count int
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{}
}

// Register associates name with t. Registering the same pair twice is a
// no-op; registering a name for a different type fails with
// ErrConflictingType.
func (r *TypeRegistry) Register(name string, t reflect.Type) error {
	if t == nil {
		return errors.New("register type: nil reflect.Type")
	}
	if name == "" {
		return errors.New("register type: empty name")
	}

	// Fast path for idempotent re-registration.
	if old, ok := r.m.Load(name); ok {
		return conflict(name, old.(reflect.Type), t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.m.Load(name); ok {
		return conflict(name, old.(reflect.Type), t)
	}
	r.m.Store(name, t)
	r.count++
	return nil
}

func conflict(name string, old, t reflect.Type) error {
	if old == t {
		return nil
	}
	return fmt.Errorf("%w: %s is %s, not %s", ErrConflictingType, name, old, t)
}

// Lookup returns the type registered under expr. Go's predeclared types
// resolve without registration unless a registered name shadows them.
func (r *TypeRegistry) Lookup(expr string) (reflect.Type, bool) {
	if v, ok := r.m.Load(expr); ok {
		return v.(reflect.Type), true
	}
	t, ok := predeclared[expr]
	return t, ok
}

var predeclared = map[string]reflect.Type{
	"any":     reflect.TypeFor[any](),
	"bool":    reflect.TypeFor[bool](),
	"byte":    reflect.TypeFor[byte](),
	"rune":    reflect.TypeFor[rune](),
	"string":  reflect.TypeFor[string](),
	"int":     reflect.TypeFor[int](),
	"int8":    reflect.TypeFor[int8](),
	"int16":   reflect.TypeFor[int16](),
	"int32":   reflect.TypeFor[int32](),
	"int64":   reflect.TypeFor[int64](),
	"uint":    reflect.TypeFor[uint](),
	"uint8":   reflect.TypeFor[uint8](),
	"uint16":  reflect.TypeFor[uint16](),
	"uint32":  reflect.TypeFor[uint32](),
	"uint64":  reflect.TypeFor[uint64](),
	"uintptr": reflect.TypeFor[uintptr](),
	"float32": reflect.TypeFor[float32](),
	"float64": reflect.TypeFor[float64](),
}

// Len returns the number of registered names.
func (r *TypeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// RegisterType registers T under its Documentable name, or its short type
// expression ("Page[Todo]") otherwise.
func RegisterType[T any](r *TypeRegistry) error {
	t := reflect.TypeFor[T]()
	return r.Register(typeName(t), t)
}

func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Interface {
		return ShortName(t.String())
	}
	if t.Implements(documentableType) {
		return reflect.Zero(t).Interface().(Documentable).TypeName()
	}
	if reflect.PointerTo(t).Implements(documentableType) {
		return reflect.New(t).Interface().(Documentable).TypeName()
	}
	return ShortName(t.String())
}

var documentableType = reflect.TypeFor[Documentable]()
