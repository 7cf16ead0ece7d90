package endpoint

import (
	"fmt"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
)

// SchemaResolver turns a type reference into a JSON schema.
type SchemaResolver interface {
	Schema(ref TypeRef) (*jsonschema.Schema, error)
}

// Documentable types choose the name they are registered under in a
// TypeRegistry. Types that also implement JSONSchema() *jsonschema.Schema
// supply their own schema instead of the reflected one.
type Documentable interface {
	TypeName() string
}

// ReflectResolver is the default SchemaResolver. Schemas are reflected from
// the concrete type and always inlined; refs without a concrete type are
// looked up in the TypeRegistry by expression.
type ReflectResolver struct {
	reflector *jsonschema.Reflector
	types     *TypeRegistry
}

// NewReflectResolver returns a resolver that falls back to types for
// declared references.
func NewReflectResolver(types *TypeRegistry) *ReflectResolver {
	return &ReflectResolver{
		reflector: &jsonschema.Reflector{
			Anonymous:                 true,
			DoNotReference:            true,
			AllowAdditionalProperties: true,
			Mapper:                    mapWellKnown,
		},
		types: types,
	}
}

// Schema resolves ref. Recursive types are not supported because schemas
// are never emitted as references.
func (r *ReflectResolver) Schema(ref TypeRef) (*jsonschema.Schema, error) {
	t, err := r.typeOf(ref)
	if err != nil {
		return nil, err
	}
	s := r.reflector.ReflectFromType(t)
	s.Version = ""
	return s, nil
}

func (r *ReflectResolver) typeOf(ref TypeRef) (reflect.Type, error) {
	if ref.Type != nil {
		return ref.Type, nil
	}
	if r.types != nil {
		if t, ok := r.types.Lookup(ref.Expr); ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnresolvedType, ref.Expr)
}

// mapWellKnown overrides schemas for types whose JSON form differs from
// their Go kind.
func mapWellKnown(t reflect.Type) *jsonschema.Schema {
	if t == reflect.TypeFor[time.Duration]() {
		return &jsonschema.Schema{Type: "string", Format: "duration"}
	}
	return nil
}
