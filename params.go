package endpoint

import (
	"fmt"
	"reflect"
)

// ParamsResolver turns a query type reference into its list of query
// parameters.
type ParamsResolver interface {
	Params(ref TypeRef) ([]Parameter, error)
}

// StructParams is the default ParamsResolver. Every exported field of the
// struct is one query parameter:
//
//	type TodoFilter struct {
//	    Completed bool   `query:"completed" doc:"Only completed todos"`
//	    Owner     string `query:"owner,required"`
//	    Page      int    `json:"page" required:"true"`
//	}
type StructParams struct {
	schemas SchemaResolver
	types   *TypeRegistry
}

// NewStructParams returns a resolver that uses schemas for field schemas and
// types for declared references.
func NewStructParams(schemas SchemaResolver, types *TypeRegistry) *StructParams {
	return &StructParams{schemas: schemas, types: types}
}

// Params lists the query parameters of ref's struct type in field order.
func (p *StructParams) Params(ref TypeRef) ([]Parameter, error) {
	t := ref.Type
	if t == nil && p.types != nil {
		t, _ = p.types.Lookup(ref.Expr)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedType, ref.Expr)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: query parameters of %s: need a struct", ErrUnsupportedParameterType, ref.Expr)
	}

	var (
		params []Parameter
		err    error
	)
	queryFields(t, nil, func(name string, f reflect.StructField, _ []int) {
		if err != nil {
			return
		}
		schema, serr := p.schemas.Schema(refOf(f.Type))
		if serr != nil {
			err = serr
			return
		}
		_, opts := tagOptions(f.Tag.Get("query"))
		params = append(params, Parameter{
			Name:        name,
			In:          "query",
			Description: f.Tag.Get("doc"),
			Required:    f.Tag.Get("required") == "true" || tagContains(opts, "required"),
			Schema:      schema,
		})
	})
	if err != nil {
		return nil, err
	}
	return params, nil
}
