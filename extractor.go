package endpoint

import (
	"fmt"
	"reflect"
)

// JSON is the request body, decoded from JSON. As a handler result it is the
// documented response body.
type JSON[T any] struct {
	Value T
}

// Query is the set of URL query parameters, bound to the fields of T.
type Query[T any] struct {
	Value T
}

// Path is one path parameter. Path arguments are matched to route
// placeholders by position.
type Path[T any] struct {
	Value T
}

// State is shared application state supplied when routes are mounted.
type State[T any] struct {
	Value T
}

// extractor is implemented by the marker types. carried reports the wrapped
// type; extract builds the marker from a request.
type extractor interface {
	carried() reflect.Type
	extract(in *input) (any, error)
}

var extractorType = reflect.TypeFor[extractor]()

func zeroExtractor(t reflect.Type) extractor {
	return reflect.Zero(t).Interface().(extractor)
}

func (JSON[T]) carried() reflect.Type  { return reflect.TypeFor[T]() }
func (Query[T]) carried() reflect.Type { return reflect.TypeFor[T]() }
func (Path[T]) carried() reflect.Type  { return reflect.TypeFor[T]() }
func (State[T]) carried() reflect.Type { return reflect.TypeFor[T]() }

func (JSON[T]) extract(in *input) (any, error) {
	var v T
	if err := decodeRequiredBody(in.r, &v); err != nil {
		return nil, bodyError(err)
	}
	if err := validate(&v); err != nil {
		return nil, err
	}
	return JSON[T]{Value: v}, nil
}

func (Query[T]) extract(in *input) (any, error) {
	var v T
	if err := bindQuery(in.r, &v); err != nil {
		return nil, err
	}
	if err := validate(&v); err != nil {
		return nil, err
	}
	return Query[T]{Value: v}, nil
}

func (Path[T]) extract(in *input) (any, error) {
	var v T
	name, ok := in.nextPlaceholder()
	if !ok {
		return Path[T]{}, nil
	}
	if err := setValue(reflect.ValueOf(&v).Elem(), in.pathValue(name)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBindPath, name, err)
	}
	return Path[T]{Value: v}, nil
}

func (State[T]) extract(in *input) (any, error) {
	s, ok := in.states[reflect.TypeFor[T]()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingState, reflect.TypeFor[T]())
	}
	return State[T]{Value: s.Interface().(T)}, nil
}

// bodier is implemented by JSON so the invoker can unwrap a response.
type bodier interface {
	body() any
}

func (j JSON[T]) body() any { return j.Value }
