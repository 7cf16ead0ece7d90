package endpoint

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// TypeRef is a type expression plus, when known, the concrete type behind it.
// Refs derived by reflection always carry Type; declared refs may leave it
// nil and rely on the catalog's TypeRegistry.
type TypeRef struct {
	Expr string
	Type reflect.Type
}

// TypeOf returns the reference for T.
func TypeOf[T any]() TypeRef {
	return refOf(reflect.TypeFor[T]())
}

// Expr returns a declared reference with no concrete type attached.
func Expr(expr string) TypeRef {
	return TypeRef{Expr: expr}
}

func (r TypeRef) String() string { return r.Expr }

func refOf(t reflect.Type) TypeRef {
	return TypeRef{Expr: t.String(), Type: t}
}

// Signature is the documented identity of a handler: its declared parameter
// types in order, its declared result, and the value used for dispatch.
type Signature struct {
	Name    string
	Params  []TypeRef
	Result  *TypeRef // nil when the handler declares no result
	Handler any
}

// Declare builds a Signature from explicit references. An empty result
// expression means no result is declared.
func Declare(name string, result TypeRef, params ...TypeRef) Signature {
	sig := Signature{Name: name, Params: params}
	if result.Expr != "" {
		sig.Result = &result
	}
	return sig
}

// SignatureOf reflects a handler function. The first result, if any, is the
// declared result; a trailing error is not part of the documentation.
func SignatureOf(h any) (Signature, error) {
	v := reflect.ValueOf(h)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Signature{}, fmt.Errorf("%w: %T", ErrNotHandler, h)
	}

	t := v.Type()
	sig := Signature{
		Name:    runtime.FuncForPC(v.Pointer()).Name(),
		Params:  make([]TypeRef, 0, t.NumIn()),
		Handler: h,
	}
	for i := range t.NumIn() {
		sig.Params = append(sig.Params, refOf(t.In(i)))
	}
	if t.NumOut() > 0 {
		r := refOf(t.Out(0))
		sig.Result = &r
	}
	return sig, nil
}

// funcOperationID derives an operation id from a runtime function name.
// Closures yield "" so the caller can fall back to a generated id.
//
//	github.com/acme/todo.listTodos      → listTodos
//	github.com/acme/todo.(*api).get-fm  → get
//	github.com/acme/todo.main.func1     → ""
func funcOperationID(name string) string {
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	name = baseName(name)
	if name == "" || isClosureName(name) {
		return ""
	}
	return name
}

func isClosureName(name string) bool {
	name = strings.TrimPrefix(name, "func")
	if name == "" {
		return true
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// generateOperationID builds an id from the method and canonical path:
// GET /users/{id} → getUsersById.
func generateOperationID(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if isPlaceholder(seg) {
			b.WriteString("By")
			seg = seg[1 : len(seg)-1]
		}
		b.WriteString(camel(seg))
	}
	return b.String()
}

func camel(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			if upper {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
			upper = false
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			upper = false
		default:
			upper = true
		}
	}
	return b.String()
}
