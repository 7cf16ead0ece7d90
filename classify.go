package endpoint

import (
	"fmt"
	"strings"
)

// Role is the semantic purpose of a handler parameter.
type Role int

const (
	RoleNone Role = iota
	RoleBody
	RoleQuery
	RoleState
	RolePath
)

func (r Role) String() string {
	switch r {
	case RoleBody:
		return "body"
	case RoleQuery:
		return "query"
	case RoleState:
		return "state"
	case RolePath:
		return "path"
	default:
		return "none"
	}
}

// defaultRoles maps marker type names to roles.
func defaultRoles() map[string]Role {
	return map[string]Role{
		"JSON":  RoleBody,
		"Query": RoleQuery,
		"State": RoleState,
		"Path":  RolePath,
	}
}

var builtinRoles = defaultRoles()

// TypeChain is the outer-to-inner decomposition of a nested generic type:
// JSON[Page[Todo]] → [JSON, Page, Todo]. It is never empty.
type TypeChain []string

// Inner rejoins everything after the outer wrapper using bracket nesting.
func (c TypeChain) Inner() string {
	if len(c) < 2 {
		return ""
	}
	tail := c[1:]
	return strings.Join(tail, "[") + strings.Repeat("]", len(tail)-1)
}

// Chain decomposes a named type expression. Type arguments that are named,
// or a single pointer to a named type, are followed. Anything else ends the
// branch silently, unless strict is set, in which case it is reported as
// ErrUnsupportedTypeArgument along with generics of more than one argument.
func Chain(e TypeExpr, strict bool) (TypeChain, error) {
	if e.Kind != ExprNamed {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedParameterType, e.Text)
	}
	var chain TypeChain
	if err := appendChain(&chain, e, strict); err != nil {
		return nil, err
	}
	return chain, nil
}

func appendChain(chain *TypeChain, e TypeExpr, strict bool) error {
	*chain = append(*chain, e.Name)
	if strict && len(e.Args) > 1 {
		return fmt.Errorf("%w: %s has %d type arguments", ErrUnsupportedTypeArgument, e.Text, len(e.Args))
	}
	for _, a := range e.Args {
		switch {
		case a.Kind == ExprNamed:
			if err := appendChain(chain, a, strict); err != nil {
				return err
			}
		case a.Kind == ExprPointer && a.Elem.Kind == ExprNamed:
			if err := appendChain(chain, *a.Elem, strict); err != nil {
				return err
			}
		case strict:
			return fmt.Errorf("%w: %s in %s", ErrUnsupportedTypeArgument, a.Text, e.Text)
		}
	}
	return nil
}

// Argument is a classified handler parameter.
type Argument struct {
	Role Role
	Type TypeRef
}

// Classifier maps declared parameter types to roles using a marker table.
type Classifier struct {
	roles  map[string]Role
	strict bool
}

// NewClassifier returns a classifier for the given marker table. A nil table
// selects the default markers JSON, Query, State and Path.
func NewClassifier(roles map[string]Role, strict bool) *Classifier {
	if roles == nil {
		roles = defaultRoles()
	}
	return &Classifier{roles: roles, strict: strict}
}

// Classify assigns a role to one declared parameter. ok is false when the
// outer wrapper is not a known marker; such parameters are left undocumented.
func (c *Classifier) Classify(ref TypeRef) (arg Argument, ok bool, err error) {
	chain, err := c.chain(ref)
	if err != nil {
		return Argument{}, false, err
	}

	name := baseName(chain[0])
	role, known := c.roles[name]
	if !known || len(chain) < 2 || c.borrowsMarkerName(ref, name) {
		return Argument{}, false, nil
	}

	return Argument{Role: role, Type: carriedRef(ref, chain)}, true, nil
}

// ClassifyResult classifies a handler's declared result. A nil result means
// the handler declares none. The returned ref is nil for opaque responses.
func (c *Classifier) ClassifyResult(ref *TypeRef) (*TypeRef, error) {
	if ref == nil {
		return nil, ErrMissingReturnType
	}

	e, err := ParseTypeExpr(ref.Expr)
	if err != nil || e.Kind != ExprNamed {
		return nil, nil
	}
	chain, err := Chain(e, c.strict)
	if err != nil {
		return nil, err
	}

	name := baseName(chain[0])
	if c.roles[name] != RoleBody || len(chain) < 2 || c.borrowsMarkerName(*ref, name) {
		return nil, nil
	}
	inner := carriedRef(*ref, chain)
	return &inner, nil
}

func (c *Classifier) chain(ref TypeRef) (TypeChain, error) {
	e, err := ParseTypeExpr(ref.Expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedParameterType, err)
	}
	if e.Kind != ExprNamed {
		return nil, fmt.Errorf("%w: %s is not a named type", ErrUnsupportedParameterType, e.Text)
	}
	return Chain(e, c.strict)
}

// borrowsMarkerName reports whether ref is a concrete type named like one of
// the built-in markers JSON, Query, Path or State without being one. Such
// types cannot be bound by Mount and are not documented.
func (c *Classifier) borrowsMarkerName(ref TypeRef, name string) bool {
	if ref.Type == nil || ref.Type.Implements(extractorType) {
		return false
	}
	role, builtin := builtinRoles[name]
	return builtin && c.roles[name] == role
}

// MissingTypeArgument reports whether ref is a known marker whose type
// argument is not a named type, as in JSON[[]Todo] under lenient
// classification. Such markers are left undocumented.
func (c *Classifier) MissingTypeArgument(ref TypeRef) bool {
	e, err := ParseTypeExpr(ref.Expr)
	if err != nil || e.Kind != ExprNamed {
		return false
	}
	chain, err := Chain(e, false)
	if err != nil {
		return false
	}
	_, known := c.roles[baseName(chain[0])]
	return known && len(chain) < 2
}

// carriedRef builds the inner type reference. The concrete type comes from
// the marker itself when the outer type is one of ours.
func carriedRef(outer TypeRef, chain TypeChain) TypeRef {
	inner := TypeRef{Expr: chain.Inner()}
	if outer.Type != nil && outer.Type.Implements(extractorType) {
		inner.Type = zeroExtractor(outer.Type).carried()
	}
	return inner
}
