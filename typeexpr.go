package endpoint

import (
	"fmt"
	"strings"
)

// ExprKind identifies the shape of a parsed type expression.
type ExprKind int

const (
	ExprNamed     ExprKind = iota // qualified identifier, optionally instantiated
	ExprPointer                   // *T
	ExprComposite                 // slice, array, map, func, chan, struct, interface
)

// TypeExpr is a parsed Go type expression such as "JSON[Page[Todo]]" or the
// output of reflect.Type.String().
type TypeExpr struct {
	Kind ExprKind
	Name string     // ExprNamed only
	Args []TypeExpr // ExprNamed only
	Elem *TypeExpr  // ExprPointer only
	Text string
}

// ParseTypeExpr parses a type expression. Composite types are recognized but
// not decomposed.
func ParseTypeExpr(s string) (TypeExpr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeExpr{}, fmt.Errorf("empty type expression")
	}

	if s[0] == '*' {
		elem, err := ParseTypeExpr(s[1:])
		if err != nil {
			return TypeExpr{}, err
		}
		return TypeExpr{Kind: ExprPointer, Elem: &elem, Text: s}, nil
	}

	if isComposite(s) {
		return TypeExpr{Kind: ExprComposite, Text: s}, nil
	}

	open := strings.IndexByte(s, '[')
	name := s
	if open >= 0 {
		name = s[:open]
	}
	if name == "" || strings.ContainsAny(name, " \t(){}*,]\"") {
		return TypeExpr{}, fmt.Errorf("malformed type expression %q", s)
	}

	expr := TypeExpr{Kind: ExprNamed, Name: name, Text: s}
	if open < 0 {
		return expr, nil
	}

	if s[len(s)-1] != ']' {
		return TypeExpr{}, fmt.Errorf("malformed type expression %q", s)
	}
	parts, err := splitArgs(s[open+1 : len(s)-1])
	if err != nil {
		return TypeExpr{}, fmt.Errorf("malformed type expression %q: %w", s, err)
	}
	for _, p := range parts {
		arg, err := ParseTypeExpr(p)
		if err != nil {
			return TypeExpr{}, err
		}
		expr.Args = append(expr.Args, arg)
	}
	return expr, nil
}

// Short renders the expression with every qualified identifier reduced to
// its final component: "endpoint.JSON[example.com/app.Todo]" → "JSON[Todo]".
func (e TypeExpr) Short() string {
	switch e.Kind {
	case ExprPointer:
		return "*" + e.Elem.Short()
	case ExprComposite:
		return e.Text
	}

	name := baseName(e.Name)
	if len(e.Args) == 0 {
		return name
	}
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Short()
	}
	return name + "[" + strings.Join(args, ", ") + "]"
}

// ShortName returns the short form of a type expression, or the input
// unchanged when it does not parse.
func ShortName(expr string) string {
	e, err := ParseTypeExpr(expr)
	if err != nil {
		return expr
	}
	return e.Short()
}

// baseName strips the package qualifier from an identifier.
func baseName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

var compositePrefixes = []string{
	"[", "map[", "func(", "func ", "chan ", "chan<-", "<-chan", "struct {", "struct{", "interface {", "interface{",
}

func isComposite(s string) bool {
	for _, p := range compositePrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return s == "func"
}

// splitArgs splits a type argument list on top-level commas.
func splitArgs(s string) ([]string, error) {
	var (
		parts   []string
		depth   int
		start   int
		quoted  bool
		escaped bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quoted {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				quoted = false
			}
			continue
		}
		switch c {
		case '"':
			quoted = true
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced %q at offset %d", c, i)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 || quoted {
		return nil, fmt.Errorf("unbalanced type argument list")
	}
	parts = append(parts, s[start:])
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("empty type argument")
		}
	}
	return parts, nil
}
