package endpoint_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/endpoint"
)

type Todo struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type Page[T any] struct {
	Items []T    `json:"items"`
	Next  string `json:"next,omitempty"`
}

type Pair[A, B any] struct {
	First  A `json:"first"`
	Second B `json:"second"`
}

type TodoFilter struct {
	Completed bool   `query:"completed" doc:"Only completed todos"`
	Owner     string `query:"owner,required"`
}

type Store struct{ name string }

func TestChain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		expr string
		want endpoint.TypeChain
	}{
		"no arguments":         {expr: "Todo", want: endpoint.TypeChain{"Todo"}},
		"one level":            {expr: "JSON[Todo]", want: endpoint.TypeChain{"JSON", "Todo"}},
		"nested":               {expr: "JSON[Page[Todo]]", want: endpoint.TypeChain{"JSON", "Page", "Todo"}},
		"pointer argument":     {expr: "JSON[*Todo]", want: endpoint.TypeChain{"JSON", "Todo"}},
		"pointer to pointer":   {expr: "JSON[**Todo]", want: endpoint.TypeChain{"JSON"}},
		"slice argument":       {expr: "JSON[[]Todo]", want: endpoint.TypeChain{"JSON"}},
		"map argument":         {expr: "JSON[map[string]Todo]", want: endpoint.TypeChain{"JSON"}},
		"composite then named": {expr: "Pair[[]int, Todo]", want: endpoint.TypeChain{"Pair", "Todo"}},
		"two named arguments":  {expr: "Pair[A, B]", want: endpoint.TypeChain{"Pair", "A", "B"}},
		"qualified":            {expr: "endpoint.JSON[example.com/x.Todo]", want: endpoint.TypeChain{"endpoint.JSON", "example.com/x.Todo"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e, err := endpoint.ParseTypeExpr(tc.expr)
			require.NoError(t, err)

			chain, err := endpoint.Chain(e, false)
			require.NoError(t, err)
			assert.Equal(t, tc.want, chain)
			assert.NotEmpty(t, chain)
		})
	}
}

func TestChain_strict(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		expr    string
		wantErr bool
	}{
		"named":              {expr: "JSON[Page[Todo]]"},
		"pointer to named":   {expr: "JSON[*Todo]"},
		"slice argument":     {expr: "JSON[[]Todo]", wantErr: true},
		"pointer to pointer": {expr: "JSON[**Todo]", wantErr: true},
		"two arguments":      {expr: "Pair[A, B]", wantErr: true},
		"nested two":         {expr: "JSON[Pair[A, B]]", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e, err := endpoint.ParseTypeExpr(tc.expr)
			require.NoError(t, err)

			_, err = endpoint.Chain(e, true)
			if tc.wantErr {
				require.ErrorIs(t, err, endpoint.ErrUnsupportedTypeArgument)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestChain_not_named(t *testing.T) {
	t.Parallel()

	e, err := endpoint.ParseTypeExpr("[]Todo")
	require.NoError(t, err)

	_, err = endpoint.Chain(e, false)
	require.ErrorIs(t, err, endpoint.ErrUnsupportedParameterType)
}

func TestTypeChain_Inner(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		chain endpoint.TypeChain
		want  string
	}{
		"single": {chain: endpoint.TypeChain{"JSON"}, want: ""},
		"two":    {chain: endpoint.TypeChain{"JSON", "Todo"}, want: "Todo"},
		"three":  {chain: endpoint.TypeChain{"JSON", "Page", "Todo"}, want: "Page[Todo]"},
		"four":   {chain: endpoint.TypeChain{"A", "B", "C", "D"}, want: "B[C[D]]"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.chain.Inner())
		})
	}
}

// Declared single-argument generics round-trip: the carried expression of a
// marker is exactly what was written inside it.
func TestClassify_round_trip(t *testing.T) {
	t.Parallel()

	inners := []string{"Todo", "Page[Todo]", "A[B[C[D]]]", "Page[*Todo]"}
	c := endpoint.NewClassifier(nil, false)

	for _, inner := range inners {
		t.Run(inner, func(t *testing.T) {
			t.Parallel()

			arg, ok, err := c.Classify(endpoint.Expr("JSON[" + inner + "]"))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, strings.ReplaceAll(inner, "*", ""), arg.Type.Expr)
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		ref      endpoint.TypeRef
		wantOK   bool
		wantRole endpoint.Role
		wantExpr string
		wantType reflect.Type
	}{
		"declared body": {
			ref: endpoint.Expr("JSON[Todo]"), wantOK: true,
			wantRole: endpoint.RoleBody, wantExpr: "Todo",
		},
		"declared nested body": {
			ref: endpoint.Expr("JSON[Page[Todo]]"), wantOK: true,
			wantRole: endpoint.RoleBody, wantExpr: "Page[Todo]",
		},
		"declared query": {
			ref: endpoint.Expr("Query[TodoFilter]"), wantOK: true,
			wantRole: endpoint.RoleQuery, wantExpr: "TodoFilter",
		},
		"declared path": {
			ref: endpoint.Expr("Path[int]"), wantOK: true,
			wantRole: endpoint.RolePath, wantExpr: "int",
		},
		"declared state": {
			ref: endpoint.Expr("State[AppState]"), wantOK: true,
			wantRole: endpoint.RoleState, wantExpr: "AppState",
		},
		"qualified marker": {
			ref: endpoint.Expr("github.com/bjaus/endpoint.JSON[Todo]"), wantOK: true,
			wantRole: endpoint.RoleBody, wantExpr: "Todo",
		},
		"reflected body": {
			ref: endpoint.TypeOf[endpoint.JSON[Todo]](), wantOK: true,
			wantRole: endpoint.RoleBody, wantType: reflect.TypeFor[Todo](),
		},
		"reflected path": {
			ref: endpoint.TypeOf[endpoint.Path[int]](), wantOK: true,
			wantRole: endpoint.RolePath, wantExpr: "int", wantType: reflect.TypeFor[int](),
		},
		"reflected state pointer": {
			ref: endpoint.TypeOf[endpoint.State[*Store]](), wantOK: true,
			wantRole: endpoint.RoleState, wantType: reflect.TypeFor[*Store](),
		},
		"unknown wrapper": {
			ref: endpoint.Expr("Headers[Todo]"),
		},
		"marker without argument": {
			ref: endpoint.Expr("JSON"),
		},
		"marker with only composite argument": {
			ref: endpoint.Expr("JSON[[]Todo]"),
		},
		"context": {
			ref: endpoint.TypeOf[context.Context](),
		},
	}

	c := endpoint.NewClassifier(nil, false)

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			arg, ok, err := c.Classify(tc.ref)
			require.NoError(t, err)
			require.Equal(t, tc.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.wantRole, arg.Role)
			if tc.wantExpr != "" {
				assert.Equal(t, tc.wantExpr, arg.Type.Expr)
			}
			assert.Equal(t, tc.wantType, arg.Type.Type)
		})
	}
}

func TestClassifier_Classify_unsupported(t *testing.T) {
	t.Parallel()

	tests := map[string]endpoint.TypeRef{
		"slice":     endpoint.Expr("[]Todo"),
		"map":       endpoint.Expr("map[string]Todo"),
		"pointer":   endpoint.TypeOf[*Todo](),
		"func":      endpoint.Expr("func()"),
		"malformed": endpoint.Expr("JSON[Todo"),
	}

	c := endpoint.NewClassifier(nil, false)

	for name, ref := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, ok, err := c.Classify(ref)
			require.ErrorIs(t, err, endpoint.ErrUnsupportedParameterType)
			assert.False(t, ok)
		})
	}
}

func TestClassifier_custom_roles(t *testing.T) {
	t.Parallel()

	c := endpoint.NewClassifier(map[string]endpoint.Role{"Body": endpoint.RoleBody}, false)

	arg, ok, err := c.Classify(endpoint.Expr("Body[Todo]"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, endpoint.RoleBody, arg.Role)

	_, ok, err = c.Classify(endpoint.Expr("JSON[Todo]"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClassifier_ClassifyResult(t *testing.T) {
	t.Parallel()

	body := endpoint.Expr("JSON[Page[Todo]]")
	plain := endpoint.Expr("Todo")
	slice := endpoint.Expr("[]Todo")
	query := endpoint.Expr("Query[TodoFilter]")
	bare := endpoint.Expr("JSON")

	tests := map[string]struct {
		ref      *endpoint.TypeRef
		wantExpr string
	}{
		"body marker":        {ref: &body, wantExpr: "Page[Todo]"},
		"plain named":        {ref: &plain},
		"composite":          {ref: &slice},
		"non-body marker":    {ref: &query},
		"marker no argument": {ref: &bare},
	}

	c := endpoint.NewClassifier(nil, false)

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := c.ClassifyResult(tc.ref)
			require.NoError(t, err)
			if tc.wantExpr == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantExpr, got.Expr)
		})
	}
}

func TestClassifier_ClassifyResult_missing(t *testing.T) {
	t.Parallel()

	c := endpoint.NewClassifier(nil, false)
	_, err := c.ClassifyResult(nil)
	require.ErrorIs(t, err, endpoint.ErrMissingReturnType)
}

func TestRole_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "body", endpoint.RoleBody.String())
	assert.Equal(t, "query", endpoint.RoleQuery.String())
	assert.Equal(t, "state", endpoint.RoleState.String())
	assert.Equal(t, "path", endpoint.RolePath.String())
	assert.Equal(t, "none", endpoint.RoleNone.String())
}
