package endpoint

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MountOption configures Mount.
type MountOption func(*mountConfig)

type mountConfig struct {
	states     []any
	middleware []Middleware
}

// WithStates supplies the shared state values handlers receive through
// State[T]. A value serves State[T] when its type is T or assignable to T.
func WithStates(states ...any) MountOption {
	return func(c *mountConfig) {
		c.states = append(c.states, states...)
	}
}

// WithMiddleware wraps every mounted route. Middleware runs after the
// route's operation id is on the request context, so Logger and RateLimit
// can see it.
func WithMiddleware(mw ...Middleware) MountOption {
	return func(c *mountConfig) {
		c.middleware = append(c.middleware, mw...)
	}
}

// Mount installs routes on r. Every State[T] a handler declares must be
// satisfied by a supplied state value, otherwise Mount fails with
// ErrMissingState before anything is served.
func Mount(r chi.Router, routes []Route, opts ...MountOption) error {
	cfg := &mountConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	type mounted struct {
		rt Route
		h  http.Handler
	}
	handlers := make([]mounted, 0, len(routes))
	for _, rt := range routes {
		if !strings.HasPrefix(rt.Path, "/") {
			return fmt.Errorf("mount %s %s: path must begin with '/'", rt.Method, rt.Path)
		}
		h, err := handlerFor(rt, cfg.states)
		if err != nil {
			return fmt.Errorf("mount %s %s: %w", rt.Method, rt.Path, err)
		}
		handlers = append(handlers, mounted{rt: rt, h: h})
	}

	for _, m := range handlers {
		h := chain(m.h, append(append([]Middleware(nil), cfg.middleware...), m.rt.middleware...))
		id := m.rt.OperationID
		r.Method(m.rt.Method, m.rt.Path, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			h.ServeHTTP(w, req.WithContext(withOperation(req.Context(), id)))
		}))
	}
	return nil
}

func handlerFor(rt Route, states []any) (http.Handler, error) {
	switch h := rt.Handler.(type) {
	case nil:
		return nil, fmt.Errorf("%w: no handler for %s", ErrNotHandler, rt.OperationID)
	case http.Handler:
		return h, nil
	case func(http.ResponseWriter, *http.Request):
		return http.HandlerFunc(h), nil
	}
	return newInvoker(rt, states)
}

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// stateful is implemented by State so Mount can check availability up front.
type stateful interface {
	stateType() reflect.Type
}

func (State[T]) stateType() reflect.Type { return reflect.TypeFor[T]() }

type argKind int

const (
	argZero argKind = iota
	argContext
	argExtract
)

// invoker calls a reflected handler function with arguments built from the
// request and writes its results.
type invoker struct {
	fn     reflect.Value
	params []reflect.Type
	kinds  []argKind
	names  []string
	states map[reflect.Type]reflect.Value

	bodyIdx int // -1 when the handler returns no body
	errIdx  int // -1 when the handler returns no error
}

func newInvoker(rt Route, states []any) (*invoker, error) {
	fn := reflect.ValueOf(rt.Handler)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotHandler, rt.Handler)
	}
	t := fn.Type()

	inv := &invoker{
		fn:      fn,
		names:   ExtractPlaceholders(rt.Path),
		states:  make(map[reflect.Type]reflect.Value),
		bodyIdx: -1,
		errIdx:  -1,
	}

	for i := range t.NumIn() {
		pt := t.In(i)
		inv.params = append(inv.params, pt)
		switch {
		case pt == contextType:
			inv.kinds = append(inv.kinds, argContext)
		case pt.Implements(extractorType):
			inv.kinds = append(inv.kinds, argExtract)
			if s, ok := zeroExtractor(pt).(stateful); ok {
				want := s.stateType()
				v, found := resolveState(want, states)
				if !found {
					return nil, fmt.Errorf("%w: %s", ErrMissingState, want)
				}
				inv.states[want] = v
			}
		default:
			inv.kinds = append(inv.kinds, argZero)
		}
	}

	n := t.NumOut()
	if n > 0 && t.Out(n-1) == errorType {
		inv.errIdx = n - 1
	}
	if n > 0 && inv.errIdx != 0 {
		inv.bodyIdx = 0
	}
	return inv, nil
}

// resolveState finds the state value serving want: an exact type match
// first, then the first assignable value.
func resolveState(want reflect.Type, states []any) (reflect.Value, bool) {
	for _, s := range states {
		if s != nil && reflect.TypeOf(s) == want {
			return reflect.ValueOf(s), true
		}
	}
	for _, s := range states {
		if s != nil && reflect.TypeOf(s).AssignableTo(want) {
			return reflect.ValueOf(s).Convert(want), true
		}
	}
	return reflect.Value{}, false
}

func (inv *invoker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in := &input{r: r, names: inv.names, states: inv.states}

	args := make([]reflect.Value, len(inv.params))
	for i, pt := range inv.params {
		switch inv.kinds[i] {
		case argContext:
			args[i] = reflect.ValueOf(r.Context())
		case argExtract:
			v, err := zeroExtractor(pt).extract(in)
			if err != nil {
				writeErrorResponse(w, r, err)
				return
			}
			args[i] = reflect.ValueOf(v)
		default:
			args[i] = reflect.Zero(pt)
		}
	}

	out := inv.fn.Call(args)

	if inv.errIdx >= 0 {
		if err, _ := out[inv.errIdx].Interface().(error); err != nil {
			writeErrorResponse(w, r, err)
			return
		}
	}

	if inv.bodyIdx < 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := out[inv.bodyIdx].Interface()
	if b, ok := resp.(bodier); ok {
		resp = b.body()
	}
	writeJSON(w, http.StatusOK, resp)
}
