package endpoint_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/endpoint"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		handlerStatus int
		want          []string
	}{
		"request is logged": {
			handlerStatus: http.StatusOK,
			want:          []string{"msg=request", "method=GET", "path=/test-log", "status=200"},
		},
		"status code is captured": {
			handlerStatus: http.StatusCreated,
			want:          []string{"status=201"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			h := endpoint.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.handlerStatus)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test-log", nil))

			for _, s := range tc.want {
				assert.Contains(t, buf.String(), s)
			}
			assert.NotContains(t, buf.String(), "operation_id")
		})
	}
}

func TestLogger_captures_body_size(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := endpoint.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello world response")) //nolint:errcheck
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/size", nil))

	assert.Contains(t, buf.String(), "size=20")
}

func TestLogger_unwrap_response_controller(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := endpoint.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = http.NewResponseController(w).Flush() //nolint:errcheck
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unwrap", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, rec.Flushed)
	assert.Contains(t, buf.String(), "msg=request")
}

func TestLogger_mounted_route(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := quietCatalog()
	rt, err := endpoint.Get(c, "/todos/:id", getTodo)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	require.NoError(t, endpoint.Mount(r, []endpoint.Route{rt}, endpoint.WithMiddleware(endpoint.Logger(logger))))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos/7", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "operation_id=getTodo")
	assert.Contains(t, out, "request_id=")
}

func TestOperationID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, endpoint.OperationID(context.Background()))

	c := quietCatalog()
	var seen string
	rt, err := endpoint.Get(c, "/who", func(ctx context.Context) (endpoint.JSON[Todo], error) {
		seen = endpoint.OperationID(ctx)
		return endpoint.JSON[Todo]{}, nil
	}, endpoint.WithOperationID("whoAmI"))
	require.NoError(t, err)

	r := chi.NewRouter()
	require.NoError(t, endpoint.Mount(r, []endpoint.Route{rt}))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/who", nil))

	assert.Equal(t, "whoAmI", seen)
}
