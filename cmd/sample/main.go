// Command sample serves a small todo API whose OpenAPI document is derived
// from its handler signatures.
//
// Run:
//
//	go run ./cmd/sample serve
//	go run ./cmd/sample --config sample.toml serve
//
// Generate the OpenAPI document:
//
//	go run ./cmd/sample spec                       print JSON to stdout
//	go run ./cmd/sample spec --format yaml -o api.yaml
//
// Then explore:
//
//	GET    http://localhost:8080/openapi.json
//	GET    http://localhost:8080/docs
//	GET    http://localhost:8080/v1/todos?completed=false
//	POST   http://localhost:8080/v1/todos
//	GET    http://localhost:8080/v1/todos/{id}
//	PATCH  http://localhost:8080/v1/todos/{id}
//	DELETE http://localhost:8080/v1/todos/{id}
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"

	"github.com/bjaus/endpoint"
)

func main() {
	app := &cli.App{
		Name:  "sample",
		Usage: "Todo API with a signature-derived OpenAPI document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a TOML config file",
				EnvVars: []string{"SAMPLE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{serveCmd, specCmd},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("sample failed", "err", err)
		os.Exit(1)
	}
}

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Action: func(cctx *cli.Context) error {
		cfg, logger, err := setup(cctx)
		if err != nil {
			return err
		}

		h, err := newServer(cfg, logger, NewStore())
		if err != nil {
			return err
		}

		logger.Info("starting server", "addr", cfg.Addr, "docs", "http://localhost"+cfg.Addr+"/docs")
		if err := listenAndServe(cctx.Context, cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}

var specCmd = &cli.Command{
	Name:  "spec",
	Usage: "Print the OpenAPI document and exit",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Value: "json",
			Usage: "json or yaml",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "output file (default stdout)",
		},
	},
	Action: func(cctx *cli.Context) error {
		cfg, logger, err := setup(cctx)
		if err != nil {
			return err
		}

		c, _, err := newCatalog(logger)
		if err != nil {
			return err
		}

		var w io.Writer = cctx.App.Writer
		if out := cctx.String("out"); out != "" {
			f, err := os.Create(out) //nolint:gosec // user-provided CLI flag
			if err != nil {
				return err
			}
			defer func() {
				if err := f.Close(); err != nil {
					logger.Error("failed to close output file", "err", err)
				}
			}()
			w = f
		}
		return writeSpec(w, c, cfg, cctx.String("format"))
	},
}

func setup(cctx *cli.Context) (Config, *slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		return Config{}, nil, fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(cctx.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(cctx.String("config"))
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, logger, nil
}

func writeSpec(w io.Writer, c *endpoint.Catalog, cfg Config, format string) error {
	switch format {
	case "json":
		return c.WriteSpec(w, cfg.document)
	case "yaml", "yml":
		return c.WriteSpecYAML(w, cfg.document)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// newCatalog registers every todo operation.
func newCatalog(logger *slog.Logger) (*endpoint.Catalog, []endpoint.Route, error) {
	c := endpoint.New(endpoint.WithLogger(logger), endpoint.WithPathParamCheck())
	v1 := c.Group("/v1", endpoint.WithGroupTags("todos"))

	type registration struct {
		method, template string
		h                any
		opts             []endpoint.RouteOption
	}
	regs := []registration{
		{http.MethodGet, "/todos", listTodos, []endpoint.RouteOption{
			endpoint.WithSummary("List todos"),
			endpoint.WithDescription("Returns todos matching the filter, ordered by id."),
		}},
		{http.MethodPost, "/todos", insertTodo, []endpoint.RouteOption{
			endpoint.WithSummary("Create todo"),
		}},
		{http.MethodGet, "/todos/:id", getTodo, []endpoint.RouteOption{
			endpoint.WithSummary("Get todo by id"),
		}},
		{http.MethodPatch, "/todos/:id", completeTodo, []endpoint.RouteOption{
			endpoint.WithSummary("Mark a todo complete or incomplete"),
		}},
		{http.MethodDelete, "/todos/:id", deleteTodo, []endpoint.RouteOption{
			endpoint.WithSummary("Delete todo"),
		}},
	}

	var routes []endpoint.Route
	for _, r := range regs {
		rt, err := endpoint.Register(v1, r.method, r.template, r.h, r.opts...)
		if err != nil {
			return nil, nil, err
		}
		routes = append(routes, rt)
	}

	rt, err := endpoint.Raw(c, http.MethodGet, "/health", http.HandlerFunc(health), endpoint.OperationInfo{
		Summary: "Health check",
		Tags:    []string{"ops"},
	})
	if err != nil {
		return nil, nil, err
	}
	routes = append(routes, rt)

	return c, routes, nil
}

// newServer builds the HTTP handler for the todo API, including the
// document and docs UI routes.
func newServer(cfg Config, logger *slog.Logger, store *Store) (http.Handler, error) {
	c, routes, err := newCatalog(logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Method(http.MethodGet, "/openapi.json", c.ServeSpec(cfg.document))
	r.Method(http.MethodGet, "/openapi.yaml", c.ServeSpecYAML(cfg.document))
	r.Method(http.MethodGet, "/docs", endpoint.ServeDocs("/openapi.json", endpoint.WithDocsTitle(cfg.Title)))

	mw := []endpoint.Middleware{
		endpoint.Recovery(logger),
		endpoint.Logger(logger),
		endpoint.BodyLimit(cfg.MaxBodyBytes),
	}
	if cfg.RateLimit > 0 {
		mw = append(mw, endpoint.RateLimit(endpoint.RateLimitConfig{Rate: cfg.RateLimit, Burst: cfg.RateBurst}))
	}

	if err := endpoint.Mount(r, routes, endpoint.WithStates(store), endpoint.WithMiddleware(mw...)); err != nil {
		return nil, err
	}
	return r, nil
}

// listenAndServe blocks until ctx is cancelled, then shuts down gracefully.
func listenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
