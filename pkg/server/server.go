// Package server exposes the planner Service over a small JSON REST API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/server/config"
	"tableflip.dev/planner/pkg/server/res"
)

// Planner is the part of app.Service the REST layer calls.
type Planner interface {
	Create(ctx context.Context, kind plan.Kind, fields []byte) (plan.Entity, error)
	Get(ctx context.Context, kind plan.Kind, id string) (plan.Entity, error)
	List(ctx context.Context, kind plan.Kind) ([]plan.Entity, error)
	ListRange(ctx context.Context, kind plan.Kind, w calendar.Window) ([]plan.Entity, error)
	UpdateFields(ctx context.Context, kind plan.Kind, id string, fields []byte) (plan.Entity, error)
	Complete(ctx context.Context, kind plan.Kind, id string) (plan.Entity, error)
	Delete(ctx context.Context, kind plan.Kind, id string) error
	Compose(ctx context.Context, view calendar.View, anchor calendar.Day) (app.Plan, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Planner Planner
	// Pingers are checked by /api/ping, keyed by a display name.
	Pingers map[string]Pinger
}

func WriteErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrBadArguments):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, app.ErrNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, app.ErrAlreadyExists):
		res.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, app.ErrUnavailable):
		res.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, context.DeadlineExceeded):
		res.Error(w, "timeout", http.StatusGatewayTimeout)
	default:
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func Register(mux *http.ServeMux, log *slog.Logger, deps Deps, timeout time.Duration) {
	mux.Handle("GET /api/ping", NewPingHandler(log, deps.Pingers, timeout))

	mux.Handle("GET /api/views/{view}", NewViewHandler(log, deps.Planner, timeout))

	mux.Handle("POST /api/{kind}", NewCreateHandler(log, deps.Planner, timeout))
	mux.Handle("GET /api/{kind}", NewListHandler(log, deps.Planner, timeout))
	mux.Handle("GET /api/{kind}/{id}", NewGetHandler(log, deps.Planner, timeout))
	mux.Handle("PUT /api/{kind}/{id}", NewUpdateHandler(log, deps.Planner, timeout))
	mux.Handle("PATCH /api/{kind}/{id}", NewUpdateHandler(log, deps.Planner, timeout))
	mux.Handle("DELETE /api/{kind}/{id}", NewDeleteHandler(log, deps.Planner, timeout))
	mux.Handle("POST /api/{kind}/{id}/complete", NewCompleteHandler(log, deps.Planner, timeout))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logged logs one line per request.
func Logged(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// NewHandler builds the routed and logged handler for deps.
func NewHandler(log *slog.Logger, deps Deps, timeout time.Duration) http.Handler {
	mux := http.NewServeMux()
	Register(mux, log, deps, timeout)
	return Logged(log, mux)
}

// Run serves until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, log *slog.Logger, deps Deps) error {
	server := http.Server{
		Addr:              cfg.HTTP.Address,
		ReadHeaderTimeout: cfg.HTTP.Timeout,
		Handler:           NewHandler(log, deps, cfg.HTTP.Timeout),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("planner http server", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// MakeLogger builds the text logger for level DEBUG, INFO, WARN or ERROR.
func MakeLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
