package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/server/res"
)

const maxBody = 1 << 20

func NewPingHandler(log *slog.Logger, pingmap map[string]Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out := map[string]string{}
		code := http.StatusOK

		for name, p := range pingmap {
			if err := p.Ping(ctx); err != nil {
				log.Warn("ping failed", "dependency", name, "error", err)
				out[name] = "down"
				code = http.StatusServiceUnavailable
			} else {
				out[name] = "ok"
			}
		}

		if code == http.StatusOK {
			res.OK(w, map[string]any{"services": out}, code)
			return
		}
		res.Json(w, map[string]any{"success": false, "data": map[string]any{"services": out}}, code)
	}
}

func kindOf(w http.ResponseWriter, r *http.Request) (plan.Kind, bool) {
	kind, err := plan.ParseKind(r.PathValue("kind"))
	if err != nil {
		res.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return kind, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		res.Error(w, "invalid body", http.StatusBadRequest)
		return nil, false
	}
	if len(body) == 0 {
		res.Error(w, "empty body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func NewCreateHandler(_ *slog.Logger, svc Planner, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := kindOf(w, r)
		if !ok {
			return
		}
		body, ok := readBody(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		e, err := svc.Create(ctx, kind, body)
		if err != nil {
			WriteErr(w, err)
			return
		}
		res.OK(w, e, http.StatusCreated)
	}
}

func NewGetHandler(_ *slog.Logger, svc Planner, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := kindOf(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		e, err := svc.Get(ctx, kind, r.PathValue("id"))
		if err != nil {
			WriteErr(w, err)
			return
		}
		res.OK(w, e, http.StatusOK)
	}
}

// NewListHandler lists a kind, restricted to the entities active between
// ?start= and ?end= when both are given.
func NewListHandler(_ *slog.Logger, svc Planner, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := kindOf(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()
		rawStart, rawEnd := q.Get("start"), q.Get("end")

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if rawStart == "" && rawEnd == "" {
			all, err := svc.List(ctx, kind)
			if err != nil {
				WriteErr(w, err)
				return
			}
			res.OK(w, all, http.StatusOK)
			return
		}

		start, err := calendar.ParseDay(rawStart)
		if err != nil || start.IsZero() {
			res.Error(w, "invalid start", http.StatusBadRequest)
			return
		}
		end, err := calendar.ParseDay(rawEnd)
		if err != nil || end.IsZero() {
			res.Error(w, "invalid end", http.StatusBadRequest)
			return
		}

		all, err := svc.ListRange(ctx, kind, calendar.Window{Start: start, End: end})
		if err != nil {
			WriteErr(w, err)
			return
		}
		res.OK(w, all, http.StatusOK)
	}
}

func NewUpdateHandler(_ *slog.Logger, svc Planner, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := kindOf(w, r)
		if !ok {
			return
		}
		body, ok := readBody(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		e, err := svc.UpdateFields(ctx, kind, r.PathValue("id"), body)
		if err != nil {
			WriteErr(w, err)
			return
		}
		res.OK(w, e, http.StatusOK)
	}
}

func NewCompleteHandler(_ *slog.Logger, svc Planner, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := kindOf(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		e, err := svc.Complete(ctx, kind, r.PathValue("id"))
		if err != nil {
			WriteErr(w, err)
			return
		}
		res.OK(w, e, http.StatusOK)
	}
}

func NewDeleteHandler(_ *slog.Logger, svc Planner, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := kindOf(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		id := r.PathValue("id")
		if err := svc.Delete(ctx, kind, id); err != nil {
			WriteErr(w, err)
			return
		}
		res.OK(w, map[string]string{"_id": id}, http.StatusOK)
	}
}

// NewViewHandler composes the named view around ?on=, defaulting to today.
func NewViewHandler(_ *slog.Logger, svc Planner, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := calendar.ParseView(r.PathValue("view"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		on, err := calendar.ParseDay(r.URL.Query().Get("on"))
		if err != nil {
			res.Error(w, "invalid on", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		p, err := svc.Compose(ctx, view, on)
		if err != nil {
			WriteErr(w, err)
			return
		}
		res.OK(w, p, http.StatusOK)
	}
}
