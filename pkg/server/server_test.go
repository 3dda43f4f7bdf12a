package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newTestServer(t *testing.T, pingers map[string]Pinger) *httptest.Server {
	t.Helper()
	return newTestServerOn(t, store.NewMemory(), pingers)
}

func newTestServerOn(t *testing.T, p store.Persistence, pingers map[string]Pinger) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := app.New(p, log)
	srv := httptest.NewServer(NewHandler(log, Deps{Planner: svc, Pingers: pingers}, time.Second))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func TestCRUDRoundTrip(t *testing.T) {
	srv := newTestServer(t, nil)

	code, env := do(t, srv, http.MethodPost, "/api/tasks", `{"title":"dentist","date":"2024-03-14"}`)
	if code != http.StatusCreated || !env.Success {
		t.Fatalf("create: %d %+v", code, env)
	}
	var created struct {
		ID    string `json:"_id"`
		Title string `json:"title"`
		Date  string `json:"date"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || created.Date != "2024-03-14" {
		t.Fatalf("unexpected created task %+v", created)
	}

	code, _ = do(t, srv, http.MethodGet, "/api/task/"+created.ID, "")
	if code != http.StatusOK {
		t.Fatalf("get: %d", code)
	}

	code, env = do(t, srv, http.MethodPatch, "/api/tasks/"+created.ID, `{"time":"09:30"}`)
	if code != http.StatusOK {
		t.Fatalf("patch: %d %s", code, env.Error)
	}

	code, env = do(t, srv, http.MethodPost, "/api/tasks/"+created.ID+"/complete", "")
	if code != http.StatusOK || !strings.Contains(string(env.Data), `"completed":true`) {
		t.Fatalf("complete: %d %s", code, env.Data)
	}

	code, _ = do(t, srv, http.MethodDelete, "/api/tasks/"+created.ID, "")
	if code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	code, env = do(t, srv, http.MethodGet, "/api/tasks/"+created.ID, "")
	if code != http.StatusNotFound || env.Success {
		t.Fatalf("expected 404 after delete, got %d %+v", code, env)
	}
}

func TestCreateAssignsItsOwnID(t *testing.T) {
	dv, err := store.NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("diskv: %v", err)
	}
	backends := map[string]store.Persistence{
		"memory": store.NewMemory(),
		"diskv":  dv,
	}
	for name, p := range backends {
		t.Run(name, func(t *testing.T) {
			srv := newTestServerOn(t, p, nil)
			for _, body := range []string{
				`{"_id":"a/b","title":"x"}`,
				`{"_id":"mine","title":"x","createdAt":"2001-01-01T00:00:00Z","updatedAt":"2001-01-01T00:00:00Z"}`,
			} {
				code, env := do(t, srv, http.MethodPost, "/api/task", body)
				if code != http.StatusCreated {
					t.Fatalf("create %s: %d %s", body, code, env.Error)
				}
				var created struct {
					ID        string    `json:"_id"`
					CreatedAt time.Time `json:"createdAt"`
				}
				if err := json.Unmarshal(env.Data, &created); err != nil {
					t.Fatalf("decode created: %v", err)
				}
				if created.ID == "" || created.ID == "a/b" || created.ID == "mine" {
					t.Fatalf("client id kept: %q", created.ID)
				}
				if created.CreatedAt.Year() == 2001 {
					t.Fatalf("client createdAt kept: %v", created.CreatedAt)
				}
				if code, env := do(t, srv, http.MethodGet, "/api/task/"+created.ID, ""); code != http.StatusOK {
					t.Fatalf("get %s: %d %s", created.ID, code, env.Error)
				}
			}
		})
	}
}

func TestListWithRange(t *testing.T) {
	srv := newTestServer(t, nil)
	for _, body := range []string{
		`{"title":"Health"}`,
		`{"title":"Spring","startDate":"2024-03-10","endDate":"2024-03-20"}`,
		`{"title":"Autumn","startDate":"2024-09-01","endDate":"2024-11-30"}`,
	} {
		if code, env := do(t, srv, http.MethodPost, "/api/visions", body); code != http.StatusCreated {
			t.Fatalf("create: %d %s", code, env.Error)
		}
	}

	_, env := do(t, srv, http.MethodGet, "/api/visions", "")
	var all []map[string]any
	_ = json.Unmarshal(env.Data, &all)
	if len(all) != 3 {
		t.Fatalf("expected 3 visions, got %d", len(all))
	}

	_, env = do(t, srv, http.MethodGet, "/api/visions?start=2024-03-01&end=2024-03-31", "")
	var march []map[string]any
	_ = json.Unmarshal(env.Data, &march)
	if len(march) != 2 {
		t.Fatalf("expected 2 visions in march, got %d: %s", len(march), env.Data)
	}

	if code, _ := do(t, srv, http.MethodGet, "/api/visions?start=2024-03-01", ""); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a half window, got %d", code)
	}
	if code, _ := do(t, srv, http.MethodGet, "/api/visions?start=2024-03-31&end=2024-03-01", ""); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an inverted window, got %d", code)
	}
}

func TestStatusMapping(t *testing.T) {
	srv := newTestServer(t, nil)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown kind", http.MethodGet, "/api/habits", "", http.StatusBadRequest},
		{"missing label", http.MethodPost, "/api/todos", `{"priority":"high"}`, http.StatusBadRequest},
		{"malformed date", http.MethodPost, "/api/todos", `{"text":"x","dueDate":"tomorrow"}`, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/api/todos", "", http.StatusBadRequest},
		{"missing entity", http.MethodGet, "/api/goals/nope", "", http.StatusNotFound},
		{"complete affirmation kind", http.MethodPost, "/api/affirmations/nope/complete", "", http.StatusNotFound},
		{"unknown view", http.MethodGet, "/api/views/decade", "", http.StatusBadRequest},
		{"bad anchor", http.MethodGet, "/api/views/week?on=soon", "", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, env := do(t, srv, tc.method, tc.path, tc.body)
			if code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, code, env.Error)
			}
			if env.Success || env.Error == "" {
				t.Fatalf("expected error envelope, got %+v", env)
			}
		})
	}
}

func TestComposeView(t *testing.T) {
	srv := newTestServer(t, nil)
	do(t, srv, http.MethodPost, "/api/words", `{"commitment":"call mom","date":"2024-03-16"}`)
	do(t, srv, http.MethodPost, "/api/words", `{"commitment":"gym","date":"2024-03-17"}`)

	code, env := do(t, srv, http.MethodGet, "/api/views/week?on=2024-03-13", "")
	if code != http.StatusOK {
		t.Fatalf("view: %d %s", code, env.Error)
	}
	var p struct {
		Window struct{ Start, End string }
		Words  []map[string]any
		Days   []map[string]any
	}
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if p.Window.Start != "2024-03-10" || p.Window.End != "2024-03-16" {
		t.Fatalf("unexpected window %+v", p.Window)
	}
	if len(p.Words) != 1 || len(p.Days) != 7 {
		t.Fatalf("expected 1 word over 7 days, got %d words %d days", len(p.Words), len(p.Days))
	}
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, nil)
	if code, env := do(t, srv, http.MethodGet, "/api/ping", ""); code != http.StatusOK || !env.Success {
		t.Fatalf("expected healthy ping, got %d %+v", code, env)
	}

	down := newTestServer(t, map[string]Pinger{"store": downPinger{}})
	code, env := do(t, down, http.MethodGet, "/api/ping", "")
	if code != http.StatusServiceUnavailable || !strings.Contains(string(env.Data), `"down"`) {
		t.Fatalf("expected 503 with down store, got %d %s", code, env.Data)
	}
}
