// Package app provides the planner operations shared by the CLI, the REST
// server, the MCP server and the interactive planner.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/store"
)

var (
	ErrBadArguments  = errors.New("bad arguments")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnavailable   = errors.New("dependency unavailable")
)

// Service wraps persistence and entity transformations so every front end
// shares the same rules.
type Service struct {
	Persistence store.Persistence
	Log         *slog.Logger
	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// New builds a Service with default clock and id source.
func New(p store.Persistence, log *slog.Logger) *Service {
	return &Service{Persistence: p, Log: log}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) log() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func (s *Service) ready() error {
	if s.Persistence == nil {
		return fmt.Errorf("%w: no persistence configured", ErrUnavailable)
	}
	return nil
}

// ErrNoWatch is returned by Watch when the backend cannot report changes.
var ErrNoWatch = errors.New("app: persistence does not support watching")

// Watch streams store change events when the backend supports it.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	w, ok := s.Persistence.(store.Watcher)
	if !ok {
		return nil, ErrNoWatch
	}
	return w.Watch(ctx)
}

// Create decodes fields as a new entity of kind, assigns its id and
// timestamps and stores it.
func (s *Service) Create(ctx context.Context, kind plan.Kind, fields []byte) (plan.Entity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := plan.DecodeNew(kind, fields)
	if err != nil {
		return nil, translate(err)
	}
	return s.Add(ctx, e)
}

// Add stores a built entity as new. A preset id is kept, which only
// in-process callers such as the seeder rely on.
func (s *Service) Add(ctx context.Context, e plan.Entity) (plan.Entity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := plan.Validate(e); err != nil {
		return nil, translate(err)
	}
	now := s.now()
	meta := e.Base()
	if meta.ID == "" {
		meta.ID = s.newID()
	} else if _, err := s.Persistence.Get(ctx, e.Kind(), meta.ID); err == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrAlreadyExists, e.Kind(), meta.ID)
	}
	meta.CreatedAt = now
	meta.UpdatedAt = now
	if err := s.Persistence.Store(ctx, e); err != nil {
		return nil, translate(err)
	}
	s.log().Debug("created", "kind", e.Kind(), "id", meta.ID)
	return e, nil
}

// Get fetches one entity.
func (s *Service) Get(ctx context.Context, kind plan.Kind, id string) (plan.Entity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadArguments)
	}
	if _, err := plan.New(kind); err != nil {
		return nil, translate(err)
	}
	e, err := s.Persistence.Get(ctx, kind, id)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// List returns every entity of kind.
func (s *Service) List(ctx context.Context, kind plan.Kind) ([]plan.Entity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	all, err := s.Persistence.List(ctx, kind)
	if err != nil {
		return nil, translate(err)
	}
	return all, nil
}

// ListRange returns the entities of kind active in w. Backends without a
// native range query are listed in full and filtered here.
func (s *Service) ListRange(ctx context.Context, kind plan.Kind, w calendar.Window) ([]plan.Entity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if w.End.Before(w.Start) {
		return nil, fmt.Errorf("%w: window ends before it starts", ErrBadArguments)
	}
	var (
		all []plan.Entity
		err error
	)
	if rl, ok := s.Persistence.(store.RangeLister); ok {
		all, err = rl.ListRange(ctx, kind, w)
	} else {
		all, err = s.Persistence.List(ctx, kind)
	}
	if err != nil {
		return nil, translate(err)
	}
	return plan.Filter(all, w), nil
}

// Update merges patch into the stored entity and bumps updatedAt.
func (s *Service) Update(ctx context.Context, kind plan.Kind, id string, patch plan.Patch) (plan.Entity, error) {
	current, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	merged, err := plan.Merge(current, patch)
	if err != nil {
		return nil, translate(err)
	}
	return s.replace(ctx, merged)
}

// UpdateFields is Update with the patch given as a JSON object.
func (s *Service) UpdateFields(ctx context.Context, kind plan.Kind, id string, fields []byte) (plan.Entity, error) {
	var patch plan.Patch
	if err := json.Unmarshal(fields, &patch); err != nil {
		return nil, fmt.Errorf("%w: patch must be a JSON object: %v", ErrBadArguments, err)
	}
	return s.Update(ctx, kind, id, patch)
}

// Complete marks goals, tasks and todos completed and words kept.
func (s *Service) Complete(ctx context.Context, kind plan.Kind, id string) (plan.Entity, error) {
	e, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	switch v := e.(type) {
	case *plan.Goal:
		v.Completed = true
	case *plan.Task:
		v.Completed = true
	case *plan.Todo:
		v.Completed = true
	case *plan.Word:
		v.Kept = true
	default:
		return nil, fmt.Errorf("%w: %s cannot be completed", ErrBadArguments, kind)
	}
	return s.replace(ctx, e)
}

func (s *Service) replace(ctx context.Context, e plan.Entity) (plan.Entity, error) {
	if err := plan.Validate(e); err != nil {
		return nil, translate(err)
	}
	e.Base().UpdatedAt = s.now()
	if err := s.Persistence.Store(ctx, e); err != nil {
		return nil, translate(err)
	}
	s.log().Debug("updated", "kind", e.Kind(), "id", e.Base().ID)
	return e, nil
}

// Delete removes an entity permanently.
func (s *Service) Delete(ctx context.Context, kind plan.Kind, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrBadArguments)
	}
	if err := s.Persistence.Delete(ctx, kind, id); err != nil {
		return translate(err)
	}
	s.log().Debug("deleted", "kind", kind, "id", id)
	return nil
}

// translate maps lower-layer errors onto the service sentinels, keeping
// the original message.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	case errors.Is(err, plan.ErrInvalid), errors.Is(err, plan.ErrUnknownKind):
		return fmt.Errorf("%w: %v", ErrBadArguments, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
