// Package store persists planner entities. Every backend satisfies
// Persistence; range queries and change watching are optional capabilities.
package store

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
)

var (
	// ErrNotFound is returned when no entity has the requested kind and id.
	ErrNotFound = errors.New("store: not found")
	// ErrAlreadyExists is returned when an insert collides with a stored id.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Persistence defines the persistence contract for planner entities.
type Persistence interface {
	List(ctx context.Context, kind plan.Kind) ([]plan.Entity, error)
	Get(ctx context.Context, kind plan.Kind, id string) (plan.Entity, error)
	// Store inserts or replaces e. The id must already be assigned.
	Store(ctx context.Context, e plan.Entity) error
	Delete(ctx context.Context, kind plan.Kind, id string) error
}

// RangeLister is implemented by backends that can answer a window query
// without loading every entity of the kind.
type RangeLister interface {
	ListRange(ctx context.Context, kind plan.Kind, w calendar.Window) ([]plan.Entity, error)
}

// Watcher is implemented by backends that can report external changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Closer is implemented by backends holding connections.
type Closer interface {
	Close() error
}

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventKindChanged indicates entities of Event.Kind were added, edited
	// or removed.
	EventKindChanged EventType = iota

	// EventInvalidated signals a change that could not be attributed to a
	// kind; callers should refresh everything.
	EventInvalidated
)

// Event is emitted by Watcher.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Kind plan.Kind
}

// Load opens the backend named by cfg. A nil cfg reads LoadConfig.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Backend() {
	case BackendDiskv:
		return NewDiskv(cfg.BasePath())
	case BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		dsn := cfg.DSN()
		if dsn == "" {
			dsn = cfg.BasePath()
		}
		return openSQL("sqlite", dsn)
	case BackendPostgres:
		return openSQL("pgx", cfg.DSN())
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func openSQL(driver, dsn string) (Persistence, error) {
	s, err := OpenSQL(context.Background(), driver, dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func notFound(kind plan.Kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}
