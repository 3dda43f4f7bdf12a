package store

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/planner/pkg/plan"
)

// Memory is a volatile Persistence. Entities are cloned on the way in and
// out so callers never share state with the store.
type Memory struct {
	mu       sync.RWMutex
	entities map[plan.Kind]map[string]plan.Entity
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entities: make(map[plan.Kind]map[string]plan.Entity)}
}

func (m *Memory) List(ctx context.Context, kind plan.Kind) ([]plan.Entity, error) {
	if _, err := plan.New(kind); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]plan.Entity, 0, len(m.entities[kind]))
	for _, e := range m.entities[kind] {
		out = append(out, plan.Clone(e))
	}
	plan.Sort(out)
	return out, nil
}

func (m *Memory) Get(_ context.Context, kind plan.Kind, id string) (plan.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entities[kind][id]
	if !ok {
		return nil, notFound(kind, id)
	}
	return plan.Clone(e), nil
}

func (m *Memory) Store(_ context.Context, e plan.Entity) error {
	if e.Base().ID == "" {
		return errors.New("store: entity id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.entities[e.Kind()]
	if !ok {
		bucket = make(map[string]plan.Entity)
		m.entities[e.Kind()] = bucket
	}
	bucket[e.Base().ID] = plan.Clone(e)
	return nil
}

func (m *Memory) Delete(_ context.Context, kind plan.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entities[kind][id]; !ok {
		return notFound(kind, id)
	}
	delete(m.entities[kind], id)
	return nil
}
