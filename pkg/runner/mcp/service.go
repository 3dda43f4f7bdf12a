// Package mcp provides the Model Context Protocol server integration for the
// planner.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/glyph"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/printers"
)

// Service projects app.Service results into transport-friendly values.
type Service struct {
	Planner *app.Service
}

// KindSummary describes one entity kind and how many are stored.
type KindSummary struct {
	Kind   string `json:"kind"`
	Plural string `json:"plural"`
	Count  int    `json:"count"`
}

// EntityDTO is an entity plus the derived fields an assistant needs to
// describe it without knowing the kind rules.
type EntityDTO struct {
	Kind          string          `json:"kind"`
	ID            string          `json:"id"`
	Label         string          `json:"label"`
	Dates         string          `json:"dates,omitempty"`
	BulletSymbol  string          `json:"bulletSymbol"`
	BulletMeaning string          `json:"bulletMeaning"`
	Fields        json.RawMessage `json:"fields"`
}

// NewService builds a service wrapper over the planner.
func NewService(planner *app.Service) *Service {
	return &Service{Planner: planner}
}

func (s *Service) ready() error {
	if s == nil || s.Planner == nil {
		return errors.New("planner is not configured")
	}
	return nil
}

func toDTO(e plan.Entity) (*EntityDTO, error) {
	fields, err := plan.Encode(e)
	if err != nil {
		return nil, err
	}
	b := glyph.BulletFor(e).Glyph()
	return &EntityDTO{
		Kind:          string(e.Kind()),
		ID:            e.Base().ID,
		Label:         e.Label(),
		Dates:         printers.DescribeSpan(e.Span()),
		BulletSymbol:  b.Symbol,
		BulletMeaning: b.Meaning,
		Fields:        fields,
	}, nil
}

func toDTOs(all []plan.Entity) ([]*EntityDTO, error) {
	out := make([]*EntityDTO, 0, len(all))
	for _, e := range all {
		dto, err := toDTO(e)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// Kinds summarises every kind with its stored count.
func (s *Service) Kinds(ctx context.Context) ([]KindSummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out := make([]KindSummary, 0, len(plan.AllKinds()))
	for _, k := range plan.AllKinds() {
		all, err := s.Planner.List(ctx, k)
		if err != nil {
			return nil, err
		}
		out = append(out, KindSummary{Kind: string(k), Plural: k.Plural(), Count: len(all)})
	}
	return out, nil
}

// ListEntities lists a kind; start and end, when both set, limit the list
// to entities active in that window.
func (s *Service) ListEntities(ctx context.Context, rawKind, start, end string) ([]*EntityDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	kind, err := plan.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}

	var all []plan.Entity
	switch {
	case strings.TrimSpace(start) == "" && strings.TrimSpace(end) == "":
		all, err = s.Planner.List(ctx, kind)
	default:
		w, werr := window(start, end)
		if werr != nil {
			return nil, werr
		}
		all, err = s.Planner.ListRange(ctx, kind, w)
	}
	if err != nil {
		return nil, err
	}
	return toDTOs(all)
}

func window(start, end string) (calendar.Window, error) {
	from, err := calendar.ParseDay(start)
	if err != nil || from.IsZero() {
		return calendar.Window{}, fmt.Errorf("invalid start %q, use YYYY-MM-DD", start)
	}
	to, err := calendar.ParseDay(end)
	if err != nil || to.IsZero() {
		return calendar.Window{}, fmt.Errorf("invalid end %q, use YYYY-MM-DD", end)
	}
	return calendar.Window{Start: from, End: to}, nil
}

// Entity fetches one entity.
func (s *Service) Entity(ctx context.Context, rawKind, id string) (*EntityDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	kind, err := plan.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}
	e, err := s.Planner.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return toDTO(e)
}

// Create stores a new entity from a JSON object of fields.
func (s *Service) Create(ctx context.Context, rawKind string, fields []byte) (*EntityDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	kind, err := plan.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}
	e, err := s.Planner.Create(ctx, kind, fields)
	if err != nil {
		return nil, err
	}
	return toDTO(e)
}

// Update merges a JSON object of fields into a stored entity.
func (s *Service) Update(ctx context.Context, rawKind, id string, fields []byte) (*EntityDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	kind, err := plan.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}
	e, err := s.Planner.UpdateFields(ctx, kind, id, fields)
	if err != nil {
		return nil, err
	}
	return toDTO(e)
}

// Complete marks an entity done.
func (s *Service) Complete(ctx context.Context, rawKind, id string) (*EntityDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	kind, err := plan.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}
	e, err := s.Planner.Complete(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return toDTO(e)
}

// Delete removes an entity.
func (s *Service) Delete(ctx context.Context, rawKind, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	kind, err := plan.ParseKind(rawKind)
	if err != nil {
		return err
	}
	return s.Planner.Delete(ctx, kind, id)
}

// Compose builds the named view around on, today when on is empty.
func (s *Service) Compose(ctx context.Context, rawView, on string) (app.Plan, error) {
	if err := s.ready(); err != nil {
		return app.Plan{}, err
	}
	view, err := calendar.ParseView(rawView)
	if err != nil {
		return app.Plan{}, err
	}
	anchor, err := calendar.ParseDay(on)
	if err != nil {
		return app.Plan{}, fmt.Errorf("invalid on %q, use YYYY-MM-DD", on)
	}
	return s.Planner.Compose(ctx, view, anchor)
}
