package remove

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/store"
)

func seeded(t *testing.T) (*app.Service, string) {
	t.Helper()
	svc := app.New(store.NewMemory(), nil)
	e, err := svc.Create(context.Background(), plan.KindTodo, []byte(`{"text":"buy milk"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return svc, e.Base().ID
}

func TestRemoveDeclined(t *testing.T) {
	svc, id := seeded(t)
	asked := ""
	r := &Remove{Kind: plan.KindTodo, ID: id, Service: svc, Confirm: func(q string) (bool, error) {
		asked = q
		return false, nil
	}}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if asked != `Delete todo "buy milk"` {
		t.Fatalf("unexpected question %q", asked)
	}
	if _, err := svc.Get(context.Background(), plan.KindTodo, id); err != nil {
		t.Fatalf("declined removal must keep the todo: %v", err)
	}
}

func TestRemoveConfirmed(t *testing.T) {
	svc, id := seeded(t)
	r := &Remove{Kind: plan.KindTodo, ID: id, Service: svc, Confirm: func(string) (bool, error) { return true, nil }}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if _, err := svc.Get(context.Background(), plan.KindTodo, id); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected todo gone, got %v", err)
	}
}

func TestRemoveYesSkipsPrompt(t *testing.T) {
	svc, id := seeded(t)
	r := &Remove{Kind: plan.KindTodo, ID: id, Yes: true, Service: svc, Confirm: func(string) (bool, error) {
		t.Fatal("prompted despite --yes")
		return false, nil
	}}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestRemoveMissing(t *testing.T) {
	svc, _ := seeded(t)
	r := &Remove{Kind: plan.KindTodo, ID: "nope", Yes: true, Service: svc}
	if err := r.Do(context.Background()); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
