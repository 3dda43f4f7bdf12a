package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/plan"
)

func TestPersistenceWatchEmitsKindChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig(BackendDiskv, base, ""))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	w, ok := p.(Watcher)
	if !ok {
		t.Fatalf("diskv persistence should implement Watcher")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := w.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	todo := &plan.Todo{Text: "buy milk"}
	todo.ID = "todo-1"
	if err := p.Store(ctx, todo); err != nil {
		t.Fatalf("store todo: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventKindChanged {
				if evt.Kind != plan.KindTodo {
					t.Fatalf("expected kind todo, got %q", evt.Kind)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for kind change event")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	throttle := newEventThrottle(20 * time.Millisecond)
	defer throttle.Stop()

	got := make(chan Event, 16)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		throttle.Enqueue(Event{Type: EventKindChanged, Kind: plan.KindTask}, send)
	}

	select {
	case ev := <-got:
		if ev.Kind != plan.KindTask {
			t.Fatalf("expected task event, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for flush")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single coalesced event, got extra %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
