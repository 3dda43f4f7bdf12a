package glyph

import (
	"testing"

	"tableflip.dev/planner/pkg/plan"
)

func TestBulletFor(t *testing.T) {
	tests := map[string]struct {
		entity plan.Entity
		want   Bullet
	}{
		"vision":         {entity: &plan.Vision{Title: "Health"}, want: Vision},
		"open goal":      {entity: &plan.Goal{Title: "run"}, want: Goal},
		"completed goal": {entity: &plan.Goal{Title: "run", Completed: true}, want: Completed},
		"task":           {entity: &plan.Task{Title: "dentist"}, want: Task},
		"completed todo": {entity: &plan.Todo{Text: "milk", Completed: true}, want: Completed},
		"word":           {entity: &plan.Word{Commitment: "call"}, want: Word},
		"kept word":      {entity: &plan.Word{Commitment: "call", Kept: true}, want: Kept},
		"affirmation":    {entity: &plan.Affirmation{Text: "calm"}, want: Affirmation},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := BulletFor(tc.entity); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSignifierFor(t *testing.T) {
	if got := SignifierFor(&plan.Todo{Text: "x", Priority: plan.PriorityHigh}); got != High {
		t.Fatalf("expected high, got %q", got.Glyph().Meaning)
	}
	if got := SignifierFor(&plan.Todo{Text: "x", Priority: plan.PriorityLow}); got != Low {
		t.Fatalf("expected low, got %q", got.Glyph().Meaning)
	}
	if got := SignifierFor(&plan.Task{Title: "x"}); got != None {
		t.Fatalf("expected none, got %q", got.Glyph().Meaning)
	}
	if High.Glyph().Signifier != true || Task.Glyph().Signifier {
		t.Fatal("signifier flags out of place")
	}
}
