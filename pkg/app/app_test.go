package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/store"
)

// failingPersistence wraps a store and fails List for selected kinds.
type failingPersistence struct {
	store.Persistence
	fail map[plan.Kind]bool
}

func (f *failingPersistence) List(ctx context.Context, kind plan.Kind) ([]plan.Entity, error) {
	if f.fail[kind] {
		return nil, fmt.Errorf("disk on fire")
	}
	return f.Persistence.List(ctx, kind)
}

func day(s string) *calendar.Day {
	d := calendar.MustParseDay(s)
	return &d
}

func newTestService(p store.Persistence) *Service {
	svc := New(p, nil)
	clock := time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	counter := 0
	svc.NewID = func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}
	return svc
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	svc := newTestService(store.NewMemory())
	e, err := svc.Create(context.Background(), plan.KindTodo, []byte(`{"text":"buy milk","dueDate":"2024-03-15"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Base().ID != "id-1" {
		t.Fatalf("expected id-1, got %q", e.Base().ID)
	}
	if e.Base().CreatedAt.IsZero() || !e.Base().CreatedAt.Equal(e.Base().UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %+v", e.Base())
	}
	todo := e.(*plan.Todo)
	if todo.Priority != plan.PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", todo.Priority)
	}

	stored, err := svc.Get(context.Background(), plan.KindTodo, "id-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Label() != "buy milk" {
		t.Fatalf("unexpected stored todo %+v", stored)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc := newTestService(store.NewMemory())
	cases := map[string]struct {
		kind   plan.Kind
		fields string
	}{
		"unknown kind":  {kind: "habit", fields: `{"title":"x"}`},
		"missing label": {kind: plan.KindVision, fields: `{"category":"health"}`},
		"unknown field": {kind: plan.KindTask, fields: `{"title":"x","colour":"red"}`},
		"bad date":      {kind: plan.KindTask, fields: `{"title":"x","date":"someday"}`},
		"bad time":      {kind: plan.KindTask, fields: `{"title":"x","time":"9am"}`},
		"not json":      {kind: plan.KindWord, fields: `commitment`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.kind, []byte(tc.fields)); !errors.Is(err, ErrBadArguments) {
				t.Fatalf("expected ErrBadArguments, got %v", err)
			}
		})
	}
}

func TestCreateIgnoresStoreOwnedFields(t *testing.T) {
	svc := newTestService(store.NewMemory())
	ctx := context.Background()
	e, err := svc.Create(ctx, plan.KindWord, []byte(`{"_id":"a/b","commitment":"call mom","createdAt":"2001-01-01T00:00:00Z"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Base().ID != "id-1" {
		t.Fatalf("expected id-1, got %q", e.Base().ID)
	}
	if e.Base().CreatedAt.Year() != 2024 {
		t.Fatalf("expected service clock, got %v", e.Base().CreatedAt)
	}
	if _, err := svc.Get(ctx, plan.KindWord, "a/b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected nothing under the client id, got %v", err)
	}
}

func TestAddDuplicateID(t *testing.T) {
	svc := newTestService(store.NewMemory())
	ctx := context.Background()
	if _, err := svc.Add(ctx, &plan.Word{Meta: plan.Meta{ID: "w"}, Commitment: "call mom"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, &plan.Word{Meta: plan.Meta{ID: "w"}, Commitment: "again"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdateMergesAndBumpsUpdatedAt(t *testing.T) {
	svc := newTestService(store.NewMemory())
	ctx := context.Background()
	created, err := svc.Create(ctx, plan.KindGoal, []byte(`{"title":"run 10k","visionTitle":"Health","startDate":"2024-03-01"}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	createdAt := created.Base().CreatedAt

	updated, err := svc.UpdateFields(ctx, plan.KindGoal, created.Base().ID,
		[]byte(`{"endDate":"2024-06-01","startDate":null,"_id":"hijack","createdAt":"2000-01-01T00:00:00Z"}`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	goal := updated.(*plan.Goal)
	if goal.Base().ID != created.Base().ID {
		t.Fatalf("id must not change, got %q", goal.Base().ID)
	}
	if !goal.CreatedAt.Equal(createdAt) {
		t.Fatalf("createdAt must not change, got %v", goal.CreatedAt)
	}
	if !goal.UpdatedAt.After(createdAt) {
		t.Fatalf("expected updatedAt after createdAt, got %v", goal.UpdatedAt)
	}
	if goal.StartDate != nil || goal.EndDate.String() != "2024-06-01" {
		t.Fatalf("unexpected dates %v %v", goal.StartDate, goal.EndDate)
	}
	if goal.VisionTitle != "Health" || goal.Title != "run 10k" {
		t.Fatalf("untouched fields lost: %+v", goal)
	}

	if _, err := svc.UpdateFields(ctx, plan.KindGoal, "missing", []byte(`{"title":"x"}`)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateFields(ctx, plan.KindGoal, created.Base().ID, []byte(`{"title":""}`)); !errors.Is(err, ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments clearing title, got %v", err)
	}
	if _, err := svc.UpdateFields(ctx, plan.KindGoal, created.Base().ID, []byte(`[1,2]`)); !errors.Is(err, ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments for non-object patch, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	svc := newTestService(store.NewMemory())
	ctx := context.Background()
	word, _ := svc.Create(ctx, plan.KindWord, []byte(`{"commitment":"call mom","date":"2024-03-13"}`))
	task, _ := svc.Create(ctx, plan.KindTask, []byte(`{"title":"dentist"}`))
	aff, _ := svc.Create(ctx, plan.KindAffirmation, []byte(`{"text":"I am calm"}`))

	got, err := svc.Complete(ctx, plan.KindWord, word.Base().ID)
	if err != nil {
		t.Fatalf("complete word: %v", err)
	}
	if !got.(*plan.Word).Kept {
		t.Fatalf("expected word kept")
	}
	got, err = svc.Complete(ctx, plan.KindTask, task.Base().ID)
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if !got.(*plan.Task).Completed {
		t.Fatalf("expected task completed")
	}
	if _, err := svc.Complete(ctx, plan.KindAffirmation, aff.Base().ID); !errors.Is(err, ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments completing affirmation, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(store.NewMemory())
	ctx := context.Background()
	e, _ := svc.Create(ctx, plan.KindVision, []byte(`{"title":"Health"}`))
	if err := svc.Delete(ctx, plan.KindVision, e.Base().ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, plan.KindVision, e.Base().ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, plan.KindVision, ""); !errors.Is(err, ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments for empty id, got %v", err)
	}
}

func TestServiceWithoutPersistence(t *testing.T) {
	svc := New(nil, nil)
	if _, err := svc.List(context.Background(), plan.KindTask); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestListRangeFiltersInMemory(t *testing.T) {
	svc := newTestService(store.NewMemory())
	ctx := context.Background()
	for _, body := range []string{
		`{"title":"in","date":"2024-03-15"}`,
		`{"title":"out","date":"2024-04-15"}`,
		`{"title":"undated"}`,
	} {
		if _, err := svc.Create(ctx, plan.KindTask, []byte(body)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	w := calendar.Resolve(calendar.ViewWeek, *day("2024-03-13"))
	got, err := svc.ListRange(ctx, plan.KindTask, w)
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(got) != 1 || got[0].Label() != "in" {
		t.Fatalf("expected only the in-window task, got %v", got)
	}

	inverted := calendar.Window{Start: *day("2024-03-20"), End: *day("2024-03-10")}
	if _, err := svc.ListRange(ctx, plan.KindTask, inverted); !errors.Is(err, ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments for inverted window, got %v", err)
	}
}

func seedPlan(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	seeds := []plan.Entity{
		&plan.Vision{Title: "Health"},
		&plan.Vision{Title: "Career", StartDate: day("2024-01-01"), EndDate: day("2024-12-31")},
		&plan.Vision{Title: "Old", EndDate: day("2023-01-01")},
		&plan.Goal{Title: "run 10k", VisionTitle: "Health", StartDate: day("2024-03-01")},
		&plan.Goal{Title: "ship it", VisionTitle: "Career"},
		&plan.Goal{Title: "read more"},
		&plan.Task{Title: "dentist", Category: "health", Date: day("2024-03-14")},
		&plan.Task{Title: "standup", Category: "work", Date: day("2024-03-12")},
		&plan.Task{Title: "taxes", Date: day("2024-04-15")},
		&plan.Todo{Text: "buy milk", DueDate: day("2024-03-12")},
		&plan.Todo{Text: "someday"},
		&plan.Word{Commitment: "call mom", Date: day("2024-03-16")},
		&plan.Affirmation{Text: "I am calm"},
	}
	for _, e := range seeds {
		if _, err := svc.Add(ctx, e); err != nil {
			t.Fatalf("add %s: %v", e.Label(), err)
		}
	}
}

func TestComposeWeek(t *testing.T) {
	svc := newTestService(store.NewMemory())
	seedPlan(t, svc)

	p, err := svc.Compose(context.Background(), calendar.ViewWeek, *day("2024-03-13"))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if p.Window.Start.String() != "2024-03-10" || p.Window.End.String() != "2024-03-16" {
		t.Fatalf("unexpected window %s", p.Window)
	}
	if len(p.Visions) != 2 {
		t.Fatalf("expected 2 visions, got %d", len(p.Visions))
	}
	if len(p.Goals) != 3 {
		t.Fatalf("expected 3 goals, got %d", len(p.Goals))
	}
	if len(p.Tasks) != 2 || p.Tasks[0].Title != "standup" {
		t.Fatalf("expected standup then dentist, got %v", p.Tasks)
	}
	if len(p.Todos) != 1 || len(p.Words) != 1 || len(p.Affirmations) != 1 {
		t.Fatalf("unexpected counts todos=%d words=%d affirmations=%d", len(p.Todos), len(p.Words), len(p.Affirmations))
	}
	if len(p.Days) != 7 {
		t.Fatalf("week view should list 7 days, got %d", len(p.Days))
	}
	tuesday := p.Days[2]
	if tuesday.Day.String() != "2024-03-12" || len(tuesday.Tasks) != 1 || len(tuesday.Todos) != 1 {
		t.Fatalf("unexpected tuesday %+v", tuesday)
	}
	if len(p.GoalsByVision) != 3 || p.GoalsByVision[2].Vision != "" {
		t.Fatalf("expected loose goals last, got %+v", p.GoalsByVision)
	}
	if len(p.TasksByCategory) != 2 || p.TasksByCategory[0].Category != "health" {
		t.Fatalf("unexpected task groups %+v", p.TasksByCategory)
	}
	if p.Total() != 10 {
		t.Fatalf("expected 10 entities, got %d", p.Total())
	}
	if len(p.Failed) != 0 {
		t.Fatalf("expected no failures, got %v", p.Failed)
	}
}

func TestComposeMonthListsBusyDaysOnly(t *testing.T) {
	svc := newTestService(store.NewMemory())
	seedPlan(t, svc)

	p, err := svc.Compose(context.Background(), calendar.ViewMonth, *day("2024-03-13"))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(p.Days) != 3 {
		t.Fatalf("expected 3 busy days, got %d", len(p.Days))
	}
	for _, d := range p.Days {
		if d.Empty() {
			t.Fatalf("month view should skip empty day %s", d.Day)
		}
	}
}

func TestComposeFailsOpen(t *testing.T) {
	mem := store.NewMemory()
	seeder := newTestService(mem)
	seedPlan(t, seeder)

	svc := newTestService(&failingPersistence{Persistence: mem, fail: map[plan.Kind]bool{plan.KindGoal: true}})
	p, err := svc.Compose(context.Background(), calendar.ViewWeek, *day("2024-03-13"))
	if err != nil {
		t.Fatalf("compose should not fail on a single kind: %v", err)
	}
	if len(p.Goals) != 0 {
		t.Fatalf("expected no goals, got %d", len(p.Goals))
	}
	if len(p.Failed) != 1 || p.Failed[0] != plan.KindGoal {
		t.Fatalf("expected goal failure recorded, got %v", p.Failed)
	}
	if len(p.Tasks) != 2 {
		t.Fatalf("other kinds must still load, got %d tasks", len(p.Tasks))
	}
}

func TestComposeDefaultsToToday(t *testing.T) {
	svc := newTestService(store.NewMemory())
	p, err := svc.Compose(context.Background(), calendar.ViewDay, calendar.Day{})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if p.Anchor.String() != "2024-03-13" {
		t.Fatalf("expected anchor from clock, got %s", p.Anchor)
	}
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		in   error
		want error
	}{
		{fmt.Errorf("wrap: %w", store.ErrNotFound), ErrNotFound},
		{store.ErrAlreadyExists, ErrAlreadyExists},
		{plan.ErrInvalid, ErrBadArguments},
		{plan.ErrUnknownKind, ErrBadArguments},
		{context.DeadlineExceeded, context.DeadlineExceeded},
		{errors.New("connection refused"), ErrUnavailable},
	}
	for _, tc := range cases {
		if got := translate(tc.in); !errors.Is(got, tc.want) {
			t.Errorf("translate(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if translate(nil) != nil {
		t.Fatal("translate(nil) should be nil")
	}
}
