package plan

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"

	"tableflip.dev/planner/pkg/calendar"
)

func day(s string) *calendar.Day {
	d := calendar.MustParseDay(s)
	return &d
}

func window(start, end string) calendar.Window {
	return calendar.Window{Start: *day(start), End: *day(end)}
}

var sampleWindows = []calendar.Window{
	window("1999-01-01", "1999-01-01"),
	window("2024-03-10", "2024-03-16"),
	window("2024-02-01", "2024-02-29"),
	window("2031-01-01", "2031-12-31"),
}

func TestRangeWithoutDatesIsAlwaysActive(t *testing.T) {
	is := is.New(t)
	for _, w := range sampleWindows {
		is.True(IsActive(&Vision{Title: "Health"}, w))
		is.True(IsActive(&Goal{Title: "Run"}, w))
	}
}

func TestPointWithoutDateIsNeverActive(t *testing.T) {
	is := is.New(t)
	for _, w := range sampleWindows {
		is.True(!IsActive(&Task{Title: "call"}, w))
		is.True(!IsActive(&Todo{Text: "milk"}, w))
		is.True(!IsActive(&Word{Commitment: "on time"}, w))
	}
}

func TestAffirmationIsAlwaysActive(t *testing.T) {
	is := is.New(t)
	for _, w := range sampleWindows {
		is.True(IsActive(&Affirmation{Text: "I am calm"}, w))
	}
}

func TestRangeOverlap(t *testing.T) {
	g := &Goal{Title: "sprint", StartDate: day("2024-03-10"), EndDate: day("2024-03-20")}
	tests := []struct {
		name string
		w    calendar.Window
		want bool
	}{
		{"overlaps end", window("2024-03-15", "2024-03-25"), true},
		{"after end", window("2024-03-21", "2024-03-25"), false},
		{"before start", window("2024-03-01", "2024-03-09"), false},
		{"touches start", window("2024-03-01", "2024-03-10"), true},
		{"touches end", window("2024-03-20", "2024-03-31"), true},
		{"inside", window("2024-03-12", "2024-03-12"), true},
		{"covers", window("2024-01-01", "2024-12-31"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(IsActive(g, tt.w), tt.want)
		})
	}
}

func TestOpenStartMatchesEveryLaterWindow(t *testing.T) {
	is := is.New(t)
	v := &Vision{Title: "Travel", StartDate: day("2024-01-01")}
	is.True(IsActive(v, window("2024-06-01", "2024-06-07")))
	is.True(IsActive(v, window("2030-06-01", "2030-06-01")))
	is.True(IsActive(v, window("2024-01-01", "2024-01-01")))
	is.True(!IsActive(v, window("2023-12-01", "2023-12-31")))
}

func TestOpenEndMatchesEveryEarlierWindow(t *testing.T) {
	is := is.New(t)
	v := &Vision{Title: "Degree", EndDate: day("2024-06-30")}
	is.True(IsActive(v, window("2001-01-01", "2001-01-07")))
	is.True(IsActive(v, window("2024-06-30", "2024-07-06")))
	is.True(!IsActive(v, window("2024-07-01", "2024-07-31")))
}

func TestPointExactDay(t *testing.T) {
	is := is.New(t)
	task := &Task{Title: "dentist", Date: day("2024-03-15"), Time: "23:30"}
	is.True(IsActive(task, calendar.Resolve(calendar.ViewDay, *day("2024-03-15"))))
	is.True(!IsActive(task, calendar.Resolve(calendar.ViewDay, *day("2024-03-16"))))
	is.True(IsActive(task, window("2024-03-15", "2024-03-20")))
	is.True(IsActive(task, window("2024-03-10", "2024-03-15")))
	is.True(!IsActive(task, window("2024-03-16", "2024-03-20")))
}

func TestFilterKeepsOrder(t *testing.T) {
	is := is.New(t)
	todos := []*Todo{
		{Text: "a", DueDate: day("2024-03-12")},
		{Text: "b"},
		{Text: "c", DueDate: day("2024-03-14")},
		{Text: "d", DueDate: day("2024-04-01")},
	}
	got := Filter(todos, window("2024-03-10", "2024-03-16"))
	is.Equal(len(got), 2)
	is.Equal(got[0].Text, "a")
	is.Equal(got[1].Text, "c")
}

func TestDecode(t *testing.T) {
	is := is.New(t)

	e, err := Decode(KindGoal, []byte(`{"title":"Run","startDate":"2024-03-01","endDate":""}`))
	is.NoErr(err)
	g := e.(*Goal)
	is.Equal(g.StartDate.String(), "2024-03-01")
	is.True(g.EndDate == nil) // blank dates are absent

	_, err = Decode(KindTask, []byte(`{"title":"x","date":"someday"}`))
	is.True(errors.Is(err, ErrInvalid))

	_, err = Decode(KindTask, []byte(`{"title":"x","colour":"red"}`))
	is.True(errors.Is(err, ErrInvalid))

	_, err = Decode(Kind("habit"), []byte(`{}`))
	is.True(errors.Is(err, ErrUnknownKind))

	e, err = Decode(KindTodo, []byte(`{"text":"milk"}`))
	is.NoErr(err)
	is.Equal(e.(*Todo).Priority, PriorityMedium)
}

func TestDecodeNewDropsStoreFields(t *testing.T) {
	is := is.New(t)

	e, err := DecodeNew(KindTask, []byte(`{"_id":"a/b","title":"x","createdAt":"2001-01-01T00:00:00Z","updatedAt":"2001-01-01T00:00:00Z"}`))
	is.NoErr(err)
	is.Equal(e.Base().ID, "")
	is.True(e.Base().CreatedAt.IsZero())
	is.True(e.Base().UpdatedAt.IsZero())
	is.Equal(e.Label(), "x")

	_, err = DecodeNew(KindTask, []byte(`["x"]`))
	is.True(errors.Is(err, ErrInvalid))

	_, err = DecodeNew(KindTask, []byte(`{"title":"x","colour":"red"}`))
	is.True(errors.Is(err, ErrInvalid))
}

func TestMerge(t *testing.T) {
	is := is.New(t)

	orig := &Task{Title: "call mom", Date: day("2024-03-15"), Category: "family"}
	orig.ID = "t1"

	patch := Patch{
		"_id":      json.RawMessage(`"hijack"`),
		"title":    json.RawMessage(`"call dad"`),
		"date":     json.RawMessage(`null`),
		"category": json.RawMessage(`"home"`),
	}
	merged, err := Merge(orig, patch)
	is.NoErr(err)

	got := merged.(*Task)
	is.Equal(got.ID, "t1")
	is.Equal(got.Title, "call dad")
	is.Equal(got.Category, "home")
	is.True(got.Date == nil)
	is.Equal(orig.Title, "call mom") // original untouched
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	is.True(errors.Is(Validate(&Vision{}), ErrInvalid))
	is.True(errors.Is(Validate(&Task{Title: "x", Time: "25:99"}), ErrInvalid))
	is.True(errors.Is(Validate(&Todo{Text: "x", Priority: "urgent"}), ErrInvalid))
	is.NoErr(Validate(&Goal{Title: "x", StartTime: "07:30"}))
}

func TestParseKind(t *testing.T) {
	is := is.New(t)
	k, err := ParseKind("Todos")
	is.NoErr(err)
	is.Equal(k, KindTodo)
	_, err = ParseKind("habit")
	is.True(errors.Is(err, ErrUnknownKind))
}

func TestSort(t *testing.T) {
	is := is.New(t)
	tasks := []*Task{
		{Title: "undated"},
		{Title: "b", Date: day("2024-03-15")},
		{Title: "a", Date: day("2024-03-15")},
		{Title: "early", Date: day("2024-03-01")},
	}
	Sort(tasks)
	is.Equal(tasks[0].Title, "early")
	is.Equal(tasks[1].Title, "a")
	is.Equal(tasks[2].Title, "b")
	is.Equal(tasks[3].Title, "undated")
}
