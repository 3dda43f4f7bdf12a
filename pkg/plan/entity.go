// Package plan defines the planner entities (visions, goals, tasks, todos,
// words and affirmations) and decides which of them are active in a window.
package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/calendar"
)

// Kind names an entity kind.
type Kind string

const (
	KindVision      Kind = "vision"
	KindGoal        Kind = "goal"
	KindTask        Kind = "task"
	KindTodo        Kind = "todo"
	KindWord        Kind = "word"
	KindAffirmation Kind = "affirmation"
)

var (
	// ErrUnknownKind is returned for kinds outside AllKinds.
	ErrUnknownKind = errors.New("plan: unknown kind")
	// ErrInvalid wraps every field validation failure.
	ErrInvalid = errors.New("plan: invalid entity")
)

// AllKinds returns every kind in display order.
func AllKinds() []Kind {
	return []Kind{KindVision, KindGoal, KindTask, KindTodo, KindWord, KindAffirmation}
}

// ParseKind resolves a kind name. Plurals are accepted.
func ParseKind(raw string) (Kind, error) {
	k := strings.ToLower(strings.TrimSpace(raw))
	k = strings.TrimSuffix(k, "s")
	for _, candidate := range AllKinds() {
		if string(candidate) == k {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, raw)
}

// Plural is the collection name of the kind.
func (k Kind) Plural() string {
	return string(k) + "s"
}

// Meta is the bookkeeping every entity carries.
type Meta struct {
	ID        string    `json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Base exposes the embedded Meta for mutation.
func (m *Meta) Base() *Meta { return m }

// Entity is implemented by the kind structs of this package only.
type Entity interface {
	Kind() Kind
	Base() *Meta
	Span() Span
	// Label is the human headline of the entity.
	Label() string

	tidy()
}

// Priority of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Vision is a long-term life-area aspiration, optionally time-bounded.
type Vision struct {
	Meta
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	StartDate   *calendar.Day `json:"startDate,omitempty"`
	EndDate     *calendar.Day `json:"endDate,omitempty"`
}

func (v *Vision) Kind() Kind    { return KindVision }
func (v *Vision) Span() Span    { return RangeSpan(v.StartDate, v.EndDate) }
func (v *Vision) Label() string { return v.Title }
func (v *Vision) tidy() {
	v.StartDate, v.EndDate = present(v.StartDate), present(v.EndDate)
}

// Goal is a concrete objective, usually under a vision.
type Goal struct {
	Meta
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	VisionTitle string        `json:"visionTitle,omitempty"`
	StartDate   *calendar.Day `json:"startDate,omitempty"`
	EndDate     *calendar.Day `json:"endDate,omitempty"`
	StartTime   string        `json:"startTime,omitempty"`
	EndTime     string        `json:"endTime,omitempty"`
	Completed   bool          `json:"completed"`
}

func (g *Goal) Kind() Kind    { return KindGoal }
func (g *Goal) Span() Span    { return RangeSpan(g.StartDate, g.EndDate) }
func (g *Goal) Label() string { return g.Title }
func (g *Goal) tidy() {
	g.StartDate, g.EndDate = present(g.StartDate), present(g.EndDate)
}

// Task is a single-day scheduled action.
type Task struct {
	Meta
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
	VisionTitle string        `json:"visionTitle,omitempty"`
	Date        *calendar.Day `json:"date,omitempty"`
	Time        string        `json:"time,omitempty"`
	Repeat      string        `json:"repeat,omitempty"`
	Reminder    string        `json:"reminder,omitempty"`
	Completed   bool          `json:"completed"`
}

func (t *Task) Kind() Kind    { return KindTask }
func (t *Task) Span() Span    { return PointSpan(t.Date) }
func (t *Task) Label() string { return t.Title }
func (t *Task) tidy()         { t.Date = present(t.Date) }

// Todo is a checklist item due on a single day.
type Todo struct {
	Meta
	Text      string        `json:"text"`
	Category  string        `json:"category,omitempty"`
	Priority  Priority      `json:"priority,omitempty"`
	DueDate   *calendar.Day `json:"dueDate,omitempty"`
	Completed bool          `json:"completed"`
}

func (t *Todo) Kind() Kind    { return KindTodo }
func (t *Todo) Span() Span    { return PointSpan(t.DueDate) }
func (t *Todo) Label() string { return t.Text }
func (t *Todo) tidy() {
	t.DueDate = present(t.DueDate)
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

// Word is an integrity commitment for a single day.
type Word struct {
	Meta
	Commitment string        `json:"commitment"`
	Date       *calendar.Day `json:"date,omitempty"`
	Timeframe  string        `json:"timeframe,omitempty"`
	Kept       bool          `json:"kept"`
}

func (w *Word) Kind() Kind    { return KindWord }
func (w *Word) Span() Span    { return PointSpan(w.Date) }
func (w *Word) Label() string { return w.Commitment }
func (w *Word) tidy()         { w.Date = present(w.Date) }

// Affirmation is an undated statement shown with every view.
type Affirmation struct {
	Meta
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

func (a *Affirmation) Kind() Kind    { return KindAffirmation }
func (a *Affirmation) Span() Span    { return Span{Type: SpanAlways} }
func (a *Affirmation) Label() string { return a.Text }
func (a *Affirmation) tidy()         {}

// New returns an empty entity of kind k.
func New(k Kind) (Entity, error) {
	switch k {
	case KindVision:
		return &Vision{}, nil
	case KindGoal:
		return &Goal{}, nil
	case KindTask:
		return &Task{}, nil
	case KindTodo:
		return &Todo{}, nil
	case KindWord:
		return &Word{}, nil
	case KindAffirmation:
		return &Affirmation{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, k)
	}
}

// Validate checks the fields a stored entity must have.
func Validate(e Entity) error {
	if strings.TrimSpace(e.Label()) == "" {
		return fmt.Errorf("%w: %s requires a %s", ErrInvalid, e.Kind(), LabelField(e.Kind()))
	}
	switch v := e.(type) {
	case *Goal:
		if err := validClock("startTime", v.StartTime); err != nil {
			return err
		}
		if err := validClock("endTime", v.EndTime); err != nil {
			return err
		}
	case *Task:
		if err := validClock("time", v.Time); err != nil {
			return err
		}
	case *Todo:
		switch v.Priority {
		case "", PriorityLow, PriorityMedium, PriorityHigh:
		default:
			return fmt.Errorf("%w: unknown priority %q", ErrInvalid, v.Priority)
		}
	}
	return nil
}

func validClock(field, v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse("15:04", v); err != nil {
		return fmt.Errorf("%w: %s must look like 15:04, got %q", ErrInvalid, field, v)
	}
	return nil
}

// LabelField names the JSON field holding the label of kind k.
func LabelField(k Kind) string {
	switch k {
	case KindTodo, KindAffirmation:
		return "text"
	case KindWord:
		return "commitment"
	default:
		return "title"
	}
}
