package glyph

import (
	"fmt"

	"tableflip.dev/planner/pkg/plan"
)

type Glyph struct {
	Key       string
	Symbol    string
	Meaning   string
	Signifier bool
}

const (
	escape     = "\x1b"
	resetCode  = 0
	strikeCode = 9
)

// Strike wraps in with the terminal strike-through sequence.
func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Key: "v", Symbol: "◆", Meaning: "vision"},
		{Key: "g", Symbol: "◎", Meaning: "goal"},
		{Key: "t", Symbol: "●", Meaning: "task"},
		{Key: "o", Symbol: "○", Meaning: "todo"},
		{Key: "w", Symbol: "❝", Meaning: "word"},
		{Key: "a", Symbol: "✷", Meaning: "affirmation"},
		{Key: "x", Symbol: "✘", Meaning: "completed"},
		{Key: "k", Symbol: "✔", Meaning: "word kept"},
		{Key: "*", Symbol: "*", Meaning: "high priority", Signifier: true},
		{Key: "-", Symbol: "·", Meaning: "low priority", Signifier: true},
		{Key: " ", Symbol: " ", Meaning: "none", Signifier: true},
	}
}

func (g Glyph) String() string {
	return g.Symbol
}

type Bullet int
type Signifier int

const (
	Vision Bullet = iota
	Goal
	Task
	Todo
	Word
	Affirmation
	Completed
	Kept
	High Signifier = iota
	Low
	None
)

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}

func (s Signifier) Glyph() Glyph {
	return DefaultGlyphs()[s]
}

func (s Signifier) String() string {
	return s.Glyph().String()
}

// BulletFor picks the bullet for e, showing completion state over kind.
func BulletFor(e plan.Entity) Bullet {
	switch v := e.(type) {
	case *plan.Vision:
		return Vision
	case *plan.Goal:
		if v.Completed {
			return Completed
		}
		return Goal
	case *plan.Task:
		if v.Completed {
			return Completed
		}
		return Task
	case *plan.Todo:
		if v.Completed {
			return Completed
		}
		return Todo
	case *plan.Word:
		if v.Kept {
			return Kept
		}
		return Word
	default:
		return Affirmation
	}
}

// SignifierFor marks todo priority; everything else has none.
func SignifierFor(e plan.Entity) Signifier {
	todo, ok := e.(*plan.Todo)
	if !ok {
		return None
	}
	switch todo.Priority {
	case plan.PriorityHigh:
		return High
	case plan.PriorityLow:
		return Low
	default:
		return None
	}
}
