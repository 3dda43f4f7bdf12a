// Command seed fills the configured store with a sample week so the views
// have something to show.
package main

import (
	"context"
	"fmt"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/store"
)

func sample(today calendar.Day) []plan.Entity {
	day := func(n int) *calendar.Day {
		d := today.AddDays(n)
		return &d
	}
	sunday := today.AddDays(-int(today.Weekday()))
	return []plan.Entity{
		&plan.Vision{Title: "Health", Category: "health", StartDate: day(-90), EndDate: day(275)},
		&plan.Vision{Title: "Craft", Category: "career"},
		&plan.Goal{Title: "Run a 10k", VisionTitle: "Health", StartDate: day(-14), EndDate: day(60)},
		&plan.Goal{Title: "Ship the planner", VisionTitle: "Craft", StartDate: &sunday},
		&plan.Goal{Title: "Read twelve books", EndDate: day(200)},
		&plan.Task{Title: "Standup", Category: "work", Date: day(0), Time: "09:00"},
		&plan.Task{Title: "Long run", Category: "health", VisionTitle: "Health", Date: day(2), Time: "07:30"},
		&plan.Todo{Text: "Buy running shoes", Priority: plan.PriorityHigh, DueDate: day(1)},
		&plan.Todo{Text: "Renew library card", Priority: plan.PriorityLow, DueDate: day(3)},
		&plan.Word{Commitment: "Call mom", Date: day(0), Timeframe: "evening"},
		&plan.Affirmation{Text: "Small steps every day."},
	}
}

func main() {
	p, err := store.Load(nil)
	if err != nil {
		panic(err)
	}
	svc := &app.Service{Persistence: p}
	ctx := context.Background()

	for _, e := range sample(calendar.Today()) {
		if _, err := svc.Add(ctx, e); err != nil {
			panic(err)
		}
	}

	week, err := svc.Compose(ctx, calendar.ViewWeek, calendar.Today())
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s: %d planned\n", week.Title, week.Total())
}
