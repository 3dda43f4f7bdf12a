package app

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
)

// DayPlan holds the point-dated entities of one day of the window.
type DayPlan struct {
	Day   calendar.Day `json:"day"`
	Tasks []*plan.Task `json:"tasks"`
	Todos []*plan.Todo `json:"todos"`
	Words []*plan.Word `json:"words"`
}

// Empty reports whether nothing is planned on the day.
func (d DayPlan) Empty() bool {
	return len(d.Tasks) == 0 && len(d.Todos) == 0 && len(d.Words) == 0
}

// GoalGroup gathers the goals filed under one vision title.
type GoalGroup struct {
	Vision string       `json:"vision"`
	Goals  []*plan.Goal `json:"goals"`
}

// TaskGroup gathers the tasks of one category.
type TaskGroup struct {
	Category string       `json:"category"`
	Tasks    []*plan.Task `json:"tasks"`
}

// Plan is one calendar view composed for rendering.
type Plan struct {
	View         calendar.View       `json:"view"`
	Anchor       calendar.Day        `json:"anchor"`
	Title        string              `json:"title"`
	Window       calendar.Window     `json:"window"`
	Visions      []*plan.Vision      `json:"visions"`
	Goals        []*plan.Goal        `json:"goals"`
	Tasks        []*plan.Task        `json:"tasks"`
	Todos        []*plan.Todo        `json:"todos"`
	Words        []*plan.Word        `json:"words"`
	Affirmations []*plan.Affirmation `json:"affirmations"`

	GoalsByVision   []GoalGroup `json:"goalsByVision"`
	TasksByCategory []TaskGroup `json:"tasksByCategory"`
	// Days covers every day for day and week views and only the busy days
	// for month and year views.
	Days []DayPlan `json:"days"`
	// Failed lists the kinds whose fetch failed and are shown empty.
	Failed []plan.Kind `json:"failed,omitempty"`
}

// Total counts every entity in the plan.
func (p Plan) Total() int {
	return len(p.Visions) + len(p.Goals) + len(p.Tasks) + len(p.Todos) + len(p.Words) + len(p.Affirmations)
}

// Compose resolves the window of view around anchor and gathers every kind
// active in it. Kinds are fetched concurrently; a kind that fails to load is
// logged and shown empty rather than failing the view.
func (s *Service) Compose(ctx context.Context, view calendar.View, anchor calendar.Day) (Plan, error) {
	if err := s.ready(); err != nil {
		return Plan{}, err
	}
	if anchor.IsZero() {
		anchor = calendar.DayOf(s.now())
	}
	w := calendar.Resolve(view, anchor)

	kinds := plan.AllKinds()
	results := make([][]plan.Entity, len(kinds))
	failed := make([]bool, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			list, err := s.ListRange(gctx, kind, w)
			if err != nil {
				s.log().Error("fetch failed, showing none", "kind", kind, "window", w.String(), "error", err)
				failed[i] = true
				return nil
			}
			results[i] = list
			return nil
		})
	}
	// fetches fail open, so Wait only ever returns nil
	if err := g.Wait(); err != nil {
		return Plan{}, err
	}
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}

	p := Plan{
		View:   view,
		Anchor: anchor,
		Title:  calendar.Title(view, anchor),
		Window: w,
	}
	for i, kind := range kinds {
		if failed[i] {
			p.Failed = append(p.Failed, kind)
		}
		switch kind {
		case plan.KindVision:
			p.Visions = collect[*plan.Vision](results[i])
		case plan.KindGoal:
			p.Goals = collect[*plan.Goal](results[i])
		case plan.KindTask:
			p.Tasks = collect[*plan.Task](results[i])
		case plan.KindTodo:
			p.Todos = collect[*plan.Todo](results[i])
		case plan.KindWord:
			p.Words = collect[*plan.Word](results[i])
		case plan.KindAffirmation:
			p.Affirmations = collect[*plan.Affirmation](results[i])
		}
	}

	p.GoalsByVision = groupGoals(p.Visions, p.Goals)
	p.TasksByCategory = groupTasks(p.Tasks)
	p.Days = splitDays(view, w, p.Tasks, p.Todos, p.Words)
	return p, nil
}

func collect[T plan.Entity](list []plan.Entity) []T {
	out := make([]T, 0, len(list))
	for _, e := range list {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	plan.Sort(out)
	return out
}

// groupGoals keeps the vision order of the plan, then any other vision
// titles alphabetically, then goals without a vision.
func groupGoals(visions []*plan.Vision, goals []*plan.Goal) []GoalGroup {
	byVision := make(map[string][]*plan.Goal)
	for _, g := range goals {
		byVision[g.VisionTitle] = append(byVision[g.VisionTitle], g)
	}

	var out []GoalGroup
	seen := make(map[string]bool)
	for _, v := range visions {
		if seen[v.Title] {
			continue
		}
		seen[v.Title] = true
		out = append(out, GoalGroup{Vision: v.Title, Goals: byVision[v.Title]})
	}

	var rest []string
	for title := range byVision {
		if !seen[title] && title != "" {
			rest = append(rest, title)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return strings.ToLower(rest[i]) < strings.ToLower(rest[j]) })
	for _, title := range rest {
		out = append(out, GoalGroup{Vision: title, Goals: byVision[title]})
	}
	if loose := byVision[""]; len(loose) > 0 {
		out = append(out, GoalGroup{Goals: loose})
	}
	return out
}

func groupTasks(tasks []*plan.Task) []TaskGroup {
	byCategory := make(map[string][]*plan.Task)
	var order []string
	for _, t := range tasks {
		if _, ok := byCategory[t.Category]; !ok {
			order = append(order, t.Category)
		}
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a == "" || b == "" {
			return b == ""
		}
		return strings.ToLower(a) < strings.ToLower(b)
	})
	out := make([]TaskGroup, 0, len(order))
	for _, c := range order {
		out = append(out, TaskGroup{Category: c, Tasks: byCategory[c]})
	}
	return out
}

func splitDays(view calendar.View, w calendar.Window, tasks []*plan.Task, todos []*plan.Todo, words []*plan.Word) []DayPlan {
	byDay := make(map[calendar.Day]*DayPlan)
	get := func(d calendar.Day) *DayPlan {
		dp, ok := byDay[d]
		if !ok {
			dp = &DayPlan{Day: d}
			byDay[d] = dp
		}
		return dp
	}
	for _, t := range tasks {
		if t.Date != nil {
			get(*t.Date).Tasks = append(get(*t.Date).Tasks, t)
		}
	}
	for _, t := range todos {
		if t.DueDate != nil {
			get(*t.DueDate).Todos = append(get(*t.DueDate).Todos, t)
		}
	}
	for _, wd := range words {
		if wd.Date != nil {
			get(*wd.Date).Words = append(get(*wd.Date).Words, wd)
		}
	}

	everyDay := view == calendar.ViewDay || view == calendar.ViewWeek
	var out []DayPlan
	for _, d := range w.Days() {
		dp, ok := byDay[d]
		switch {
		case ok:
			out = append(out, *dp)
		case everyDay:
			out = append(out, DayPlan{Day: d})
		}
	}
	return out
}
