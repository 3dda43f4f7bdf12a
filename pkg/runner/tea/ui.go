package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/glyph"
	"tableflip.dev/planner/pkg/plan"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/runner/tea/internal/help"
	"tableflip.dev/planner/pkg/runner/tea/internal/monthgrid"
	"tableflip.dev/planner/pkg/runner/tea/internal/theme"
	"tableflip.dev/planner/pkg/store"
)

// Composer builds the plan shown for a view.
type Composer interface {
	Compose(ctx context.Context, view calendar.View, anchor calendar.Day) (app.Plan, error)
}

// watcher is implemented by composers that can report store changes.
type watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

const helpText = "d/w/m/y view · h/l previous/next · t today · r reload · ? help · q quit"

// Model contains UI state
type Model struct {
	svc Composer
	ctx context.Context

	view   calendar.View
	anchor calendar.Day

	// gen counts loads; a result from an older load is dropped.
	gen     int
	loading bool
	plan    *app.Plan
	loadErr error
	status  string

	// showHelp swaps the plan for the key help.
	showHelp bool

	vp    viewport.Model
	theme theme.Theme

	termWidth  int
	termHeight int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New creates a new UI model showing today's week.
func New(svc Composer) Model {
	return Model{
		svc:     svc,
		ctx:     context.Background(),
		view:    calendar.ViewWeek,
		anchor:  calendar.Today(),
		gen:     1,
		loading: true,
		status:  "Loading…",
		vp: viewport.New(
			viewport.WithWidth(80),
			viewport.WithHeight(20),
		),
		theme: theme.Default(),
	}
}

// messages
type planLoadedMsg struct {
	gen  int
	plan app.Plan
	err  error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Init loads the first plan and starts watching the store.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), startWatchCmd(m.ctx, m.svc))
}

// fetch composes the current view for the current generation.
func (m *Model) fetch() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, ctx := m.svc, m.ctx
	gen, view, anchor := m.gen, m.view, m.anchor
	return func() tea.Msg {
		p, err := svc.Compose(ctx, view, anchor)
		return planLoadedMsg{gen: gen, plan: p, err: err}
	}
}

// reload starts a new generation so any load still in flight is ignored.
func (m *Model) reload() tea.Cmd {
	m.gen++
	m.loading = true
	m.status = "Loading…"
	return m.fetch()
}

func (m *Model) navigate(view calendar.View, anchor calendar.Day) tea.Cmd {
	m.view = view
	m.anchor = anchor
	return m.reload()
}

func startWatchCmd(parent context.Context, svc Composer) tea.Cmd {
	w, ok := svc.(watcher)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := w.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
		m.render()
	case planLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// the old plan belongs to another period
			m.plan = nil
			m.loadErr = msg.err
			m.status = "ERR: " + msg.err.Error()
			return m, nil
		}
		p := msg.plan
		m.plan = &p
		m.loadErr = nil
		m.status = fmt.Sprintf("%d planned", p.Total())
		if !m.showHelp {
			m.render()
			m.vp.SetYOffset(0)
		}
	case watchStartedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, app.ErrNoWatch) {
				m.status = "watch: " + msg.err.Error()
			}
			return m, nil
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		cmds = append(cmds, m.reload(), m.waitForWatch())
	case watchStoppedMsg:
		m.watchCh = nil
	case tea.KeyPressMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		cmds = append(cmds, cmd)
	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.stopWatch()
		return tea.Quit, true
	case "d":
		return m.navigate(calendar.ViewDay, m.anchor), true
	case "w":
		return m.navigate(calendar.ViewWeek, m.anchor), true
	case "m":
		return m.navigate(calendar.ViewMonth, m.anchor), true
	case "y":
		return m.navigate(calendar.ViewYear, m.anchor), true
	case "h", "left":
		return m.navigate(m.view, calendar.Shift(m.view, m.anchor, -1)), true
	case "l", "right":
		return m.navigate(m.view, calendar.Shift(m.view, m.anchor, 1)), true
	case "t":
		return m.navigate(m.view, calendar.Today()), true
	case "r":
		return m.reload(), true
	case "?":
		m.showHelp = !m.showHelp
		m.render()
		m.vp.SetYOffset(0)
		return nil, true
	}
	return nil, false
}

func (m *Model) applySizes() {
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return
	}
	// header, tabs and footer take one line each plus a spacer
	m.vp.SetWidth(m.termWidth)
	m.vp.SetHeight(max(m.termHeight-4, 1))
}

func (m *Model) render() {
	if m.showHelp {
		content, err := help.Render(m.termWidth)
		if err != nil {
			content = "help unavailable: " + err.Error()
		}
		m.vp.SetContent(content)
		return
	}
	if m.plan == nil {
		return
	}
	m.vp.SetContent(renderPlan(*m.plan, m.termWidth, m.theme))
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	title := calendar.Title(m.view, m.anchor)
	b.WriteString(m.theme.Header.Title.Render(title))
	b.WriteString("\n")

	tabs := make([]string, 0, len(calendar.AllViews()))
	for _, v := range calendar.AllViews() {
		style := m.theme.Header.Tab
		if v == m.view {
			style = m.theme.Header.SelectedTab
		}
		tabs = append(tabs, style.Render(string(v)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	switch {
	case m.plan == nil && !m.showHelp && m.loadErr != nil:
		b.WriteString(m.theme.Body.Warning.Render("could not load " + calendar.Title(m.view, m.anchor) + ": " + m.loadErr.Error()))
	case m.plan == nil && !m.showHelp:
		b.WriteString(m.theme.Body.Muted.Render("nothing loaded yet"))
	default:
		b.WriteString(m.vp.View())
	}
	b.WriteString("\n")

	b.WriteString(m.theme.Footer.Status.Render(m.status))
	b.WriteString("  ")
	b.WriteString(m.theme.Footer.Help.Render(helpText))
	return b.String()
}

// renderPlan lays out a plan as plain lines for the viewport.
func renderPlan(p app.Plan, width int, th theme.Theme) string {
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}
	entity := func(e plan.Entity) {
		text := fmt.Sprintf("%s %s %s", glyph.SignifierFor(e), glyph.BulletFor(e), e.Label())
		if dates := printers.DescribeSpan(e.Span()); dates != "" && e.Span().Type == plan.SpanRange {
			text += "  " + th.Body.Muted.Render(dates)
		}
		line(wordwrap.String(text, width))
	}

	for _, kind := range p.Failed {
		line(th.Body.Warning.Render("could not load " + kind.Plural()))
	}
	for _, a := range p.Affirmations {
		line(th.Body.Affirmation.Render("“" + a.Text + "”"))
	}
	if len(p.Affirmations) > 0 {
		line("")
	}

	line(th.Body.Section.Render("Visions"))
	if len(p.Visions) == 0 {
		line(th.Body.Muted.Render("  none"))
	}
	for _, v := range p.Visions {
		entity(v)
	}
	line("")

	line(th.Body.Section.Render("Goals"))
	if len(p.GoalsByVision) == 0 {
		line(th.Body.Muted.Render("  none"))
	}
	for _, g := range p.GoalsByVision {
		name := g.Vision
		if name == "" {
			name = "No vision"
		}
		line(th.Body.Group.Render(name))
		for _, goal := range g.Goals {
			entity(goal)
		}
	}
	line("")

	today := calendar.Today()
	if p.View == calendar.ViewMonth || p.View == calendar.ViewYear {
		line(renderGrids(p, today, th))
	}

	line(th.Body.Section.Render("Days"))
	if len(p.Days) == 0 {
		line(th.Body.Muted.Render("  nothing dated in this period"))
	}
	for _, d := range p.Days {
		style := th.Body.Day
		if d.Day.Equal(today) {
			style = th.Body.Today
		}
		line(style.Render(d.Day.Format("Mon Jan 2")))
		if d.Empty() {
			line(th.Body.Muted.Render("  none"))
			continue
		}
		for _, t := range d.Tasks {
			entity(t)
		}
		for _, t := range d.Todos {
			entity(t)
		}
		for _, w := range d.Words {
			entity(w)
		}
	}
	return b.String()
}

// renderGrids draws one month grid per month of the window, three abreast.
func renderGrids(p app.Plan, today calendar.Day, th theme.Theme) string {
	busy := make(map[calendar.Day]bool, len(p.Days))
	for _, d := range p.Days {
		if !d.Empty() {
			busy[d.Day] = true
		}
	}
	opts := monthgrid.Options{
		HeaderStyle: th.Body.Group,
		BusyStyle:   th.Body.Busy,
		TodayStyle:  th.Body.Today,
		ShowHeader:  true,
	}

	var rows, row []string
	for m := p.Window.Start; !m.After(p.Window.End); m = m.AddMonths(1) {
		row = append(row, lipgloss.NewStyle().MarginRight(2).Render(monthgrid.Render(m, busy, today, opts)))
		if len(row) == 3 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}
