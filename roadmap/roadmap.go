// Package roadmap draws project roadmaps: groups of dated tasks with
// milestones laid out on a weekly, monthly, quarterly, half-yearly or yearly
// date axis, saved as PNG, JPEG, SVG or HTML.
//
// A roadmap is declared with builder calls and then drawn once:
//
//	r := roadmap.New(2000, 1000, roadmap.WithTheme("BLUEMOUNTAIN"))
//	r.SetTitle("Roadmap")
//	r.SetTimeline(roadmap.Weekly, "2024-08-26", 15)
//	g := r.AddGroup("Documentation", "#FFC000", "black")
//	g.AddTask("Problem Research", "2024-08-26", "2024-09-05")
//	if err := r.Draw(); err != nil { ... }
//	if err := r.Save("roadmap.png"); err != nil { ... }
//
// Builder calls never fail on their own. Bad dates, unknown colours and
// calls made after Draw are collected and returned, joined, by Draw.
package roadmap

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/buffos/go-roadmap/internal/scene"
)

// Option configures a Roadmap at construction.
type Option func(*Roadmap)

// WithTheme selects a built-in colour theme by name.
func WithTheme(name string) Option {
	return func(r *Roadmap) {
		t, err := LookupTheme(name)
		if err != nil {
			r.record(err)
			return
		}
		r.theme = t
	}
}

// WithMarker toggles the dashed "today" line. It is on by default.
func WithMarker(show bool) Option {
	return func(r *Roadmap) { r.showMarker = show }
}

// WithClock sets the source of "today" for the marker.
func WithClock(now func() time.Time) Option {
	return func(r *Roadmap) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(r *Roadmap) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEngine selects how PNG and JPEG output is rasterised.
func WithEngine(e Engine) Option {
	return func(r *Roadmap) {
		if !e.valid() {
			r.record(fmt.Errorf("%w %q", ErrUnsupportedEngine, e))
			return
		}
		r.engine = e
	}
}

// WithChromeTimeout bounds the chrome engine.
func WithChromeTimeout(d time.Duration) Option {
	return func(r *Roadmap) { r.chromeTimeout = d }
}

// Roadmap is the top-level container. It is not safe for concurrent use.
type Roadmap struct {
	width, height int
	theme         Theme

	title       string
	subtitle    string
	footer      string
	description string

	timeline       *Timeline
	timelineFailed bool
	groups         []*Group

	showMarker    bool
	now           func() time.Time
	logger        *log.Logger
	engine        Engine
	chromeTimeout time.Duration

	errs  []error
	scene *scene.Scene
}

// New creates a roadmap with a canvas of width x height pixels. A height of 0
// sizes the canvas to its content; a height that is too small grows.
func New(width, height int, opts ...Option) *Roadmap {
	r := &Roadmap{
		width:      width,
		height:     height,
		theme:      themes["DEFAULT"],
		showMarker: true,
		now:        time.Now,
		logger:     log.New(io.Discard),
		engine:     EngineRaster,
	}
	if width <= 0 || height < 0 {
		r.record(fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, width, height))
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Roadmap) record(err error) {
	r.errs = append(r.errs, err)
}

// mutable records ErrFrozen and reports false once the roadmap is drawn.
func (r *Roadmap) mutable(what string) bool {
	if r.scene != nil {
		r.record(fmt.Errorf("%s: %w", what, ErrFrozen))
		return false
	}
	return true
}

// SetTitle sets the heading drawn at the top of the canvas.
func (r *Roadmap) SetTitle(text string) {
	if r.mutable("set title") {
		r.title = text
	}
}

// SetSubtitle sets the smaller line drawn under the title.
func (r *Roadmap) SetSubtitle(text string) {
	if r.mutable("set subtitle") {
		r.subtitle = text
	}
}

// SetFooter sets the text drawn along the bottom edge.
func (r *Roadmap) SetFooter(text string) {
	if r.mutable("set footer") {
		r.footer = text
	}
}

// SetDescription sets Markdown text shown above the roadmap in HTML output.
func (r *Roadmap) SetDescription(markdown string) {
	if r.mutable("set description") {
		r.description = markdown
	}
}

// SetTimeline defines the date axis: periods of the given mode starting at
// start (YYYY-MM-DD, aligned to the period boundary).
func (r *Roadmap) SetTimeline(mode TimelineMode, start string, periods int) {
	if !r.mutable("set timeline") {
		return
	}
	t, err := ParseDate(start)
	if err != nil {
		r.timelineFailed = true
		r.record(fmt.Errorf("timeline: %w", err))
		return
	}
	tl, err := NewTimeline(mode, t, periods)
	if err != nil {
		r.timelineFailed = true
		r.record(fmt.Errorf("timeline: %w", err))
		return
	}
	r.timeline = tl
}

// AddGroup appends a group. Empty colours fall back to the theme.
func (r *Roadmap) AddGroup(name, fillColour, fontColour string) *Group {
	g := &Group{roadmap: r, name: name, fill: fillColour, font: fontColour}
	if !r.mutable(fmt.Sprintf("add group %q", name)) {
		return g
	}
	r.checkName("group", name)
	r.checkColour(fmt.Sprintf("group %q", name), fillColour, fontColour)
	r.groups = append(r.groups, g)
	return g
}

func (r *Roadmap) checkName(kind, name string) {
	if strings.TrimSpace(name) == "" {
		r.record(fmt.Errorf("%s: %w", kind, ErrEmptyName))
	}
}

func (r *Roadmap) checkColour(owner string, colours ...string) {
	for _, c := range colours {
		if c != "" && !scene.ValidColour(c) {
			r.record(fmt.Errorf("%s: %w %q", owner, ErrInvalidColour, c))
		}
	}
}

// Title returns the heading text.
func (r *Roadmap) Title() string { return r.title }

// Theme returns the palette in use.
func (r *Roadmap) Theme() Theme { return r.theme }

// Timeline returns the date axis, or nil before a successful SetTimeline.
func (r *Roadmap) Timeline() *Timeline { return r.timeline }

// Groups returns the groups in insertion order.
func (r *Roadmap) Groups() []*Group { return r.groups }

// Scene returns the drawn display list, or nil before Draw.
func (r *Roadmap) Scene() *scene.Scene { return r.scene }

// Size returns the requested canvas size. The drawn height may be larger.
func (r *Roadmap) Size() (int, int) { return r.width, r.height }

// Logger returns the roadmap's logger.
func (r *Roadmap) Logger() *log.Logger { return r.logger }

// Description returns the Markdown description.
func (r *Roadmap) Description() string { return r.description }

// Group is a named band of tasks.
type Group struct {
	roadmap *Roadmap
	name    string
	fill    string
	font    string
	tasks   []*Task
}

// AddTask appends a task running from start to end inclusive (YYYY-MM-DD).
func (g *Group) AddTask(name, start, end string) *Task {
	t := g.roadmap.newTask(name, start, end)
	if g.roadmap.mutable(fmt.Sprintf("add task %q", name)) {
		g.tasks = append(g.tasks, t)
	}
	return t
}

// Name returns the group label.
func (g *Group) Name() string { return g.name }

// FillColour returns the explicit band colour, or "" for the theme's.
func (g *Group) FillColour() string { return g.fill }

// FontColour returns the explicit label colour, or "" for the default.
func (g *Group) FontColour() string { return g.font }

// Tasks returns the group's rows in insertion order.
func (g *Group) Tasks() []*Task { return g.tasks }

// Task is a dated bar. Start and End are whole days; End is inclusive.
type Task struct {
	roadmap    *Roadmap
	name       string
	start, end time.Time
	fill, font string
	milestones []*Milestone
	parallel   []*Task
}

func (r *Roadmap) newTask(name, start, end string) *Task {
	t := &Task{roadmap: r, name: name}
	r.checkName("task", name)

	var errs []error
	s, err := ParseDate(start)
	if err != nil {
		errs = append(errs, fmt.Errorf("start: %w", err))
	}
	e, err := ParseDate(end)
	if err != nil {
		errs = append(errs, fmt.Errorf("end: %w", err))
	}
	if len(errs) == 0 && e.Before(s) {
		errs = append(errs, fmt.Errorf("%w (%s < %s)", ErrEndBeforeStart, end, start))
	}
	if len(errs) > 0 {
		r.record(fmt.Errorf("task %q: %w", name, errors.Join(errs...)))
	}
	t.start, t.end = s, e
	return t
}

// SetColours overrides the bar fill and text colour. Empty values keep the default.
func (t *Task) SetColours(fillColour, fontColour string) *Task {
	if t.roadmap.mutable(fmt.Sprintf("colour task %q", t.name)) {
		t.roadmap.checkColour(fmt.Sprintf("task %q", t.name), fillColour, fontColour)
		t.fill, t.font = fillColour, fontColour
	}
	return t
}

// AddMilestone marks a date on the task. The date may fall outside the task's span.
func (t *Task) AddMilestone(name, date string) *Milestone {
	m := &Milestone{roadmap: t.roadmap, name: name}
	if !t.roadmap.mutable(fmt.Sprintf("add milestone %q", name)) {
		return m
	}
	t.roadmap.checkName("milestone", name)
	d, err := ParseDate(date)
	if err != nil {
		t.roadmap.record(fmt.Errorf("milestone %q: %w", name, err))
	}
	m.date = d
	t.milestones = append(t.milestones, m)
	return m
}

// AddParallelTask adds a task drawn on the same row as t.
func (t *Task) AddParallelTask(name, start, end string) *Task {
	p := t.roadmap.newTask(name, start, end)
	if t.roadmap.mutable(fmt.Sprintf("add parallel task %q", name)) {
		t.parallel = append(t.parallel, p)
	}
	return p
}

// Name returns the task label.
func (t *Task) Name() string { return t.name }

// Start returns the first day of the task, as midnight UTC.
func (t *Task) Start() time.Time { return t.start }

// End returns the last day of the task, inclusive, as midnight UTC.
func (t *Task) End() time.Time { return t.end }

// Milestones returns the task's milestones in insertion order.
func (t *Task) Milestones() []*Milestone { return t.milestones }

// ParallelTasks returns the tasks sharing this task's row.
func (t *Task) ParallelTasks() []*Task { return t.parallel }

// Milestone is a dated marker on a task.
type Milestone struct {
	roadmap *Roadmap
	name    string
	date    time.Time
	colour  string
}

// SetColour overrides the diamond and label colour.
func (m *Milestone) SetColour(c string) *Milestone {
	if m.roadmap.mutable(fmt.Sprintf("colour milestone %q", m.name)) {
		m.roadmap.checkColour(fmt.Sprintf("milestone %q", m.name), c)
		m.colour = c
	}
	return m
}

// Name returns the milestone label.
func (m *Milestone) Name() string { return m.name }

// Date returns the milestone day, as midnight UTC.
func (m *Milestone) Date() time.Time { return m.date }

// Draw validates the roadmap and lays it out. After Draw the roadmap is
// frozen; calling Draw again is a no-op unless builder calls were rejected.
func (r *Roadmap) Draw() error {
	if r.scene != nil {
		return errors.Join(r.errs...)
	}
	if r.timeline == nil && !r.timelineFailed {
		r.record(ErrNoTimeline)
	}
	if len(r.errs) > 0 {
		return errors.Join(r.errs...)
	}

	r.logger.Debug("Drawing roadmap", "title", r.title, "groups", len(r.groups), "mode", r.timeline.Mode)
	sc := layout(r)
	r.scene = sc
	r.logger.Debug("Layout complete", "width", sc.Width, "height", sc.Height, "elements", len(sc.Elements))
	return nil
}
