package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"

	"github.com/buffos/go-roadmap/roadmap"
)

const dateLayout = "2006-01-02"

// Stats counts what a roadmap declares. Parallel tasks count as tasks.
type Stats struct {
	Groups, Tasks, Milestones int
}

// Count walks the roadmap's groups and tasks.
func Count(r *roadmap.Roadmap) Stats {
	var s Stats
	for _, g := range r.Groups() {
		s.Groups++
		for _, t := range g.Tasks() {
			for _, task := range append([]*roadmap.Task{t}, t.ParallelTasks()...) {
				s.Tasks++
				s.Milestones += len(task.Milestones())
			}
		}
	}
	return s
}

// FormatStats renders "3 groups, 24 tasks, 8 milestones".
func FormatStats(s Stats) string {
	return strings.Join([]string{
		english.Plural(s.Groups, "group", ""),
		english.Plural(s.Tasks, "task", ""),
		english.Plural(s.Milestones, "milestone", ""),
	}, ", ")
}

// FormatRoadmap renders the header, the date axis and a tree of groups,
// tasks and milestones. Items off the date axis are dimmed.
func FormatRoadmap(r *roadmap.Roadmap) string {
	var b strings.Builder

	title := r.Title()
	if title == "" {
		title = "(untitled roadmap)"
	}
	b.WriteString(StyleHeader.Render(title) + "\n")

	tl := r.Timeline()
	if tl != nil {
		last := tl.End().AddDate(0, 0, -1)
		fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%s · %s · %s → %s · theme %s",
			tl.Mode, english.Plural(len(tl.Periods), "period", ""),
			tl.Start().Format(dateLayout), last.Format(dateLayout), r.Theme().Name)))
	} else {
		b.WriteString(StyleRed.Render("no timeline") + "\n")
	}
	b.WriteString("\n")

	var items []TreeItem
	for _, g := range r.Groups() {
		fill := g.FillColour()
		if fill == "" {
			fill = r.Theme().GroupFill
		}
		items = append(items, TreeItem{Title: Swatch(fill) + " " + StyleBold.Render(g.Name())})

		tasks := g.Tasks()
		for i, t := range tasks {
			taskLast := i == len(tasks)-1
			items = append(items, TreeItem{
				Title:  t.Name(),
				Level:  1,
				IsLast: taskLast,
				Detail: span(t),
				Muted:  !onAxis(tl, t.Start(), t.End().AddDate(0, 0, 1)),
			})

			children := childItems(tl, t)
			items = append(items, children...)
		}
	}
	b.WriteString(RenderTree(items))
	b.WriteString("\n" + Dim(FormatStats(Count(r))) + "\n")
	return b.String()
}

// childItems lists a task's milestones and parallel tasks with their milestones.
func childItems(tl *roadmap.Timeline, t *roadmap.Task) []TreeItem {
	var items []TreeItem
	for _, m := range t.Milestones() {
		items = append(items, milestoneItem(tl, m, 2))
	}
	for _, p := range t.ParallelTasks() {
		items = append(items, TreeItem{
			Title:  StyleYellow.Render("∥ ") + p.Name(),
			Level:  2,
			Detail: span(p),
			Muted:  !onAxis(tl, p.Start(), p.End().AddDate(0, 0, 1)),
		})
		for _, m := range p.Milestones() {
			items = append(items, milestoneItem(tl, m, 3))
		}
	}
	// Mark the last sibling at each level.
	for i := range items {
		items[i].IsLast = true
		for _, later := range items[i+1:] {
			if later.Level == items[i].Level {
				items[i].IsLast = false
				break
			}
			if later.Level < items[i].Level {
				break
			}
		}
	}
	return items
}

func milestoneItem(tl *roadmap.Timeline, m *roadmap.Milestone, level int) TreeItem {
	return TreeItem{
		Title:  StyleRed.Render("◆ ") + m.Name(),
		Level:  level,
		Detail: m.Date().Format(dateLayout),
		Muted:  !onAxis(tl, m.Date(), m.Date().AddDate(0, 0, 1)),
	}
}

func span(t *roadmap.Task) string {
	return t.Start().Format(dateLayout) + " → " + t.End().Format(dateLayout)
}

// onAxis reports whether [from, to) overlaps the timeline.
func onAxis(tl *roadmap.Timeline, from, to time.Time) bool {
	if tl == nil {
		return true
	}
	return from.Before(tl.End()) && to.After(tl.Start())
}

// FormatTheme renders one line per theme: name and colour swatches.
func FormatTheme(t roadmap.Theme) string {
	swatches := []struct{ label, colour string }{
		{"tier", t.TierFill},
		{"period", t.PeriodFill},
		{"group", t.GroupFill},
		{"task", t.TaskFill},
		{"milestone", t.MilestoneFill},
		{"marker", t.MarkerColour},
	}
	var b strings.Builder
	b.WriteString(StyleBold.Render(fmt.Sprintf("%-14s", t.Name)))
	for _, s := range swatches {
		fmt.Fprintf(&b, " %s %s", Swatch(s.colour), Dim(s.label+" "+s.colour))
	}
	return b.String()
}
