package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buffos/go-roadmap/roadmap"
)

func sample(t *testing.T) *roadmap.Roadmap {
	t.Helper()
	r := roadmap.New(1000, 0, roadmap.WithTheme("ORANGEPEEL"))
	r.SetTitle("Plan")
	r.SetTimeline(roadmap.Monthly, "2024-01-01", 3)
	g := r.AddGroup("Build", "#70AD47", "")
	t1 := g.AddTask("Design", "2024-01-05", "2024-01-20")
	t1.AddMilestone("Review", "2024-01-20")
	t1.AddParallelTask("Spike", "2024-01-22", "2024-02-02").AddMilestone("Demo", "2024-02-02")
	g.AddTask("Later", "2024-06-01", "2024-06-10")
	r.AddGroup("Empty", "", "")
	return r
}

func TestCount(t *testing.T) {
	s := Count(sample(t))
	assert.Equal(t, Stats{Groups: 2, Tasks: 3, Milestones: 2}, s)
	assert.Equal(t, "2 groups, 3 tasks, 2 milestones", FormatStats(s))
	assert.Equal(t, "1 group, 1 task, 0 milestones", FormatStats(Stats{1, 1, 0}))
}

func TestFormatRoadmap(t *testing.T) {
	out := FormatRoadmap(sample(t))

	assert.Contains(t, out, "Plan\n")
	assert.Contains(t, out, "MONTHLY · 3 periods · 2024-01-01 → 2024-03-31 · theme ORANGEPEEL")
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "├─ Design")
	assert.Contains(t, out, "│  ├─ ◆ Review")
	assert.Contains(t, out, "│  └─ ∥ Spike")
	assert.Contains(t, out, "│     └─ ◆ Demo")
	assert.Contains(t, out, "└─ Later")
	assert.Contains(t, out, "2024-01-05 → 2024-01-20")
	assert.Contains(t, out, "2 groups, 3 tasks, 2 milestones")
}

func TestFormatRoadmapWithoutTimeline(t *testing.T) {
	r := roadmap.New(500, 0)
	r.AddGroup("Only", "", "")
	assert.Contains(t, FormatRoadmap(r), "no timeline")
}

func TestRenderTreeAlignsDetails(t *testing.T) {
	out := RenderTree([]TreeItem{
		{Title: "root"},
		{Title: "a", Level: 1, Detail: "x"},
		{Title: "longer", Level: 1, IsLast: true, Detail: "y"},
	})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Index(lines[1], "x"), strings.Index(lines[2], "y"))
	assert.Empty(t, RenderTree(nil))
}

func TestOnAxis(t *testing.T) {
	tl, err := roadmap.NewTimeline(roadmap.Monthly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2)
	require.NoError(t, err)
	d := func(m time.Month, day int) time.Time { return time.Date(2024, m, day, 0, 0, 0, 0, time.UTC) }
	assert.True(t, onAxis(tl, d(1, 10), d(1, 12)))
	assert.True(t, onAxis(nil, d(9, 1), d(9, 2)))
	assert.False(t, onAxis(tl, d(3, 1), d(3, 5)))
}

func TestFormatTheme(t *testing.T) {
	theme, err := roadmap.LookupTheme("GREENTURTLE")
	require.NoError(t, err)
	out := FormatTheme(theme)
	assert.Contains(t, out, "GREENTURTLE")
	assert.Contains(t, out, "task "+theme.TaskFill)
}
