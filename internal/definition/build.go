package definition

import (
	"fmt"

	"github.com/buffos/go-roadmap/roadmap"
)

// DefaultWidth is used when a definition leaves the width unset.
const DefaultWidth = 1600

// Build replays the definition through the roadmap builder, in document
// order. Options given here are applied after the file's own settings, so
// they win. Date and colour problems surface from Draw.
func Build(def *Definition, opts ...roadmap.Option) (*roadmap.Roadmap, error) {
	width := def.Width
	if width == 0 {
		width = DefaultWidth
	}

	var all []roadmap.Option
	if def.Theme != "" {
		all = append(all, roadmap.WithTheme(def.Theme))
	}
	if def.ShowMarker != nil {
		all = append(all, roadmap.WithMarker(*def.ShowMarker))
	}
	all = append(all, opts...)

	r := roadmap.New(width, def.Height, all...)
	r.SetTitle(def.Title)
	r.SetSubtitle(def.Subtitle)
	r.SetFooter(def.Footer)
	r.SetDescription(def.Description)

	if tl := def.Timeline; tl != nil {
		mode, err := roadmap.ParseTimelineMode(tl.Mode)
		if err != nil {
			return nil, fmt.Errorf("timeline: %w", err)
		}
		r.SetTimeline(mode, tl.Start, tl.Periods)
	}

	for _, gd := range def.Groups {
		g := r.AddGroup(gd.Name, gd.Fill, gd.Font)
		for _, td := range gd.Tasks {
			t := g.AddTask(td.Name, td.Start, td.End)
			if td.Fill != "" || td.Font != "" {
				t.SetColours(td.Fill, td.Font)
			}
			addMilestones(t, td.Milestones)
			for _, pd := range td.Parallel {
				p := t.AddParallelTask(pd.Name, pd.Start, pd.End)
				if pd.Fill != "" || pd.Font != "" {
					p.SetColours(pd.Fill, pd.Font)
				}
				addMilestones(p, pd.Milestones)
			}
		}
	}
	return r, nil
}

func addMilestones(t *roadmap.Task, defs []MilestoneDef) {
	for _, md := range defs {
		m := t.AddMilestone(md.Name, md.Date)
		if md.Colour != "" {
			m.SetColour(md.Colour)
		}
	}
}
