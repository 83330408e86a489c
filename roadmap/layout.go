package roadmap

import (
	"math"
	"strings"
	"time"

	"github.com/mitchellh/go-wordwrap"

	"github.com/buffos/go-roadmap/internal/scene"
)

const (
	canvasMargin     = 20.0
	titleFontSize    = 28.0
	subtitleFontSize = 18.0
	footerFontSize   = 12.0
	headerGap        = 12.0

	tierHeight   = 28.0
	tierFontSize = 13.0
	bodyGap      = 6.0

	minLabelWidth   = 120.0
	labelWidthRatio = 0.15
	axisGap         = 10.0
	groupGap        = 8.0
	groupPadding    = 8.0
	groupFontSize   = 14.0

	rowHeight       = 28.0
	barHeight       = 20.0
	barRadius       = 4.0
	taskFontSize    = 12.0
	taskTextPadding = 6.0

	milestoneSize        = 14.0
	milestoneFontSize    = 11.0
	milestoneLabelHeight = 16.0

	markerWidth = 2.0

	// groupTaskLightening derives task bars from an explicit group fill.
	groupTaskLightening = 0.35
)

// layoutConfig holds the resolved horizontal geometry.
type layoutConfig struct {
	width       float64
	labelX      float64
	labelWidth  float64
	axisLeft    float64
	axisRight   float64
	periodWidth float64
}

func newLayoutConfig(width float64, periods int) layoutConfig {
	labelWidth := math.Max(minLabelWidth, width*labelWidthRatio)
	axisLeft := canvasMargin + labelWidth + axisGap
	// Keep at least one pixel per period on absurdly narrow canvases.
	axisRight := math.Max(width-canvasMargin, axisLeft+float64(periods))
	return layoutConfig{
		width:       width,
		labelX:      canvasMargin,
		labelWidth:  labelWidth,
		axisLeft:    axisLeft,
		axisRight:   axisRight,
		periodWidth: (axisRight - axisLeft) / float64(periods),
	}
}

func (c layoutConfig) periodX(i int) float64 {
	return c.axisLeft + float64(i)*c.periodWidth
}

func (c layoutConfig) dateX(tl *Timeline, t time.Time) float64 {
	return c.axisLeft + tl.Position(t)*c.periodWidth
}

// layout turns a validated roadmap into a scene. Elements are collected in
// three layers so that column shading sits under everything and task bars
// sit over the header.
func layout(r *Roadmap) *scene.Scene {
	theme := r.theme
	tl := r.timeline
	cfg := newLayoutConfig(float64(r.width), len(tl.Periods))

	var background, header, body []scene.Element
	y := canvasMargin

	// --- Title block ---
	if r.title != "" {
		font := scene.Font{Size: titleFontSize, Bold: true}
		h := scene.EstimateTextHeight(font)
		header = append(header, scene.Text{
			X: cfg.width / 2, Y: y + h/2, Content: r.title, Font: font,
			Color: theme.TitleColour, Anchor: scene.AnchorMiddle, Class: "title",
		})
		y += h
	}
	if r.subtitle != "" {
		font := scene.Font{Size: subtitleFontSize}
		h := scene.EstimateTextHeight(font)
		header = append(header, scene.Text{
			X: cfg.width / 2, Y: y + h/2, Content: r.subtitle, Font: font,
			Color: theme.SubtitleColour, Anchor: scene.AnchorMiddle, Class: "subtitle",
		})
		y += h
	}
	if r.title != "" || r.subtitle != "" {
		y += headerGap
	}

	// --- Date axis header ---
	headerTop := y
	tierFont := scene.Font{Size: tierFontSize, Bold: true}
	if spans := tl.TierSpans(); len(spans) > 0 {
		for _, span := range spans {
			x0, x1 := cfg.periodX(span.From), cfg.periodX(span.To)
			header = append(header,
				scene.Rect{X: x0, Y: y, W: x1 - x0, H: tierHeight, Fill: theme.TierFill, Stroke: theme.Background, StrokeWidth: 1, Class: "tier"},
				scene.Text{
					X: (x0 + x1) / 2, Y: y + tierHeight/2, Content: fitText(span.Label, x1-x0, tierFont), Font: tierFont,
					Color: theme.TierFont, Anchor: scene.AnchorMiddle, Class: "tier-label",
				},
			)
		}
		y += tierHeight
	}
	periodFont := scene.Font{Size: tierFontSize}
	for i, p := range tl.Periods {
		x0 := cfg.periodX(i)
		header = append(header,
			scene.Rect{X: x0, Y: y, W: cfg.periodWidth, H: tierHeight, Fill: theme.PeriodFill, Stroke: theme.Background, StrokeWidth: 1, Class: "period"},
			scene.Text{
				X: x0 + cfg.periodWidth/2, Y: y + tierHeight/2, Content: fitText(p.Label, cfg.periodWidth, periodFont), Font: periodFont,
				Color: theme.PeriodFont, Anchor: scene.AnchorMiddle, Class: "period-label",
			},
		)
	}
	y += tierHeight

	// --- Groups ---
	bodyTop := y + bodyGap
	y = bodyTop
	for i, g := range r.groups {
		if i > 0 {
			y += groupGap
		}
		y = layoutGroup(&body, r, g, cfg, y)
	}
	bodyBottom := y

	// --- Column shading and grid, under everything ---
	for i := range tl.Periods {
		if i%2 == 1 {
			background = append(background, scene.Rect{
				X: cfg.periodX(i), Y: bodyTop - bodyGap, W: cfg.periodWidth, H: bodyBottom - bodyTop + bodyGap,
				Fill: theme.ColumnShade, Class: "column-shade",
			})
		}
	}
	for i := 0; i <= len(tl.Periods); i++ {
		x := cfg.periodX(i)
		background = append(background, scene.Line{
			X1: x, Y1: bodyTop - bodyGap, X2: x, Y2: bodyBottom,
			Color: theme.GridLineColour, Width: 1, Class: "grid-line",
		})
	}

	// --- Today marker ---
	if r.showMarker {
		today := truncateDay(r.now())
		if tl.Contains(today) {
			x := cfg.dateX(tl, today.Add(day/2))
			body = append(body, scene.Line{
				X1: x, Y1: headerTop, X2: x, Y2: bodyBottom,
				Color: theme.MarkerColour, Width: markerWidth, Dashed: true, Class: "marker",
			})
		} else {
			r.logger.Debug("Today is outside the timeline, no marker", "today", today.Format(DateLayout))
		}
	}

	// --- Canvas height ---
	footerFont := scene.Font{Size: footerFontSize}
	contentHeight := bodyBottom + canvasMargin
	if r.footer != "" {
		contentHeight += scene.EstimateTextHeight(footerFont) + canvasMargin/2
	}
	height := float64(r.height)
	switch {
	case r.height == 0:
		height = math.Ceil(contentHeight)
	case contentHeight > height:
		r.logger.Warn("Roadmap is taller than the canvas, growing it",
			"requested", r.height, "needed", int(math.Ceil(contentHeight)))
		height = math.Ceil(contentHeight)
	}

	sc := scene.New(cfg.width, height, theme.Background)
	sc.Add(background...)
	sc.Add(header...)
	sc.Add(body...)

	if r.footer != "" {
		h := scene.EstimateTextHeight(footerFont)
		sc.Add(scene.Text{
			X: cfg.width / 2, Y: height - canvasMargin - h/2, Content: r.footer, Font: footerFont,
			Color: theme.FooterColour, Anchor: scene.AnchorMiddle, Class: "footer",
		})
	}
	checkWidth(r, sc)
	return sc
}

// checkWidth warns when drawn content spills past the left or right edge.
// Unlike height, the width is never changed.
func checkWidth(r *Roadmap, sc *scene.Scene) {
	var drawn scene.Bounds
	for _, el := range sc.Elements {
		drawn.UpdateElement(el)
	}
	if !drawn.IsSet || (drawn.MinX >= 0 && drawn.MaxX <= sc.Width) {
		return
	}
	needed := math.Max(drawn.MaxX, sc.Width) - math.Min(drawn.MinX, 0)
	r.logger.Warn("Roadmap is wider than the canvas, content will be clipped",
		"width", r.width, "needed", int(math.Ceil(needed)))
}

// layoutGroup draws one group band starting at top and returns its bottom edge.
func layoutGroup(els *[]scene.Element, r *Roadmap, g *Group, cfg layoutConfig, top float64) float64 {
	theme := r.theme

	fill, font := groupColours(theme, g)

	labelFont := scene.Font{Size: groupFontSize, Bold: true}
	lines := wrapLabel(g.name, cfg.labelWidth-2*groupPadding, labelFont)
	lineHeight := scene.EstimateTextHeight(labelFont)

	rowsHeight := 0.0
	for _, t := range g.tasks {
		rowsHeight += taskRowHeight(t)
	}
	height := math.Max(rowsHeight, float64(len(lines))*lineHeight+2*groupPadding)

	*els = append(*els, scene.Rect{
		X: cfg.labelX, Y: top, W: cfg.labelWidth, H: height,
		Fill: fill, Radius: barRadius, Class: "group",
	})
	textTop := top + (height-float64(len(lines))*lineHeight)/2
	for i, line := range lines {
		*els = append(*els, scene.Text{
			X: cfg.labelX + cfg.labelWidth/2, Y: textTop + (float64(i)+0.5)*lineHeight,
			Content: line, Font: labelFont, Color: font, Anchor: scene.AnchorMiddle, Class: "group-label",
		})
	}

	taskFill := theme.TaskFill
	if g.fill != "" {
		taskFill = scene.Lighten(g.fill, groupTaskLightening)
	}
	taskFont := firstNonEmpty(g.font, theme.TaskFont)

	// Rows are centred when the wrapped label is taller than the rows.
	y := top + (height-rowsHeight)/2
	for _, t := range g.tasks {
		layoutTaskRow(els, r, t, cfg, y, taskFill, taskFont)
		y += taskRowHeight(t)
	}
	return top + height
}

// groupColours resolves a group's label colours against the theme. Without
// an explicit font colour, a custom fill gets black or white text.
func groupColours(theme Theme, g *Group) (fill, font string) {
	fill = firstNonEmpty(g.fill, theme.GroupFill)
	font = g.font
	if font == "" {
		font = theme.GroupFont
		if g.fill != "" {
			font = scene.Contrast(g.fill)
		}
	}
	return fill, font
}

// taskRowHeight leaves room under the bar for milestone labels.
func taskRowHeight(t *Task) float64 {
	for _, task := range rowTasks(t) {
		if len(task.milestones) > 0 {
			return rowHeight + milestoneLabelHeight
		}
	}
	return rowHeight
}

// rowTasks is the task followed by its parallel tasks.
func rowTasks(t *Task) []*Task {
	return append([]*Task{t}, t.parallel...)
}

func layoutTaskRow(els *[]scene.Element, r *Roadmap, t *Task, cfg layoutConfig, top float64, fill, font string) {
	barY := top + (rowHeight-barHeight)/2
	tasks := rowTasks(t)
	for _, task := range tasks {
		layoutBar(els, r, task, cfg, barY, fill, font)
	}
	// Diamonds go on top of every bar in the row.
	for _, task := range tasks {
		for _, m := range task.milestones {
			layoutMilestone(els, r, m, cfg, barY)
		}
	}
}

func layoutBar(els *[]scene.Element, r *Roadmap, t *Task, cfg layoutConfig, barY float64, fill, font string) {
	tl := r.timeline
	end := t.end.Add(day) // end date is inclusive
	if !end.After(tl.Start()) || !t.start.Before(tl.End()) {
		r.logger.Debug("Skipping task outside timeline", "task", t.name,
			"start", t.start.Format(DateLayout), "end", t.end.Format(DateLayout))
		return
	}

	x0, x1 := cfg.dateX(tl, t.start), cfg.dateX(tl, end)
	w := math.Max(x1-x0, 2)
	*els = append(*els, scene.Rect{
		X: x0, Y: barY, W: w, H: barHeight,
		Fill: firstNonEmpty(t.fill, fill), Radius: barRadius, Class: "task-bar",
	})

	textFont := scene.Font{Size: taskFontSize}
	tw := scene.EstimateTextWidth(t.name, textFont)
	label := scene.Text{Y: barY + barHeight/2, Content: t.name, Font: textFont, Class: "task-label"}
	switch {
	case tw+2*taskTextPadding <= w:
		label.X, label.Anchor, label.Color = x0+taskTextPadding, scene.AnchorStart, firstNonEmpty(t.font, font)
	case x0+w+taskTextPadding+tw <= cfg.width-canvasMargin/2:
		label.X, label.Anchor, label.Color = x0+w+taskTextPadding, scene.AnchorStart, r.theme.OverflowFont
	default:
		label.X, label.Anchor, label.Color = x0-taskTextPadding, scene.AnchorEnd, r.theme.OverflowFont
	}
	*els = append(*els, label)
}

func layoutMilestone(els *[]scene.Element, r *Roadmap, m *Milestone, cfg layoutConfig, barY float64) {
	tl := r.timeline
	if !tl.Contains(m.date) {
		r.logger.Debug("Skipping milestone outside timeline", "milestone", m.name, "date", m.date.Format(DateLayout))
		return
	}

	// Milestones sit at the end of their day, level with a bar ending that day.
	x := cfg.dateX(tl, m.date.Add(day))
	cy := barY + barHeight/2
	*els = append(*els, scene.Polygon{
		Points: scene.Diamond(x, cy, milestoneSize),
		Fill:   firstNonEmpty(m.colour, r.theme.MilestoneFill),
		Class:  "milestone",
	})

	font := scene.Font{Size: milestoneFontSize, Bold: true}
	half := scene.EstimateTextWidth(m.name, font) / 2
	*els = append(*els, scene.Text{
		X: clamp(x, cfg.axisLeft+half, cfg.axisRight-half), Y: barY + barHeight + milestoneLabelHeight/2 + 1,
		Content: m.name, Font: font, Color: firstNonEmpty(m.colour, r.theme.MilestoneFont),
		Anchor: scene.AnchorMiddle, Class: "milestone-label",
	})
}

// wrapLabel word-wraps text to the given pixel width.
func wrapLabel(text string, width float64, font scene.Font) []string {
	perChar := scene.EstimateTextWidth("M", font)
	chars := 1
	if perChar > 0 {
		chars = max(1, int(width/perChar))
	}
	return strings.Split(wordwrap.WrapString(text, uint(chars)), "\n")
}

// fitText truncates text with an ellipsis until it fits width.
func fitText(text string, width float64, font scene.Font) string {
	if scene.EstimateTextWidth(text, font) <= width {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "…"
		if scene.EstimateTextWidth(candidate, font) <= width {
			return candidate
		}
	}
	return ""
}

// clamp keeps v in [lo, hi]; when the range is empty it returns the midpoint.
func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Min(math.Max(v, lo), hi)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
