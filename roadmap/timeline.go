package roadmap

import (
	"fmt"
	"strings"
	"time"
)

// TimelineMode is the width of one period on the date axis.
type TimelineMode int

const (
	Weekly TimelineMode = iota
	Monthly
	Quarterly
	HalfYearly
	Yearly
)

var timelineModeNames = map[TimelineMode]string{
	Weekly:     "WEEKLY",
	Monthly:    "MONTHLY",
	Quarterly:  "QUARTERLY",
	HalfYearly: "HALF_YEARLY",
	Yearly:     "YEARLY",
}

func (m TimelineMode) String() string {
	if name, ok := timelineModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("TimelineMode(%d)", int(m))
}

// ParseTimelineMode is case-insensitive and accepts "half_yearly",
// "half-yearly", "half yearly" and "halfyearly".
func ParseTimelineMode(s string) (TimelineMode, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	for mode, name := range timelineModeNames {
		if strings.ReplaceAll(name, "_", "") == norm {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownTimelineMode, s)
}

// Period is one column of the date axis: [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
	// Label goes in the lower header tier, Tier in the upper one.
	Label string
	Tier  string
}

// Days is the period length in days.
func (p Period) Days() float64 {
	return p.End.Sub(p.Start).Hours() / 24
}

// Timeline is the computed date axis.
type Timeline struct {
	Mode    TimelineMode
	Periods []Period
}

// NewTimeline aligns start to the mode's period boundary and lays out count periods.
func NewTimeline(mode TimelineMode, start time.Time, count int) (*Timeline, error) {
	if _, ok := timelineModeNames[mode]; !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownTimelineMode, mode)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: need at least one period, got %d", ErrInvalidTimeline, count)
	}

	tl := &Timeline{Mode: mode, Periods: make([]Period, 0, count)}
	cur := alignStart(mode, truncateDay(start))
	for i := 0; i < count; i++ {
		next := advance(mode, cur)
		label, tier := periodLabels(mode, cur)
		tl.Periods = append(tl.Periods, Period{Start: cur, End: next, Label: label, Tier: tier})
		cur = next
	}
	return tl, nil
}

func alignStart(mode TimelineMode, t time.Time) time.Time {
	y, m, _ := t.Date()
	switch mode {
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		return time.Date(y, m-(m-1)%3, 1, 0, 0, 0, 0, time.UTC)
	case HalfYearly:
		return time.Date(y, m-(m-1)%6, 1, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return t
	}
}

func advance(mode TimelineMode, t time.Time) time.Time {
	switch mode {
	case Monthly:
		return t.AddDate(0, 1, 0)
	case Quarterly:
		return t.AddDate(0, 3, 0)
	case HalfYearly:
		return t.AddDate(0, 6, 0)
	case Yearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 7)
	}
}

func periodLabels(mode TimelineMode, t time.Time) (label, tier string) {
	switch mode {
	case Monthly:
		return t.Format("Jan"), t.Format("2006")
	case Quarterly:
		return fmt.Sprintf("Q%d", (int(t.Month())-1)/3+1), t.Format("2006")
	case HalfYearly:
		return fmt.Sprintf("H%d", (int(t.Month())-1)/6+1), t.Format("2006")
	case Yearly:
		return t.Format("2006"), ""
	default:
		return t.Format("2 Jan"), t.Format("Jan 2006")
	}
}

// Start is the first instant on the axis.
func (tl *Timeline) Start() time.Time {
	return tl.Periods[0].Start
}

// End is the first instant after the axis.
func (tl *Timeline) End() time.Time {
	return tl.Periods[len(tl.Periods)-1].End
}

// Contains reports whether t falls on the axis.
func (tl *Timeline) Contains(t time.Time) bool {
	return !t.Before(tl.Start()) && t.Before(tl.End())
}

// Position maps t to period units: 0 at Start, len(Periods) at End.
// Dates off the axis are clamped.
func (tl *Timeline) Position(t time.Time) float64 {
	if !t.After(tl.Start()) {
		return 0
	}
	if !t.Before(tl.End()) {
		return float64(len(tl.Periods))
	}
	for i, p := range tl.Periods {
		if t.Before(p.End) {
			return float64(i) + t.Sub(p.Start).Hours()/p.End.Sub(p.Start).Hours()
		}
	}
	return float64(len(tl.Periods))
}

// TierSpan is a run of consecutive periods sharing an upper-tier label.
type TierSpan struct {
	Label    string
	From, To int // period indexes, To exclusive
}

// TierSpans merges consecutive periods with the same Tier label.
// Yearly timelines have no upper tier and return nil.
func (tl *Timeline) TierSpans() []TierSpan {
	var spans []TierSpan
	for i, p := range tl.Periods {
		if p.Tier == "" {
			return nil
		}
		if n := len(spans); n > 0 && spans[n-1].Label == p.Tier {
			spans[n-1].To = i + 1
			continue
		}
		spans = append(spans, TierSpan{Label: p.Tier, From: i, To: i + 1})
	}
	return spans
}
