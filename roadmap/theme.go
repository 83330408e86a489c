package roadmap

import (
	"fmt"
	"sort"
	"strings"
)

// Theme is a named colour palette. Per-group and per-task colours override it.
type Theme struct {
	Name string

	Background     string
	TitleColour    string
	SubtitleColour string
	FooterColour   string

	TierFill       string
	TierFont       string
	PeriodFill     string
	PeriodFont     string
	ColumnShade    string
	GridLineColour string

	GroupFill string
	GroupFont string
	TaskFill  string
	TaskFont  string
	// OverflowFont is used for task names drawn beside a too-short bar.
	OverflowFont string

	MilestoneFill string
	MilestoneFont string
	MarkerColour  string
}

var themes = map[string]Theme{
	"DEFAULT": {
		Name:           "DEFAULT",
		Background:     "#FFFFFF",
		TitleColour:    "#000000",
		SubtitleColour: "#404040",
		FooterColour:   "#808080",
		TierFill:       "#404040",
		TierFont:       "#FFFFFF",
		PeriodFill:     "#808080",
		PeriodFont:     "#FFFFFF",
		ColumnShade:    "#F5F5F5",
		GridLineColour: "#E0E0E0",
		GroupFill:      "#404040",
		GroupFont:      "#FFFFFF",
		TaskFill:       "#A6A6A6",
		TaskFont:       "#000000",
		OverflowFont:   "#262626",
		MilestoneFill:  "#FF0000",
		MilestoneFont:  "#FF0000",
		MarkerColour:   "#FF0000",
	},
	"BLUEMOUNTAIN": {
		Name:           "BLUEMOUNTAIN",
		Background:     "#FFFFFF",
		TitleColour:    "#1F3864",
		SubtitleColour: "#2F5597",
		FooterColour:   "#8497B0",
		TierFill:       "#1F3864",
		TierFont:       "#FFFFFF",
		PeriodFill:     "#2F5597",
		PeriodFont:     "#FFFFFF",
		ColumnShade:    "#F2F6FC",
		GridLineColour: "#DAE3F3",
		GroupFill:      "#1F3864",
		GroupFont:      "#FFFFFF",
		TaskFill:       "#8FAADC",
		TaskFont:       "#000000",
		OverflowFont:   "#1F3864",
		MilestoneFill:  "#C00000",
		MilestoneFont:  "#C00000",
		MarkerColour:   "#C00000",
	},
	"ORANGEPEEL": {
		Name:           "ORANGEPEEL",
		Background:     "#FFFFFF",
		TitleColour:    "#843C0C",
		SubtitleColour: "#C55A11",
		FooterColour:   "#C9A48A",
		TierFill:       "#843C0C",
		TierFont:       "#FFFFFF",
		PeriodFill:     "#C55A11",
		PeriodFont:     "#FFFFFF",
		ColumnShade:    "#FEF6F0",
		GridLineColour: "#FBE5D6",
		GroupFill:      "#843C0C",
		GroupFont:      "#FFFFFF",
		TaskFill:       "#F4B183",
		TaskFont:       "#000000",
		OverflowFont:   "#843C0C",
		MilestoneFill:  "#1F3864",
		MilestoneFont:  "#1F3864",
		MarkerColour:   "#1F3864",
	},
	"GREENTURTLE": {
		Name:           "GREENTURTLE",
		Background:     "#FFFFFF",
		TitleColour:    "#385723",
		SubtitleColour: "#548235",
		FooterColour:   "#A9C09A",
		TierFill:       "#385723",
		TierFont:       "#FFFFFF",
		PeriodFill:     "#548235",
		PeriodFont:     "#FFFFFF",
		ColumnShade:    "#F4F9F1",
		GridLineColour: "#E2F0D9",
		GroupFill:      "#385723",
		GroupFont:      "#FFFFFF",
		TaskFill:       "#A9D18E",
		TaskFont:       "#000000",
		OverflowFont:   "#385723",
		MilestoneFill:  "#C00000",
		MilestoneFont:  "#C00000",
		MarkerColour:   "#C00000",
	},
}

// LookupTheme finds a built-in theme by name, ignoring case.
func LookupTheme(name string) (Theme, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		key = "DEFAULT"
	}
	t, ok := themes[key]
	if !ok {
		return Theme{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// ThemeNames lists the built-in themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
