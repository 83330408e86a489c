package scene

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColour(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FFC000", color.RGBA{R: 0xff, G: 0xc0, B: 0x00, A: 0xff}},
		{"#fff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"black", color.RGBA{A: 0xff}},
		{"Black", color.RGBA{A: 0xff}},
		{"#FF000000", color.RGBA{}},
		{"transparent", color.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColour(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColourRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#12", "#GGGGGG", "blurple"} {
		_, err := ParseColour(in)
		assert.ErrorIs(t, err, ErrInvalidColour, in)
	}
}

func TestLightenMovesTowardsWhite(t *testing.T) {
	light := Lighten("#70AD47", 0.5)
	base, _ := ParseColour("#70AD47")
	got, err := ParseColour(light)
	require.NoError(t, err)
	assert.Greater(t, int(got.R)+int(got.G)+int(got.B), int(base.R)+int(base.G)+int(base.B))
	assert.Equal(t, "not-a-colour", Lighten("not-a-colour", 0.5))
}

func TestContrast(t *testing.T) {
	assert.Equal(t, "#000000", Contrast("#FFFFFF"))
	assert.Equal(t, "#FFFFFF", Contrast("#1F3864"))
}

func TestBoundsAndClasses(t *testing.T) {
	s := New(100, 50, "#FFFFFF")
	s.Add(
		Rect{X: 10, Y: 10, W: 20, H: 5, Class: "task-bar"},
		Polygon{Points: Diamond(50, 20, 10), Class: "milestone"},
		Text{X: 5, Y: 40, Content: "hi", Font: Font{Size: 10}},
	)

	var b Bounds
	for _, el := range s.Elements {
		b.UpdateElement(el)
	}
	assert.True(t, b.IsSet)
	assert.InDelta(t, 5, b.MinX, 0.001)
	assert.InDelta(t, 55, b.MaxX, 0.001)
	assert.InDelta(t, 10, b.MinY, 0.001)
	assert.InDelta(t, 46, b.MaxY, 0.001)

	assert.Len(t, s.ByClass("milestone"), 1)
	assert.Equal(t, []string{"hi"}, s.Texts())
}

func TestEstimateTextWidth(t *testing.T) {
	assert.Zero(t, EstimateTextWidth("", Font{Size: 12}))
	assert.InDelta(t, 36, EstimateTextWidth("hello", Font{Size: 12}), 0.001)
	assert.Greater(t, EstimateTextWidth("hello", Font{Size: 12, Bold: true}), 36.0)
}
