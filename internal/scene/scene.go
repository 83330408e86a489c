// Package scene holds the backend-neutral display list produced by the
// roadmap layout. Backends (svg, raster, chrome, html) only ever see a Scene.
package scene

import "math"

// Anchor is the horizontal alignment of a Text element relative to its X.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Font describes the text style of a Text element.
type Font struct {
	Family string
	Size   float64
	Bold   bool
}

// DefaultFamily is emitted for SVG output; the raster backend always uses the Go fonts.
const DefaultFamily = "Helvetica, Arial, sans-serif"

// Point is a position on the canvas, in pixels from the top left.
type Point struct {
	X, Y float64
}

// Element is one drawable item. Class tags the element's role ("task-bar",
// "milestone", ...) and is written as the SVG class attribute.
type Element interface {
	Bounds() (x, y, w, h float64)
	ClassName() string
}

// Rect is a filled rectangle, optionally stroked and rounded.
type Rect struct {
	X, Y, W, H  float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Radius      float64
	Class       string
}

// Line is a straight stroke, solid or dashed.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
	Dashed         bool
	Class          string
}

// Text is a single line of text. Y is the vertical centre of the line.
type Text struct {
	X, Y    float64
	Content string
	Font    Font
	Color   string
	Anchor  Anchor
	Class   string
}

// Polygon is a closed filled shape.
type Polygon struct {
	Points []Point
	Fill   string
	Class  string
}

func (r Rect) Bounds() (float64, float64, float64, float64) { return r.X, r.Y, r.W, r.H }
func (r Rect) ClassName() string                           { return r.Class }

func (l Line) Bounds() (float64, float64, float64, float64) {
	x, y := math.Min(l.X1, l.X2), math.Min(l.Y1, l.Y2)
	return x, y, math.Abs(l.X2 - l.X1), math.Abs(l.Y2 - l.Y1)
}
func (l Line) ClassName() string { return l.Class }

func (t Text) Bounds() (float64, float64, float64, float64) {
	w := EstimateTextWidth(t.Content, t.Font)
	h := EstimateTextHeight(t.Font)
	x := t.X
	switch t.Anchor {
	case AnchorMiddle:
		x -= w / 2
	case AnchorEnd:
		x -= w
	}
	return x, t.Y - h/2, w, h
}
func (t Text) ClassName() string { return t.Class }

func (p Polygon) Bounds() (float64, float64, float64, float64) {
	var b Bounds
	for _, pt := range p.Points {
		b.UpdatePoint(pt.X, pt.Y)
	}
	return b.MinX, b.MinY, b.MaxX - b.MinX, b.MaxY - b.MinY
}
func (p Polygon) ClassName() string { return p.Class }

// Diamond returns the four points of a diamond of the given size centred on (cx, cy).
func Diamond(cx, cy, size float64) []Point {
	half := size / 2
	return []Point{
		{cx, cy - half},
		{cx + half, cy},
		{cx, cy + half},
		{cx - half, cy},
	}
}

// Scene is a sized canvas with an ordered list of elements, painted back to front.
type Scene struct {
	Width      float64
	Height     float64
	Background string
	Elements   []Element
}

// New creates an empty scene.
func New(width, height float64, background string) *Scene {
	return &Scene{Width: width, Height: height, Background: background}
}

// Add appends elements on top of those already in the scene.
func (s *Scene) Add(els ...Element) {
	s.Elements = append(s.Elements, els...)
}

// ByClass returns the elements tagged with class, in paint order.
func (s *Scene) ByClass(class string) []Element {
	var out []Element
	for _, el := range s.Elements {
		if el.ClassName() == class {
			out = append(out, el)
		}
	}
	return out
}

// Texts returns the content of every Text element, in paint order.
func (s *Scene) Texts() []string {
	var out []string
	for _, el := range s.Elements {
		if t, ok := el.(Text); ok {
			out = append(out, t.Content)
		}
	}
	return out
}

// Bounds accumulates the extent of everything drawn.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
	IsSet                  bool
}

// UpdatePoint extends the bounds to include (x, y).
func (b *Bounds) UpdatePoint(x, y float64) {
	if !b.IsSet {
		b.MinX, b.MaxX = x, x
		b.MinY, b.MaxY = y, y
		b.IsSet = true
		return
	}
	b.MinX = math.Min(b.MinX, x)
	b.MaxX = math.Max(b.MaxX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxY = math.Max(b.MaxY, y)
}

// UpdateRect extends the bounds to cover a rectangle. Negative sizes are ignored.
func (b *Bounds) UpdateRect(x, y, width, height float64) {
	if width < 0 || height < 0 {
		return
	}
	b.UpdatePoint(x, y)
	b.UpdatePoint(x+width, y+height)
}

// UpdateElement extends the bounds to cover el.
func (b *Bounds) UpdateElement(el Element) {
	b.UpdateRect(el.Bounds())
}

// --- Text Dimension Estimation ---

// EstimateTextHeight gives the line height for a font.
func EstimateTextHeight(font Font) float64 {
	if font.Size <= 0 {
		return 15
	}
	return font.Size * 1.2
}

// EstimateTextWidth is a rough proportional-font heuristic: about 0.6 of the
// font size per character, a little wider for bold.
func EstimateTextWidth(text string, font Font) float64 {
	if font.Size <= 0 || text == "" {
		return 0
	}
	factor := 0.6
	if font.Bold {
		factor = 0.65
	}
	return float64(len([]rune(text))) * font.Size * factor
}
