// Package raster paints a scene with pure-Go 2D drawing and encodes it as PNG or JPEG.
package raster

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/buffos/go-roadmap/internal/scene"
)

// JPEGQuality matches the chrome engine's re-encode quality.
const JPEGQuality = 90

type faceKey struct {
	size float64
	bold bool
}

// painter caches font faces for one paint.
type painter struct {
	dc    *gg.Context
	faces map[faceKey]font.Face
}

type fontSet struct {
	regular, bold *truetype.Font
}

var loadFonts = sync.OnceValues(func() (fontSet, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse bold font: %w", err)
	}
	return fontSet{regular: regular, bold: bold}, nil
})

// Paint rasterises the scene at one pixel per unit.
func Paint(sc *scene.Scene) (image.Image, error) {
	width := int(math.Max(math.Ceil(sc.Width), 10))
	height := int(math.Max(math.Ceil(sc.Height), 10))

	p := &painter{dc: gg.NewContext(width, height), faces: make(map[faceKey]font.Face)}

	background := sc.Background
	if background == "" {
		background = "#FFFFFF"
	}
	if err := p.setColour(background); err != nil {
		return nil, err
	}
	p.dc.Clear()

	for _, el := range sc.Elements {
		var err error
		switch e := el.(type) {
		case scene.Rect:
			err = p.rect(e)
		case scene.Line:
			err = p.line(e)
		case scene.Text:
			err = p.text(e)
		case scene.Polygon:
			err = p.polygon(e)
		}
		if err != nil {
			return nil, err
		}
	}
	return p.dc.Image(), nil
}

// Encode paints the scene and writes it as "png" or "jpeg".
func Encode(w io.Writer, sc *scene.Scene, format string) error {
	img, err := Paint(sc)
	if err != nil {
		return err
	}
	switch format {
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	case "jpg", "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("unsupported raster format %q", format)
	}
	return nil
}

func (p *painter) setColour(c string) error {
	rgba, err := scene.ParseColour(c)
	if err != nil {
		return err
	}
	p.dc.SetColor(rgba)
	return nil
}

func (p *painter) rect(r scene.Rect) error {
	if r.Fill != "" {
		if err := p.setColour(r.Fill); err != nil {
			return err
		}
		p.drawRect(r)
		p.dc.Fill()
	}
	if r.Stroke != "" && r.StrokeWidth > 0 {
		if err := p.setColour(r.Stroke); err != nil {
			return err
		}
		p.dc.SetLineWidth(r.StrokeWidth)
		p.drawRect(r)
		p.dc.Stroke()
	}
	return nil
}

func (p *painter) drawRect(r scene.Rect) {
	if r.Radius > 0 {
		p.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, r.Radius)
		return
	}
	p.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
}

func (p *painter) line(l scene.Line) error {
	if err := p.setColour(l.Color); err != nil {
		return err
	}
	width := l.Width
	if width <= 0 {
		width = 1
	}
	p.dc.SetLineWidth(width)
	if l.Dashed {
		p.dc.SetDash(width*4, width*2)
	}
	p.dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
	p.dc.Stroke()
	p.dc.SetDash()
	return nil
}

func (p *painter) text(t scene.Text) error {
	if t.Content == "" {
		return nil
	}
	face, err := p.face(t.Font)
	if err != nil {
		return err
	}
	if err := p.setColour(t.Color); err != nil {
		return err
	}
	p.dc.SetFontFace(face)

	ax := 0.0
	switch t.Anchor {
	case scene.AnchorMiddle:
		ax = 0.5
	case scene.AnchorEnd:
		ax = 1
	}
	p.dc.DrawStringAnchored(t.Content, t.X, t.Y, ax, 0.35)
	return nil
}

func (p *painter) polygon(poly scene.Polygon) error {
	if len(poly.Points) < 3 {
		return nil
	}
	if err := p.setColour(poly.Fill); err != nil {
		return err
	}
	p.dc.MoveTo(poly.Points[0].X, poly.Points[0].Y)
	for _, pt := range poly.Points[1:] {
		p.dc.LineTo(pt.X, pt.Y)
	}
	p.dc.ClosePath()
	p.dc.Fill()
	return nil
}

func (p *painter) face(f scene.Font) (font.Face, error) {
	size := f.Size
	if size <= 0 {
		size = 12
	}
	key := faceKey{size: size, bold: f.Bold}
	if face, ok := p.faces[key]; ok {
		return face, nil
	}
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	ttf := fonts.regular
	if f.Bold {
		ttf = fonts.bold
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	p.faces[key] = face
	return face, nil
}
