package scene

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColour is returned for colours ParseColour cannot read.
var ErrInvalidColour = errors.New("invalid colour")

// ParseColour accepts CSS colour names and #RGB, #RRGGBB or #RRGGBBAA hex.
func ParseColour(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColour)
	}
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		if strings.EqualFold(s, "transparent") {
			return color.RGBA{}, nil
		}
		return color.RGBA{}, fmt.Errorf("%w: unknown name %q", ErrInvalidColour, s)
	}

	alpha := uint8(0xff)
	hex := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
		}
		alpha = uint8(a)
		hex = s[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
	}
	r, g, b := c.RGB255()
	if alpha == 0xff {
		return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
	}
	// color.RGBA is alpha-premultiplied.
	return color.RGBA{
		R: uint8(uint16(r) * uint16(alpha) / 0xff),
		G: uint8(uint16(g) * uint16(alpha) / 0xff),
		B: uint8(uint16(b) * uint16(alpha) / 0xff),
		A: alpha,
	}, nil
}

// ValidColour reports whether s parses as a colour.
func ValidColour(s string) bool {
	_, err := ParseColour(s)
	return err == nil
}

// Lighten blends s towards white by amount (0..1) in Lab space and returns hex.
// Unparseable colours are returned unchanged.
func Lighten(s string, amount float64) string {
	rgba, err := ParseColour(s)
	if err != nil {
		return s
	}
	c, ok := colorful.MakeColor(rgba)
	if !ok {
		return s
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, amount).Clamped().Hex()
}

// Contrast picks black or white, whichever reads better on background s.
func Contrast(s string) string {
	rgba, err := ParseColour(s)
	if err != nil {
		return "#000000"
	}
	c, ok := colorful.MakeColor(rgba)
	if !ok {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}
