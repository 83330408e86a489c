// Package svg encodes a scene as a standalone SVG document.
package svg

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/buffos/go-roadmap/internal/scene"
)

// Encode renders the scene. Canvas size is rounded up to whole pixels.
func Encode(sc *scene.Scene) string {
	var body bytes.Buffer
	for _, el := range sc.Elements {
		writeElement(&body, el)
	}

	width := math.Max(math.Ceil(sc.Width), 10)
	height := math.Max(math.Ceil(sc.Height), 10)
	background := sc.Background
	if background == "" {
		background = "#FFFFFF"
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`,
		width, height, width, height)
	out.WriteString("\n")
	fmt.Fprintf(&out, `  <rect width="%.0f" height="%.0f" fill="%s" />`+"\n", width, height, escapeXML(background))
	out.Write(body.Bytes())
	out.WriteString("</svg>\n")
	return out.String()
}

func writeElement(buf *bytes.Buffer, el scene.Element) {
	switch e := el.(type) {
	case scene.Rect:
		writeRect(buf, e)
	case scene.Line:
		writeLine(buf, e)
	case scene.Text:
		writeText(buf, e)
	case scene.Polygon:
		writePolygon(buf, e)
	}
}

func writeRect(buf *bytes.Buffer, r scene.Rect) {
	fmt.Fprintf(buf, `  <rect%s x="%.2f" y="%.2f" width="%.2f" height="%.2f"`,
		classAttr(r.Class), r.X, r.Y, r.W, r.H)
	if r.Radius > 0 {
		fmt.Fprintf(buf, ` rx="%.2f" ry="%.2f"`, r.Radius, r.Radius)
	}
	fmt.Fprintf(buf, ` fill="%s"`, fillValue(r.Fill))
	if r.Stroke != "" && r.StrokeWidth > 0 {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%.2f"`, escapeXML(r.Stroke), r.StrokeWidth)
	}
	buf.WriteString(" />\n")
}

func writeLine(buf *bytes.Buffer, l scene.Line) {
	width := l.Width
	if width <= 0 {
		width = 1
	}
	dash := ""
	if l.Dashed {
		dash = strokeDashArray(int(math.Round(width)))
	}
	fmt.Fprintf(buf, `  <line%s x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"%s />`+"\n",
		classAttr(l.Class), l.X1, l.Y1, l.X2, l.Y2, escapeXML(l.Color), width, dash)
}

func writeText(buf *bytes.Buffer, t scene.Text) {
	family := t.Font.Family
	if family == "" {
		family = scene.DefaultFamily
	}
	weight := "normal"
	if t.Font.Bold {
		weight = "bold"
	}
	fmt.Fprintf(buf, `  <text%s x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" font-weight="%s" fill="%s" text-anchor="%s" dominant-baseline="middle">%s</text>`+"\n",
		classAttr(t.Class), t.X, t.Y, escapeXML(family), t.Font.Size, weight, fillValue(t.Color), textAnchor(t.Anchor), escapeXML(t.Content))
}

func writePolygon(buf *bytes.Buffer, p scene.Polygon) {
	points := make([]string, 0, len(p.Points))
	for _, pt := range p.Points {
		points = append(points, fmt.Sprintf("%.2f,%.2f", pt.X, pt.Y))
	}
	fmt.Fprintf(buf, `  <polygon%s points="%s" fill="%s" />`+"\n", classAttr(p.Class), strings.Join(points, " "), fillValue(p.Fill))
}

func classAttr(class string) string {
	if class == "" {
		return ""
	}
	return fmt.Sprintf(` class="%s"`, escapeXML(class))
}

func fillValue(c string) string {
	if c == "" {
		return "none"
	}
	return escapeXML(c)
}

func textAnchor(a scene.Anchor) string {
	switch a {
	case scene.AnchorMiddle:
		return "middle"
	case scene.AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// strokeDashArray sizes dashes in proportion to the stroke width.
func strokeDashArray(width int) string {
	if width <= 0 {
		width = 1
	}
	return fmt.Sprintf(` stroke-dasharray="%d %d"`, width*4, width*2)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
