// Package htmlpage wraps a rendered roadmap SVG in a standalone HTML page.
package htmlpage

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// LegendItem is one group swatch under the roadmap.
type LegendItem struct {
	Name string
	Fill string
	Font string
}

// Page is everything shown on the HTML page.
type Page struct {
	Title string
	// Description is Markdown, rendered above the roadmap.
	Description string
	SVG         string
	Legend      []LegendItem
}

// Render writes the page to w.
func Render(w io.Writer, p Page) error {
	var b strings.Builder

	title := p.Title
	if title == "" {
		title = "Roadmap"
	}

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString(`<style>
body { margin: 0; padding: 40px; font-family: Helvetica, Arial, sans-serif; color: #222; }
.description { max-width: 960px; margin-bottom: 24px; line-height: 1.5; }
.roadmap svg { max-width: 100%; height: auto; border: 1px solid #eee; }
.legend { display: flex; flex-wrap: wrap; gap: 12px; margin-top: 16px; padding: 0; list-style: none; }
.legend li { padding: 4px 10px; border-radius: 3px; font-size: 14px; }
a { color: inherit; }
</style>
</head>
<body>
`)
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title))

	if desc := strings.TrimSpace(p.Description); desc != "" {
		b.WriteString("<div class=\"description\">\n")
		b.Write(renderMarkdown(desc))
		b.WriteString("</div>\n")
	}

	b.WriteString("<div class=\"roadmap\">\n")
	b.WriteString(p.SVG)
	b.WriteString("</div>\n")

	if len(p.Legend) > 0 {
		b.WriteString("<ul class=\"legend\">\n")
		for _, item := range p.Legend {
			fmt.Fprintf(&b, "  <li style=\"background-color:%s; color:%s;\">%s</li>\n",
				escapeCSS(item.Fill), escapeCSS(item.Font), html.EscapeString(item.Name))
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("</body>\n</html>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write HTML output: %w", err)
	}
	return nil
}

func renderMarkdown(src string) []byte {
	// Parsers are single-use.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank | mdhtml.SkipHTML})
	return markdown.ToHTML([]byte(src), p, r)
}

// escapeCSS keeps a colour value inside its style attribute.
func escapeCSS(s string) string {
	return strings.NewReplacer(`"`, "", `'`, "", ";", "", "<", "", ">", "").Replace(s)
}
