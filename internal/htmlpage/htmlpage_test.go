package htmlpage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Page{
		Title:       "MarketLeague <Roadmap>",
		Description: "Fall semester plan.\n\n- **Alpha** demo on 2024-12-04\n- see [docs](https://example.com)",
		SVG:         `<svg width="10" height="10"></svg>`,
		Legend: []LegendItem{
			{Name: "Documentation", Fill: "#FFC000", Font: "black"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<title>MarketLeague &lt;Roadmap&gt;</title>")
	assert.Contains(t, out, "<strong>Alpha</strong>")
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, `<svg width="10" height="10"></svg>`)
	assert.Contains(t, out, `background-color:#FFC000; color:black;">Documentation</li>`)
}

func TestRenderPageWithoutDescription(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Page{SVG: "<svg></svg>"}))

	out := buf.String()
	assert.Contains(t, out, "<h1>Roadmap</h1>")
	assert.NotContains(t, out, `class="description"`)
	assert.NotContains(t, out, `class="legend"`)
}

func TestRenderMarkdownSkipsRawHTML(t *testing.T) {
	out := string(renderMarkdown("hello <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
}
