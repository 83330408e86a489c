package chrome

import (
	"bytes"
	"context"
	"image/png"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findBrowser(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no Chrome/Chromium binary on PATH")
	return ""
}

func TestRasterizeRejectsUnknownFormat(t *testing.T) {
	err := Rasterize(context.Background(), Document{SVG: "<svg/>"}, "gif", &bytes.Buffer{}, Options{})
	assert.ErrorContains(t, err, "unsupported image format")
}

func TestRasterizePNG(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a browser")
	}
	execPath := findBrowser(t)

	doc := Document{
		SVG:    `<svg width="80" height="40" xmlns="http://www.w3.org/2000/svg"><rect width="80" height="40" fill="#FFC000"/></svg>`,
		Width:  80,
		Height: 40,
	}
	var buf bytes.Buffer
	err := Rasterize(context.Background(), doc, "png", &buf, Options{Timeout: time.Minute, ExecPath: execPath})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Positive(t, cfg.Width)
	assert.Positive(t, cfg.Height)
}
