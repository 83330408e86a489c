package roadmap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/buffos/go-roadmap/internal/chrome"
	"github.com/buffos/go-roadmap/internal/htmlpage"
	"github.com/buffos/go-roadmap/internal/raster"
	"github.com/buffos/go-roadmap/internal/svg"
)

// Engine selects the PNG/JPEG rasteriser.
type Engine string

const (
	// EngineRaster paints in-process with the Go fonts.
	EngineRaster Engine = "raster"
	// EngineChrome screenshots the SVG in headless Chrome.
	EngineChrome Engine = "chrome"
)

func (e Engine) valid() bool {
	return e == EngineRaster || e == EngineChrome
}

// ParseEngine is case-insensitive.
func ParseEngine(s string) (Engine, error) {
	e := Engine(strings.ToLower(strings.TrimSpace(s)))
	if !e.valid() {
		return "", fmt.Errorf("%w %q (want raster or chrome)", ErrUnsupportedEngine, s)
	}
	return e, nil
}

// Format is an output file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
)

// ParseFormat accepts png, jpg, jpeg, svg, html and htm, ignoring case and a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w %q (supported: png, jpg/jpeg, svg, html)", ErrUnsupportedFormat, s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no file extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Binary reports whether the format is not text.
func (f Format) Binary() bool {
	return f == FormatPNG || f == FormatJPEG
}

// Save draws the roadmap if needed and writes it to path, in the format given
// by the extension.
func (r *Roadmap) Save(path string) error {
	return r.SaveContext(context.Background(), path)
}

// SaveContext is Save with a context for the chrome engine. A partially
// written file is removed on failure.
func (r *Roadmap) SaveContext(ctx context.Context, path string) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := r.Draw(); err != nil {
		return err
	}

	r.logger.Debug("Output directed to file", "path", path, "format", format)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file %q: %w", path, err)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("error closing output file %q: %w", path, closeErr)
		}
		if err != nil {
			if removeErr := os.Remove(path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
				r.logger.Warn("Could not remove incomplete output file", "path", path, "err", removeErr)
			}
		}
	}()

	if err := r.Render(ctx, f, format); err != nil {
		return err
	}
	r.logger.Debug("Output saved", "path", path)
	return nil
}

// Render draws the roadmap if needed and writes it to w.
func (r *Roadmap) Render(ctx context.Context, w io.Writer, format Format) error {
	if err := r.Draw(); err != nil {
		return err
	}

	r.logger.Debug("Generating output", "format", format, "engine", r.engine)
	switch format {
	case FormatSVG:
		if _, err := io.WriteString(w, svg.Encode(r.scene)); err != nil {
			return fmt.Errorf("failed to write SVG output: %w", err)
		}
		return nil
	case FormatHTML:
		if err := htmlpage.Render(w, r.htmlPage()); err != nil {
			return fmt.Errorf("HTML generation failed: %w", err)
		}
		return nil
	case FormatPNG, FormatJPEG:
		return r.renderImage(ctx, w, format)
	}
	return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
}

func (r *Roadmap) renderImage(ctx context.Context, w io.Writer, format Format) error {
	if r.engine == EngineChrome {
		doc := chrome.Document{
			SVG:    svg.Encode(r.scene),
			Width:  int(math.Ceil(r.scene.Width)),
			Height: int(math.Ceil(r.scene.Height)),
		}
		opts := chrome.Options{Timeout: r.chromeTimeout, Logger: r.logger}
		if err := chrome.Rasterize(ctx, doc, string(format), w, opts); err != nil {
			return fmt.Errorf("chrome rendering failed: %w", err)
		}
		return nil
	}
	if err := raster.Encode(w, r.scene, string(format)); err != nil {
		return fmt.Errorf("raster rendering failed: %w", err)
	}
	return nil
}

func (r *Roadmap) htmlPage() htmlpage.Page {
	page := htmlpage.Page{
		Title:       r.title,
		Description: r.description,
		SVG:         svg.Encode(r.scene),
	}
	for _, g := range r.groups {
		fill, font := groupColours(r.theme, g)
		page.Legend = append(page.Legend, htmlpage.LegendItem{Name: g.name, Fill: fill, Font: font})
	}
	return page
}
