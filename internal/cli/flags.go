package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/buffos/go-roadmap/internal/definition"
	"github.com/buffos/go-roadmap/roadmap"
)

// drawFlags override what a definition file says about the canvas.
type drawFlags struct {
	theme    string
	width    int
	height   int
	noMarker bool
}

func (f *drawFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.theme, "theme", "", "Colour theme, overriding the file's ("+joinThemes()+")")
	fs.IntVar(&f.width, "width", 0, "Canvas width in pixels, overriding the file's")
	fs.IntVar(&f.height, "height", 0, "Canvas height in pixels, 0 to fit the content")
	fs.BoolVar(&f.noMarker, "no-marker", false, "Do not draw the today marker")
}

// apply copies the flags the user actually set onto def.
func (f *drawFlags) apply(fs *pflag.FlagSet, def *definition.Definition) error {
	if fs.Changed("theme") {
		if _, err := roadmap.LookupTheme(f.theme); err != nil {
			return err
		}
		def.Theme = f.theme
	}
	if fs.Changed("width") {
		if f.width <= 0 {
			return fmt.Errorf("--width must be positive, got %d", f.width)
		}
		def.Width = f.width
	}
	if fs.Changed("height") {
		if f.height < 0 {
			return fmt.Errorf("--height must not be negative, got %d", f.height)
		}
		def.Height = f.height
	}
	return nil
}

func (f *drawFlags) options(app *App) []roadmap.Option {
	opts := []roadmap.Option{roadmap.WithLogger(app.logger)}
	if f.noMarker {
		opts = append(opts, roadmap.WithMarker(false))
	}
	if app.Now != nil {
		opts = append(opts, roadmap.WithClock(app.Now))
	}
	return opts
}

func joinThemes() string {
	return strings.Join(roadmap.ThemeNames(), ", ")
}

// loadRoadmap reads a definition file and builds its roadmap with the
// command-line overrides applied.
func loadRoadmap(app *App, fs *pflag.FlagSet, flags *drawFlags, path string, extra ...roadmap.Option) (*roadmap.Roadmap, error) {
	app.logger.Info("Reading definition", "file", path)
	def, err := definition.Load(path)
	if err != nil {
		return nil, err
	}
	if err := flags.apply(fs, def); err != nil {
		return nil, err
	}
	opts := append(flags.options(app), extra...)
	r, err := definition.Build(def, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
