package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/buffos/go-roadmap/internal/chrome"
	"github.com/buffos/go-roadmap/roadmap"
)

// ErrBinaryToTerminal is returned when PNG or JPEG output would go to a terminal.
var ErrBinaryToTerminal = errors.New("refusing to write binary output to a terminal")

type renderFlags struct {
	draw    drawFlags
	output  string
	format  string
	engine  string
	timeout time.Duration
}

func newRenderCmd(app *App) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw a roadmap definition to PNG, JPEG, SVG or HTML",
		Example: `  roadmapper render roadmap.yaml
  roadmapper render roadmap.toml -o plan.svg
  roadmapper render roadmap.hcl --format html -o - > plan.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, app, &flags, args[0])
		},
	}

	defaultEngine := app.getenv(EnvEngine)
	if defaultEngine == "" {
		defaultEngine = string(roadmap.EngineRaster)
	}

	fs := cmd.Flags()
	flags.draw.register(fs)
	fs.StringVarP(&flags.output, "output", "o", "", `Output file, or "-" for stdout (default: FILE with the format's extension)`)
	fs.StringVarP(&flags.format, "format", "f", "", "Output format: png, jpeg, svg or html (default: from the output extension, png)")
	fs.StringVar(&flags.engine, "engine", defaultEngine, "PNG/JPEG renderer: raster or chrome (env "+EnvEngine+")")
	fs.DurationVar(&flags.timeout, "timeout", chrome.DefaultTimeout, "Time limit for the chrome engine")
	return cmd
}

func runRender(cmd *cobra.Command, app *App, flags *renderFlags, path string) error {
	format, output, err := resolveOutput(path, flags.output, flags.format)
	if err != nil {
		return err
	}
	engine, err := roadmap.ParseEngine(flags.engine)
	if err != nil {
		return err
	}
	toStdout := output == "-"
	if toStdout && format.Binary() && app.stdoutIsTerminal() {
		return fmt.Errorf("%w: redirect stdout or use -o FILE", ErrBinaryToTerminal)
	}

	r, err := loadRoadmap(app, cmd.Flags(), &flags.draw, path,
		roadmap.WithEngine(engine), roadmap.WithChromeTimeout(flags.timeout))
	if err != nil {
		return err
	}
	if err := r.Draw(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	app.logger.Info("Generating output", "format", format, "engine", engine)
	if toStdout {
		// Buffer so a failed render writes nothing.
		var buf bytes.Buffer
		if err := r.Render(cmd.Context(), &buf, format); err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		app.logger.Info("Output written to stdout", "size", humanize.Bytes(uint64(buf.Len())))
		return nil
	}

	if err := r.SaveContext(cmd.Context(), output); err != nil {
		return err
	}
	size := "unknown size"
	if info, err := os.Stat(output); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	app.logger.Info("Output saved", "path", output, "size", size)
	return nil
}

// resolveOutput settles the output path and format from the flags. An
// explicit format wins; otherwise the output extension decides. Stdout
// without a format gets SVG, and no output at all gets a PNG next to the
// definition.
func resolveOutput(input, output, format string) (roadmap.Format, string, error) {
	var f roadmap.Format
	if format != "" {
		var err error
		if f, err = roadmap.ParseFormat(format); err != nil {
			return "", "", err
		}
	}

	switch {
	case output == "-":
		if f == "" {
			f = roadmap.FormatSVG
		}
		return f, output, nil
	case output == "":
		if f == "" {
			f = roadmap.FormatPNG
		}
		return f, strings.TrimSuffix(input, filepath.Ext(input)) + extension(f), nil
	}

	ext, err := roadmap.FormatFromPath(output)
	switch {
	case f == "" && err != nil:
		return "", "", err
	case f == "":
		return ext, output, nil
	case err != nil || ext != f:
		// Save picks the format from the extension, so it must agree.
		return "", "", fmt.Errorf("%w: --format %s does not match output %q", roadmap.ErrUnsupportedFormat, f, output)
	}
	return f, output, nil
}

func extension(f roadmap.Format) string {
	if f == roadmap.FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}
