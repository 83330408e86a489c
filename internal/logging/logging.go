// Package logging builds the command-line logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// Options holds configuration for the console logger.
type Options struct {
	Level string
	// Terminal selects the coloured text formatter; otherwise logfmt is used.
	Terminal        bool
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns options for an interactive terminal.
func DefaultOptions() Options {
	return Options{
		Level:    DefaultLevel,
		Terminal: true,
		Prefix:   "roadmapper",
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	levelName := strings.TrimSpace(opts.Level)
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := log.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	formatter := log.LogfmtFormatter
	if opts.Terminal {
		formatter = log.TextFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	}), nil
}
