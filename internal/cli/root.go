package cli

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/buffos/go-roadmap/internal/logging"
)

// Environment variables that provide flag defaults.
const (
	EnvEngine   = "ROADMAPPER_ENGINE"
	EnvLogLevel = "ROADMAPPER_LOG_LEVEL"
)

// App holds the process environment used by CLI commands. Nil fields fall
// back to the real process.
type App struct {
	Getenv func(string) string
	// StdoutIsTerminal reports whether the command's output is an interactive
	// terminal; binary output is refused there.
	StdoutIsTerminal func() bool
	StderrIsTerminal func() bool
	// Now is the clock used for the today marker.
	Now func() time.Time

	logger *log.Logger
}

func (a *App) getenv(key string) string {
	if a.Getenv == nil {
		return os.Getenv(key)
	}
	return a.Getenv(key)
}

func (a *App) stdoutIsTerminal() bool {
	return a.StdoutIsTerminal != nil && a.StdoutIsTerminal()
}

func (a *App) stderrIsTerminal() bool {
	return a.StderrIsTerminal != nil && a.StderrIsTerminal()
}

func (a *App) initLogger(w io.Writer, level string) error {
	opts := logging.DefaultOptions()
	opts.Level = level
	opts.Terminal = a.stderrIsTerminal()
	logger, err := logging.New(w, opts)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// NewRootCmd creates the top-level "roadmapper" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "roadmapper",
		Short: "Draw project roadmaps from YAML, TOML, JSON or HCL definitions",
		Long: `roadmapper draws a roadmap of task groups, tasks and milestones on a
weekly, monthly, quarterly, half-yearly or yearly date axis and saves it as
PNG, JPEG, SVG or HTML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initLogger(cmd.ErrOrStderr(), logLevel)
		},
	}

	defaultLevel := app.getenv(EnvLogLevel)
	if defaultLevel == "" {
		defaultLevel = logging.DefaultLevel
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", defaultLevel,
		"Log level: debug, info, warn or error (env "+EnvLogLevel+")")

	root.AddCommand(
		newRenderCmd(app),
		newValidateCmd(app),
		newInspectCmd(app),
		newThemesCmd(app),
	)

	return root
}
