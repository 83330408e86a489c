package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buffos/go-roadmap/internal/cli/formatter"
	"github.com/buffos/go-roadmap/roadmap"
)

func newThemesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in colour themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range roadmap.ThemeNames() {
				theme, err := roadmap.LookupTheme(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTheme(theme))
			}
			app.logger.Debug("Listed themes", "count", len(roadmap.ThemeNames()))
			return nil
		},
	}
}
