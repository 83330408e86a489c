package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buffos/go-roadmap/internal/cli/formatter"
)

func newValidateCmd(app *App) *cobra.Command {
	var flags drawFlags

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a roadmap definition and lay it out without saving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			r, err := loadRoadmap(app, cmd.Flags(), &flags, path)
			if err != nil {
				return err
			}
			if err := r.Draw(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			stats := formatter.Count(r)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n",
				formatter.StyleGreen.Render("✔"), path, formatter.FormatStats(stats))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
