package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buffos/go-roadmap/internal/cli/formatter"
)

func newInspectCmd(app *App) *cobra.Command {
	var flags drawFlags

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the groups, tasks and milestones of a roadmap definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRoadmap(app, cmd.Flags(), &flags, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoadmap(r))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
