package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/issues/internal/app"
	"github.com/runoshun/issues/internal/tui"
)

// newTUICommand creates the tui command for launching the interactive TUI.
func newTUICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [route]",
		Short: "Launch interactive TUI",
		Long: `Launch the interactive terminal user interface.

An optional route selects the first screen:
  /issues            issue list (default)
  /issues/create     new issue form
  /issues/<id>       issue detail
  /issues/edit/<id>  edit form

Examples:
  # Open the list
  issues tui

  # Open an issue directly
  issues tui /issues/42`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			route := tui.ListRoute
			if len(args) > 0 {
				r, err := tui.ParseRoute(args[0])
				if err != nil {
					return err
				}
				route = r
			}
			return launchTUIFunc(c, route)
		},
	}
	return cmd
}
