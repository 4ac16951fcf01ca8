// Package cli provides the command-line interface for issues.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/issues/internal/app"
	"github.com/runoshun/issues/internal/tui"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupIssue = "issue"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = tui.Run

// NewRootCommand creates the root command for issues.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "issues",
		Short: "Terminal client for the issue tracker",
		Long: `issues is a terminal client for an issue tracker REST API.

Run without arguments to browse issues in the interactive TUI, or use the
subcommands below for scripting.

The API root is read from ISSUES_API_URL, .issues.toml in the current
directory, or the global config file (see 'issues config show').`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. help without a usable config)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Default: launch the TUI on the list screen
			return launchTUIFunc(c, tui.ListRoute)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupIssue, Title: "Issue Commands:"},
	)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	pingCmd := newPingCommand(c)
	pingCmd.GroupID = groupSetup

	// Issue commands
	listCmd := newListCommand(c)
	listCmd.GroupID = groupIssue

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupIssue

	newCmd := newNewCommand(c)
	newCmd.GroupID = groupIssue

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupIssue

	assigneesCmd := newAssigneesCommand(c)
	assigneesCmd.GroupID = groupIssue

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupIssue

	root.AddCommand(
		configCmd,
		pingCmd,
		listCmd,
		showCmd,
		newCmd,
		editCmd,
		assigneesCmd,
		tuiCmd,
	)

	return root
}
