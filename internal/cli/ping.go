package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/issues/internal/app"
	"github.com/runoshun/issues/internal/usecase"
)

// newPingCommand creates the ping command for checking API connectivity.
func newPingCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the issue API is reachable",
		Long: `Call the API health endpoint once and report the round-trip time.

Exits non-zero when the API cannot be reached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.CheckHealthUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CheckHealthInput{})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "OK %s (%s)\n", out.BaseURL, out.Latency.Round(time.Millisecond))
			return nil
		},
	}
	return cmd
}
