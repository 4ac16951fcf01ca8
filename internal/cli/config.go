package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/issues/internal/app"
	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage issues configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Sources, lowest precedence first: built-in defaults, the global config file,
.issues.toml in the current directory, and the ISSUES_API_URL environment variable.
Problems found while loading (unknown keys, invalid values) are listed under [Warnings].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}
			return printConfigReport(cmd.OutOrStdout(), out)
		},
	}
	return cmd
}

// printConfigReport writes the sources, warnings and merged config of out.
func printConfigReport(w io.Writer, out *usecase.ShowConfigOutput) error {
	_, _ = fmt.Fprintln(w, "[Loaded from]")
	for _, info := range []domain.ConfigInfo{out.GlobalConfig, out.ProjectConfig} {
		suffix := ""
		if !info.Exists {
			suffix = " (not found)"
		}
		_, _ = fmt.Fprintf(w, "- %s%s\n", info.Path, suffix)
	}
	if v, ok := os.LookupEnv(domain.EnvBaseURL); ok && v != "" {
		_, _ = fmt.Fprintf(w, "- $%s\n", domain.EnvBaseURL)
	}

	if len(out.EffectiveConfig.Warnings) > 0 {
		_, _ = fmt.Fprintln(w, "\n[Warnings]")
		for _, warning := range out.EffectiveConfig.Warnings {
			_, _ = fmt.Fprintf(w, "- %s\n", warning)
		}
	}

	_, _ = fmt.Fprintln(w, "\n[Effective Config]")
	if err := toml.NewEncoder(w).Encode(out.EffectiveConfig); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates .issues.toml in the current directory.
With --global, creates the global configuration file at ~/.config/issues/config.toml.

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{Global: global})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")

	return cmd
}
