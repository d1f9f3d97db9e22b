package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/configurator/pkg/cli/internal/output"
	"github.com/getmockd/configurator/pkg/cliconfig"
)

// ConfigOutput is the JSON form of `configurator config`.
type ConfigOutput struct {
	Config  *cliconfig.CLIConfig `json:"config"`
	Sources map[string]string    `json:"sources"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long:  `Show the effective configuration with the source of every value.`,
	Example: `  configurator config
  configurator config --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		if jsonOutput {
			sources := make(map[string]string, len(cliconfig.Keys))
			for _, key := range cliconfig.Keys {
				sources[key] = cfg.Source(key)
			}
			return output.JSON(w, ConfigOutput{Config: cfg, Sources: sources})
		}

		// Human-readable output with source annotations
		fmt.Fprintln(w, "Effective Configuration:")
		fmt.Fprintln(w)
		for _, key := range cliconfig.Keys {
			value := cfg.Value(key)
			if key == "logFile" && value == "" {
				continue
			}
			printConfigValue(w, key, value, cfg.Source(key))
		}

		if cfg.ConfigFile != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Sources loaded:")
			fmt.Fprintf(w, "  %s\n", cfg.ConfigFile)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// printConfigValue prints a config value with source annotation.
func printConfigValue(w io.Writer, name, value, source string) {
	fmt.Fprintf(w, "  %-12s %s%s\n", name+":", value, formatSource(source))
}

// formatSource formats a source type for display.
func formatSource(source string) string {
	switch source {
	case cliconfig.SourceDefault:
		return "  (default)"
	case cliconfig.SourceEnv:
		return "  (env)"
	case cliconfig.SourceGlobal:
		return "  (global config)"
	case cliconfig.SourceLocal:
		return "  (local config)"
	case cliconfig.SourceFile:
		return "  (config file)"
	case cliconfig.SourceFlag:
		return "  (flag)"
	default:
		return ""
	}
}
