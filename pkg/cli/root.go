package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/configurator/pkg/cliconfig"
	"github.com/getmockd/configurator/pkg/configurator"
	"github.com/getmockd/configurator/pkg/logging"
	"github.com/getmockd/configurator/pkg/template"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	logLevel   string
	logFormat  string
	logFile    string
	jsonOutput bool

	// Resolved by the root PersistentPreRunE
	cfg       *cliconfig.CLIConfig
	logger    = logging.Nop()
	logCloser io.Closer

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "configurator",
	Short: "configurator renders configuration files from templates",
	Long: `configurator renders template files against a data context.

Tokens are written @name@ or $name$. A token may carry an inline rule
(@name:{"padLeft": "-"}@) or reference a rule declared in a leading
[header]{...}[header] block (@name:#rule@).

Configuration can be provided via flags, environment variables
(CONFIGURATOR_*), a local .configuratorrc.yaml or a global
config.yaml in the user config directory.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Main()
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	os.Exit(Main())
}

// Main runs the root command against os.Args and returns the exit code.
func Main() int {
	err := rootCmd.Execute()
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: .configuratorrc.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// setup loads the layered configuration, applies global flags and builds
// the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := cliconfig.LoadAll(configPath)
	if err != nil {
		return err
	}

	flagCfg := &cliconfig.CLIConfig{SetFields: map[string]bool{}}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		flagCfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		flagCfg.LogFormat = logFormat
	}
	if flags.Changed("log-file") {
		flagCfg.LogFile = logFile
	}
	if flags.Changed("json") {
		flagCfg.JSON = jsonOutput
		flagCfg.SetFields["json"] = true
	}
	cliconfig.MergeConfig(loaded, flagCfg, cliconfig.SourceFlag)

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	jsonOutput = cfg.JSON

	l, closer, err := logging.Open(cfg.LogLevel, cfg.LogFormat, cfg.LogFile, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger, logCloser = l, closer
	logger.Debug("configuration loaded", "configFile", cfg.ConfigFile)
	return nil
}

// newConfigurator builds a Configurator from the resolved configuration.
func newConfigurator(l *slog.Logger) *configurator.Configurator {
	engine := template.New(
		template.WithLogger(l),
		template.WithMaxDepth(cfg.MaxDepth),
	)
	return configurator.New(
		configurator.WithEngine(engine),
		configurator.WithLogger(l),
	)
}
