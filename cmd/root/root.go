// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/mozzadell/cc-optimizer/internal/config"
	"github.com/mozzadell/cc-optimizer/internal/container"
	"github.com/mozzadell/cc-optimizer/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	Output     string
	Format     string
	NoColor    bool
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ccopt",
		Short: "Find the credit cards that earn the most on your spending.",
		Long: `ccopt sends your monthly or annual spending per category to the card
optimization service and shows the cards ranked by net rewards, suggested
multi-card strategies and the totals of a portfolio you pick yourself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
	}

	// SharedFlags holds the persistent flags accessible to all commands
	SharedFlags = CommonFlags{}

	// AppContainer is built from configuration before any subcommand runs
	AppContainer *container.Container

	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewDiscardLogger()
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.ccopt, .ccopt and .)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: text, json, yaml or csv (default from config)")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.NoColor, "no-color", false, "Disable colored output")
}

// setup loads configuration and wires the container used by subcommands.
func setup() error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if SharedFlags.NoColor {
		cfg.Output.Color = false
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// OutputFormat resolves the output format: the --format flag when given,
// the configured default otherwise.
func OutputFormat() string {
	if SharedFlags.Format != "" {
		return SharedFlags.Format
	}
	if AppContainer != nil {
		return AppContainer.GetConfig().Output.Format
	}
	return "text"
}
