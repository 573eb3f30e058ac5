package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/affordo/internal/config"
	"github.com/rgehrsitz/affordo/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "affordo",
		Short: "Household affordability calculator",
		Long: `Estimate what a household keeps each month after taxes, savings and the
full cost of owning a home, for one scenario or across a grid of incomes
and home prices.

Process settings come from AFFORDO_* environment variables
(AFFORDO_LOG_LEVEL, AFFORDO_LOG_FORMAT, AFFORDO_FORMAT, AFFORDO_PORT,
AFFORDO_ENV, AFFORDO_CORS_ORIGINS).`,
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging of each calculation")

	root.AddCommand(scenarioCmd())
	root.AddCommand(gridCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(solveCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(defaultsCmd())
	root.AddCommand(formatsCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(tuiCmd())
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "affordo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// setup loads process settings and builds the logger they describe.
// --debug wins over AFFORDO_LOG_LEVEL.
func setup(cmd *cobra.Command) (*config.Settings, *zap.Logger, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, nil, err
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		settings.LogLevel = "debug"
	}

	logger, err := logging.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return settings, logger, nil
}

// loadConfiguration reads a scenario file, or returns the built-in defaults
// when no file is given
func loadConfiguration(args []string) (*config.Configuration, error) {
	if len(args) == 0 {
		return config.DefaultConfiguration(), nil
	}
	return config.NewInputParser().LoadFromFile(args[0])
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
