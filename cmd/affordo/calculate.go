package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/affordo/internal/config"
	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/output"
)

// addFormatFlag registers --format; an empty value falls back to AFFORDO_FORMAT
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "",
		fmt.Sprintf("Output format (%s); defaults to $%s_FORMAT or console",
			strings.Join(output.AvailableFormatterNames(), ", "), config.EnvPrefix))
}

func formatFor(cmd *cobra.Command, settings *config.Settings) string {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return f
	}
	return settings.OutputFormat
}

// addScenarioFlags registers flags that override the loaded base scenario
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("income", 0, "Household gross income per year")
	cmd.Flags().Float64("price", 0, "Home purchase price")
	cmd.Flags().Float64("down", 0, "Down payment as a fraction of price (0.2 = 20%)")
	cmd.Flags().Float64("apr", 0, "Mortgage APR as a fraction (0.065 = 6.5%)")
	cmd.Flags().String("filing-status", "", "Filing status (married_filing_jointly, single)")
	cmd.Flags().String("state", "", "Two-letter state code")
}

// applyScenarioFlags copies every flag the user set onto the scenario
func applyScenarioFlags(cmd *cobra.Command, in *domain.ScenarioInputs) error {
	flags := cmd.Flags()
	floats := map[string]*float64{
		"income": &in.HHIAnnual,
		"price":  &in.HomePrice,
		"down":   &in.DownPaymentPct,
		"apr":    &in.APR,
	}
	for name, dst := range floats {
		if flags.Changed(name) {
			v, err := flags.GetFloat64(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}

	if flags.Changed("filing-status") {
		raw, _ := flags.GetString("filing-status")
		fs, err := domain.ParseFilingStatus(raw)
		if err != nil {
			return err
		}
		in.FilingStatus = fs
	}
	if flags.Changed("state") {
		in.State, _ = flags.GetString("state")
	}
	return config.NewInputParser().ValidateScenario(in)
}

func scenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario [input-file]",
		Short: "Compute the monthly cash flow of one scenario",
		Long: `Compute taxes, housing cost and the remaining monthly surplus for one
household scenario. Without an input file the built-in defaults are used.

Examples:
  affordo scenario
  affordo scenario household.yaml --income 350000 --price 1200000
  affordo scenario household.yaml --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			cfg, err := loadConfiguration(args)
			if err != nil {
				return err
			}
			if err := applyScenarioFlags(cmd, &cfg.Scenario); err != nil {
				return err
			}

			result := cfg.NewEngine(logger.Sugar()).ComputeScenario(cfg.Scenario)
			return output.Write(cmd.OutOrStdout(), formatFor(cmd, settings), &output.Report{
				Scenario:         &result,
				SurplusThreshold: cfg.Grid.SurplusThreshold,
			})
		},
	}
	addFormatFlag(cmd)
	addScenarioFlags(cmd)
	return cmd
}

// addGridFlags registers axis overrides for the grid
func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("income-min", 0, "Lowest household income on the grid")
	cmd.Flags().Float64("income-max", 0, "Highest household income on the grid")
	cmd.Flags().Float64("income-step", 0, "Income step between grid rows")
	cmd.Flags().Float64("price-min", 0, "Lowest home price on the grid")
	cmd.Flags().Float64("price-max", 0, "Highest home price on the grid")
	cmd.Flags().Float64("price-step", 0, "Price step between grid columns")
	cmd.Flags().Float64("threshold", 0, "Monthly surplus below which a cell is flagged")
}

func applyGridFlags(cmd *cobra.Command, g *domain.GridConfig) error {
	flags := cmd.Flags()
	fields := map[string]*float64{
		"income-min":  &g.IncomeMin,
		"income-max":  &g.IncomeMax,
		"income-step": &g.IncomeStep,
		"price-min":   &g.PriceMin,
		"price-max":   &g.PriceMax,
		"price-step":  &g.PriceStep,
		"threshold":   &g.SurplusThreshold,
	}
	for name, dst := range fields {
		if flags.Changed(name) {
			v, err := flags.GetFloat64(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}
	return config.NewInputParser().ValidateGrid(g)
}

func gridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid [input-file]",
		Short: "Compute the monthly surplus across incomes and home prices",
		Long: `Sweep household income and home price around the base scenario and
report the monthly surplus and front-end ratio of every combination.

Examples:
  affordo grid household.yaml
  affordo grid --income-min 200000 --income-max 400000 --income-step 25000 --threshold 2000
  affordo grid household.yaml --format html > grid.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			cfg, err := loadConfiguration(args)
			if err != nil {
				return err
			}
			if err := applyGridFlags(cmd, &cfg.Grid); err != nil {
				return err
			}

			grid := cfg.NewEngine(logger.Sugar()).ComputeGrid(cfg.Scenario, cfg.Grid)
			return output.Write(cmd.OutOrStdout(), formatFor(cmd, settings), &output.Report{
				Grid:             &grid,
				SurplusThreshold: cfg.Grid.SurplusThreshold,
			})
		},
	}
	addFormatFlag(cmd)
	addGridFlags(cmd)
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [input-file]",
		Short: "Compute the base scenario and its grid in one report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			cfg, err := loadConfiguration(args)
			if err != nil {
				return err
			}
			if err := applyScenarioFlags(cmd, &cfg.Scenario); err != nil {
				return err
			}
			if err := applyGridFlags(cmd, &cfg.Grid); err != nil {
				return err
			}

			engine := cfg.NewEngine(logger.Sugar())
			result := engine.ComputeScenario(cfg.Scenario)
			grid := engine.ComputeGrid(cfg.Scenario, cfg.Grid)
			return output.Write(cmd.OutOrStdout(), formatFor(cmd, settings), &output.Report{
				Scenario:         &result,
				Grid:             &grid,
				SurplusThreshold: cfg.Grid.SurplusThreshold,
			})
		},
	}
	addFormatFlag(cmd)
	addScenarioFlags(cmd)
	addGridFlags(cmd)
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			return nil
		},
	}
}

func defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in scenario, grid and tax tables as YAML",
		Long: `Print the built-in configuration as a YAML document. The output is a
valid input file and a starting point for your own scenarios:

  affordo defaults > household.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(config.DefaultConfiguration()); err != nil {
				return fmt.Errorf("failed to encode defaults: %w", err)
			}
			return enc.Close()
		},
	}
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available output formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(out, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
		},
	}
}
