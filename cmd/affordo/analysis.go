package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/affordo/internal/breakeven"
	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/compare"
	"github.com/rgehrsitz/affordo/internal/output"
	"github.com/rgehrsitz/affordo/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare what-if alternatives against the base scenario",
		Long: `Apply built-in templates or ad-hoc transforms to the base scenario and
show how each alternative moves taxes, housing cost and the monthly surplus.

Values passed to --with are template names (comma separated) or a single
transform spec of the form name:key=value,key=value.

Examples:
  affordo compare household.yaml --with rate_minus_1pt,price_minus_10pct
  affordo compare --with stress_test --with "set_monthly:field=living_expenses,amount=8000"
  affordo compare household.yaml --with move_ca --format csv
  affordo compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				printTemplates(cmd)
				return nil
			}

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

			raw, _ := cmd.Flags().GetStringArray("with")
			alternatives := parseAlternatives(raw)
			if len(alternatives) == 0 {
				return errors.New("no alternatives given; use --with (see --list-templates)")
			}

			threshold := cfg.Grid.SurplusThreshold
			if cmd.Flags().Changed("threshold") {
				threshold, _ = cmd.Flags().GetFloat64("threshold")
			}

			configPath := ""
			if len(args) == 1 {
				configPath = args[0]
			}
			engine := compare.NewCompareEngine(cfg.NewEngine(logger.Sugar()), threshold)
			set, err := engine.Compare(cmd.Context(), cfg.Scenario, compare.CompareOptions{
				Alternatives: alternatives,
				ConfigPath:   configPath,
			})
			if err != nil {
				return err
			}
			return compare.Write(out, formatFor(cmd, settings), set)
		},
	}
	cmd.Flags().StringArray("with", nil, "Template names or a transform spec (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List built-in templates and transforms, then exit")
	cmd.Flags().Float64("threshold", 0, "Monthly surplus buffer used for recommendations")
	cmd.Flags().StringP("format", "f", "", "Output format (console, csv, json)")
	addScenarioFlags(cmd)
	return cmd
}

// parseAlternatives splits template lists; transform specs carry their own
// commas and pass through whole
func parseAlternatives(raw []string) []string {
	var alts []string
	for _, r := range raw {
		if strings.Contains(r, ":") {
			alts = append(alts, strings.TrimSpace(r))
			continue
		}
		alts = append(alts, transform.ParseTemplateList(r)...)
	}
	return alts
}

func printTemplates(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	templates := transform.CreateBuiltInTemplates()
	fmt.Fprintln(out, "Templates:")
	for _, name := range templates.List() {
		t, _ := templates.Get(name)
		fmt.Fprintf(out, "  %-20s %s\n", name, t.Description)
	}
	fmt.Fprintln(out, "Transforms:")
	for _, name := range transform.NewTransformRegistry().List() {
		fmt.Fprintf(out, "  %s\n", name)
	}
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [input-file]",
		Short: "Find the highest affordable price or the lowest workable income",
		Long: `Search for the home price or household income at which the monthly
surplus just meets a required buffer. Without --target both searches run.
With --frontier the maximum price is solved at every income on the grid.

Examples:
  affordo solve household.yaml
  affordo solve --target max-price --surplus 2000
  affordo solve household.yaml --target min-income --upper 1000000
  affordo solve household.yaml --frontier --income-min 200000 --income-max 500000`,
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

			flags := cmd.Flags()
			required, _ := flags.GetFloat64("surplus")
			format := output.NormalizeFormatName(formatFor(cmd, settings))
			if format != "" && format != "console" && format != "json" {
				return fmt.Errorf("%w %q for solver output (use console or json)", output.ErrUnknownFormat, format)
			}

			solver := breakeven.NewDefaultSolver(cfg.NewEngine(logger.Sugar()))
			solver.SetLogger(logger.Sugar())
			tf := &breakeven.TableFormatter{}

			var result any
			var text string
			switch frontier, _ := flags.GetBool("frontier"); {
			case frontier:
				if err := applyGridFlags(cmd, &cfg.Grid); err != nil {
					return err
				}
				incomes := calculation.Range(cfg.Grid.IncomeMin, cfg.Grid.IncomeMax, cfg.Grid.IncomeStep)
				points, err := solver.Frontier(cmd.Context(), cfg.Scenario, incomes, required)
				if err != nil {
					return err
				}
				result, text = points, tf.FormatFrontier(points, required)

			case flags.Changed("target"):
				raw, _ := flags.GetString("target")
				target, err := breakeven.ParseTarget(raw)
				if err != nil {
					return err
				}
				lower, _ := flags.GetFloat64("lower")
				upper, _ := flags.GetFloat64("upper")
				r, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
					Base:            cfg.Scenario,
					Target:          target,
					RequiredSurplus: required,
					Lower:           lower,
					Upper:           upper,
				})
				if err != nil {
					return err
				}
				result, text = r, tf.Format(r)

			default:
				summary, err := solver.Summarize(cmd.Context(), cfg.Scenario, required)
				if err != nil {
					return err
				}
				result, text = summary, tf.FormatSummary(summary)
			}

			if format == "json" {
				text, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				text += "\n"
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().String("target", "", "What to solve for (max-price, min-income)")
	cmd.Flags().Float64("surplus", 0, "Monthly surplus the answer must leave")
	cmd.Flags().Float64("lower", 0, "Lower search bound")
	cmd.Flags().Float64("upper", 0, "Upper search bound (0 uses the target's default)")
	cmd.Flags().Bool("frontier", false, "Solve the maximum price at every grid income")
	cmd.Flags().StringP("format", "f", "", "Output format (console, json)")
	addScenarioFlags(cmd)
	addGridFlags(cmd)
	return cmd
}
