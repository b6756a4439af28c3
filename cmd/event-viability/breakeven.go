package main

import (
	"encoding/json"
	"fmt"

	"github.com/iwvelando/event-viability/internal/breakeven"
	"github.com/iwvelando/event-viability/internal/config"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	breakevenScenario  string
	breakevenField     string
	breakevenLower     float64
	breakevenUpper     float64
	breakevenTolerance float64
	breakevenJSON      bool
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven",
	Short: "Find the value of one parameter at which a scenario breaks even",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := setup()
		if err != nil {
			return err
		}

		field, err := breakeven.ParseField(breakevenField)
		if err != nil {
			return err
		}

		scenario, err := resolveScenario(conf, breakevenScenario)
		if err != nil {
			return err
		}

		opts := breakeven.Options{Tolerance: breakevenTolerance}
		if cmd.Flags().Changed("lower") {
			opts.Lower = &breakevenLower
		}
		if cmd.Flags().Changed("upper") {
			opts.Upper = &breakevenUpper
		}

		summary, err := breakeven.NewSolver(logger, scenario.Name, scenario.Parameters).Solve(field, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if breakevenJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		fmt.Fprintf(out, "--- Break-even for scenario %s ---\n", summary.Scenario)
		fmt.Fprintf(out, "Field     | %s\n", summary.Field)
		fmt.Fprintf(out, "Current   | %s (BCR %.3f)\n", summary.OriginalDisplay, summary.OriginalBCR)
		fmt.Fprintf(out, "Break-even| %s (BCR %.3f)\n", summary.ValueDisplay, summary.BCR)
		fmt.Fprintf(out, "Converged | %t after %d iterations\n", summary.Converged, summary.Iterations)
		for _, note := range summary.Notes {
			fmt.Fprintf(out, "Note      | %s\n", note)
		}
		return nil
	},
}

// resolveScenario picks the named scenario, active or not, or the first
// active one when no name is given.
func resolveScenario(conf *config.Configuration, name string) (config.ResolvedScenario, error) {
	if name == "" {
		active, err := conf.ActiveScenarios()
		if err != nil {
			return config.ResolvedScenario{}, err
		}
		if len(active) == 0 {
			return config.ResolvedScenario{}, eris.New("configuration has no active scenario")
		}
		logger.Debug("defaulting to the first active scenario",
			zap.String("op", "main.breakeven"),
			zap.String("scenario", active[0].Name),
		)
		return active[0], nil
	}

	s, ok := conf.FindScenario(name)
	if !ok {
		return config.ResolvedScenario{}, eris.Errorf("scenario %q not found", name)
	}
	p, err := conf.ScenarioParameters(s)
	if err != nil {
		return config.ResolvedScenario{}, err
	}
	return config.ResolvedScenario{Name: s.Name, Parameters: p}, nil
}

func init() {
	breakevenCmd.Flags().StringVarP(&breakevenScenario, "scenario", "s", "", "scenario to solve (default: first active)")
	breakevenCmd.Flags().StringVar(&breakevenField, "field", string(breakeven.FieldPublicSpending), "parameter to move: public-spending, uplift, crowd-out, discount-rate")
	breakevenCmd.Flags().Float64Var(&breakevenLower, "lower", 0, "lower search bound (default: the field's own)")
	breakevenCmd.Flags().Float64Var(&breakevenUpper, "upper", 0, "upper search bound (default: the field's own)")
	breakevenCmd.Flags().Float64Var(&breakevenTolerance, "tolerance", 0, "BCR tolerance (default 1e-6)")
	breakevenCmd.Flags().BoolVar(&breakevenJSON, "json", false, "print the summary as JSON")
	rootCmd.AddCommand(breakevenCmd)
}
