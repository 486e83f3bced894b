package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/engine"
	"github.com/rshade/breakeven/internal/logging"
	"github.com/rshade/breakeven/internal/tui"
)

// CalcParams holds the non-session flags of the calc command.
type CalcParams struct {
	Output      string
	Trace       bool
	Interactive bool
	Plain       bool
}

// formLabels names each session input in the interactive form.
//
//nolint:gochecknoglobals // Fixed display labels.
var formLabels = map[string]string{
	keyCurrency:       "Currency",
	keyFuelPrice:      "Fuel price",
	keyFuelUnit:       "Fuel unit",
	keyMileageUnit:    "Mileage unit",
	keyDistanceUnit:   "Distance unit",
	keyAnnualDistance: "Annual distance",
	keySimulateHike:   "Simulate price hike",
	keyHikePct:        "Yearly hike (%)",
	keyFuelCarPrice:   "Fuel car price",
	keyHybridPrice:    "Hybrid car price",
	keyFuelCarMileage: "Fuel car mileage",
	keyHybridMileage:  "Hybrid car mileage",
}

// NewCalcCmd creates the "calc" command, which compares a fuel car with a
// hybrid and reports when the hybrid's price premium is paid back.
func NewCalcCmd() *cobra.Command {
	var params CalcParams

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the hybrid break-even distance and time",
		Long: `Compares a fuel-only car with a hybrid and reports how far and how long
you need to drive before the hybrid's fuel savings pay back its price premium.

Unset inputs come from the currency region defaults (see "breakeven defaults").`,
		Example: `  # Australian defaults
  breakeven calc

  # US car prices with a 5% yearly fuel price increase
  breakeven calc --currency USD --fuel-car-price 28000 --hybrid-price 33000 --hike-pct 5

  # Year-by-year trace as JSON
  breakeven calc --simulate-hike --trace --output json

  # Edit the inputs interactively
  breakeven calc --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalc(cmd, params)
		},
	}

	addSessionFlags(cmd)
	cmd.Flags().StringVar(&params.Output, "output", "", "output format (table, json, ndjson); default from config")
	cmd.Flags().BoolVar(&params.Trace, "trace", false, "include the year-by-year cost trace")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "edit the inputs in an interactive form")
	cmd.Flags().BoolVar(&params.Plain, "plain", false, "disable styled table output")

	return cmd
}

func executeCalc(cmd *cobra.Command, params CalcParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	cfg := config.GetGlobalConfig()
	format, err := resolveOutputFormat(params.Output, cfg)
	if err != nil {
		return err
	}

	overrides := sessionOverrides(cmd)
	log.Debug().Ctx(ctx).
		Str("operation", "calc").
		Int("override_count", len(overrides)).
		Bool("interactive", params.Interactive).
		Msg("starting break-even calculation")

	calculate := func(ctx context.Context, extra map[string]string) (*engine.Report, error) {
		session, buildErr := BuildSession(cfg, mergeOverrides(overrides, extra))
		if buildErr != nil {
			return nil, buildErr
		}
		return engine.Analyze(ctx, session.Settings, session.Fuel, session.Hybrid,
			engine.AnalyzeOptions{Trace: params.Trace})
	}

	session, err := BuildSession(cfg, overrides)
	if err != nil {
		return err
	}
	report, err := engine.Analyze(ctx, session.Settings, session.Fuel, session.Hybrid,
		engine.AnalyzeOptions{Trace: params.Trace})
	if err != nil {
		return err
	}

	formatter := tui.NewFormatter(cfg.Output.Precision)
	mode := tui.DetectOutputMode(params.Plain || format != config.OutputTable, false, params.Interactive)
	if mode == tui.OutputModeInteractive {
		if report, err = runInteractiveCalc(ctx, session, report, formatter, calculate); err != nil {
			return err
		}
		mode = tui.OutputModeStyled
	}

	if err = RenderReport(cmd.OutOrStdout(), format, mode, report, formatter); err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "calc").
		Bool("already_ahead", report.AlreadyAhead).
		Bool("no_payback", report.NoPayback).
		Dur("duration_ms", time.Since(start)).
		Msg("break-even calculation complete")
	return nil
}

// runInteractiveCalc runs the form and returns the last report it computed.
func runInteractiveCalc(
	ctx context.Context,
	session *Session,
	report *engine.Report,
	formatter tui.Formatter,
	calculate tui.RecalculateFunc,
) (*engine.Report, error) {
	values := sessionValues(session)
	fields := make([]tui.Field, 0, len(sessionKeys))
	for _, key := range sessionKeys {
		fields = append(fields, tui.Field{Key: key, Label: formLabels[key], Value: values[key]})
	}

	model := tui.NewBreakevenModel(ctx, fields, report, formatter, calculate)
	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("running interactive form: %w", err)
	}

	m, ok := finalModel.(*tui.BreakevenModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type: %T, expected *tui.BreakevenModel", finalModel)
	}
	if last := m.GetReport(); last != nil {
		return last, nil
	}
	return report, nil
}
