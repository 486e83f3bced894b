package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/engine"
	"github.com/rshade/breakeven/internal/logging"
	"github.com/rshade/breakeven/internal/tui"
)

//nolint:gochecknoglobals // Default sensitivity grid, 0% to the 15% cap.
var defaultSweepPcts = []float64{0, 2.5, 5, 7.5, 10, 12.5, 15}

// sweepRecord is the JSON form of one sweep point.
type sweepRecord struct {
	Type             string                     `json:"type,omitempty"`
	PctFuelPriceHike float64                    `json:"pct_fuel_price_hike"`
	Breakeven        *engine.InflationBreakeven `json:"breakeven,omitempty"`
	Error            string                     `json:"error,omitempty"`
}

// NewSweepCmd creates the "sweep" command, which computes the
// inflation-adjusted break-even for several yearly fuel price increases.
func NewSweepCmd() *cobra.Command {
	var (
		output string
		pcts   []float64
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare break-even points across yearly fuel price increases",
		Long: `Computes the inflation-adjusted break-even once per yearly fuel price
increase and lists them in the order given. Session inputs are the same as for
"breakeven calc"; --hike-pct and --simulate-hike are ignored.`,
		Example: `  breakeven sweep
  breakeven sweep --pcts 0,1,2,3 --currency USD
  breakeven sweep --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeSweep(cmd, output, pcts)
		},
	}

	addSessionFlags(cmd)
	cmd.Flags().Float64SliceVar(&pcts, "pcts", defaultSweepPcts, "yearly fuel price increases in percent (0-15)")
	cmd.Flags().StringVar(&output, "output", "", "output format (table, json, ndjson); default from config")
	return cmd
}

func executeSweep(cmd *cobra.Command, output string, pcts []float64) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	cfg := config.GetGlobalConfig()
	format, err := resolveOutputFormat(output, cfg)
	if err != nil {
		return err
	}
	session, err := BuildSession(cfg, sessionOverrides(cmd))
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "sweep").
		Floats64("pcts", pcts).
		Msg("starting sweep")

	results, err := engine.Sweep(ctx, session.Settings, session.Fuel, session.Hybrid, pcts)
	if engine.IsAlreadyAhead(err) {
		cmd.Println(tui.AlreadyAheadMessage)
		return nil
	}
	if errors.Is(err, engine.ErrSavingsBelowResolution) {
		cmd.Println(tui.NoPaybackMessage)
		return nil
	}
	if err != nil {
		return err
	}

	switch format {
	case config.OutputJSON:
		records := make([]sweepRecord, 0, len(results))
		for _, r := range results {
			records = append(records, newSweepRecord(r, ""))
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case config.OutputNDJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, r := range results {
			if err = enc.Encode(newSweepRecord(r, ndjsonTypeSweep)); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderSweepTable(cmd, session, results, tui.NewFormatter(cfg.Output.Precision))
	}
}

func newSweepRecord(r engine.SweepResult, recordType string) sweepRecord {
	rec := sweepRecord{Type: recordType, PctFuelPriceHike: r.PctFuelPriceHike, Breakeven: r.Breakeven}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

func renderSweepTable(cmd *cobra.Command, session *Session, results []engine.SweepResult, f tui.Formatter) error {
	cur := string(session.Settings.Currency)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Hike\tBreak-even at\tYears\tFuel price then\t")
	for _, r := range results {
		if r.Breakeven == nil {
			fmt.Fprintf(tw, "%.1f%%\t%s\t\t\t\n", r.PctFuelPriceHike, "beyond horizon")
			continue
		}
		b := r.Breakeven
		fmt.Fprintf(tw, "%.1f%%\t%s\t%s\t%s\t\n",
			r.PctFuelPriceHike, f.Distance(b.Distance), f.Years(b.Years), f.Price(cur, b.FuelPrice))
	}
	return tw.Flush()
}
