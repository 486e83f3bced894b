package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/breakeven/internal/config"
)

// regionRow is one currency region in the defaults listing.
type regionRow struct {
	Currency config.Currency `json:"currency"`
	config.RegionDefaults
}

// NewDefaultsCmd creates the "defaults" command that lists the session
// defaults of every currency region, including config overrides.
func NewDefaultsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "List the per-currency session defaults",
		Example: `  breakeven defaults
  breakeven defaults --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			format, err := resolveOutputFormat(output, cfg)
			if err != nil {
				return err
			}

			table := cfg.RegionTable()
			rows := make([]regionRow, 0, len(table))
			for _, cur := range table.Currencies() {
				rows = append(rows, regionRow{Currency: cur, RegionDefaults: table[cur]})
			}

			switch format {
			case config.OutputJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			case config.OutputNDJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, row := range rows {
					if err = enc.Encode(row); err != nil {
						return err
					}
				}
				return nil
			default:
				return renderDefaultsTable(cmd, rows, cfg.Defaults.Currency)
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output format (table, json, ndjson); default from config")
	return cmd
}

func renderDefaultsTable(cmd *cobra.Command, rows []regionRow, current config.Currency) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{
		"CURRENCY", "FUEL PRICE", "MILEAGE UNIT", "ANNUAL DISTANCE", "HIKE %",
		"FUEL CAR", "HYBRID", "FUEL CAR MILEAGE", "HYBRID MILEAGE",
	}, "\t"))
	for _, r := range rows {
		name := string(r.Currency)
		if r.Currency == current {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s / %s\t%s\t%s %s\t%s\t%s\t%s\t%s\t%s\n",
			name,
			formatFloat(r.FuelPrice), r.FuelUnit,
			r.MileageUnit,
			formatFloat(r.AnnualDistance), r.DistanceUnit,
			formatFloat(r.PctFuelPriceHike),
			formatFloat(r.FuelCarPrice),
			formatFloat(r.HybridCarPrice),
			formatFloat(r.FuelCarMileage),
			formatFloat(r.HybridMileage),
		)
	}
	return tw.Flush()
}
