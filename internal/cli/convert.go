package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/units"
)

// Quantity families accepted by the convert command.
const (
	familyDistance = "distance"
	familyFuel     = "fuel"
	familyPrice    = "price"
	familyMileage  = "mileage"
)

const convertArgCount = 4

// Conversion is the result of one convert invocation.
type Conversion struct {
	Family string  `json:"family"`
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

// NewConvertCmd creates the "convert" command for one-off unit conversions.
func NewConvertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <distance|fuel|price|mileage> <value> <from> <to>",
		Short: "Convert a distance, fuel volume, fuel price or mileage between units",
		Long: `Converts a value between units of one quantity family.

Distance units:  km, mi
Fuel units:      Liter, "US Gal", "UK Gal" (also used for price per unit)
Mileage units:   km/L, L/100km, "MPG (US)", "MPG (UK)"

Unit names are case-insensitive. Results are rounded to 2 decimals at every
conversion step.`,
		Example: `  breakeven convert distance 100 km mi
  breakeven convert fuel 10 "US Gal" Liter
  breakeven convert price 3.1 "US Gal" Liter
  breakeven convert mileage 5 L/100km km/L`,
		Args: cobra.ExactArgs(convertArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := runConversion(args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}

			format, err := resolveOutputFormat(output, config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if format == config.OutputTable {
				cmd.Printf("%s %s = %s %s\n", formatFloat(conv.Value), conv.From, formatFloat(conv.Result), conv.To)
				return nil
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(conv)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output format (table, json, ndjson); default from config")
	return cmd
}

func runConversion(family, rawValue, rawFrom, rawTo string) (Conversion, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
	if err != nil {
		return Conversion{}, fmt.Errorf("%w: value %q is not a number", ErrInvalidInput, rawValue)
	}

	conv := Conversion{Family: strings.ToLower(family), Value: value}
	switch conv.Family {
	case familyDistance:
		err = convertWith(&conv, rawFrom, rawTo, units.ParseDistanceUnit, units.ConvertDistance)
	case familyFuel:
		err = convertWith(&conv, rawFrom, rawTo, units.ParseFuelUnit, units.ConvertFuelQuantity)
	case familyPrice:
		err = convertWith(&conv, rawFrom, rawTo, units.ParseFuelUnit, units.ConvertFuelPrice)
	case familyMileage:
		err = convertWith(&conv, rawFrom, rawTo, units.ParseMileageUnit, units.ConvertMileage)
	default:
		err = fmt.Errorf("%w: unknown quantity %q (distance, fuel, price, mileage)", ErrInvalidInput, family)
	}
	return conv, err
}

// convertWith parses both unit labels and applies convert, filling in conv.
func convertWith[U fmt.Stringer](
	conv *Conversion,
	rawFrom, rawTo string,
	parse func(string) (U, error),
	convert func(float64, U, U) (float64, error),
) error {
	from, err := parse(rawFrom)
	if err != nil {
		return err
	}
	to, err := parse(rawTo)
	if err != nil {
		return err
	}
	result, err := convert(conv.Value, from, to)
	if err != nil {
		return err
	}
	conv.From, conv.To, conv.Result = from.String(), to.String(), result
	return nil
}
