package tui

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/breakeven/internal/units"
)

// Formatter renders report figures with thousands separators.
type Formatter struct {
	printer   *message.Printer
	precision int
}

// NewFormatter returns a Formatter printing amounts with precision decimals.
// A negative precision is treated as 0.
func NewFormatter(precision int) Formatter {
	return Formatter{
		printer:   message.NewPrinter(language.English),
		precision: max(precision, 0),
	}
}

// Amount formats v in currency, e.g. "AUD 5,000.00".
func (f Formatter) Amount(currency string, v float64) string {
	return f.printer.Sprintf("%s %.*f", currency, f.precision, v)
}

// WholeAmount formats v in currency without decimals, e.g. "AUD 5,000".
func (f Formatter) WholeAmount(currency string, v float64) string {
	return f.printer.Sprintf("%s %d", currency, int64(math.Round(v)))
}

// Price formats a fuel price, e.g. "AUD 2.00 / Liter".
func (f Formatter) Price(currency string, p units.FuelPrice) string {
	return f.printer.Sprintf("%s %.*f / %s", currency, f.precision, p.Value, p.PerUnit)
}

// Distance formats a distance to whole units, e.g. "125,000 km".
func (f Formatter) Distance(d units.Distance) string {
	return f.printer.Sprintf("%d %s", int64(math.Round(d.Value)), d.Unit)
}

// Fuel formats a fuel quantity, e.g. "2,500.00 Liter".
func (f Formatter) Fuel(q units.FuelQuantity) string {
	return f.printer.Sprintf("%.*f %s", f.precision, q.Value, q.Unit)
}

// Number formats v with precision decimals.
func (f Formatter) Number(v float64) string {
	return f.printer.Sprintf("%.*f", f.precision, v)
}

// Years formats a duration in years to one decimal, e.g. "8.3 years".
func (f Formatter) Years(v float64) string {
	return f.printer.Sprintf("%.1f years", v)
}
