package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/rshade/breakeven/internal/engine"
)

// AlreadyAheadMessage is shown when the hybrid needs no paying back.
const AlreadyAheadMessage = "Are you sure the numbers are correct? If yes, you are already in the green!"

// NoPaybackMessage is shown when the hybrid saves under a cent per km.
const NoPaybackMessage = "The hybrid uses less fuel, but it saves less than one cent per km, so the price difference is never paid back."

const (
	reportTitle       = "Hybrid Break-even Calculator"
	traceTableHeight  = 12
	defaultViewWidth  = 80
	borderPadding     = 2
	traceColumnWidth  = 12
	traceYearColWidth = 6
)

// Metric is one labelled figure in a report section.
type Metric struct {
	Label string
	Value string
}

// Section is a titled group of metrics.
type Section struct {
	Title   string
	Note    string
	Metrics []Metric
}

// ReportSections lays out a report as display sections. Plain and styled
// renderers share this layout.
func ReportSections(r *engine.Report, f Formatter) []Section {
	cur := string(r.Settings.Currency)

	outcome := Section{Title: "Outcome"}
	if r.AlreadyAhead {
		outcome.Note = AlreadyAheadMessage
		return []Section{outcome}
	}

	outcome.Metrics = append(outcome.Metrics, Metric{"Price difference", f.WholeAmount(cur, r.PricePremium)})
	if r.Affordable != nil {
		outcome.Metrics = append(outcome.Metrics,
			Metric{"Enough to buy fuel", f.Fuel(r.Affordable.Fuel)},
			Metric{"Enough to drive", f.Distance(r.Affordable.Distance)},
		)
	}
	if r.NoPayback {
		outcome.Note = NoPaybackMessage
	}
	sections := []Section{outcome}

	annual := f.Distance(r.Settings.AnnualDistance)
	if r.Static != nil {
		sections = append(sections, Section{
			Title: "If fuel price remains unchanged at " + f.Price(cur, r.Settings.FuelPrice),
			Metrics: []Metric{
				{"Break-even at", f.Distance(r.Static.Distance)},
				{"At " + annual + " per year, break-even in", f.Years(r.Static.Years)},
			},
		})
	}

	if r.Inflation != nil {
		sections = append(sections, Section{
			Title: fmt.Sprintf("If fuel price increases %.1f%% per year", r.Settings.PctFuelPriceHike),
			Metrics: []Metric{
				{"Break-even at", f.Distance(r.Inflation.Distance)},
				{"At " + annual + " per year, break-even in", f.Years(r.Inflation.Years)},
				{fmt.Sprintf("After %.1f years, fuel would be", r.Inflation.Years), f.Price(cur, r.Inflation.FuelPrice)},
			},
		})
	}

	return sections
}

// RenderReport renders a styled report box no wider than width.
func RenderReport(r *engine.Report, f Formatter, width int) string {
	if r == nil {
		return MutedStyle.Italic(true).Render("No report available")
	}
	if width <= 0 {
		width = defaultViewWidth
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(reportTitle))
	sb.WriteString("\n\n")
	sb.WriteString(renderCars(r, f))

	for _, section := range ReportSections(r, f) {
		sb.WriteString("\n\n")
		sb.WriteString(SectionStyle.Render(section.Title))
		if section.Note != "" {
			sb.WriteString("\n")
			sb.WriteString(noteLine(r, section.Note))
		}
		for _, m := range section.Metrics {
			sb.WriteString("\n  ")
			sb.WriteString(LabelStyle.Render(m.Label + ": "))
			sb.WriteString(ValueStyle.Render(m.Value))
		}
	}

	if len(r.Trace) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(SectionStyle.Render("Year by year"))
		sb.WriteString("\n")
		t := NewTraceTable(r, f, min(len(r.Trace), traceTableHeight))
		sb.WriteString(t.View())
	}

	return BoxStyle.MaxWidth(width).Width(width - borderPadding).Render(sb.String())
}

func noteLine(r *engine.Report, note string) string {
	if r.NoPayback {
		return ErrorStyle.Render(IconCross + " " + note)
	}
	return OKStyle.Render(IconCheck + " " + note)
}

func renderCars(r *engine.Report, f Formatter) string {
	cur := string(r.Settings.Currency)
	var sb strings.Builder
	for i, car := range []engine.Car{r.FuelCar, r.HybridCar} {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-7s", car.Type()+":")))
		sb.WriteString(ValueStyle.Render(fmt.Sprintf("%s, %s, %s/km",
			f.WholeAmount(cur, car.Price()), car.Mileage(), f.Number(car.CostPerKm()))))
	}
	return sb.String()
}

// TraceColumns returns the year-by-year table header in display order.
func TraceColumns() []string {
	return []string{"Year", "Fuel price", "Distance", "Fuel car", "Hybrid", "Savings", "Net"}
}

// TraceRows formats the year-by-year trace of r as table rows.
func TraceRows(r *engine.Report, f Formatter) [][]string {
	rows := make([][]string, 0, len(r.Trace))
	for _, y := range r.Trace {
		rows = append(rows, []string{
			fmt.Sprintf("%d", y.Year),
			f.Number(y.FuelPrice),
			f.Number(y.Distance),
			f.Number(y.FuelCarCost),
			f.Number(y.HybridCost),
			f.Number(y.Savings),
			f.Number(y.Net),
		})
	}
	return rows
}

// NewTraceTable builds a bubbles table over the report's year-by-year trace.
// Fuel prices are per litre and distances in km.
func NewTraceTable(r *engine.Report, f Formatter, height int) table.Model {
	titles := TraceColumns()
	columns := make([]table.Column, len(titles))
	for i, title := range titles {
		width := traceColumnWidth
		if i == 0 {
			width = traceYearColWidth
		}
		columns[i] = table.Column{Title: title, Width: width}
	}

	source := TraceRows(r, f)
	rows := make([]table.Row, len(source))
	for i, row := range source {
		rows[i] = table.Row(row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}
