package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/engine"
	"github.com/rshade/breakeven/internal/tui"
)

const (
	defaultBoxWidth   = 80
	tabPadding        = 2
	ndjsonTypeReport  = "report"
	ndjsonTypeTrace   = "trace"
	ndjsonTypeSweep   = "sweep"
	plainReportHeader = "Hybrid Break-even Calculator"
)

// isValidOutputFormat reports whether format is a supported --output value.
func isValidOutputFormat(format string) bool {
	switch format {
	case config.OutputTable, config.OutputJSON, config.OutputNDJSON:
		return true
	default:
		return false
	}
}

// resolveOutputFormat returns the flag value, or the configured default when
// the flag is empty, and validates it.
func resolveOutputFormat(flagValue string, cfg *config.Config) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	if !isValidOutputFormat(format) {
		return "", fmt.Errorf("%w: unsupported output format %q (table, json, ndjson)", ErrInvalidInput, format)
	}
	return format, nil
}

// RenderReport writes report to w in format. Table output is styled when mode
// is OutputModeStyled and plain otherwise.
func RenderReport(w io.Writer, format string, mode tui.OutputMode, report *engine.Report, f tui.Formatter) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case config.OutputNDJSON:
		return renderReportNDJSON(w, report)
	case config.OutputTable:
		if mode == tui.OutputModeStyled {
			_, err := fmt.Fprintln(w, tui.RenderReport(report, f, tui.TerminalWidth(defaultBoxWidth)))
			return err
		}
		return renderPlainReport(w, report, f)
	default:
		return fmt.Errorf("%w: unsupported output format %q", ErrInvalidInput, format)
	}
}

// renderReportNDJSON writes one summary record followed by one record per
// trace year.
func renderReportNDJSON(w io.Writer, report *engine.Report) error {
	enc := json.NewEncoder(w)

	summary := *report
	summary.Trace = nil
	if err := enc.Encode(struct {
		Type   string         `json:"type"`
		Report *engine.Report `json:"report"`
	}{ndjsonTypeReport, &summary}); err != nil {
		return err
	}

	for _, year := range report.Trace {
		if err := enc.Encode(struct {
			Type string `json:"type"`
			engine.YearCost
		}{ndjsonTypeTrace, year}); err != nil {
			return err
		}
	}
	return nil
}

// renderPlainReport writes the report as plain text for non-TTY output.
func renderPlainReport(w io.Writer, report *engine.Report, f tui.Formatter) error {
	var sb strings.Builder
	sb.WriteString(plainReportHeader + "\n")
	sb.WriteString(strings.Repeat("=", len(plainReportHeader)) + "\n")

	cur := string(report.Settings.Currency)
	for _, car := range []engine.Car{report.FuelCar, report.HybridCar} {
		fmt.Fprintf(&sb, "%-7s %s, %s, %s/km\n", car.Type()+":",
			f.WholeAmount(cur, car.Price()), car.Mileage(), f.Number(car.CostPerKm()))
	}

	for _, section := range tui.ReportSections(report, f) {
		sb.WriteString("\n" + section.Title + "\n")
		if section.Note != "" {
			sb.WriteString("  " + section.Note + "\n")
		}
		for _, m := range section.Metrics {
			fmt.Fprintf(&sb, "  %s: %s\n", m.Label, m.Value)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	if len(report.Trace) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nYear by year (fuel price per Liter, distance in km)\n"); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(tui.TraceColumns(), "\t")+"\t")
	for _, row := range tui.TraceRows(report, f) {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}
