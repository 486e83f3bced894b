package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/engine"
	"github.com/rshade/breakeven/internal/units"
)

func testReport(t *testing.T, hike bool) *engine.Report {
	t.Helper()
	region, err := config.MergeRegions(nil).Lookup(config.AUD)
	require.NoError(t, err)
	s, err := config.NewSettings(config.AUD, region, config.SettingsInput{SimFuelPriceHike: hike})
	require.NoError(t, err)

	fuel, err := engine.NewCar(engine.TypeFuel, region.FuelCarPrice,
		units.Mileage{Value: region.FuelCarMileage, Unit: s.MileageUnit}, s.FuelPrice)
	require.NoError(t, err)
	hybrid, err := engine.NewCar(engine.TypeHybrid, region.HybridCarPrice,
		units.Mileage{Value: region.HybridMileage, Unit: s.MileageUnit}, s.FuelPrice)
	require.NoError(t, err)

	report, err := engine.Analyze(context.Background(), s, fuel, hybrid, engine.AnalyzeOptions{Trace: hike})
	require.NoError(t, err)
	return report
}

func TestFormatter(t *testing.T) {
	f := NewFormatter(2)
	assert.Equal(t, "AUD 5,000.00", f.Amount("AUD", 5000))
	assert.Equal(t, "INR 250,000", f.WholeAmount("INR", 250_000))
	assert.Equal(t, "125,000 km", f.Distance(units.Distance{Value: 125_000, Unit: units.Kilometers}))
	assert.Equal(t, "2,500.00 Liter", f.Fuel(units.FuelQuantity{Value: 2500, Unit: units.Liter}))
	assert.Equal(t, "USD 3.10 / US Gal", f.Price("USD", units.FuelPrice{Value: 3.1, PerUnit: units.USGallon}))
	assert.Equal(t, "8.3 years", f.Years(8.3))
	assert.Equal(t, "0", NewFormatter(-1).Number(0.4))
}

func TestReportSections(t *testing.T) {
	f := NewFormatter(2)

	t.Run("static only", func(t *testing.T) {
		sections := ReportSections(testReport(t, false), f)
		require.Len(t, sections, 2)
		assert.Equal(t, "Outcome", sections[0].Title)
		assert.Equal(t, Metric{"Price difference", "AUD 5,000"}, sections[0].Metrics[0])
		assert.Contains(t, sections[0].Metrics, Metric{"Enough to drive", "41,675 km"})

		assert.Equal(t, "If fuel price remains unchanged at AUD 2.00 / Liter", sections[1].Title)
		assert.Equal(t, Metric{"Break-even at", "125,000 km"}, sections[1].Metrics[0])
		assert.Equal(t, Metric{"At 15,000 km per year, break-even in", "8.3 years"}, sections[1].Metrics[1])
	})

	t.Run("with hike", func(t *testing.T) {
		sections := ReportSections(testReport(t, true), f)
		require.Len(t, sections, 3)
		assert.Equal(t, "If fuel price increases 2.5% per year", sections[2].Title)
		assert.Len(t, sections[2].Metrics, 3)
	})

	t.Run("already ahead", func(t *testing.T) {
		sections := ReportSections(&engine.Report{AlreadyAhead: true}, f)
		require.Len(t, sections, 1)
		assert.Equal(t, AlreadyAheadMessage, sections[0].Note)
		assert.Empty(t, sections[0].Metrics)
	})

	t.Run("no payback", func(t *testing.T) {
		r := testReport(t, false)
		r.NoPayback = true
		r.Static = nil

		sections := ReportSections(r, f)
		require.Len(t, sections, 1)
		assert.Equal(t, NoPaybackMessage, sections[0].Note)
		assert.NotEmpty(t, sections[0].Metrics, "price difference is still shown")

		out := RenderReport(r, f, 160)
		assert.Contains(t, out, IconCross)
		assert.NotContains(t, out, "Break-even at")
	})
}

func TestRenderReport(t *testing.T) {
	f := NewFormatter(2)
	out := RenderReport(testReport(t, true), f, 100)
	assert.Contains(t, out, reportTitle)
	assert.Contains(t, out, "125,000 km")
	assert.Contains(t, out, "Year by year")
	assert.Contains(t, out, "Savings")

	assert.Contains(t, RenderReport(nil, f, 80), "No report available")
}

func TestTraceRows(t *testing.T) {
	report := testReport(t, true)
	rows := TraceRows(report, NewFormatter(2))
	require.Len(t, rows, len(report.Trace))
	assert.Len(t, rows[0], len(TraceColumns()))
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "2.00", rows[0][1])
	assert.Equal(t, "15,000.00", rows[0][2])
}

func TestDetectOutputMode(t *testing.T) {
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, false, true))
	assert.Equal(t, OutputModePlain, DetectOutputMode(false, true, false))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, OutputModePlain, DetectOutputMode(false, false, true))
}

func testFields() []Field {
	return []Field{
		{Key: "fuel-price", Label: "Fuel price", Value: "2.00"},
		{Key: "hybrid-price", Label: "Hybrid price", Value: "45000"},
	}
}

func typeText(m *BreakevenModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestBreakevenModel(t *testing.T) {
	ctx := context.Background()

	t.Run("initial state", func(t *testing.T) {
		m := NewBreakevenModel(ctx, testFields(), nil, NewFormatter(2), nil)
		assert.Equal(t, FormStateEditing, m.state)
		assert.Equal(t, 0, m.focused)
		assert.Empty(t, m.GetOverrides())
		assert.Nil(t, m.GetReport())
		assert.NotNil(t, m.Init())
	})

	t.Run("navigation wraps", func(t *testing.T) {
		m := NewBreakevenModel(ctx, testFields(), nil, NewFormatter(2), nil)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, 1, m.focused)
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 0, m.focused)
		m.Update(tea.KeyMsg{Type: tea.KeyUp})
		assert.Equal(t, 1, m.focused)
	})

	t.Run("edits become overrides", func(t *testing.T) {
		m := NewBreakevenModel(ctx, testFields(), nil, NewFormatter(2), nil)
		typeText(m, "5")
		assert.Equal(t, map[string]string{"fuel-price": "2.005"}, m.GetOverrides())
	})

	t.Run("enter recalculates", func(t *testing.T) {
		want := testReport(t, false)
		var got map[string]string
		fn := func(_ context.Context, overrides map[string]string) (*engine.Report, error) {
			got = overrides
			return want, nil
		}

		m := NewBreakevenModel(ctx, testFields(), nil, NewFormatter(2), fn)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		typeText(m, "0")
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		assert.Equal(t, FormStateCalculating, m.state)
		assert.Contains(t, m.View(), "Calculating")

		m.Update(cmd())
		assert.Equal(t, FormStateEditing, m.state)
		assert.Equal(t, map[string]string{"hybrid-price": "450000"}, got)
		assert.Same(t, want, m.GetReport())
		assert.Contains(t, m.View(), "125,000 km")
	})

	t.Run("recalculation error keeps last report", func(t *testing.T) {
		initial := testReport(t, false)
		fn := func(context.Context, map[string]string) (*engine.Report, error) {
			return nil, errors.New("fuel price must be > 0")
		}

		m := NewBreakevenModel(ctx, testFields(), initial, NewFormatter(2), fn)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		m.Update(cmd())

		require.Error(t, m.Err())
		assert.Same(t, initial, m.GetReport())
		assert.Contains(t, m.View(), "fuel price must be > 0")
	})

	t.Run("quit", func(t *testing.T) {
		m := NewBreakevenModel(ctx, testFields(), nil, NewFormatter(2), nil)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.Equal(t, FormStateQuitting, m.state)
		assert.Empty(t, m.View())
	})

	t.Run("window size", func(t *testing.T) {
		m := NewBreakevenModel(ctx, nil, nil, NewFormatter(2), nil)
		m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		assert.Equal(t, 120, m.width)
		assert.Nil(t, m.moveFocus(1))
	})
}
