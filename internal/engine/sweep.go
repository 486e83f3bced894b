package engine

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/logging"
)

// SweepResult is the inflation-adjusted break-even at one yearly hike.
// Err is set instead of Breakeven when the scan hit its horizon.
type SweepResult struct {
	PctFuelPriceHike float64             `json:"pct_fuel_price_hike"`
	Breakeven        *InflationBreakeven `json:"breakeven,omitempty"`
	Err              error               `json:"-"`
}

// Sweep computes BreakevenWithInflation for every pct in pcts concurrently.
// Results keep the order of pcts. A result that exhausts its horizon is
// reported in its Err field; any other failure aborts the whole sweep.
func Sweep(ctx context.Context, s config.Settings, fuel, hybrid Car, pcts []float64) ([]SweepResult, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "Sweep").
		Logger()

	results := make([]SweepResult, len(pcts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, pct := range pcts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hiked, err := s.WithFuelPriceHike(pct)
			if err != nil {
				return err
			}

			result := SweepResult{PctFuelPriceHike: pct}
			b, err := BreakevenWithInflation(fuel, hybrid, hiked)
			switch {
			case err == nil:
				if b, err = inSessionUnits(b, hiked); err != nil {
					return err
				}
				result.Breakeven = &b
			case errors.Is(err, ErrInsufficientHorizon):
				result.Err = err
			default:
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug().Ctx(ctx).Int("points", len(results)).Msg("sweep complete")
	return results, nil
}
