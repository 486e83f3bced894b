package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/units"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BREAKEVEN_LOG_LEVEL", "BREAKEVEN_LOG_FORMAT", "BREAKEVEN_OUTPUT",
		"BREAKEVEN_CURRENCY", "BREAKEVEN_PROJECT_DIR",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("BREAKEVEN_HOME", t.TempDir())
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, config.OutputTable, cfg.Output.DefaultFormat)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, config.AUD, cfg.Defaults.Currency)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	t.Run("partial section keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "output:\n  precision: 3\n")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Output.Precision)
		assert.Equal(t, config.OutputTable, cfg.Output.DefaultFormat)
		assert.Equal(t, []string{path}, cfg.LoadedFrom())
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "plugins:\n  foo: bar\ndefaults:\n  currency: usd\n")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, config.Currency("usd"), cfg.Defaults.Currency)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "output: [unterminated\n")
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing overlay YAML")
	})

	t.Run("invalid output format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "output:\n  default_format: xml\n")
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output.default_format")
	})

	t.Run("unknown default currency", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "defaults:\n  currency: JPY\n")
		_, err := config.Load(path)
		require.ErrorIs(t, err, config.ErrUnknownCurrency)
	})
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BREAKEVEN_LOG_LEVEL", "debug")
	t.Setenv("BREAKEVEN_LOG_FORMAT", "json")
	t.Setenv("BREAKEVEN_OUTPUT", "ndjson")
	t.Setenv("BREAKEVEN_CURRENCY", "inr")

	cfg := config.New()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, config.OutputNDJSON, cfg.Output.DefaultFormat)
	assert.Equal(t, config.INR, cfg.Defaults.Currency)
}

func TestNewReadsUserConfig(t *testing.T) {
	clearEnv(t)
	home := os.Getenv("BREAKEVEN_HOME")
	writeFile(t, filepath.Join(home, "config.yaml"), "logging:\n  level: warn\n")

	cfg := config.New()
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.Output.DefaultFormat = config.OutputJSON
	cfg.Defaults.Currency = config.GBP
	require.NoError(t, cfg.Save(path))
	assert.True(t, config.Exists(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.OutputJSON, loaded.Output.DefaultFormat)
	assert.Equal(t, config.GBP, loaded.Defaults.Currency)
}

func TestRegionOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `regions:
  aud:
    fuel_price: 2.35
    mileage_unit: km/L
  nzd:
    fuel_price: 2.9
    fuel_unit: Liter
    mileage_unit: L/100km
    distance_unit: km
    annual_distance: 12000
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	table := cfg.RegionTable()

	aud, err := table.Lookup(config.AUD)
	require.NoError(t, err)
	assert.InDelta(t, 2.35, aud.FuelPrice, 1e-9)
	assert.Equal(t, units.KMPL, aud.MileageUnit)
	// Fields the file does not name keep their built-in values.
	assert.InDelta(t, 45_000.0, aud.HybridCarPrice, 1e-9)
	assert.InDelta(t, 15_000.0, aud.AnnualDistance, 1e-9)

	nzd, err := table.Lookup("nzd")
	require.NoError(t, err)
	assert.InDelta(t, 12_000.0, nzd.AnnualDistance, 1e-9)

	usd, err := table.Lookup(config.USD)
	require.NoError(t, err)
	assert.Equal(t, units.USGallon, usd.FuelUnit)

	assert.Equal(t, []config.Currency{"AUD", "GBP", "INR", "NZD", "USD"}, table.Currencies())
}

func TestRegionOverridesRejectUnknownUnit(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "regions:\n  aud:\n    fuel_unit: barrel\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region AUD")
}

func TestLookupUnknownCurrency(t *testing.T) {
	_, err := config.MergeRegions(nil).Lookup("JPY")
	require.ErrorIs(t, err, config.ErrUnknownCurrency)
	assert.Contains(t, err.Error(), "AUD, GBP, INR, USD")
}

func TestBuiltinRegions(t *testing.T) {
	table := config.MergeRegions(nil)
	tests := []struct {
		currency config.Currency
		price    float64
		fuelUnit units.FuelUnit
		mileage  units.MileageUnit
		distance units.DistanceUnit
	}{
		{config.AUD, 2.0, units.Liter, units.L100KM, units.Kilometers},
		{config.INR, 101, units.Liter, units.KMPL, units.Kilometers},
		{config.USD, 3.1, units.USGallon, units.MPGUS, units.Miles},
		{config.GBP, 1.7, units.Liter, units.MPGUS, units.Miles},
	}
	for _, tt := range tests {
		t.Run(string(tt.currency), func(t *testing.T) {
			region, err := table.Lookup(tt.currency)
			require.NoError(t, err)
			assert.InDelta(t, tt.price, region.FuelPrice, 1e-9)
			assert.Equal(t, tt.fuelUnit, region.FuelUnit)
			assert.Equal(t, tt.mileage, region.MileageUnit)
			assert.Equal(t, tt.distance, region.DistanceUnit)
			assert.InDelta(t, 15_000.0, region.AnnualDistance, 1e-9)
			assert.InDelta(t, config.DefaultPctFuelPriceHike, region.PctFuelPriceHike, 1e-9)
			assert.Greater(t, region.HybridCarPrice, region.FuelCarPrice)
		})
	}
}

func TestProjectOverlay(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()

	root := t.TempDir()
	projectDir := filepath.Join(root, ".breakeven")
	writeFile(t, filepath.Join(projectDir, "config.yaml"), "output:\n  default_format: json\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o700))

	t.Run("found by walking up", func(t *testing.T) {
		assert.Equal(t, projectDir, config.ResolveProjectDir(ctx, "", nested))
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv("BREAKEVEN_PROJECT_DIR", filepath.Join(root, "elsewhere"))
		assert.Equal(t, projectDir, config.ResolveProjectDir(ctx, root, nested))
		assert.Equal(t, filepath.Join(root, "elsewhere", ".breakeven"), config.ResolveProjectDir(ctx, "", nested))
	})

	t.Run("merged onto base", func(t *testing.T) {
		base := config.Default()
		merged := config.NewWithProjectDir(ctx, base, projectDir)
		assert.Equal(t, config.OutputJSON, merged.Output.DefaultFormat)
		assert.Equal(t, config.OutputTable, base.Output.DefaultFormat)
		assert.Equal(t, []string{filepath.Join(projectDir, "config.yaml")}, merged.LoadedFrom())
	})

	t.Run("no overlay keeps base", func(t *testing.T) {
		base := config.Default()
		assert.Same(t, base, config.NewWithProjectDir(ctx, base, ""))
		assert.Same(t, base, config.NewWithProjectDir(ctx, base, filepath.Join(root, "none")))
	})

	t.Run("malformed overlay keeps base", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), ".breakeven")
		writeFile(t, filepath.Join(bad, "config.yaml"), "output: [\n")
		base := config.Default()
		assert.Same(t, base, config.NewWithProjectDir(ctx, base, bad))
	})
}

func TestGlobalConfig(t *testing.T) {
	clearEnv(t)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	assert.Equal(t, config.OutputTable, config.GetDefaultOutputFormat())
	assert.Equal(t, 2, config.GetOutputPrecision())
	assert.Equal(t, config.AUD, config.GetDefaultCurrency())

	cfg := config.Default()
	cfg.Defaults.Currency = config.USD
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "breakeven.log")
	config.SetGlobalConfig(cfg)
	assert.Equal(t, config.USD, config.GetDefaultCurrency())

	require.NoError(t, config.EnsureLogDir())
	assert.DirExists(t, filepath.Dir(cfg.Logging.File))

	lc := config.GetLoggingConfig()
	logCfg := lc.ToLoggingConfig()
	assert.Equal(t, "file", logCfg.Output)
	assert.Equal(t, cfg.Logging.File, logCfg.File)
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("BREAKEVEN_HOME", "/tmp/custom-breakeven")
	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-breakeven", dir)

	path, err := config.FilePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-breakeven/config.yaml", path)
}

func TestResolvedProjectDir(t *testing.T) {
	t.Cleanup(func() { config.SetResolvedProjectDir("") })
	assert.Empty(t, config.GetResolvedProjectDir())
	config.SetResolvedProjectDir("/work/.breakeven")
	assert.Equal(t, "/work/.breakeven", config.GetResolvedProjectDir())
}
