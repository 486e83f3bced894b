package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the breakeven CLI.
// It loads configuration, wires up logging and tracing, and registers the
// calc, sweep, convert, defaults, config and version subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
		projectDir string
	)

	cmd := &cobra.Command{
		Use:           "breakeven",
		Short:         "Hybrid vs fuel car break-even calculator",
		Long:          "breakeven: find the distance and time at which a hybrid's fuel savings pay back its price premium",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, configPath, projectDir); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $BREAKEVEN_HOME/config.yaml)")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"directory holding a project .breakeven/config.yaml (default: search upwards from the working directory)")

	cmd.AddCommand(
		NewCalcCmd(), NewSweepCmd(), NewConvertCmd(), NewDefaultsCmd(),
		newConfigCmd(), NewVersionCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Break-even with the Australian defaults
  breakeven calc

  # Simulate a 5% yearly fuel price increase with a year-by-year trace
  breakeven calc --hike-pct 5 --trace

  # Compare several yearly increases at once
  breakeven sweep --pcts 0,2.5,5,10

  # Convert 35 MPG (US) to L/100km
  breakeven convert mileage 35 "MPG (US)" L/100km

  # Show the per-currency defaults
  breakeven defaults

  # Initialize configuration
  breakeven config init`

// loadConfig builds the global config from --config (or the user config
// file), applies any project overlay and validates the result.
func loadConfig(cmd *cobra.Command, configPath, projectFlag string) error {
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("%w: loading config: %w", ErrInvalidInput, err)
		}
		cfg = loaded
	} else {
		cfg = config.New()
	}

	wd, _ := os.Getwd()
	projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, wd)
	config.SetResolvedProjectDir(projectDir)
	cfg = config.NewWithProjectDir(cmd.Context(), cfg, projectDir)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigPathCmd())
	return cmd
}
