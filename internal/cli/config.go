package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/breakeven/internal/config"
)

const projectConfigFile = "config.yaml"

// NewConfigInitCmd creates the config init command for initializing configuration.
// When a project .breakeven/ directory was resolved (and --global is not set),
// it writes the project-local config.yaml. Otherwise, it writes the user
// config file.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a directory tree holding a .breakeven/ directory (or with --project-dir),
creates the project-local $PROJECT/.breakeven/config.yaml. Use --global to write
$BREAKEVEN_HOME/config.yaml instead.`,
		Example: `  # Create the user configuration
  breakeven config init --global

  # Create project-local configuration
  breakeven config init --project-dir .

  # Create configuration, overwriting existing
  breakeven config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := initTargetPath(global)
			if err != nil {
				return err
			}
			return writeDefaultConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "write the user config even inside a project")

	return cmd
}

func initTargetPath(global bool) (string, error) {
	if projectDir := config.GetResolvedProjectDir(); projectDir != "" && !global {
		return filepath.Join(projectDir, projectConfigFile), nil
	}
	return config.FilePath()
}

func writeDefaultConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration as YAML.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after merging the user config file, the project
overlay and environment variables. Listed regions are only those overridden in
configuration; see "breakeven defaults" for the full table.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			for _, path := range cfg.LoadedFrom() {
				cmd.Printf("# loaded from %s\n", path)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userPath, err := config.FilePath()
			if err != nil {
				return err
			}
			cmd.Printf("user:    %s\n", userPath)
			if projectDir := config.GetResolvedProjectDir(); projectDir != "" {
				cmd.Printf("project: %s\n", filepath.Join(projectDir, projectConfigFile))
			}
			return nil
		},
	}
}
