package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/breakeven/internal/logging"
)

//nolint:gochecknoglobals // Set once per command invocation by the CLI.
var (
	resolvedProjectDir   string
	resolvedProjectDirMu sync.RWMutex
)

// SetResolvedProjectDir records the project directory resolved for the
// current command so subcommands such as "config init" can target it.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the directory recorded by SetResolvedProjectDir.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .breakeven directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. BREAKEVEN_PROJECT_DIR env var
//  3. walking up from startDir looking for a .breakeven directory
//
// Returns the path to the .breakeven directory or empty string if none is found.
// Does NOT create the directory. The returned path is absolute (or empty).
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv("BREAKEVEN_PROJECT_DIR"); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	return findProjectDir(ctx, startDir)
}

// NewWithProjectDir shallow-merges the project-local config.yaml on top of
// base. If projectDir is empty or holds no config file, base is returned
// unchanged.
func NewWithProjectDir(ctx context.Context, base *Config, projectDir string) *Config {
	if projectDir == "" {
		return base
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if !Exists(overlayPath) {
		return base
	}

	merged := *base
	merged.loadedFrom = base.LoadedFrom()
	if err := merged.mergeFile(overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return base
	}
	merged.applyEnv()

	return &merged
}

// findProjectDir walks up from startDir to the filesystem root and returns
// the first .breakeven directory found, skipping the user config directory.
func findProjectDir(ctx context.Context, startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := toAbsDir(ctx, startDir)
	userDir, _ := GetConfigDir()

	for {
		candidate := filepath.Join(dir, configDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() && candidate != userDir {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// toAbsProjectDir converts dir to an absolute path and appends ".breakeven".
// If the path already ends with ".breakeven", it is returned as-is.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs := toAbsDir(ctx, dir)
	if filepath.Base(abs) == configDirName {
		return abs
	}
	return filepath.Join(abs, configDirName)
}

func toAbsDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		return dir
	}
	return abs
}
