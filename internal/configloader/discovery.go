package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths. Missing
// files are empty strings.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/mdannotate/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/mdannotate/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.mdannotate.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// appName names the config directories and files.
const appName = "mdannotate"

// ProjectConfigFiles are the project config names, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".mdannotate.yml",
	".mdannotate.yaml",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations:
//   - System config at /etc/mdannotate/config.{yaml,yml}
//   - User config at $XDG_CONFIG_HOME/mdannotate/config.{yaml,yml}
//   - Project config by searching upward from workDir
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  findSystemConfig(),
		User:    findUserConfig(),
		Project: project,
	}, nil
}

func findSystemConfig() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return findConfigInDir(filepath.Join(programData, appName))
	}
	return findConfigInDir(filepath.Join("/etc", appName))
}

func findUserConfig() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return findConfigInDir(dir)
}

// UserConfigDir returns $XDG_CONFIG_HOME/mdannotate, falling back to
// ~/.config/mdannotate. It returns "" when no home directory is known.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName)
}

// findConfigInDir returns the first config.{yaml,yml} in dir, or "".
func findConfigInDir(dir string) string {
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// It stops at a VCS root, the home directory or the filesystem root, and
// returns "" when nothing is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range ProjectConfigFiles {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(dir) || (homeDir != "" && dir == homeDir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
