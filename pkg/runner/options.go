// Package runner discovers Markdown files and runs the lint pipeline over
// them concurrently.
package runner

import "github.com/yaklabco/mdannotate/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with leading dot, that
	// count as Markdown. Empty means DefaultExtensions.
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories. The config ignore
	// list and --ignore flags both end up here.
	ExcludeGlobs []string

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool

	// Jobs is the worker count; zero or less means runtime.NumCPU.
	Jobs int

	// Config is the resolved configuration for the run.
	Config *config.Config
}

// DefaultExtensions returns the Markdown extensions discovered by default.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// OptionsFromConfig builds Options for paths from cfg, excluding the
// configured ignore globs.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg}
	if cfg != nil {
		opts.ExcludeGlobs = append(opts.ExcludeGlobs, cfg.Ignore...)
		opts.Jobs = cfg.Jobs
	}
	return opts
}
