package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover returns the sorted, de-duplicated absolute paths of the Markdown
// files selected by opts. Explicitly named files are only checked against
// the extension and glob filters; directories are walked, skipping hidden
// entries.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(abs string) {
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.file(abs) {
				add(abs)
			}
			continue
		}

		found, err := walk(ctx, abs, m, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func walk(ctx context.Context, root string, m *matcher, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (p != root && m.excludedDir(p)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(p)
			if err != nil {
				// Broken link.
				return nil //nolint:nilerr // unreadable links are not an error
			}
			if target.IsDir() {
				if !followSymlinks {
					return nil
				}
				// WalkDir does not follow links, so walk the resolved target.
				resolved, err := filepath.EvalSymlinks(p)
				if err != nil {
					return nil //nolint:nilerr // see above
				}
				sub, err := walk(ctx, resolved, m, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.file(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matcher applies the extension and glob filters to absolute paths.
type matcher struct {
	workDir    string
	extensions []string
	include    []pattern
	exclude    []pattern
}

// pattern is a compiled glob. Patterns without a slash also match the base
// name, so "*.md" selects files at any depth. A "**/" segment may also match
// no directories at all.
type pattern struct {
	globs []glob.Glob
	base  bool
}

func compilePatterns(raw []string) ([]pattern, error) {
	out := make([]pattern, 0, len(raw))
	for _, r := range raw {
		r = filepath.ToSlash(r)
		p := pattern{base: !strings.Contains(r, "/")}
		for _, variant := range globVariants(r) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", r, err)
			}
			p.globs = append(p.globs, g)
		}
		out = append(out, p)
	}
	return out, nil
}

// globVariants returns r plus the forms with zero-directory "**/" segments
// removed.
func globVariants(r string) []string {
	variants := []string{r}
	if strings.Contains(r, "/**/") {
		variants = append(variants, strings.ReplaceAll(r, "/**/", "/"))
	}
	if rest, ok := strings.CutPrefix(r, "**/"); ok {
		variants = append(variants, rest)
	}
	return variants
}

func (p pattern) match(rel string) bool {
	for _, g := range p.globs {
		if g.Match(rel) || (p.base && g.Match(path.Base(rel))) {
			return true
		}
	}
	return false
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}
	return &matcher{
		workDir:    workDir,
		extensions: opts.extensions(),
		include:    include,
		exclude:    exclude,
	}, nil
}

func (m *matcher) rel(p string) string {
	rel, err := filepath.Rel(m.workDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// excludedDir reports whether a directory is excluded. "dir/**" patterns
// prune the directory itself.
func (m *matcher) excludedDir(p string) bool {
	rel := m.rel(p)
	return matchAny(rel, m.exclude) || matchAny(rel+"/", m.exclude)
}

func (m *matcher) file(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	if !slices.ContainsFunc(m.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}

	rel := m.rel(p)
	if matchAny(rel, m.exclude) {
		return false
	}
	return len(m.include) == 0 || matchAny(rel, m.include)
}

func matchAny(rel string, patterns []pattern) bool {
	return slices.ContainsFunc(patterns, func(p pattern) bool { return p.match(rel) })
}
