package reporter

import (
	"cmp"
	"slices"

	"github.com/yaklabco/mdannotate/pkg/config"
	"github.com/yaklabco/mdannotate/pkg/runner"
)

// tally counts diagnostics by severity.
type tally struct {
	Issues   int
	Errors   int
	Warnings int
	Infos    int
}

func (t *tally) add(sev config.Severity) {
	t.Issues++
	switch sev {
	case config.SeverityError:
		t.Errors++
	case config.SeverityInfo:
		t.Infos++
	default:
		t.Warnings++
	}
}

type ruleTally struct {
	tally
	RuleID   string
	RuleName string
	Fixable  bool
}

type fileTally struct {
	tally
	Path string
}

// aggregate groups the diagnostics of result by rule and by file. Both
// lists are ordered by descending issue count, then by ID or path.
func aggregate(result *runner.Result, workDir string) ([]ruleTally, []fileTally) {
	byRule := make(map[string]*ruleTally)
	var files []fileTally

	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		ft := fileTally{Path: DisplayPath(file.Path, workDir)}
		for _, d := range file.Result.Diagnostics {
			ft.add(d.Severity)

			rt, ok := byRule[d.RuleID]
			if !ok {
				rt = &ruleTally{RuleID: d.RuleID, RuleName: d.RuleName}
				byRule[d.RuleID] = rt
			}
			rt.add(d.Severity)
			rt.Fixable = rt.Fixable || d.HasFix()
		}
		files = append(files, ft)
	}

	rules := make([]ruleTally, 0, len(byRule))
	for _, rt := range byRule {
		rules = append(rules, *rt)
	}

	slices.SortFunc(rules, func(a, b ruleTally) int {
		return cmp.Or(cmp.Compare(b.Issues, a.Issues), cmp.Compare(a.RuleID, b.RuleID))
	})
	slices.SortFunc(files, func(a, b fileTally) int {
		return cmp.Or(cmp.Compare(b.Issues, a.Issues), cmp.Compare(a.Path, b.Path))
	})
	return rules, files
}
