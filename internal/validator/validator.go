package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/portrait/internal/runtime"
	"github.com/aretw0/portrait/pkg/domain"
)

// Report collects the findings of a graph check.
// Errors make the graph unusable for some path; warnings do not.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no errors were found.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

// Err folds the errors into a single error, or nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.Errors), strings.Join(r.Errors, "\n- "))
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Check walks every branch from its first shown question and reports broken
// links, dead ends and unreachable questions. entryBranches must exist.
func Check(g *domain.Graph, entryBranches []int) Report {
	var r Report

	if g.Len() == 0 {
		r.errorf("graph is empty")
		return r
	}
	for _, b := range entryBranches {
		if !g.HasBranch(b) {
			r.errorf("entry branch %d has no questions", b)
		}
	}

	for _, b := range g.Branches() {
		checkBranch(&r, g, b)
	}
	return r
}

// ValidateGraph is Check returning only the errors.
func ValidateGraph(g *domain.Graph, entryBranches []int) error {
	return Check(g, entryBranches).Err()
}

func checkBranch(r *Report, g *domain.Graph, branch int) {
	start := runtime.FirstQuestion(branch)
	if _, ok := g.Lookup(branch, start); !ok {
		r.errorf("branch %d: first question %d is missing", branch, start)
		return
	}

	visited := make(map[int]bool)
	queue := []int{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		q, ok := g.Lookup(branch, id)
		if !ok {
			continue
		}
		if len(q.Options) == 0 {
			r.errorf("branch %d question %d: no options, the user cannot answer", branch, id)
			continue
		}
		if runtime.IsTerminal(q) {
			continue
		}

		for _, opt := range q.Options {
			if strings.TrimSpace(opt.Label) == "" {
				r.warnf("branch %d question %d choice %d: empty label", branch, id, opt.Choice)
			}
			if opt.NextQ == nil {
				continue
			}
			target := *opt.NextQ
			if _, ok := g.Lookup(branch, target); !ok {
				r.errorf("branch %d question %d choice %d: next question %d does not exist", branch, id, opt.Choice, target)
				continue
			}
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	// Questions before the first shown one are intro nodes and never visited.
	for _, q := range g.Questions(branch) {
		if !visited[q.ID] && q.ID > start {
			r.warnf("branch %d question %d: unreachable", branch, q.ID)
		}
	}
}
