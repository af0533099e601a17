package domain

import (
	"fmt"
	"slices"
	"sort"
)

const (
	// DefaultEmoji decorates an option that does not declare its own.
	DefaultEmoji = "🔹"
	// DefaultPortrait is the tag used when the source omits the portrait column.
	DefaultPortrait = "universal worker"
)

// Option is a single answer choice of a Question.
type Option struct {
	Choice       int    `json:"choice" yaml:"choice"`
	Label        string `json:"label" yaml:"label"`
	Emoji        string `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	NextQ        *int   `json:"next_q,omitempty" yaml:"next,omitempty"`
	Confirmation string `json:"confirmation,omitempty" yaml:"confirmation,omitempty"`
	PortraitTag  string `json:"portrait_tag,omitempty" yaml:"portrait,omitempty"`
	Advice       string `json:"advice,omitempty" yaml:"advice,omitempty"`
	Description  string `json:"portrait_description,omitempty" yaml:"description,omitempty"`
}

// Question is a node of the questionnaire.
// Options keep the order in which they were declared.
type Question struct {
	Branch   int      `json:"branch" yaml:"-"`
	ID       int      `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	IsFinal  bool     `json:"is_final,omitempty" yaml:"final,omitempty"`
	MediaRef string   `json:"media_ref,omitempty" yaml:"media,omitempty"`
	Options  []Option `json:"options" yaml:"options"`
}

// Option returns the option registered under choice.
func (q Question) Option(choice int) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Choice == choice {
			return opt, true
		}
	}
	return Option{}, false
}

// HasMedia reports whether the question carries a media reference.
func (q Question) HasMedia() bool {
	return q.MediaRef != ""
}

// Graph is the immutable questionnaire indexed by branch and question id.
// It is safe for concurrent reads; no mutation is exposed after construction.
type Graph struct {
	branches map[int]map[int]Question
}

// NewGraph indexes the given questions. Duplicate (branch, id) pairs and
// duplicate choice ids inside one question are rejected.
func NewGraph(questions ...Question) (*Graph, error) {
	g := &Graph{branches: make(map[int]map[int]Question)}
	for _, q := range questions {
		qs, ok := g.branches[q.Branch]
		if !ok {
			qs = make(map[int]Question)
			g.branches[q.Branch] = qs
		}
		if _, dup := qs[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question %d in branch %d", q.ID, q.Branch)
		}
		seen := make(map[int]bool, len(q.Options))
		for _, opt := range q.Options {
			if seen[opt.Choice] {
				return nil, fmt.Errorf("duplicate choice %d in question %d of branch %d", opt.Choice, q.ID, q.Branch)
			}
			seen[opt.Choice] = true
		}
		q.Options = slices.Clone(q.Options)
		qs[q.ID] = q
	}
	return g, nil
}

// Lookup resolves a question. The returned value is a copy.
func (g *Graph) Lookup(branch, id int) (Question, bool) {
	if g == nil {
		return Question{}, false
	}
	q, ok := g.branches[branch][id]
	if !ok {
		return Question{}, false
	}
	q.Options = slices.Clone(q.Options)
	return q, true
}

// HasBranch reports whether the branch has at least one question.
func (g *Graph) HasBranch(branch int) bool {
	if g == nil {
		return false
	}
	return len(g.branches[branch]) > 0
}

// Branches returns branch ids in ascending order.
func (g *Graph) Branches() []int {
	if g == nil {
		return nil
	}
	ids := make([]int, 0, len(g.branches))
	for id := range g.branches {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Questions returns the questions of a branch ordered by id.
func (g *Graph) Questions(branch int) []Question {
	if g == nil {
		return nil
	}
	qs := g.branches[branch]
	ids := make([]int, 0, len(qs))
	for id := range qs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Question, 0, len(ids))
	for _, id := range ids {
		q := qs[id]
		q.Options = slices.Clone(q.Options)
		out = append(out, q)
	}
	return out
}

// Walk visits every option in a fixed order: branch ascending, question
// ascending, choice ascending. Returning false stops the walk.
func (g *Graph) Walk(fn func(q Question, opt Option) bool) {
	for _, b := range g.Branches() {
		for _, q := range g.Questions(b) {
			opts := slices.Clone(q.Options)
			sort.SliceStable(opts, func(i, j int) bool { return opts[i].Choice < opts[j].Choice })
			for _, opt := range opts {
				if !fn(q, opt) {
					return
				}
			}
		}
	}
}

// Len returns the total number of questions.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, qs := range g.branches {
		n += len(qs)
	}
	return n
}

// Next returns a pointer suitable for Option.NextQ.
func Next(id int) *int {
	return &id
}
