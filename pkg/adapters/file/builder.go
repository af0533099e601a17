package file

import (
	"fmt"
	"sort"

	"github.com/aretw0/portrait/pkg/domain"
)

type questionKey struct{ branch, id int }

// graphBuilder accumulates questions row by row. The first row of a question
// defines its text and final flag; a repeated choice replaces the earlier one
// in place.
type graphBuilder struct {
	questions map[questionKey]*domain.Question
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{questions: make(map[questionKey]*domain.Question)}
}

func (b *graphBuilder) add(branch, id int, text string, final bool, opt *domain.Option) (replaced bool) {
	k := questionKey{branch, id}
	q, ok := b.questions[k]
	if !ok {
		q = &domain.Question{Branch: branch, ID: id, Text: text, IsFinal: final}
		b.questions[k] = q
	}
	if opt == nil {
		return false
	}
	for i := range q.Options {
		if q.Options[i].Choice == opt.Choice {
			q.Options[i] = *opt
			return true
		}
	}
	q.Options = append(q.Options, *opt)
	return false
}

func (b *graphBuilder) graph(s settings) (*domain.Graph, error) {
	keys := make([]questionKey, 0, len(b.questions))
	for k := range b.questions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].branch != keys[j].branch {
			return keys[i].branch < keys[j].branch
		}
		return keys[i].id < keys[j].id
	})

	out := make([]domain.Question, 0, len(keys))
	for _, k := range keys {
		out = append(out, *b.questions[k])
	}
	return buildGraph(out, s)
}

// buildGraph attaches media and indexes the questions.
func buildGraph(questions []domain.Question, s settings) (*domain.Graph, error) {
	for i := range questions {
		if questions[i].MediaRef == "" && s.media != nil {
			questions[i].MediaRef = s.media.Resolve(questions[i].ID)
		}
	}

	g, err := domain.NewGraph(questions...)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	s.logger.Debug("graph loaded", "branches", len(g.Branches()), "questions", g.Len())
	return g, nil
}
