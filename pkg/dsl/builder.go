package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/portrait/pkg/adapters/memory"
	"github.com/aretw0/portrait/pkg/domain"
)

type key struct{ branch, id int }

// Builder manages the graph construction.
type Builder struct {
	questions map[key]*QuestionBuilder
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		questions: make(map[key]*QuestionBuilder),
	}
}

// Question adds a question to a branch.
// If the question already exists, it returns the existing builder.
func (b *Builder) Question(branch, id int, text string) *QuestionBuilder {
	k := key{branch, id}
	if qb, ok := b.questions[k]; ok {
		return qb
	}
	qb := &QuestionBuilder{
		question: domain.Question{Branch: branch, ID: id, Text: text},
		builder:  b,
	}
	b.questions[k] = qb
	return qb
}

func (b *Builder) questionList() []domain.Question {
	keys := make([]key, 0, len(b.questions))
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
		out = append(out, b.questions[k].question)
	}
	return out
}

// Build compiles the graph into a memory loader.
func (b *Builder) Build() *memory.Loader {
	return memory.NewLoader(b.questionList()...)
}

// Graph compiles the graph directly.
func (b *Builder) Graph() (*domain.Graph, error) {
	g, err := domain.NewGraph(b.questionList()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	return g, nil
}

// MustGraph is Graph for static fixtures; it panics on error.
func (b *Builder) MustGraph() *domain.Graph {
	g, err := b.Graph()
	if err != nil {
		panic(err)
	}
	return g
}
