package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/portrait/pkg/domain"
)

// Loader implements ports.GraphLoader over questions held in memory.
type Loader struct {
	questions []domain.Question
}

// NewLoader creates a loader that indexes the given questions on Load.
func NewLoader(questions ...domain.Question) *Loader {
	return &Loader{questions: questions}
}

// Load builds the graph.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	g, err := domain.NewGraph(l.questions...)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	return g, nil
}
