package ports

import (
	"context"

	"github.com/aretw0/portrait/pkg/domain"
)

// GraphLoader produces a fully populated question graph.
type GraphLoader interface {
	Load(ctx context.Context) (*domain.Graph, error)
}

// TextsLoader overrides entries of the texts catalogue.
type TextsLoader interface {
	LoadTexts(ctx context.Context, base domain.Texts) (domain.Texts, error)
}

// MediaResolver optionally supplies a media reference for a question id.
// An empty string means "no media".
type MediaResolver interface {
	Resolve(questionID int) string
}

// FeedSummarizer supplies the opaque feed block appended to the final result.
// Failures are reported, and callers substitute an empty block.
type FeedSummarizer interface {
	Summary(ctx context.Context) (string, error)
}
