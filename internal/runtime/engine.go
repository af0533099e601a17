package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/portrait/pkg/domain"
)

// Engine is the questionnaire state machine.
// It holds no per-user state: every transition takes a session and returns
// a new one, leaving the input untouched.
type Engine struct {
	graph         *domain.Graph
	texts         domain.Texts
	entryBranches []int
	interstitial  bool
	subscribeURL  string
	welcomeMedia  string
	logger        *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithTexts sets the texts catalogue.
func WithTexts(texts domain.Texts) EngineOption {
	return func(e *Engine) {
		e.texts = texts
	}
}

// WithEntryBranches sets the branches offered on the welcome screen.
func WithEntryBranches(branches ...int) EngineOption {
	return func(e *Engine) {
		e.entryBranches = branches
	}
}

// WithInterstitial enables or disables the one-shot interstitial.
func WithInterstitial(enabled bool) EngineOption {
	return func(e *Engine) {
		e.interstitial = enabled
	}
}

// WithSubscribeURL sets the link offered by the interstitial.
func WithSubscribeURL(url string) EngineOption {
	return func(e *Engine) {
		e.subscribeURL = url
	}
}

// WithWelcomeMedia sets the media shown with the welcome caption.
func WithWelcomeMedia(ref string) EngineOption {
	return func(e *Engine) {
		e.welcomeMedia = ref
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine over an immutable graph.
func NewEngine(graph *domain.Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:         graph,
		texts:         domain.DefaultTexts(),
		entryBranches: []int{introBranch},
		interstitial:  true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the engine walks.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Texts returns the texts catalogue in use.
func (e *Engine) Texts() domain.Texts {
	return e.texts
}
