package portrait

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/portrait/internal/runtime"
	"github.com/aretw0/portrait/pkg/adapters/memory"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/ports"
)

// Engine is the high-level entry point of the library.
// It owns the session store and turns user events into views.
type Engine struct {
	runtime     *runtime.Engine
	runtimeOpts []runtime.EngineOption
	store       ports.SessionStore
	feed        ports.FeedSummarizer
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore replaces the default in-memory session store.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithFeed attaches a summarizer whose output is appended to results.
func WithFeed(feed ports.FeedSummarizer) Option {
	return func(e *Engine) {
		e.feed = feed
	}
}

// WithTexts overrides the user-facing texts.
func WithTexts(texts domain.Texts) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithTexts(texts))
	}
}

// WithEntryBranches sets the branches offered on the welcome screen (default: 1).
func WithEntryBranches(branches ...int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithEntryBranches(branches...))
	}
}

// WithInterstitial enables or disables the screen shown before the first result.
func WithInterstitial(enabled bool) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithInterstitial(enabled))
	}
}

// WithSubscribeURL sets the link offered on the interstitial.
func WithSubscribeURL(url string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithSubscribeURL(url))
	}
}

// WithWelcomeMedia sets the media sent with the welcome caption.
func WithWelcomeMedia(ref string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithWelcomeMedia(ref))
	}
}

// New initializes an Engine over a loaded graph.
func New(graph *domain.Graph, opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	runtimeOpts := append([]runtime.EngineOption{runtime.WithLogger(eng.logger)}, eng.runtimeOpts...)
	eng.runtime = runtime.NewEngine(graph, runtimeOpts...)
	return eng
}

// Load reads the graph from loader and initializes an Engine over it.
func Load(ctx context.Context, loader ports.GraphLoader, opts ...Option) (*Engine, error) {
	graph, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	return New(graph, opts...), nil
}

// Graph returns the question graph the engine walks.
func (e *Engine) Graph() *domain.Graph {
	return e.runtime.Graph()
}

// Texts returns the texts catalogue in use.
func (e *Engine) Texts() domain.Texts {
	return e.runtime.Texts()
}

// Store returns the session store.
func (e *Engine) Store() ports.SessionStore {
	return e.store
}

// Handle processes one user event and returns the view to display.
//
// Navigation failures are returned as *domain.Error. When the error resets
// the conversation the user's session has already been dropped and the host
// should offer Start again. Other errors come from the store.
//
// Handle does not serialize calls for the same user; transports do that
// with session.Manager.
func (e *Engine) Handle(ctx context.Context, userID string, ev domain.Event) (domain.View, error) {
	if ev.Type == domain.EventStart || ev.Type == domain.EventRestart {
		return e.welcome(ctx, userID, ev)
	}

	current, err := e.store.Get(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return domain.View{}, fmt.Errorf("failed to load session %s: %w", userID, err)
	}

	next, view, err := e.runtime.Apply(userID, current, ev)
	if err != nil {
		return view, e.fail(ctx, userID, ev, err)
	}

	if ev.Type == domain.EventAnswer && current != nil {
		e.emitAnswer(ctx, userID, current, ev, view)
	}

	if next.Status == domain.StatusFinished {
		if err := e.store.Remove(ctx, userID); err != nil {
			return domain.View{}, fmt.Errorf("failed to drop session %s: %w", userID, err)
		}
	} else if err := e.store.Put(ctx, userID, next); err != nil {
		return domain.View{}, fmt.Errorf("failed to save session %s: %w", userID, err)
	}

	switch view.Kind {
	case domain.ViewQuestion:
		if e.hooks.OnQuestion != nil {
			e.hooks.OnQuestion(ctx, &domain.QuestionEvent{
				UserID:   userID,
				Branch:   view.Question.Branch,
				Question: view.Question.Question,
			})
		}
	case domain.ViewResult:
		e.attachFeed(ctx, view.Result)
		e.logger.Info("result delivered", "user_id", userID, "branch", next.Branch, "portrait", view.Result.Portrait)
		if e.hooks.OnFinish != nil {
			e.hooks.OnFinish(ctx, &domain.FinishEvent{
				UserID:   userID,
				Branch:   next.Branch,
				Portrait: view.Result.Portrait,
				Advices:  len(view.Result.Advices),
			})
		}
	}
	return view, nil
}

func (e *Engine) welcome(ctx context.Context, userID string, ev domain.Event) (domain.View, error) {
	if _, err := e.store.Create(ctx, userID); err != nil {
		return domain.View{}, fmt.Errorf("failed to create session %s: %w", userID, err)
	}
	_, view, err := e.runtime.Apply(userID, nil, ev)
	if err != nil {
		return domain.View{}, err
	}
	e.logger.Debug("session opened", "user_id", userID, "event", ev.Type)
	return view, nil
}

func (e *Engine) fail(ctx context.Context, userID string, ev domain.Event, err error) error {
	navErr, ok := domain.AsError(err)
	if !ok {
		return err
	}

	e.logger.Warn("navigation failed", "user_id", userID, "event", ev.Type, "kind", navErr.Kind, "err", navErr.Message)
	if e.hooks.OnError != nil {
		e.hooks.OnError(ctx, &domain.ErrorEvent{UserID: userID, Event: ev, Err: navErr})
	}

	if navErr.Resets() {
		if rmErr := e.store.Remove(ctx, userID); rmErr != nil {
			return errors.Join(err, fmt.Errorf("failed to drop session %s: %w", userID, rmErr))
		}
	}
	return err
}

func (e *Engine) emitAnswer(ctx context.Context, userID string, current *domain.Session, ev domain.Event, view domain.View) {
	if e.hooks.OnAnswer == nil {
		return
	}
	e.hooks.OnAnswer(ctx, &domain.AnswerEvent{
		UserID:    userID,
		Branch:    current.Branch,
		Question:  current.CurrentQ,
		Choice:    ev.Choice,
		Finishing: view.Kind != domain.ViewQuestion,
	})
}

// attachFeed appends the feed summary to a result. Feed failures only cost
// the summary; the result is still delivered.
func (e *Engine) attachFeed(ctx context.Context, result *domain.ResultView) {
	if e.feed == nil {
		return
	}
	summary, err := e.feed.Summary(ctx)
	if err != nil {
		e.logger.Warn("feed unavailable", "err", err)
		return
	}
	result.Feed = summary
}
