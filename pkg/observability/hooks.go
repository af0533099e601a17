package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/portrait/pkg/domain"
)

// Combine merges hook sets into one that calls each set in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnQuestion = chain(out.OnQuestion, h.OnQuestion)
		out.OnAnswer = chain(out.OnAnswer, h.OnAnswer)
		out.OnFinish = chain(out.OnFinish, h.OnFinish)
		out.OnError = chain(out.OnError, h.OnError)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

// LoggingHooks writes one log line per lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuestion: func(ctx context.Context, e *domain.QuestionEvent) {
			logger.DebugContext(ctx, "question_shown", "user_id", e.UserID, "branch", e.Branch, "question", e.Question)
		},
		OnAnswer: func(ctx context.Context, e *domain.AnswerEvent) {
			logger.DebugContext(ctx, "answer", "user_id", e.UserID, "branch", e.Branch, "question", e.Question, "choice", e.Choice, "finishing", e.Finishing)
		},
		OnFinish: func(ctx context.Context, e *domain.FinishEvent) {
			logger.InfoContext(ctx, "portrait", "user_id", e.UserID, "branch", e.Branch, "portrait", e.Portrait, "advices", e.Advices)
		},
		OnError: func(ctx context.Context, e *domain.ErrorEvent) {
			logger.InfoContext(ctx, "navigation_error", "user_id", e.UserID, "event", e.Event.Type, "kind", e.Err.Kind)
		},
	}
}
