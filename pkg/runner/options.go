package runner

import (
	"log/slog"

	"github.com/aretw0/portrait/internal/presentation/message"
	"github.com/aretw0/portrait/pkg/domain"
)

// DefaultUserID identifies the console user when none is configured.
const DefaultUserID = "console"

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithUserID sets the user the console plays as.
func WithUserID(id string) Option {
	return func(r *Runner) {
		r.UserID = id
	}
}

// WithRenderer configures the content renderer of the default text handler.
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

// WithTexts sets the catalogue used for captions and error messages.
func WithTexts(texts domain.Texts) Option {
	return func(r *Runner) {
		r.Texts = texts
	}
}

// WithLinks sets the links printed under a result.
func WithLinks(links message.Links) Option {
	return func(r *Runner) {
		r.Links = links
	}
}

// WithHeadless suppresses the key legend printed on start.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}
