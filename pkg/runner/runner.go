package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/portrait/internal/presentation/message"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/session"
)

// Runner drives one console conversation.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Handler  IOHandler
	Renderer ContentRenderer
	Logger   *slog.Logger
	UserID   string
	Texts    domain.Texts
	Links    message.Links
	Headless bool
}

// NewRunner creates a new Runner with the given options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		UserID: DefaultUserID,
		Texts:  domain.DefaultTexts(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays until the user quits or input ends. Navigation failures are
// shown to the user; a reset failure starts the conversation over.
// Only infrastructure errors and cancellation end the loop with an error.
func (r *Runner) Run(ctx context.Context, h session.Handler) error {
	handler := r.resolveHandler()

	view, err := h.Handle(ctx, r.UserID, domain.Start())
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	redraw := true
	for {
		if redraw {
			if err := handler.Output(ctx, view); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
		redraw = true

		line, err := handler.Input(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		ev, err := ParseCommand(line, view)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			r.Logger.Debug("unrecognized input", "input", line)
			_ = handler.SystemOutput(ctx, r.Texts.UseButtonsHint)
			redraw = false
			continue
		}

		next, err := h.Handle(ctx, r.UserID, ev)
		if err != nil {
			navErr, ok := domain.AsError(err)
			if !ok {
				return err
			}
			_ = handler.SystemOutput(ctx, r.Texts.ErrorMessage(navErr.Kind))
			if !navErr.Resets() {
				redraw = false
				continue
			}
			if next, err = h.Handle(ctx, r.UserID, domain.Start()); err != nil {
				return fmt.Errorf("failed to restart: %w", err)
			}
		}
		view = next
	}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	th := NewTextHandler(r.Input, r.Output,
		WithTextHandlerRenderer(r.Renderer),
		WithTextHandlerTexts(r.Texts),
		WithTextHandlerLinks(r.Links),
	)
	if !r.Headless && r.Output != nil {
		fmt.Fprintln(r.Output, "--- portrait: number to answer, b back, s skip, r restart, q quit ---")
	}
	// Memoize to prevent creating new pumps on subsequent Run() calls
	r.Handler = th
	return th
}
