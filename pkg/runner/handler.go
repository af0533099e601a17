package runner

import (
	"context"

	"github.com/aretw0/portrait/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents a view to the user.
	Output(ctx context.Context, view domain.View) error

	// Input reads a response from the user.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (errors, hints).
	// This is distinct from content rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer turns markdown into terminal output.
type ContentRenderer func(string) (string, error)
