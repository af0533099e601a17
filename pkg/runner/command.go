package runner

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aretw0/portrait/pkg/domain"
)

var (
	// ErrQuit is returned by ParseCommand when the user asks to leave.
	ErrQuit = errors.New("quit")
	// ErrUnknownCommand is returned for input that maps to no event.
	ErrUnknownCommand = errors.New("unknown command")
)

// ParseCommand maps a line of input to an engine event.
// Numbers are interpreted against the view currently on screen.
func ParseCommand(input string, current domain.View) (domain.Event, error) {
	cmd := strings.ToLower(strings.TrimSpace(input))
	switch cmd {
	case "q", "quit", "exit":
		return domain.Event{}, ErrQuit
	case "r", "restart":
		return domain.Restart(), nil
	case "/start":
		return domain.Start(), nil
	case "b", "back":
		return domain.Back(), nil
	case "s", "skip":
		return domain.SkipInterstitial(), nil
	}

	n, err := strconv.Atoi(cmd)
	if err != nil {
		return domain.Event{}, ErrUnknownCommand
	}
	switch current.Kind {
	case domain.ViewWelcome:
		return domain.StartBranch(n), nil
	case domain.ViewQuestion:
		return domain.Answer(n), nil
	}
	return domain.Event{}, ErrUnknownCommand
}
