package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/portrait/pkg/domain"
)

// Callback data understood by the bot.
const (
	CallbackBack    = "back"
	CallbackRestart = "restart"
	CallbackSkip    = "skip"

	branchPrefix = "branch_"
	answerPrefix = "answer_"
)

// ErrUnknownCallback is returned for callback data the bot never issues.
var ErrUnknownCallback = errors.New("unknown callback")

// BranchData is the callback data of a branch button.
func BranchData(branch int) string {
	return branchPrefix + strconv.Itoa(branch)
}

// AnswerData is the callback data of an option button.
func AnswerData(choice int) string {
	return answerPrefix + strconv.Itoa(choice)
}

// ParseCallback maps inline keyboard data to an engine event.
func ParseCallback(data string) (domain.Event, error) {
	switch data {
	case CallbackBack:
		return domain.Back(), nil
	case CallbackRestart:
		return domain.Restart(), nil
	case CallbackSkip:
		return domain.SkipInterstitial(), nil
	}

	if n, ok := numbered(data, branchPrefix); ok {
		return domain.StartBranch(n), nil
	}
	if n, ok := numbered(data, answerPrefix); ok {
		return domain.Answer(n), nil
	}
	return domain.Event{}, fmt.Errorf("%w: %q", ErrUnknownCallback, data)
}

func numbered(data, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	return n, err == nil
}

// isStart reports whether text is the /start command, with or without a bot mention.
func isStart(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd == "/start"
}
