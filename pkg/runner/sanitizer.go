package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds one line typed at the console.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "PORTRAIT_MAX_INPUT_SIZE"
	// MaxUserIDSize bounds user ids received from remote transports.
	MaxUserIDSize = 128
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
	ErrEmptyUserID   = errors.New("user id is required")
	ErrInvalidUserID = errors.New("user id must not contain spaces or control characters")
)

// SanitizeInput rejects oversized or malformed UTF-8 input and strips
// control characters other than newline, tab and carriage return, so
// typed escape sequences never reach the terminal or the logs.
func SanitizeInput(input string) (string, error) {
	if limit := maxInputSize(); len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(input, unsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if unsafeControl(r) {
			return -1
		}
		return r
	}, input), nil
}

// SanitizeUserID trims id and checks it can serve as a session key:
// non-empty, at most MaxUserIDSize bytes, valid UTF-8, and free of
// whitespace and control characters.
func SanitizeUserID(id string) (string, error) {
	id = strings.TrimSpace(id)
	switch {
	case id == "":
		return "", ErrEmptyUserID
	case len(id) > MaxUserIDSize:
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(id), MaxUserIDSize)
	case !utf8.ValidString(id):
		return "", ErrInvalidUTF8
	case strings.IndexFunc(id, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0:
		return "", ErrInvalidUserID
	}
	return id, nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
