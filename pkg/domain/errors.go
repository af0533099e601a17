package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned by stores when a user has no session.
var ErrSessionNotFound = errors.New("session not found")

// ErrorKind classifies navigation failures.
type ErrorKind string

const (
	KindSessionMissing   ErrorKind = "session_missing"
	KindQuestionNotFound ErrorKind = "question_not_found"
	KindInvalidChoice    ErrorKind = "invalid_choice"
	KindBackNotAllowed   ErrorKind = "back_not_allowed"
)

// Sentinels for errors.Is; matching compares kinds only.
var (
	ErrSessionMissing   = &Error{Kind: KindSessionMissing}
	ErrQuestionNotFound = &Error{Kind: KindQuestionNotFound}
	ErrInvalidChoice    = &Error{Kind: KindInvalidChoice}
	ErrBackNotAllowed   = &Error{Kind: KindBackNotAllowed}
)

// Error is a recoverable navigation failure.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Resets reports whether the session must be discarded.
// SessionMissing and QuestionNotFound reset the conversation; the others leave it untouched.
func (e *Error) Resets() bool {
	return e.Kind == KindSessionMissing || e.Kind == KindQuestionNotFound
}

// NewError builds an *Error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a navigation error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
