package domain

import "context"

// EventType identifies what the user did.
type EventType string

const (
	EventStart            EventType = "start"
	EventStartBranch      EventType = "start_branch"
	EventAnswer           EventType = "answer"
	EventBack             EventType = "back"
	EventRestart          EventType = "restart"
	EventSkipInterstitial EventType = "skip_interstitial"
)

// Event is an inbound user action. Branch is set for EventStartBranch,
// Choice for EventAnswer.
type Event struct {
	Type   EventType `json:"type"`
	Branch int       `json:"branch,omitempty"`
	Choice int       `json:"choice,omitempty"`
}

// Start asks for the welcome screen.
func Start() Event { return Event{Type: EventStart} }

// StartBranch begins a branch from its first visible question, discarding any
// progress.
func StartBranch(branch int) Event { return Event{Type: EventStartBranch, Branch: branch} }

// Answer picks an option of the current question by its choice number.
func Answer(choice int) Event { return Event{Type: EventAnswer, Choice: choice} }

// Back returns to the previous question. From the interstitial it returns to
// the question whose answer finished the branch.
func Back() Event { return Event{Type: EventBack} }

// Restart drops the session and shows the welcome screen again.
func Restart() Event { return Event{Type: EventRestart} }

// SkipInterstitial dismisses the interstitial and shows the result.
func SkipInterstitial() Event { return Event{Type: EventSkipInterstitial} }

// QuestionEvent is emitted when a question is rendered.
type QuestionEvent struct {
	UserID   string
	Branch   int
	Question int
}

// AnswerEvent is emitted when an answer has been recorded.
type AnswerEvent struct {
	UserID    string
	Branch    int
	Question  int
	Choice    int
	Finishing bool
}

// FinishEvent is emitted once a result has been aggregated.
type FinishEvent struct {
	UserID   string
	Branch   int
	Portrait string
	Advices  int
}

// ErrorEvent is emitted for every navigation failure.
type ErrorEvent struct {
	UserID string
	Event  Event
	Err    *Error
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnQuestion func(context.Context, *QuestionEvent)
	OnAnswer   func(context.Context, *AnswerEvent)
	OnFinish   func(context.Context, *FinishEvent)
	OnError    func(context.Context, *ErrorEvent)
}
