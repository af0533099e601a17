package domain

import "slices"

// SessionStatus is the navigation state of a session.
type SessionStatus string

const (
	StatusIdle                 SessionStatus = "idle"                  // Welcome shown, no branch chosen yet
	StatusAwaitingAnswer       SessionStatus = "awaiting_answer"       // A question is on screen
	StatusAwaitingInterstitial SessionStatus = "awaiting_interstitial" // Interstitial is on screen
	StatusFinished             SessionStatus = "finished"              // Result produced; session is dropped
)

// Session is the mutable walk state of one user.
// History always ends with CurrentQ while a branch is active.
type Session struct {
	UserID   string        `json:"user_id"`
	Status   SessionStatus `json:"status"`
	Branch   int           `json:"branch,omitempty"`
	CurrentQ int           `json:"current_q,omitempty"`
	History  []int         `json:"history,omitempty"`

	// Confirmations are transient: they prefix the next rendered question and are cleared.
	Confirmations []string `json:"confirmations,omitempty"`
	Advices       []string `json:"advices,omitempty"`
	PortraitTags  []string `json:"portrait_tags,omitempty"`

	InterstitialShown bool `json:"interstitial_shown,omitempty"`
}

// NewSession creates an idle session for a user.
func NewSession(userID string) *Session {
	return &Session{
		UserID: userID,
		Status: StatusIdle,
	}
}

// StartBranch clears every field and positions the session on question 1.
func (s *Session) StartBranch(branch int) {
	*s = Session{
		UserID:   s.UserID,
		Status:   StatusAwaitingAnswer,
		Branch:   branch,
		CurrentQ: 1,
		History:  []int{1},
	}
}

// Active reports whether a branch is being walked.
func (s *Session) Active() bool {
	return len(s.History) > 0
}

// CanGoBack reports whether Back is legal.
func (s *Session) CanGoBack() bool {
	return len(s.History) > 1
}

// MoveTo advances to question id and records it in the history.
func (s *Session) MoveTo(id int) {
	s.CurrentQ = id
	s.History = append(s.History, id)
}

// GoBack pops the history. It returns false at the branch root.
func (s *Session) GoBack() bool {
	if !s.CanGoBack() {
		return false
	}
	s.History = s.History[:len(s.History)-1]
	s.CurrentQ = s.History[len(s.History)-1]
	return true
}

// Record applies the side effects of a chosen option, in order:
// confirmation, portrait tag, advice. Blank fields are ignored.
func (s *Session) Record(opt Option) {
	if v := trimmed(opt.Confirmation); v != "" {
		s.Confirmations = append(s.Confirmations, v)
	}
	if v := trimmed(opt.PortraitTag); v != "" {
		s.PortraitTags = append(s.PortraitTags, v)
	}
	if v := trimmed(opt.Advice); v != "" {
		s.Advices = append(s.Advices, v)
	}
}

// TakeConfirmations returns the pending confirmations and clears them.
func (s *Session) TakeConfirmations() []string {
	out := s.Confirmations
	s.Confirmations = nil
	return out
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	next := *s
	next.History = slices.Clone(s.History)
	next.Confirmations = slices.Clone(s.Confirmations)
	next.Advices = slices.Clone(s.Advices)
	next.PortraitTags = slices.Clone(s.PortraitTags)
	return &next
}
