package runtime

import (
	"github.com/aretw0/portrait/internal/aggregate"
	"github.com/aretw0/portrait/pkg/domain"
)

// Apply computes the next session and view for an event.
// The input session is never modified. On error the returned session is the
// input unchanged (nil if there was none); callers drop it when the error resets.
func (e *Engine) Apply(userID string, current *domain.Session, ev domain.Event) (*domain.Session, domain.View, error) {
	switch ev.Type {
	case domain.EventStart, domain.EventRestart:
		s, v := e.Welcome(userID)
		return s, v, nil
	case domain.EventStartBranch:
		return e.startBranch(userID, ev.Branch)
	}

	if current == nil {
		return nil, domain.View{}, domain.NewError(domain.KindSessionMissing, "no active session for user %s", userID)
	}

	switch ev.Type {
	case domain.EventAnswer:
		return e.answer(current, ev.Choice)
	case domain.EventBack:
		return e.back(current)
	case domain.EventSkipInterstitial:
		return e.skipInterstitial(current)
	}
	return current, domain.View{}, domain.NewError(domain.KindInvalidChoice, "unknown event %q", ev.Type)
}

// Welcome creates a fresh idle session and the welcome view.
func (e *Engine) Welcome(userID string) (*domain.Session, domain.View) {
	return domain.NewSession(userID), domain.View{
		Kind:    domain.ViewWelcome,
		Welcome: e.renderWelcome(),
	}
}

func (e *Engine) startBranch(userID string, branch int) (*domain.Session, domain.View, error) {
	next := domain.NewSession(userID)
	next.StartBranch(branch)
	if first := FirstQuestion(branch); first != next.CurrentQ {
		next.MoveTo(first)
	}

	view, err := e.renderQuestion(next)
	if err != nil {
		return nil, domain.View{}, err
	}
	e.logger.Debug("branch started", "user_id", userID, "branch", branch, "question", next.CurrentQ)
	return next, view, nil
}

func (e *Engine) answer(current *domain.Session, choice int) (*domain.Session, domain.View, error) {
	switch current.Status {
	case domain.StatusAwaitingInterstitial:
		return current, domain.View{}, domain.NewError(domain.KindInvalidChoice, "answers are closed, the result is pending")
	case domain.StatusFinished:
		return current, domain.View{}, domain.NewError(domain.KindSessionMissing, "session already finished")
	}

	q, ok := e.graph.Lookup(current.Branch, current.CurrentQ)
	if !ok || !current.Active() {
		return current, domain.View{}, domain.NewError(domain.KindQuestionNotFound, "question %d not found in branch %d", current.CurrentQ, current.Branch)
	}

	opt, ok := q.Option(choice)
	if !ok {
		return current, domain.View{}, domain.NewError(domain.KindInvalidChoice, "choice %d is not an option of question %d", choice, q.ID)
	}

	next := current.Clone()
	next.Record(opt)

	if opt.NextQ == nil || IsTerminal(q) {
		e.logger.Debug("branch finishing", "user_id", next.UserID, "branch", next.Branch, "question", next.CurrentQ, "choice", choice)
		return e.finish(next)
	}

	next.MoveTo(*opt.NextQ)
	view, err := e.renderQuestion(next)
	if err != nil {
		return current, domain.View{}, err
	}
	return next, view, nil
}

func (e *Engine) back(current *domain.Session) (*domain.Session, domain.View, error) {
	next := current.Clone()
	if current.Status == domain.StatusAwaitingInterstitial {
		// The finishing answer never moved the session, so the question it
		// answered is still current.
		next.Confirmations = nil
		next.Status = domain.StatusAwaitingAnswer
		view, err := e.renderQuestion(next)
		if err != nil {
			return current, domain.View{}, err
		}
		return next, view, nil
	}
	if !next.GoBack() {
		return current, domain.View{}, domain.NewError(domain.KindBackNotAllowed, "already at the first question")
	}
	next.Status = domain.StatusAwaitingAnswer

	view, err := e.renderQuestion(next)
	if err != nil {
		return current, domain.View{}, err
	}
	return next, view, nil
}

func (e *Engine) skipInterstitial(current *domain.Session) (*domain.Session, domain.View, error) {
	if current.Status != domain.StatusAwaitingInterstitial {
		return current, domain.View{}, domain.NewError(domain.KindInvalidChoice, "no interstitial to skip")
	}
	return e.complete(current.Clone())
}

// finish routes a finishing session through the interstitial once, then to the result.
func (e *Engine) finish(next *domain.Session) (*domain.Session, domain.View, error) {
	if e.interstitial && !next.InterstitialShown {
		next.InterstitialShown = true
		next.Status = domain.StatusAwaitingInterstitial
		return next, domain.View{
			Kind:         domain.ViewInterstitial,
			Interstitial: e.renderInterstitial(),
		}, nil
	}
	return e.complete(next)
}

func (e *Engine) complete(next *domain.Session) (*domain.Session, domain.View, error) {
	next.Status = domain.StatusFinished
	result := aggregate.Aggregate(e.graph, next, e.texts)
	return next, domain.View{
		Kind:   domain.ViewResult,
		Result: &domain.ResultView{Result: result},
	}, nil
}
