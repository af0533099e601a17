package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/portrait/pkg/domain"
)

// renderQuestion builds the view for the session's current question.
// Pending confirmations are prefixed to the prompt and consumed.
func (e *Engine) renderQuestion(s *domain.Session) (domain.View, error) {
	q, ok := e.graph.Lookup(s.Branch, s.CurrentQ)
	if !ok {
		return domain.View{}, domain.NewError(domain.KindQuestionNotFound, "question %d not found in branch %d", s.CurrentQ, s.Branch)
	}

	text := q.Text
	if confirmations := s.TakeConfirmations(); len(confirmations) > 0 {
		text = e.texts.ConfirmationMark + " " + strings.Join(confirmations, "\n\n") + "\n\n" + text
	}

	buttons := make([]domain.Button, 0, len(q.Options))
	for _, opt := range q.Options {
		emoji := opt.Emoji
		if emoji == "" {
			emoji = domain.DefaultEmoji
		}
		buttons = append(buttons, domain.Button{Choice: opt.Choice, Label: opt.Label, Emoji: emoji})
	}

	return domain.View{
		Kind: domain.ViewQuestion,
		Question: &domain.QuestionView{
			Branch:    s.Branch,
			Question:  q.ID,
			Text:      text,
			MediaRef:  q.MediaRef,
			Options:   buttons,
			CanGoBack: s.CanGoBack(),
		},
	}, nil
}

func (e *Engine) renderWelcome() *domain.WelcomeView {
	var available []int
	for _, b := range e.entryBranches {
		if e.graph.HasBranch(b) {
			available = append(available, b)
		}
	}

	buttons := make([]domain.Button, 0, len(available))
	for _, b := range available {
		label := e.texts.StartButton
		if len(available) > 1 {
			label = branchLabel(e.texts.BranchButton, b)
		}
		buttons = append(buttons, domain.Button{Choice: b, Label: label})
	}

	return &domain.WelcomeView{
		Text:     e.texts.WelcomeCaption,
		MediaRef: e.welcomeMedia,
		Branches: buttons,
	}
}

func (e *Engine) renderInterstitial() *domain.InterstitialView {
	return &domain.InterstitialView{
		Text:         e.texts.InterstitialText,
		SubscribeURL: e.subscribeURL,
	}
}

func branchLabel(template string, branch int) string {
	if strings.Contains(template, "%d") {
		return fmt.Sprintf(template, branch)
	}
	return fmt.Sprintf("%s %d", template, branch)
}
