package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/portrait/internal/presentation/message"
	"github.com/aretw0/portrait/internal/presentation/tui"
	"github.com/aretw0/portrait/pkg/domain"
)

// Format renders a view as markdown with the console key next to each action.
func Format(view domain.View, texts domain.Texts, links message.Links) string {
	var b strings.Builder
	switch view.Kind {
	case domain.ViewWelcome:
		w := view.Welcome
		b.WriteString(tui.Markdown(w.Text))
		b.WriteString("\n\n")
		for _, btn := range w.Branches {
			writeKey(&b, fmt.Sprint(btn.Choice), btn.Caption())
		}
	case domain.ViewQuestion:
		q := view.Question
		b.WriteString(q.Text)
		b.WriteString("\n\n")
		for _, btn := range q.Options {
			writeKey(&b, fmt.Sprint(btn.Choice), btn.Caption())
		}
		if q.CanGoBack {
			writeKey(&b, "b", texts.BackButton)
		}
	case domain.ViewInterstitial:
		i := view.Interstitial
		b.WriteString(tui.Markdown(i.Text))
		b.WriteString("\n\n")
		if i.SubscribeURL != "" {
			fmt.Fprintf(&b, "- %s: %s\n", texts.SubscribeButton, i.SubscribeURL)
		}
		writeKey(&b, "s", texts.SkipButton)
		writeKey(&b, "b", texts.BackButton)
	case domain.ViewResult:
		b.WriteString(tui.Markdown(message.Result(view.Result, texts, links)))
		b.WriteString("\n\n")
		writeKey(&b, "r", texts.RestartButton)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeKey(b *strings.Builder, key, caption string) {
	fmt.Fprintf(b, "- [%s] %s\n", key, caption)
}
