// Package message composes the HTML text transports send for a finished session.
package message

import (
	"fmt"
	"html"
	"strings"

	"github.com/aretw0/portrait/pkg/domain"
)

// Links are the outbound links appended to the result.
type Links struct {
	Channel   string
	Community string
}

// Result composes the final message: description, advice, footer, the feed
// block and the join links. Empty parts are left out.
func Result(r *domain.ResultView, texts domain.Texts, links Links) string {
	var b strings.Builder
	b.WriteString(r.Description)

	if len(r.Advices) > 0 {
		b.WriteString("\n\n")
		b.WriteString(texts.ResultHeader)
		b.WriteString("\n")
		lines := make([]string, 0, len(r.Advices))
		for _, a := range r.Advices {
			lines = append(lines, Advice(a))
		}
		b.WriteString(strings.Join(lines, "\n\n"))
	}

	if texts.ResultFooter != "" {
		b.WriteString("\n\n")
		b.WriteString(texts.ResultFooter)
	}

	if r.Feed != "" {
		b.WriteString("\n\n")
		b.WriteString(texts.FeedHeader)
		b.WriteString("\n")
		b.WriteString(r.Feed)
	}

	if join := Join(texts, links); join != "" {
		b.WriteString("\n\n")
		b.WriteString(join)
	}
	return b.String()
}

// Advice renders one advice line with a bold heading.
func Advice(a domain.AdviceLine) string {
	if a.Body == "" {
		return a.Marker + " " + html.EscapeString(a.Heading)
	}
	return fmt.Sprintf("%s <b>%s</b>\n%s", a.Marker, html.EscapeString(a.Heading), html.EscapeString(a.Body))
}

// Join renders "Channel | Community" anchors for the configured links.
func Join(texts domain.Texts, links Links) string {
	var parts []string
	if links.Channel != "" {
		parts = append(parts, anchor(links.Channel, texts.ChannelLabel))
	}
	if links.Community != "" {
		parts = append(parts, anchor(links.Community, texts.CommunityLabel))
	}
	return strings.Join(parts, " | ")
}

func anchor(href, label string) string {
	return fmt.Sprintf("<a href='%s'>%s</a>", html.EscapeString(href), html.EscapeString(label))
}
