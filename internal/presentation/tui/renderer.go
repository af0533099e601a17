package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

var htmlToMarkdown = strings.NewReplacer(
	"<b>", "**", "</b>", "**",
	"<strong>", "**", "</strong>", "**",
	"<i>", "_", "</i>", "_",
	"<em>", "_", "</em>", "_",
	"&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#34;", `"`, "&#39;", "'", "&amp;", "&",
)

var anchor = regexp.MustCompile(`<a href=["']([^"']*)["']>(.*?)</a>`)

// Markdown converts the small HTML subset used by texts and feed summaries.
// Anchors become markdown links.
func Markdown(html string) string {
	return htmlToMarkdown.Replace(anchor.ReplaceAllString(html, "[$2]($1)"))
}
