// Package feed summarizes an RSS or Atom feed into a short HTML list of
// recent posts appended to results.
package feed

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/aretw0/portrait/internal/logging"
)

const (
	// MaxEntries is how many feed entries are considered.
	MaxEntries    = 5
	maxTitleWords = 6
)

// Summarizer implements ports.FeedSummarizer with gofeed.
type Summarizer struct {
	url    string
	parser *gofeed.Parser
	logger *slog.Logger
}

// Option configures the Summarizer.
type Option func(*Summarizer)

// WithHTTPClient sets the client used to fetch the feed.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Summarizer) {
		s.parser.Client = client
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a summarizer for the feed at url.
func New(url string, opts ...Option) *Summarizer {
	s := &Summarizer{
		url:    url,
		parser: gofeed.NewParser(),
		logger: logging.NewNop(),
	}
	s.parser.Client = &http.Client{Timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary fetches the feed and formats its first entries. An unset URL
// yields an empty summary without error.
func (s *Summarizer) Summary(ctx context.Context) (string, error) {
	if s.url == "" {
		s.logger.Warn("feed url is not set")
		return "", nil
	}

	f, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feed: %w", err)
	}
	return Format(f.Items), nil
}

// Format renders up to MaxEntries items as numbered links, skipping
// repeated links. Numbers follow the entry position in the feed.
func Format(items []*gofeed.Item) string {
	if len(items) > MaxEntries {
		items = items[:MaxEntries]
	}

	seen := make(map[string]bool, len(items))
	lines := make([]string, 0, len(items))
	for i, item := range items {
		if item == nil || seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		lines = append(lines, fmt.Sprintf("%d. <a href='%s'>%s</a>", i+1, html.EscapeString(item.Link), html.EscapeString(CleanTitle(item.Title))))
	}
	return strings.Join(lines, "\n")
}

// CleanTitle collapses whitespace and keeps the text before the first
// period. Without a usable period, titles longer than six words are cut.
func CleanTitle(title string) string {
	words := strings.Fields(title)
	title = strings.Join(words, " ")

	if i := strings.IndexByte(title, '.'); i >= 0 {
		if head := strings.TrimSpace(title[:i]); head != "" {
			return head
		}
	}
	if len(words) > maxTitleWords {
		return strings.Join(words[:maxTitleWords], " ") + "..."
	}
	return title
}
