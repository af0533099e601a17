package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/portrait/pkg/adapters/feed"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Day Capitalist</title>
  <link>https://t.me/day_capitalist</link>
  <description>posts</description>
  <item><title>Markets   rally. Details inside</title><link>https://t.me/day_capitalist/1</link></item>
  <item><title>Markets rally again</title><link>https://t.me/day_capitalist/1</link></item>
  <item><title>One two three four five six seven eight</title><link>https://t.me/day_capitalist/3</link></item>
  <item><title>Short title</title><link>https://t.me/day_capitalist/4</link></item>
  <item><title>.Leading dot title</title><link>https://t.me/day_capitalist/5</link></item>
  <item><title>Sixth is ignored</title><link>https://t.me/day_capitalist/6</link></item>
</channel>
</rss>`

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Markets   rally. Details inside", "Markets rally"},
		{"One two three four five six seven", "One two three four five six..."},
		{"One two three four five six", "One two three four five six"},
		{". starts with a dot", ". starts with a dot"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, feed.CleanTitle(tt.in))
		})
	}
}

func TestSummarizer_Summary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer srv.Close()

	s := feed.New(srv.URL, feed.WithHTTPClient(srv.Client()))
	got, err := s.Summary(context.Background())
	require.NoError(t, err)

	want := "1. <a href='https://t.me/day_capitalist/1'>Markets rally</a>\n" +
		"3. <a href='https://t.me/day_capitalist/3'>One two three four five six...</a>\n" +
		"4. <a href='https://t.me/day_capitalist/4'>Short title</a>\n" +
		"5. <a href='https://t.me/day_capitalist/5'>.Leading dot title</a>"
	assert.Equal(t, want, got)
}

func TestSummarizer_Failures(t *testing.T) {
	got, err := feed.New("").Summary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err = feed.New(srv.URL, feed.WithHTTPClient(srv.Client())).Summary(context.Background())
	assert.Error(t, err)
}

func TestFormat_EscapesMarkup(t *testing.T) {
	got := feed.Format([]*gofeed.Item{{Title: "Q&A <live>", Link: "https://x/1"}})
	assert.Equal(t, "1. <a href='https://x/1'>Q&amp;A &lt;live&gt;</a>", got)
}
