package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Bold", "<b>Your portrait</b>", "**Your portrait**"},
		{"Anchor", `1. <a href="https://x.io/a">Post</a> and more`, "1. [Post](https://x.io/a) and more"},
		{"Escapes", "Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
		{"Single Quoted Anchor", "<a href='https://t.me/c'>Channel</a>", "[Channel](https://t.me/c)"},
		{"Unclosed Anchor", `<a href="x">oops`, `<a href="x">oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Markdown(tt.in))
		})
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Contains(t, buf.String(), "|_|")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer()
	require.NoError(t, err)

	out, err := render("**hello**")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}
