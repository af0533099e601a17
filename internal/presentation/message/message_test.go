package message_test

import (
	"testing"

	"github.com/aretw0/portrait/internal/presentation/message"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	texts := domain.DefaultTexts()
	texts.ResultHeader = "Tips:"
	texts.ResultFooter = "Bye."
	texts.FeedHeader = "Posts:"

	view := &domain.ResultView{
		Result: domain.Result{
			Portrait:    "Leader",
			Description: "You lead.",
			Advices: []domain.AdviceLine{
				{Marker: "1️⃣", Heading: "Lead.", Body: "Take the initiative."},
				{Marker: "2️⃣", Heading: "Rest <now>"},
			},
		},
		Feed: "1. <a href='https://x.io'>Post</a>",
	}

	got := message.Result(view, texts, message.Links{Channel: "https://t.me/c"})

	want := "You lead.\n\n" +
		"Tips:\n" +
		"1️⃣ <b>Lead.</b>\nTake the initiative.\n\n" +
		"2️⃣ Rest &lt;now&gt;\n\n" +
		"Bye.\n\n" +
		"Posts:\n1. <a href='https://x.io'>Post</a>\n\n" +
		"<a href='https://t.me/c'>Channel</a>"
	assert.Equal(t, want, got)
}

func TestResult_Minimal(t *testing.T) {
	texts := domain.Texts{}
	view := &domain.ResultView{Result: domain.Result{Description: "Only this."}}

	assert.Equal(t, "Only this.", message.Result(view, texts, message.Links{}))
}

func TestJoin(t *testing.T) {
	texts := domain.DefaultTexts()
	got := message.Join(texts, message.Links{Channel: "https://c", Community: "https://g"})
	assert.Equal(t, "<a href='https://c'>Channel</a> | <a href='https://g'>Community</a>", got)
}
