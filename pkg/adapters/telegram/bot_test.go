package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/portrait"
	"github.com/aretw0/portrait/internal/presentation/message"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/dsl"
	"github.com/aretw0/portrait/pkg/session"
)

type fakeSender struct {
	mu        sync.Mutex
	sent      []tgbotapi.Chattable
	requests  []tgbotapi.Chattable
	failEdits bool
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := c.(tgbotapi.EditMessageTextConfig); ok && f.failEdits {
		return tgbotapi.Message{}, errors.New("Bad Request: message can't be edited")
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) tgbotapi.Chattable {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

func command(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}}
}

func press(userID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: userID},
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: userID}},
	}}
}

func callbackData(kb tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				out = append(out, *btn.CallbackData)
			}
		}
	}
	return out
}

func newBot(t *testing.T, opts ...portrait.Option) (*Bot, *fakeSender) {
	t.Helper()
	b := dsl.New()
	b.Question(1, 1, "intro").Choice(1, "go", dsl.To(2))
	b.Question(1, 2, "Morning or night?").
		Choice(1, "Morning", dsl.To(3), dsl.Advice("Plan early. Deep work before noon.")).
		Choice(2, "Night", dsl.To(40))
	b.Question(1, 3, "Tea or coffee?").Final().
		Choice(1, "Tea", dsl.Portrait("Lark"), dsl.Describe("Larks rise with the sun"))
	b.Question(2, 1, "Look at this").Media("images/image1.jpg").Choice(1, "Nice")

	eng := portrait.New(b.MustGraph(), opts...)
	sender := &fakeSender{}
	bot := New(sender, session.NewManager(eng), WithLinks(message.Links{Channel: "https://t.me/c"}))
	return bot, sender
}

func TestBot_Walk(t *testing.T) {
	ctx := context.Background()
	bot, sender := newBot(t, portrait.WithInterstitial(true), portrait.WithSubscribeURL("https://t.me/c"))

	bot.HandleUpdate(ctx, command(5, "/start"))
	welcome, ok := sender.last(t).(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ModeHTML, welcome.ParseMode)
	assert.Equal(t, []string{"branch_1"}, callbackData(welcome.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)))

	bot.HandleUpdate(ctx, press(5, "branch_1"))
	edit, ok := sender.last(t).(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, "Morning or night?", edit.Text)
	assert.Equal(t, 10, edit.MessageID)
	assert.Equal(t, []string{"answer_1", "answer_2", "back"}, callbackData(*edit.ReplyMarkup))
	assert.Len(t, sender.requests, 1, "the callback is acknowledged")

	bot.HandleUpdate(ctx, press(5, "answer_1"))
	bot.HandleUpdate(ctx, press(5, "answer_1"))
	edit = sender.last(t).(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, domain.DefaultTexts().InterstitialText, edit.Text)
	assert.Equal(t, []string{"skip", "back"}, callbackData(*edit.ReplyMarkup))
	assert.Equal(t, "https://t.me/c", *edit.ReplyMarkup.InlineKeyboard[0][0].URL)

	bot.HandleUpdate(ctx, press(5, "skip"))
	edit = sender.last(t).(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, tgbotapi.ModeHTML, edit.ParseMode)
	assert.Contains(t, edit.Text, "Larks rise with the sun")
	assert.Contains(t, edit.Text, "1️⃣ <b>Plan early.</b>")
	assert.Contains(t, edit.Text, "<a href='https://t.me/c'>Channel</a>")
	assert.True(t, edit.DisableWebPagePreview)
	assert.Equal(t, []string{"restart"}, callbackData(*edit.ReplyMarkup))
}

func TestBot_EditFallback(t *testing.T) {
	ctx := context.Background()
	bot, sender := newBot(t, portrait.WithInterstitial(false))
	sender.failEdits = true

	bot.HandleUpdate(ctx, press(6, "branch_1"))
	msg, ok := sender.last(t).(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, "Morning or night?", msg.Text)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)

	bot.HandleUpdate(ctx, press(6, "answer_1"))
	bot.HandleUpdate(ctx, press(6, "answer_1"))
	msg = sender.last(t).(tgbotapi.MessageConfig)
	assert.Contains(t, msg.Text, "Larks rise with the sun")

	deleted, ok := sender.requests[len(sender.requests)-1].(tgbotapi.DeleteMessageConfig)
	require.True(t, ok, "the stale message is deleted once the result is out")
	assert.Equal(t, 10, deleted.MessageID)
}

func TestBot_QuestionWithMedia(t *testing.T) {
	bot, sender := newBot(t)

	bot.HandleUpdate(context.Background(), press(7, "branch_2"))
	photo, ok := sender.last(t).(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, "Look at this", photo.Caption)
	assert.Equal(t, tgbotapi.FilePath("images/image1.jpg"), photo.File)
}

func TestBot_Errors(t *testing.T) {
	ctx := context.Background()
	bot, sender := newBot(t)

	t.Run("Hint For Free Text", func(t *testing.T) {
		bot.HandleUpdate(ctx, command(8, "hello"))
		msg := sender.last(t).(tgbotapi.MessageConfig)
		assert.Equal(t, "Please use the buttons to navigate", msg.Text)
	})

	t.Run("Hint For Unknown Callback", func(t *testing.T) {
		bot.HandleUpdate(ctx, press(8, "launch_rockets"))
		msg := sender.last(t).(tgbotapi.MessageConfig)
		assert.Equal(t, "Please use the buttons to navigate", msg.Text)
	})

	t.Run("Recoverable Error Has No Keyboard", func(t *testing.T) {
		bot.HandleUpdate(ctx, press(8, "branch_1"))
		bot.HandleUpdate(ctx, press(8, "answer_9"))
		msg := sender.last(t).(tgbotapi.MessageConfig)
		assert.Equal(t, "Invalid choice", msg.Text)
		assert.Nil(t, msg.ReplyMarkup)
	})

	t.Run("Reset Error Offers Restart", func(t *testing.T) {
		bot.HandleUpdate(ctx, press(9, "back"))
		msg := sender.last(t).(tgbotapi.MessageConfig)
		assert.Equal(t, "Session reset", msg.Text)
		assert.Equal(t, []string{"restart"}, callbackData(msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)))
	})
}

func TestBot_RunStopsWhenUpdatesClose(t *testing.T) {
	bot, sender := newBot(t)
	updates := make(chan tgbotapi.Update, 2)
	updates <- command(1, "/start")
	updates <- command(2, "/start@portrait_bot")
	close(updates)

	require.NoError(t, bot.Run(context.Background(), updates))
	assert.Len(t, sender.sent, 2)
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data string
		want domain.Event
	}{
		{"branch_3", domain.StartBranch(3)},
		{"answer_12", domain.Answer(12)},
		{"back", domain.Back()},
		{"restart", domain.Restart()},
		{"skip", domain.SkipInterstitial()},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := ParseCallback(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "answer_", "answer_x", "branch", "next"} {
		_, err := ParseCallback(bad)
		assert.ErrorIs(t, err, ErrUnknownCallback, bad)
	}
	assert.Equal(t, "answer_4", AnswerData(4))
	assert.Equal(t, "branch_1", BranchData(1))
}
