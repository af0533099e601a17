package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aretw0/portrait/internal/presentation/message"
	"github.com/aretw0/portrait/pkg/domain"
)

// target is where a view goes: the chat, and the message to edit when the
// turn came from a button press (zero otherwise).
type target struct {
	chatID    int64
	messageID int
}

func (b *Bot) render(chat target, view domain.View) {
	switch view.Kind {
	case domain.ViewWelcome:
		b.renderWelcome(chat, view.Welcome)
	case domain.ViewQuestion:
		b.renderQuestion(chat, view.Question)
	case domain.ViewInterstitial:
		b.renderInterstitial(chat, view.Interstitial)
	case domain.ViewResult:
		b.renderResult(chat, view.Result)
	}
}

func (b *Bot) renderWelcome(chat target, w *domain.WelcomeView) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(w.Branches))
	for _, btn := range w.Branches {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btn.Caption(), BranchData(btn.Choice)),
		))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	if w.MediaRef != "" {
		photo := tgbotapi.NewPhoto(chat.chatID, tgbotapi.FilePath(w.MediaRef))
		photo.Caption = w.Text
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = kb
		if b.send(photo) {
			return
		}
	}

	msg := tgbotapi.NewMessage(chat.chatID, w.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	b.send(msg)
}

func (b *Bot) renderQuestion(chat target, q *domain.QuestionView) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options)+1)
	for _, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Caption(), AnswerData(opt.Choice)),
		))
	}
	if q.CanGoBack {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.texts.BackButton, CallbackBack),
		))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	if q.HasMedia() {
		photo := tgbotapi.NewPhoto(chat.chatID, tgbotapi.FilePath(q.MediaRef))
		photo.Caption = q.Text
		photo.ParseMode = tgbotapi.ModeMarkdown
		photo.ReplyMarkup = kb
		if b.send(photo) {
			return
		}
		b.logger.Warn("failed to send photo, falling back to text", "media", q.MediaRef)
	}
	b.editOrSend(chat, q.Text, tgbotapi.ModeMarkdown, kb, false)
}

func (b *Bot) renderInterstitial(chat target, i *domain.InterstitialView) {
	var rows [][]tgbotapi.InlineKeyboardButton
	if i.SubscribeURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(b.texts.SubscribeButton, i.SubscribeURL),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(b.texts.SkipButton, CallbackSkip)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(b.texts.BackButton, CallbackBack)),
	)
	b.editOrSend(chat, i.Text, tgbotapi.ModeHTML, tgbotapi.NewInlineKeyboardMarkup(rows...), false)
}

func (b *Bot) renderResult(chat target, r *domain.ResultView) {
	text := message.Result(r, b.texts, b.links)
	b.editOrSend(chat, text, tgbotapi.ModeHTML, b.restartKeyboard(), true)
}

func (b *Bot) restartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.texts.RestartButton, CallbackRestart),
	))
}

// editOrSend replaces the pressed message in place. When editing fails, the
// view is sent as a new message; with dropStale the old one is then deleted.
func (b *Bot) editOrSend(chat target, text, mode string, kb tgbotapi.InlineKeyboardMarkup, dropStale bool) {
	if chat.messageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chat.chatID, chat.messageID, text, kb)
		edit.ParseMode = mode
		edit.DisableWebPagePreview = true
		_, err := b.sender.Send(edit)
		if err == nil {
			return
		}
		b.logger.Warn("failed to edit message, sending a new one", "err", err)
	}

	msg := tgbotapi.NewMessage(chat.chatID, text)
	msg.ParseMode = mode
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = kb
	if !b.send(msg) || !dropStale || chat.messageID == 0 {
		return
	}
	if _, err := b.sender.Request(tgbotapi.NewDeleteMessage(chat.chatID, chat.messageID)); err != nil {
		b.logger.Warn("failed to delete previous message", "err", err)
	}
}
