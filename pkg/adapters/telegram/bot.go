package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aretw0/portrait/internal/logging"
	"github.com/aretw0/portrait/internal/presentation/message"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/session"
)

// Sender is the part of *tgbotapi.BotAPI the bot needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot routes Telegram updates through the engine.
type Bot struct {
	sender   Sender
	sessions session.Handler
	texts    domain.Texts
	links    message.Links
	logger   *slog.Logger
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger sets the bot logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithTexts sets the catalogue used for buttons and messages.
func WithTexts(texts domain.Texts) Option {
	return func(b *Bot) {
		b.texts = texts
	}
}

// WithLinks sets the channel and community links of the result.
func WithLinks(links message.Links) Option {
	return func(b *Bot) {
		b.links = links
	}
}

// New creates a bot. sessions is usually a session.Manager so that two
// updates from one user are never handled at the same time.
func New(sender Sender, sessions session.Handler, opts ...Option) *Bot {
	b := &Bot{
		sender:   sender,
		sessions: sessions,
		texts:    domain.DefaultTexts(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run handles updates until ctx is done or the channel closes.
// Updates are handled concurrently; in-flight updates finish before Run returns.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate processes one update. Failures are reported to the user and
// logged; they never stop the bot.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	chat := target{chatID: msg.Chat.ID}

	if !isStart(msg.Text) {
		b.send(tgbotapi.NewMessage(chat.chatID, b.texts.UseButtonsHint))
		return
	}
	b.turn(ctx, userKey(msg.From), chat, domain.Start())
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if _, err := b.sender.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", "err", err)
	}
	if q.From == nil || q.Message == nil || q.Message.Chat == nil {
		return
	}
	chat := target{chatID: q.Message.Chat.ID, messageID: q.Message.MessageID}

	ev, err := ParseCallback(q.Data)
	if err != nil {
		b.logger.Warn("ignoring callback", "user_id", q.From.ID, "err", err)
		b.send(tgbotapi.NewMessage(chat.chatID, b.texts.UseButtonsHint))
		return
	}
	b.turn(ctx, userKey(q.From), chat, ev)
}

func (b *Bot) turn(ctx context.Context, userID string, chat target, ev domain.Event) {
	view, err := b.sessions.Handle(ctx, userID, ev)
	if err != nil {
		b.reportError(userID, chat, err)
		return
	}
	b.render(chat, view)
}

func (b *Bot) reportError(userID string, chat target, err error) {
	msg := tgbotapi.NewMessage(chat.chatID, b.texts.GenericFailure)
	navErr, ok := domain.AsError(err)
	if ok {
		msg.Text = b.texts.ErrorMessage(navErr.Kind)
	} else {
		b.logger.Error("turn failed", "user_id", userID, "err", err)
	}
	if !ok || navErr.Resets() {
		msg.ReplyMarkup = b.restartKeyboard()
	}
	b.send(msg)
}

func (b *Bot) send(c tgbotapi.Chattable) bool {
	if _, err := b.sender.Send(c); err != nil {
		b.logger.Error("failed to send message", "err", err)
		return false
	}
	return true
}

func userKey(u *tgbotapi.User) string {
	return strconv.FormatInt(u.ID, 10)
}
