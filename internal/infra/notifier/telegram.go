// Package notifier sends article notifications over the Telegram Bot API.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"newswire/internal/domain/entity"
	"newswire/internal/usecase/browse"
)

// Sender is the slice of the Bot API the notifier uses. *tgbotapi.BotAPI
// satisfies it; tests substitute a fake.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram implements dispatch.Notifier over the Bot API.
type Telegram struct {
	api     Sender
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewTelegram creates a Telegram notifier.
func NewTelegram(api Sender, limiter *RateLimiter, logger *slog.Logger) *Telegram {
	return &Telegram{api: api, limiter: limiter, logger: logger}
}

// SendArticle sends one notification message: photo with caption and a
// single Read button, or a plain text message when the article has no
// photo.
func (t *Telegram) SendArticle(ctx context.Context, chatID int64, art *entity.Article) error {
	if err := t.limiter.Allow(ctx); err != nil {
		return fmt.Errorf("SendArticle: rate limiter: %w", err)
	}

	view := browse.NotificationView(art)
	if _, err := t.api.Send(messageFor(chatID, view)); err != nil {
		return fmt.Errorf("SendArticle: %w", err)
	}

	t.logger.Debug("notification sent",
		slog.Int64("chat_id", chatID),
		slog.Int64("article_id", art.ID),
		slog.String("source", art.Source.String()))
	return nil
}

// messageFor builds the outgoing message for an article view.
func messageFor(chatID int64, view *browse.ArticleView) tgbotapi.Chattable {
	markup := InlineMarkup(view.Buttons)

	if view.PhotoURL == "" {
		msg := tgbotapi.NewMessage(chatID, view.Caption)
		msg.ReplyMarkup = markup
		return msg
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(view.PhotoURL))
	photo.Caption = view.Caption
	photo.ReplyMarkup = markup
	return photo
}

// InlineMarkup converts view button rows into Bot API inline keyboards.
func InlineMarkup(rows [][]browse.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Token))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}
