// Package telegram hosts the interactive side of the bot: the
// long-polling update loop, command routing and callback dispatch.
package telegram

import (
	"context"
	"errors"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"newswire/internal/domain/entity"
	"newswire/internal/infra/notifier"
	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
	"newswire/internal/usecase/browse"
)

// API is the slice of *tgbotapi.BotAPI the router needs. Tests
// substitute a fake.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// Router handles incoming updates. It owns no state beyond its
// collaborators; every render is a pure function of the store.
type Router struct {
	api         API
	subscribers repository.SubscriberRepository
	pager       *browse.Pager
	toggler     *browse.Toggler
	limiter     *notifier.RateLimiter
	logger      *slog.Logger
}

// NewRouter creates a Router. The rate limiter is shared with the
// notification path so all outgoing traffic counts against one budget.
func NewRouter(
	api API,
	subscribers repository.SubscriberRepository,
	pager *browse.Pager,
	toggler *browse.Toggler,
	limiter *notifier.RateLimiter,
	logger *slog.Logger,
) *Router {
	return &Router{
		api:         api,
		subscribers: subscribers,
		pager:       pager,
		toggler:     toggler,
		limiter:     limiter,
		logger:      logger,
	}
}

// Run consumes updates until the context is canceled. Each update is
// handled to completion before the next one; a failed render never takes
// the loop down.
func (r *Router) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60

	updates := r.api.GetUpdatesChan(cfg)
	r.logger.Info("telegram update loop started")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("telegram update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				r.logger.Info("telegram update channel closed")
				return
			}
			r.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate routes one update.
func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		r.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		r.handleCallback(ctx, update.CallbackQuery)
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand() && msg.Command() == "start":
		r.handleStart(ctx, msg)
	case msg.Text == menuNews:
		r.send(ctx, withMarkup(tgbotapi.NewMessage(msg.Chat.ID, pickSourceText), sourceKeyboard()))
	case msg.Text == menuNotifications:
		r.send(ctx, withMarkup(tgbotapi.NewMessage(msg.Chat.ID, notifyPromptText), notifyKeyboard()))
	}
}

// handleStart registers the subscriber and replies with the main menu.
// The upsert never flips an existing notify flag, so /start is safe to
// repeat.
func (r *Router) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	sub := &entity.Subscriber{ID: msg.Chat.ID}
	if msg.From != nil {
		sub.DisplayName = msg.From.UserName
	}
	if err := r.subscribers.Upsert(ctx, sub); err != nil {
		r.logger.Error("subscriber upsert failed",
			slog.Int64("chat_id", msg.Chat.ID),
			slog.String("error", err.Error()))
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, greetingText)
	reply.ReplyMarkup = mainKeyboard()
	r.send(ctx, reply)
}

// handleCallback decodes the token and dispatches on the closed
// interaction set. Every callback is answered exactly once; unknown
// tokens are acknowledged and dropped.
func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		r.answer(cb.ID, "")
		return
	}
	chatID := cb.Message.Chat.ID

	switch interaction := browse.Decode(cb.Data).(type) {
	case browse.PageRequest:
		r.answer(cb.ID, "")
		r.sendPage(ctx, chatID, interaction.Source, interaction.Page)

	case browse.SourceSelect:
		r.answer(cb.ID, "")
		r.request(tgbotapi.NewDeleteMessage(chatID, cb.Message.MessageID))
		r.sendPage(ctx, chatID, interaction.Source, 1)

	case browse.ExpandRequest:
		view, err := r.toggler.Expanded(ctx, interaction.Source, interaction.ArticleID)
		r.finishToggle(ctx, cb, view, err)

	case browse.CollapseRequest:
		view, err := r.toggler.Collapsed(ctx, interaction.Source, interaction.ArticleID)
		r.finishToggle(ctx, cb, view, err)

	case browse.Subscribe:
		r.answer(cb.ID, "")
		r.setNotify(ctx, cb, true)

	case browse.Unsubscribe:
		r.answer(cb.ID, "")
		r.setNotify(ctx, cb, false)

	case browse.Ack:
		r.answer(cb.ID, "")

	case browse.Unknown:
		r.logger.Debug("unknown callback token", slog.String("data", interaction.Raw))
		metrics.UnknownTokensTotal.Inc()
		r.answer(cb.ID, "")
	}
}

// sendPage sends one photo message per article followed by the
// pagination row. A failed article send is logged and skipped so the
// rest of the page still renders.
func (r *Router) sendPage(ctx context.Context, chatID int64, source entity.Source, page int) {
	view, err := r.pager.Page(ctx, source, page)
	if err != nil {
		r.logger.Error("page render failed",
			slog.String("source", source.String()),
			slog.Int("page", page),
			slog.String("error", err.Error()))
		return
	}

	for _, art := range view.Articles {
		r.send(ctx, articleMessage(chatID, art))
	}

	controls := tgbotapi.NewMessage(chatID, pickPageText)
	controls.ReplyMarkup = notifier.InlineMarkup([][]browse.Button{view.Controls})
	r.send(ctx, controls)
}

// finishToggle edits the article message in place, or answers with the
// not-found text when the token's id no longer resolves.
func (r *Router) finishToggle(ctx context.Context, cb *tgbotapi.CallbackQuery, view *browse.ArticleView, err error) {
	if err != nil {
		if errors.Is(err, browse.ErrArticleNotFound) {
			r.answer(cb.ID, browse.NotFoundText)
			return
		}
		r.logger.Error("toggle render failed",
			slog.String("data", cb.Data),
			slog.String("error", err.Error()))
		r.answer(cb.ID, "")
		return
	}

	r.answer(cb.ID, "")
	edit := tgbotapi.NewEditMessageCaption(cb.Message.Chat.ID, cb.Message.MessageID, view.Caption)
	markup := notifier.InlineMarkup(view.Buttons)
	edit.ReplyMarkup = &markup
	r.send(ctx, edit)
}

func (r *Router) setNotify(ctx context.Context, cb *tgbotapi.CallbackQuery, enabled bool) {
	if err := r.subscribers.SetNotifyEnabled(ctx, cb.Message.Chat.ID, enabled); err != nil {
		r.logger.Error("notify flag update failed",
			slog.Int64("chat_id", cb.Message.Chat.ID),
			slog.Bool("enabled", enabled),
			slog.String("error", err.Error()))
		return
	}

	text := subscribedText
	if !enabled {
		text = unsubscribedText
	}
	r.send(ctx, tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text))
}

// send pushes one message through the shared rate limiter.
func (r *Router) send(ctx context.Context, c tgbotapi.Chattable) {
	if err := r.limiter.Allow(ctx); err != nil {
		return
	}
	if _, err := r.api.Send(c); err != nil {
		r.logger.Warn("send failed", slog.String("error", err.Error()))
	}
}

func (r *Router) answer(callbackID, text string) {
	if _, err := r.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		r.logger.Warn("callback answer failed", slog.String("error", err.Error()))
	}
}

func (r *Router) request(c tgbotapi.Chattable) {
	if _, err := r.api.Request(c); err != nil {
		r.logger.Warn("request failed", slog.String("error", err.Error()))
	}
}

// articleMessage builds the per-article photo message for a page.
func articleMessage(chatID int64, view *browse.ArticleView) tgbotapi.Chattable {
	markup := notifier.InlineMarkup(view.Buttons)

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

func withMarkup(msg tgbotapi.MessageConfig, markup tgbotapi.InlineKeyboardMarkup) tgbotapi.MessageConfig {
	msg.ReplyMarkup = markup
	return msg
}
