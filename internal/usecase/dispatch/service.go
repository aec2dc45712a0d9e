// Package dispatch fans freshly ingested articles out to subscribers.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
)

// Notifier sends one article notification to one chat. Implementations
// live in internal/infra/notifier.
type Notifier interface {
	SendArticle(ctx context.Context, chatID int64, art *entity.Article) error
}

// Service delivers the per-cycle fresh batch. It reads the subscriber
// set once per batch and never mutates the store.
type Service struct {
	subscribers repository.SubscriberRepository
	notifier    Notifier
	logger      *slog.Logger
}

// NewService creates a dispatch Service.
func NewService(subscribers repository.SubscriberRepository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{subscribers: subscribers, notifier: notifier, logger: logger}
}

// Dispatch sends every fresh article to every opted-in subscriber.
//
// Per-send failures (blocked bot, transient transport error) are logged
// and counted, never escalated and never retried within the batch: a
// retried send is indistinguishable from a second article to the
// recipient. A directory read failure drops the whole batch; the
// articles are already persisted, so nothing re-notifies next cycle.
func (s *Service) Dispatch(ctx context.Context, fresh []*entity.Article) {
	dispatchID := uuid.NewString()
	log := s.logger.With(slog.String("dispatch_id", dispatchID))

	subs, err := s.subscribers.ListNotifyEnabled(ctx)
	if err != nil {
		log.Error("subscriber directory read failed, dropping batch",
			slog.Int("articles", len(fresh)),
			slog.String("error", err.Error()))
		return
	}
	metrics.SubscribersNotified.Set(float64(len(subs)))

	var sent, failed int
	started := time.Now()

	for _, sub := range subs {
		for _, art := range fresh {
			if err := s.notifier.SendArticle(ctx, sub.ID, art); err != nil {
				log.Warn("notification send failed",
					slog.Int64("chat_id", sub.ID),
					slog.Int64("article_id", art.ID),
					slog.String("source", art.Source.String()),
					slog.String("error", err.Error()))
				metrics.RecordNotification(art.Source.String(), false)
				failed++
				continue
			}
			metrics.RecordNotification(art.Source.String(), true)
			sent++
		}
	}

	log.Info("dispatch finished",
		slog.Int("articles", len(fresh)),
		slog.Int("subscribers", len(subs)),
		slog.Int("sent", sent),
		slog.Int("failed", failed),
		slog.Duration("took", time.Since(started)))
}
