package repository

import (
	"context"

	"newswire/internal/domain/entity"
)

// SubscriberRepository stores notification recipients.
//
// The ingestion pipeline only ever reads the notify-enabled set; the flag
// itself is mutated exclusively by the opt-in/opt-out handlers.
type SubscriberRepository interface {
	// Upsert records a subscriber on first contact. An existing row is
	// left untouched so a repeated /start never resets the notify flag.
	Upsert(ctx context.Context, sub *entity.Subscriber) error

	// SetNotifyEnabled flips the notification flag for one subscriber.
	SetNotifyEnabled(ctx context.Context, id int64, enabled bool) error

	// ListNotifyEnabled returns all subscribers with notifications on.
	ListNotifyEnabled(ctx context.Context) ([]*entity.Subscriber, error)
}
