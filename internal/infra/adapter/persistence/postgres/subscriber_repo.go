package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newswire/internal/domain/entity"
	"newswire/internal/repository"
)

// SubscriberRepo implements repository.SubscriberRepository using PostgreSQL.
type SubscriberRepo struct{ db *sql.DB }

// NewSubscriberRepo creates a new PostgreSQL-backed subscriber repository.
func NewSubscriberRepo(db *sql.DB) repository.SubscriberRepository {
	return &SubscriberRepo{db: db}
}

// Upsert inserts a subscriber on first contact. Existing rows are left
// untouched so the notify flag survives repeated /start commands.
func (repo *SubscriberRepo) Upsert(ctx context.Context, sub *entity.Subscriber) error {
	const query = `
INSERT INTO subscribers (id, display_name, notify_enabled)
VALUES ($1, $2, FALSE)
ON CONFLICT (id) DO NOTHING
`
	if _, err := repo.db.ExecContext(ctx, query, sub.ID, sub.DisplayName); err != nil {
		return fmt.Errorf("Upsert: ExecContext: %w", err)
	}
	return nil
}

// SetNotifyEnabled flips the notification flag for one subscriber.
func (repo *SubscriberRepo) SetNotifyEnabled(ctx context.Context, id int64, enabled bool) error {
	const query = `UPDATE subscribers SET notify_enabled = $1 WHERE id = $2`

	res, err := repo.db.ExecContext(ctx, query, enabled, id)
	if err != nil {
		return fmt.Errorf("SetNotifyEnabled: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("SetNotifyEnabled: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("SetNotifyEnabled: %w", entity.ErrNotFound)
	}
	return nil
}

// ListNotifyEnabled returns all subscribers with notifications on.
func (repo *SubscriberRepo) ListNotifyEnabled(ctx context.Context) ([]*entity.Subscriber, error) {
	const query = `
SELECT id, display_name, notify_enabled
FROM subscribers
WHERE notify_enabled = TRUE
ORDER BY id ASC
`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListNotifyEnabled: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := make([]*entity.Subscriber, 0, 32)
	for rows.Next() {
		var sub entity.Subscriber
		if err := rows.Scan(&sub.ID, &sub.DisplayName, &sub.NotifyEnabled); err != nil {
			return nil, fmt.Errorf("ListNotifyEnabled: Scan: %w", err)
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListNotifyEnabled: rows.Err: %w", err)
	}

	return subs, nil
}
