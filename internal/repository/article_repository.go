// Package repository declares the persistence interfaces consumed by the
// use case layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"newswire/internal/domain/entity"
)

// ArticleFields carries the scraped values of a not-yet-persisted article.
// The store assigns the identifier and creation timestamp on first insert.
type ArticleFields struct {
	Title          string
	PhotoURL       string
	Link           string
	Tag            string
	PublishedAtRaw string
	Content        string
}

// ArticleRepository is the persistence and dedupe gate for articles.
// It is the sole writer of article rows; all writes funnel through
// TryInsert.
type ArticleRepository interface {
	// TryInsert atomically checks for an existing article with the same
	// (source, title) pair. If absent it inserts and returns the new record
	// with isNew=true; if present it returns the stored record with
	// isNew=false. The check-then-insert must be safe against concurrent
	// calls for the same title: two racing inserts yield exactly one
	// isNew=true and both return the same article id.
	TryInsert(ctx context.Context, source entity.Source, fields ArticleFields) (*entity.Article, bool, error)

	// GetPage returns one page of a source's articles ordered by ascending
	// id (insertion order) together with the total count for the source.
	// A page number below 1 or a window beyond the total yields an empty
	// slice, not an error.
	GetPage(ctx context.Context, source entity.Source, page, pageSize int) ([]*entity.Article, int64, error)

	// GetByID retrieves one article of a source.
	// Returns (nil, nil) when the id does not resolve.
	GetByID(ctx context.Context, source entity.Source, id int64) (*entity.Article, error)

	// CountBySource returns the number of stored articles for a source.
	CountBySource(ctx context.Context, source entity.Source) (int64, error)
}
