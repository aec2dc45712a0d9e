// Package postgres provides PostgreSQL implementations of the repository
// interfaces using database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"newswire/internal/domain/entity"
	"newswire/internal/repository"
)

// ArticleRepo implements repository.ArticleRepository using PostgreSQL.
type ArticleRepo struct{ db *sql.DB }

// NewArticleRepo creates a new PostgreSQL-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

const articleColumns = `id, source, title, photo_url, link, tag, published_at_raw, content, created_at`

// TryInsert implements the atomic insert-if-absent dedupe gate.
//
// The insert relies on the UNIQUE(source, title) index: ON CONFLICT DO
// NOTHING makes two racing calls for the same title commute, with exactly
// one of them receiving the inserted row back. The loser falls through to
// a plain select of the winner's row, so both callers observe the same id.
func (repo *ArticleRepo) TryInsert(ctx context.Context, source entity.Source, fields repository.ArticleFields) (*entity.Article, bool, error) {
	const insert = `
INSERT INTO articles (source, title, photo_url, link, tag, published_at_raw, content, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (source, title) DO NOTHING
RETURNING id, created_at
`
	art := &entity.Article{
		Source:         source,
		Title:          fields.Title,
		PhotoURL:       fields.PhotoURL,
		Link:           fields.Link,
		Tag:            fields.Tag,
		PublishedAtRaw: fields.PublishedAtRaw,
		Content:        fields.Content,
	}

	err := repo.db.QueryRowContext(ctx, insert,
		source.String(), fields.Title, fields.PhotoURL, fields.Link,
		fields.Tag, fields.PublishedAtRaw, fields.Content, time.Now(),
	).Scan(&art.ID, &art.CreatedAt)

	switch {
	case err == nil:
		return art, true, nil
	case errors.Is(err, sql.ErrNoRows):
		// Conflict path: the title already exists for this source.
		existing, err := repo.getByTitle(ctx, source, fields.Title)
		if err != nil {
			return nil, false, fmt.Errorf("TryInsert: fetch existing: %w", err)
		}
		if existing == nil {
			// The winning row vanished between insert and select. Articles
			// are never deleted, so this indicates a broken store.
			return nil, false, fmt.Errorf("TryInsert: conflict row missing for %s/%q", source, fields.Title)
		}
		return existing, false, nil
	default:
		return nil, false, fmt.Errorf("TryInsert: QueryRowContext: %w", err)
	}
}

func (repo *ArticleRepo) getByTitle(ctx context.Context, source entity.Source, title string) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE source = $1 AND title = $2
LIMIT 1
`
	return repo.scanOne(repo.db.QueryRowContext(ctx, query, source.String(), title))
}

// GetPage returns articles ordered by ascending id, windowed by page.
func (repo *ArticleRepo) GetPage(ctx context.Context, source entity.Source, page, pageSize int) ([]*entity.Article, int64, error) {
	total, err := repo.CountBySource(ctx, source)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 || pageSize < 1 {
		return []*entity.Article{}, total, nil
	}
	offset := (page - 1) * pageSize
	if int64(offset) >= total {
		return []*entity.Article{}, total, nil
	}

	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE source = $1
ORDER BY id ASC
OFFSET $2 LIMIT $3
`
	rows, err := repo.db.QueryContext(ctx, query, source.String(), offset, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("GetPage: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, pageSize)
	for rows.Next() {
		var art entity.Article
		if err := rows.Scan(&art.ID, &art.Source, &art.Title, &art.PhotoURL,
			&art.Link, &art.Tag, &art.PublishedAtRaw, &art.Content, &art.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("GetPage: Scan: %w", err)
		}
		articles = append(articles, &art)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("GetPage: rows.Err: %w", err)
	}

	return articles, total, nil
}

// GetByID retrieves one article of a source, (nil, nil) when absent.
func (repo *ArticleRepo) GetByID(ctx context.Context, source entity.Source, id int64) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE source = $1 AND id = $2
LIMIT 1
`
	art, err := repo.scanOne(repo.db.QueryRowContext(ctx, query, source.String(), id))
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return art, nil
}

// CountBySource returns the number of stored articles for a source.
func (repo *ArticleRepo) CountBySource(ctx context.Context, source entity.Source) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles WHERE source = $1`

	var total int64
	if err := repo.db.QueryRowContext(ctx, query, source.String()).Scan(&total); err != nil {
		return 0, fmt.Errorf("CountBySource: %w", err)
	}
	return total, nil
}

func (repo *ArticleRepo) scanOne(row *sql.Row) (*entity.Article, error) {
	var art entity.Article
	err := row.Scan(&art.ID, &art.Source, &art.Title, &art.PhotoURL,
		&art.Link, &art.Tag, &art.PublishedAtRaw, &art.Content, &art.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &art, nil
}
