package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/domain/entity"
	"newswire/internal/repository"
)

var testFields = repository.ArticleFields{
	Title:          "Senate passes budget",
	PhotoURL:       "https://informburo.kz/img/1.jpg",
	Link:           "https://informburo.kz/news/1",
	Tag:            "#politics",
	PublishedAtRaw: "27 August 2026, 14:05",
	Content:        "Full article body",
}

func articleRows(id int64, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "source", "title", "photo_url", "link", "tag",
		"published_at_raw", "content", "created_at",
	}).AddRow(id, "informburo", testFields.Title, testFields.PhotoURL,
		testFields.Link, testFields.Tag, testFields.PublishedAtRaw,
		testFields.Content, createdAt)
}

func TestArticleRepo_TryInsert_NewArticle(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs("informburo", testFields.Title, testFields.PhotoURL,
			testFields.Link, testFields.Tag, testFields.PublishedAtRaw,
			testFields.Content, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	repo := NewArticleRepo(db)

	// Act
	art, isNew, err := repo.TryInsert(context.Background(), entity.SourceInformburo, testFields)

	// Assert
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, int64(7), art.ID)
	assert.Equal(t, entity.SourceInformburo, art.Source)
	assert.Equal(t, testFields.Title, art.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Race safety of TryInsert is delegated to PostgreSQL: the unique index
// on (source, title) plus the single-statement INSERT ... ON CONFLICT DO
// NOTHING guarantee that of two concurrent inserts exactly one sees
// isNew=true. This test covers the loser's path, the conflict branch.
func TestArticleRepo_TryInsert_DuplicateReturnsExisting(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// ON CONFLICT DO NOTHING yields no rows, so the repo falls back to
	// selecting the row the earlier insert created.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE source = $1 AND title = $2")).
		WithArgs("informburo", testFields.Title).
		WillReturnRows(articleRows(3, time.Now()))

	repo := NewArticleRepo(db)

	// Act
	art, isNew, err := repo.TryInsert(context.Background(), entity.SourceInformburo, testFields)

	// Assert
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, int64(3), art.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_TryInsert_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WillReturnError(assert.AnError)

	repo := NewArticleRepo(db)

	art, isNew, err := repo.TryInsert(context.Background(), entity.SourceNur, testFields)

	require.Error(t, err)
	assert.Nil(t, art)
	assert.False(t, isNew)
	assert.Contains(t, err.Error(), "TryInsert")
}

func TestArticleRepo_GetPage_ReturnsWindowAndTotal(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WithArgs("nur").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id ASC")).
		WithArgs("nur", 5, 5).
		WillReturnRows(articleRows(6, time.Now()).
			AddRow(int64(7), "nur", "t7", "", "l7", "#news", "raw", "c7", time.Now()))

	repo := NewArticleRepo(db)

	// Act
	articles, total, err := repo.GetPage(context.Background(), entity.SourceNur, 2, 5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, articles, 2)
	assert.Equal(t, int64(6), articles[0].ID)
	assert.Equal(t, int64(7), articles[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_GetPage_WindowBeyondTotalIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WithArgs("nur").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	repo := NewArticleRepo(db)

	articles, total, err := repo.GetPage(context.Background(), entity.SourceNur, 3, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Empty(t, articles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_GetByID_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE source = $1 AND id = $2")).
		WithArgs("informburo", int64(9)).
		WillReturnRows(articleRows(9, time.Now()))

	repo := NewArticleRepo(db)

	art, err := repo.GetByID(context.Background(), entity.SourceInformburo, 9)

	require.NoError(t, err)
	require.NotNil(t, art)
	assert.Equal(t, int64(9), art.ID)
}

func TestArticleRepo_GetByID_MissingReturnsNilNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE source = $1 AND id = $2")).
		WithArgs("informburo", int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "source", "title", "photo_url", "link", "tag",
			"published_at_raw", "content", "created_at",
		}))

	repo := NewArticleRepo(db)

	art, err := repo.GetByID(context.Background(), entity.SourceInformburo, 404)

	require.NoError(t, err)
	assert.Nil(t, art)
}

func TestArticleRepo_CountBySource(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WithArgs("informburo").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	repo := NewArticleRepo(db)

	total, err := repo.CountBySource(context.Background(), entity.SourceInformburo)

	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
}
