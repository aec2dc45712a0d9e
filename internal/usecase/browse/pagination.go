package browse

import (
	"context"
	"fmt"
	"log/slog"

	"newswire/internal/common/pagination"
	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
)

// DefaultPageSize is the number of articles per page.
const DefaultPageSize = 5

// Pager assembles page views over a source's article collection.
// It only reads the store; all writes go through the ingestion path.
type Pager struct {
	articles repository.ArticleRepository
	pageSize int
	logger   *slog.Logger
}

// NewPager creates a Pager. A pageSize below 1 falls back to the default.
func NewPager(articles repository.ArticleRepository, pageSize int, logger *slog.Logger) *Pager {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Pager{articles: articles, pageSize: pageSize, logger: logger}
}

// Page returns one page of a source's articles in collapsed view plus the
// pagination control row. The requested page number comes from a client
// echoed token and is clamped into [1, totalPages] rather than rejected.
func (p *Pager) Page(ctx context.Context, source entity.Source, requested int) (*PageView, error) {
	total, err := p.articles.CountBySource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("Page: %w", err)
	}

	totalPages := pagination.CalculateTotalPages(total, p.pageSize)
	page := pagination.Clamp(requested, totalPages)
	if page != requested {
		p.logger.Debug("page number clamped",
			slog.String("source", source.String()),
			slog.Int("requested", requested),
			slog.Int("clamped", page))
	}

	arts, _, err := p.articles.GetPage(ctx, source, page, p.pageSize)
	if err != nil {
		return nil, fmt.Errorf("Page: %w", err)
	}

	views := make([]*ArticleView, 0, len(arts))
	for _, art := range arts {
		views = append(views, CollapsedView(art))
	}

	metrics.PagesServed.WithLabelValues(source.String()).Inc()

	return &PageView{
		Articles:   views,
		Controls:   p.controls(source, page, totalPages),
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// controls builds the prev / indicator / next row. The indicator button
// is always present and bound to the no-op token.
func (p *Pager) controls(source entity.Source, page, totalPages int) []Button {
	row := make([]Button, 0, 3)
	if pagination.HasPrev(page) {
		row = append(row, Button{Text: buttonPrev, Token: PageToken(source, page-1)})
	}
	row = append(row, Button{
		Text:  fmt.Sprintf("%d/%d", page, totalPages),
		Token: AckToken,
	})
	if pagination.HasNext(page, totalPages) {
		row = append(row, Button{Text: buttonNext, Token: PageToken(source, page+1)})
	}
	return row
}
