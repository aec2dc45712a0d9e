package browse

import (
	"context"
	"fmt"

	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
)

// Toggler renders the two mutually exclusive states of an article
// message. Rendering is idempotent: the view is a pure function of the
// stored article and the requested state, so re-issuing a token
// re-renders the identical view.
type Toggler struct {
	articles repository.ArticleRepository
}

// NewToggler creates a Toggler.
func NewToggler(articles repository.ArticleRepository) *Toggler {
	return &Toggler{articles: articles}
}

// Expanded renders the content view of one article.
// Returns ErrArticleNotFound when the id does not resolve.
func (t *Toggler) Expanded(ctx context.Context, source entity.Source, id int64) (*ArticleView, error) {
	art, err := t.lookup(ctx, source, id)
	if err != nil {
		return nil, err
	}
	metrics.TogglesServed.WithLabelValues(source.String(), "expand").Inc()
	return ExpandedView(art), nil
}

// Collapsed renders the header view of one article.
// Returns ErrArticleNotFound when the id does not resolve.
func (t *Toggler) Collapsed(ctx context.Context, source entity.Source, id int64) (*ArticleView, error) {
	art, err := t.lookup(ctx, source, id)
	if err != nil {
		return nil, err
	}
	metrics.TogglesServed.WithLabelValues(source.String(), "collapse").Inc()
	return CollapsedView(art), nil
}

func (t *Toggler) lookup(ctx context.Context, source entity.Source, id int64) (*entity.Article, error) {
	art, err := t.articles.GetByID(ctx, source, id)
	if err != nil {
		return nil, fmt.Errorf("lookup article %d: %w", id, err)
	}
	if art == nil {
		return nil, fmt.Errorf("lookup article %d: %w", id, ErrArticleNotFound)
	}
	return art, nil
}
