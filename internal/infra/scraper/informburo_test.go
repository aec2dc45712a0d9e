package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/domain/entity"
)

const informburoListingHTML = `
<html><body><ul>
  <li class="uk-grid uk-grid-small uk-margin-remove-top">
    <div class="uk-width-auto"><img data-src="/img/first.jpg"></div>
    <div class="uk-width-expand">
      <a href="/novosti/first-article"> Первая новость <span>extra</span></a>
      <time class="article-time">27 августа 2026, 14:05</time>
      <span class="article-mark">#политика</span>
    </div>
  </li>
  <li class="uk-grid uk-grid-small uk-margin-remove-top">
    <div class="uk-width-auto"><img data-src="https://cdn.informburo.kz/second.jpg"></div>
    <div class="uk-width-expand">
      <a href="https://informburo.kz/novosti/second-article">Вторая новость</a>
      <time class="article-time">27 августа 2026, 13:00</time>
    </div>
  </li>
</ul></body></html>`

const informburoArticleHTML = `
<html><body>
  <div class="article">
    <p>Первый абзац.</p>
    <p>Второй абзац.</p>
  </div>
</body></html>`

func newInformburoForTest(t *testing.T, handler http.Handler) (*Informburo, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewInformburo(srv.Client())
	s.allowPrivate = true
	s.listingURL = srv.URL + "/novosti"
	return s, srv
}

func TestInformburo_ListRecent(t *testing.T) {
	// Arrange
	s, _ := newInformburoForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(informburoListingHTML))
	}))

	// Act
	raws, err := s.ListRecent(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, raws, 2)

	first := raws[0]
	assert.Equal(t, "Первая новость", first.Title)
	assert.Equal(t, "https://informburo.kz/img/first.jpg", first.PhotoURL)
	assert.Equal(t, "https://informburo.kz/novosti/first-article", first.Link)
	assert.Equal(t, "#политика", first.Tag)
	assert.Equal(t, "27 августа 2026, 14:05", first.PublishedAtRaw)

	// Missing hashtag falls back to the sentinel tag.
	second := raws[1]
	assert.Equal(t, entity.TagNone, second.Tag)
	assert.Equal(t, "https://cdn.informburo.kz/second.jpg", second.PhotoURL)
}

func TestInformburo_ListRecent_NoBlocksIsParseError(t *testing.T) {
	s, _ := newInformburoForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>redesigned</p></body></html>`))
	}))

	_, err := s.ListRecent(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no listing blocks matched")
}

func TestInformburo_ListRecent_HTTPErrorSurfacesAsFetch(t *testing.T) {
	s, _ := newInformburoForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := s.ListRecent(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestInformburo_FetchContent(t *testing.T) {
	s, srv := newInformburoForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(informburoArticleHTML))
	}))

	content, err := s.FetchContent(context.Background(), srv.URL+"/novosti/first-article")

	require.NoError(t, err)
	assert.Equal(t, "Первый абзац.Второй абзац.", content)
}

func TestInformburo_FetchContent_TruncatesLongBodies(t *testing.T) {
	long := strings.Repeat("д", entity.ContentMaxLen+200)
	s, srv := newInformburoForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="article"><p>` + long + `</p></div></body></html>`))
	}))

	content, err := s.FetchContent(context.Background(), srv.URL+"/novosti/long")

	require.NoError(t, err)
	runes := []rune(content)
	assert.Len(t, runes, entity.ContentMaxLen+len([]rune(entity.ContentMarker)))
	assert.True(t, strings.HasSuffix(content, entity.ContentMarker))
}
