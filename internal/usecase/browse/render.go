package browse

import (
	"fmt"

	"github.com/araddon/dateparse"

	"newswire/internal/domain/entity"
)

// User-facing strings. The audience of the original bot is Russian
// speaking, so the UI stays in Russian.
const (
	buttonExpand   = "Раскрыть"
	buttonCollapse = "Скрыть"
	buttonRead     = "Читать"
	buttonPrev     = "◀️"
	buttonNext     = "▶️"

	// NotFoundText is shown when a toggle token references an article id
	// that no longer resolves.
	NotFoundText = "Статья не найдена."

	// emptyContentText stands in for the body when the content fetch
	// failed at ingestion and the article was stored with a placeholder.
	emptyContentText = "Содержание недоступно, читайте на сайте."
)

// displayTimeLayout is the fixed render format for publish timestamps.
const displayTimeLayout = "02.01.2006 15:04"

// DisplayTime normalizes a raw source-reported timestamp for display.
// Raw values are stored verbatim at ingestion; parsing happens here, at
// render time. A string dateparse cannot make sense of renders as-is.
func DisplayTime(raw string) string {
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	return t.Format(displayTimeLayout)
}

// CollapsedCaption renders the header view: title, publish time, tag.
func CollapsedCaption(art *entity.Article) string {
	return fmt.Sprintf("📋 Заголовок: %s\n🕰 Время публикации: %s\n%s",
		art.Title, DisplayTime(art.PublishedAtRaw), art.Tag)
}

// ExpandedCaption renders the content view. Only the truncated content
// is shown; the header fields come back on collapse. Articles stored
// without a body get a stand-in line pointing at the site.
func ExpandedCaption(art *entity.Article) string {
	if !art.HasContent() {
		return fmt.Sprintf("📰Содержание: %s", emptyContentText)
	}
	return fmt.Sprintf("📰Содержание: %s", art.Content)
}

// NotificationCaption renders the push message for a fresh article.
func NotificationCaption(art *entity.Article) string {
	return fmt.Sprintf("🔔 Новая публикация!\n%s\nСайт: %s",
		CollapsedCaption(art), art.Source.Host())
}

// CollapsedView assembles the header-state message for one article.
func CollapsedView(art *entity.Article) *ArticleView {
	return &ArticleView{
		ArticleID: art.ID,
		PhotoURL:  art.PhotoURL,
		Caption:   CollapsedCaption(art),
		Buttons: [][]Button{
			{{Text: buttonExpand, Token: ExpandToken(art.Source, art.ID)}},
			{{Text: buttonRead, URL: art.Link}},
		},
	}
}

// ExpandedView assembles the content-state message for one article.
func ExpandedView(art *entity.Article) *ArticleView {
	return &ArticleView{
		ArticleID: art.ID,
		PhotoURL:  art.PhotoURL,
		Caption:   ExpandedCaption(art),
		Buttons: [][]Button{
			{{Text: buttonCollapse, Token: CollapseToken(art.Source, art.ID)}},
			{{Text: buttonRead, URL: art.Link}},
		},
	}
}

// NotificationView assembles the push message for a fresh article.
func NotificationView(art *entity.Article) *ArticleView {
	return &ArticleView{
		ArticleID: art.ID,
		PhotoURL:  art.PhotoURL,
		Caption:   NotificationCaption(art),
		Buttons: [][]Button{
			{{Text: buttonRead, URL: art.Link}},
		},
	}
}
