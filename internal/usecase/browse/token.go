// Package browse implements the interactive read path: callback token
// grammar, page assembly and the collapsed/expanded article presenter.
package browse

import (
	"fmt"
	"strconv"
	"strings"

	"newswire/internal/domain/entity"
)

// Fixed callback tokens.
const (
	AckToken         = "current_page"
	SubscribeToken   = "subscribe"
	UnsubscribeToken = "unsubscribe"
)

const (
	openContentPrefix  = "open_content_"
	closeContentPrefix = "close_content_"
	pageInfix          = "_page_"
	sourceSuffix       = "_news"
)

// Interaction is the decoded form of one callback token. The set of
// variants is closed; handlers switch over it exhaustively and treat
// Unknown as a first-class outcome, not an error.
type Interaction interface{ isInteraction() }

// PageRequest asks for one page of a source's articles.
type PageRequest struct {
	Source entity.Source
	Page   int
}

// ExpandRequest switches one article message to the content view.
type ExpandRequest struct {
	Source    entity.Source
	ArticleID int64
}

// CollapseRequest switches one article message back to the header view.
type CollapseRequest struct {
	Source    entity.Source
	ArticleID int64
}

// SourceSelect is a pick from the source menu.
type SourceSelect struct {
	Source entity.Source
}

// Subscribe opts the subscriber into notifications.
type Subscribe struct{}

// Unsubscribe opts the subscriber out of notifications.
type Unsubscribe struct{}

// Ack is the no-op token bound to the page indicator button.
type Ack struct{}

// Unknown carries a token that matched no grammar production. Stale
// messages keep their buttons forever, so unknown data is expected
// traffic and must be acknowledged without side effects.
type Unknown struct {
	Raw string
}

func (PageRequest) isInteraction()     {}
func (ExpandRequest) isInteraction()   {}
func (CollapseRequest) isInteraction() {}
func (SourceSelect) isInteraction()    {}
func (Subscribe) isInteraction()       {}
func (Unsubscribe) isInteraction()     {}
func (Ack) isInteraction()             {}
func (Unknown) isInteraction()         {}

// Decode parses raw callback data into its Interaction variant.
// It never fails: anything unparseable becomes Unknown.
func Decode(raw string) Interaction {
	switch raw {
	case AckToken:
		return Ack{}
	case SubscribeToken:
		return Subscribe{}
	case UnsubscribeToken:
		return Unsubscribe{}
	}

	if rest, ok := strings.CutPrefix(raw, openContentPrefix); ok {
		if source, id, ok := parseSourceID(rest); ok {
			return ExpandRequest{Source: source, ArticleID: id}
		}
		return Unknown{Raw: raw}
	}

	if rest, ok := strings.CutPrefix(raw, closeContentPrefix); ok {
		if source, id, ok := parseSourceID(rest); ok {
			return CollapseRequest{Source: source, ArticleID: id}
		}
		return Unknown{Raw: raw}
	}

	if name, pageStr, found := strings.Cut(raw, pageInfix); found {
		source, err := entity.ParseSource(name)
		if err != nil {
			return Unknown{Raw: raw}
		}
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return Unknown{Raw: raw}
		}
		return PageRequest{Source: source, Page: page}
	}

	if name, ok := strings.CutSuffix(raw, sourceSuffix); ok {
		if source, err := entity.ParseSource(name); err == nil {
			return SourceSelect{Source: source}
		}
	}

	return Unknown{Raw: raw}
}

func parseSourceID(rest string) (entity.Source, int64, bool) {
	sep := strings.LastIndex(rest, "_")
	if sep < 0 {
		return "", 0, false
	}
	source, err := entity.ParseSource(rest[:sep])
	if err != nil {
		return "", 0, false
	}
	id, err := strconv.ParseInt(rest[sep+1:], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return source, id, true
}

// PageToken encodes a page request for a source.
func PageToken(source entity.Source, page int) string {
	return fmt.Sprintf("%s%s%d", source, pageInfix, page)
}

// ExpandToken encodes an expand request for one article.
func ExpandToken(source entity.Source, id int64) string {
	return fmt.Sprintf("%s%s_%d", openContentPrefix, source, id)
}

// CollapseToken encodes a collapse request for one article.
func CollapseToken(source entity.Source, id int64) string {
	return fmt.Sprintf("%s%s_%d", closeContentPrefix, source, id)
}

// SourceToken encodes a source menu pick.
func SourceToken(source entity.Source) string {
	return string(source) + sourceSuffix
}
