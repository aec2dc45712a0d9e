package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newswire/internal/domain/entity"
)

func TestDecode_PageToken(t *testing.T) {
	got := Decode("informburo_page_3")

	assert.Equal(t, PageRequest{Source: entity.SourceInformburo, Page: 3}, got)
}

func TestDecode_ExpandToken(t *testing.T) {
	got := Decode("open_content_nur_42")

	assert.Equal(t, ExpandRequest{Source: entity.SourceNur, ArticleID: 42}, got)
}

func TestDecode_CollapseToken(t *testing.T) {
	got := Decode("close_content_informburo_7")

	assert.Equal(t, CollapseRequest{Source: entity.SourceInformburo, ArticleID: 7}, got)
}

func TestDecode_FixedTokens(t *testing.T) {
	assert.Equal(t, Ack{}, Decode("current_page"))
	assert.Equal(t, Subscribe{}, Decode("subscribe"))
	assert.Equal(t, Unsubscribe{}, Decode("unsubscribe"))
	assert.Equal(t, SourceSelect{Source: entity.SourceNur}, Decode("nur_news"))
}

func TestDecode_UnknownIsFirstClass(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "what_is_this"},
		{"empty", ""},
		{"unknown source in page token", "cnn_page_2"},
		{"non-numeric page", "nur_page_two"},
		{"unknown source in expand token", "open_content_cnn_5"},
		{"non-numeric article id", "open_content_nur_abc"},
		{"expand without id", "open_content_"},
		{"unknown source menu pick", "cnn_news"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Unknown{Raw: tt.raw}, Decode(tt.raw))
		})
	}
}

func TestTokenGrammar_RoundTrips(t *testing.T) {
	for _, source := range entity.Sources() {
		assert.Equal(t,
			PageRequest{Source: source, Page: 9},
			Decode(PageToken(source, 9)))
		assert.Equal(t,
			ExpandRequest{Source: source, ArticleID: 15},
			Decode(ExpandToken(source, 15)))
		assert.Equal(t,
			CollapseRequest{Source: source, ArticleID: 15},
			Decode(CollapseToken(source, 15)))
		assert.Equal(t,
			SourceSelect{Source: source},
			Decode(SourceToken(source)))
	}
}

func TestDecode_NegativePageStillDecodes(t *testing.T) {
	// Out-of-range page numbers are the pager's problem: the decoder
	// passes them through and rendering clamps.
	got := Decode("nur_page_-1")

	assert.Equal(t, PageRequest{Source: entity.SourceNur, Page: -1}, got)
}
