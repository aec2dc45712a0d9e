package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateContent_ShortInputUnchanged(t *testing.T) {
	assert.Equal(t, "short text", TruncateContent("short text"))
}

func TestTruncateContent_LongInputCutWithMarker(t *testing.T) {
	long := strings.Repeat("a", ContentMaxLen+50)
	got := TruncateContent(long)

	assert.Equal(t, ContentMaxLen+len(ContentMarker), len(got))
	assert.True(t, strings.HasSuffix(got, ContentMarker))
}

func TestTruncateContent_CountsRunesNotBytes(t *testing.T) {
	// Cyrillic content from the sources is multi-byte; the cutoff is
	// applied per rune so the marker never splits a character.
	long := strings.Repeat("ж", ContentMaxLen+1)
	got := TruncateContent(long)

	runes := []rune(got)
	assert.Equal(t, ContentMaxLen+len([]rune(ContentMarker)), len(runes))
	assert.Equal(t, 'ж', runes[ContentMaxLen-1])
}

func TestArticle_HasContent(t *testing.T) {
	assert.False(t, (&Article{}).HasContent())
	assert.True(t, (&Article{Content: "body"}).HasContent())
}
