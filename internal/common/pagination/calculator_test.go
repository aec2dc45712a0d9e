package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffset(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		want  int
	}{
		{"first page has zero offset", 1, 5, 0},
		{"second page", 2, 5, 5},
		{"third page with limit 10", 3, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateOffset(tt.page, tt.limit))
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{"empty collection still has one page", 0, 5, 1},
		{"under one page", 3, 5, 1},
		{"exact page boundary", 10, 5, 2},
		{"one item past boundary", 11, 5, 3},
		{"twelve items at five per page", 12, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTotalPages(tt.total, tt.limit))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 3))
	assert.Equal(t, 1, Clamp(-7, 3))
	assert.Equal(t, 2, Clamp(2, 3))
	assert.Equal(t, 3, Clamp(99, 3))
	// Empty collection: totalPages is 1, everything clamps to 1.
	assert.Equal(t, 1, Clamp(5, 1))
}

func TestControls(t *testing.T) {
	// Single page shows no controls at all.
	assert.False(t, HasPrev(1))
	assert.False(t, HasNext(1, 1))

	// Middle page shows both.
	assert.True(t, HasPrev(2))
	assert.True(t, HasNext(2, 3))

	// Last page shows only prev.
	assert.True(t, HasPrev(3))
	assert.False(t, HasNext(3, 3))
}
