// Package pagination provides the page arithmetic shared by the browse
// use case and the Telegram handler.
package pagination

// CalculateOffset calculates the database OFFSET value based on page number
// and limit. Page numbers are 1-based, so page 1 has offset 0.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages using ceiling
// division. An empty collection still occupies one page, so the result is
// never below 1 and "Page: 1/1" renders even with zero items.
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Clamp forces a page number into the valid range [1, totalPages].
// Tokens arriving from old messages may reference pages that no longer
// exist in either direction; clamping keeps every token usable.
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// HasPrev reports whether a previous-page control should be shown.
func HasPrev(page int) bool {
	return page > 1
}

// HasNext reports whether a next-page control should be shown.
func HasNext(page, totalPages int) bool {
	return page < totalPages
}
