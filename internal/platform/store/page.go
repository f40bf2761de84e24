package store

import "math"

// Page returns the 1-based page of items holding at most limit entries, i.e.
// the slice [(page-1)*limit, page*limit). Out-of-range pages yield an empty,
// non-nil slice. page and limit below 1 are treated as 1.
func Page[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	// Compare page counts first so (page-1)*limit never overflows.
	pages := len(items) / limit
	if len(items)%limit != 0 {
		pages++
	}
	if page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// Offset converts a 1-based page and limit into a row offset. Offsets past
// math.MaxInt are clamped to the largest multiple of limit that fits.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt / limit * limit
	}
	return (page - 1) * limit
}
