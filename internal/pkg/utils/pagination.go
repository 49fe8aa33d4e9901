package utils

import (
	"fmt"
	"math"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NormalizePage applies the default page and limit bounds.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// Showing renders the "start-end of total" label used by list responses.
func Showing(page, limit int, total int64) string {
	if total == 0 {
		return "0 of 0"
	}
	start := int64((page-1)*limit) + 1
	end := start + int64(limit) - 1
	if end > total {
		end = total
	}
	if start > total {
		return fmt.Sprintf("0 of %d", total)
	}
	return fmt.Sprintf("%d-%d of %d", start, end, total)
}

// PageBounds returns the slice bounds of a page over n items.
func PageBounds(page, limit, n int) (int, int) {
	start := (page - 1) * limit
	if start > n {
		start = n
	}
	end := start + limit
	if end > n {
		end = n
	}
	return start, end
}
