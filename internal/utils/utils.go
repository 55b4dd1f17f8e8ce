package utils

import "strings"

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// FirstN returns at most n leading elements of items. A non-positive n yields an
// empty slice.
func FirstN[T any](items []T, n int) []T {
	if n <= 0 {
		return items[:0:0]
	}
	if len(items) > n {
		return items[:n:n]
	}
	return items
}
