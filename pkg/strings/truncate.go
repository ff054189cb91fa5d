// Package strings shortens values for single-line display in tables and logs.
package strings

import (
	"strings"
)

// DefaultMaxLen is the default width of a truncated value.
const DefaultMaxLen = 60

// minLen leaves room for one character plus "...".
const minLen = 4

// Truncate collapses whitespace in s to single spaces and cuts it to maxLen
// runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	if maxLen < minLen {
		maxLen = minLen
	}
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// JoinTruncated joins items with ", " and truncates the result. An empty
// list renders as "-".
func JoinTruncated(items []string, maxLen int) string {
	if len(items) == 0 {
		return "-"
	}
	return Truncate(strings.Join(items, ", "), maxLen)
}
