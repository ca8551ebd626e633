// Package utils provides shared utilities for text, math, and logging.
package utils

import "strings"

// Truncate returns s truncated to maxLen characters, with "..." appended if
// truncated. The cut falls on a rune boundary so multibyte text stays valid
// UTF-8. If maxLen is 0 or negative, returns s unchanged. Used to keep
// queries short in logs.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == maxLen {
			return s[:i] + "..."
		}
		count++
	}
	return s
}

// IsBlank reports whether s is empty or whitespace-only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
