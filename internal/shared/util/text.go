package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes cuts s to at most n characters without splitting a multi-byte rune.
// n <= 0 returns s unchanged.
func TruncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// CollapseWhitespace trims every line, drops blank ones and joins the rest with newlines.
func CollapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.Join(strings.Fields(line), " "); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
