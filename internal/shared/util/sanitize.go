package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that are empty or try to escape the user prefix.
var ErrInvalidFileName = errors.New("invalid file name")

const maxFileNameRunes = 200

// SanitizeFileName flattens path separators, drops control characters and caps
// the length. Traversal segments are rejected rather than rewritten.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	s = TruncateRunes(s, maxFileNameRunes)
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
