// Package company derives a display name for a company from its careers page url.
package company

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fallback is returned for urls without a usable host.
const Fallback = "Company"

// Resolve returns the first DNS label of the url's host with its first letter upper
// cased and the rest lower cased, e.g. "https://acme-corp.com/careers" -> "Acme-corp".
func Resolve(rawURL string) string {
	idx := strings.Index(rawURL, "//")
	if idx < 0 {
		return Fallback
	}
	host := rawURL[idx+2:]
	if end := strings.IndexAny(host, "/?#"); end >= 0 {
		host = host[:end]
	}
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}
	if colon := strings.Index(host, ":"); colon >= 0 {
		host = host[:colon]
	}
	label := host
	if dot := strings.Index(host, "."); dot >= 0 {
		label = host[:dot]
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return Fallback
	}
	return capitalize(label)
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
