package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"outreach-backend/internal/jobs"
)

// GeneratedEmail is one saved outreach email.
type GeneratedEmail struct {
	ID             string          `json:"id"`
	Subject        string          `json:"subject"`
	Content        string          `json:"content"`
	JobListing     jobs.JobListing `json:"jobListing"`
	PortfolioLinks []string        `json:"portfolioLinks"`
	Timestamp      string          `json:"timestamp"`
}

// FormatTimestamp renders t the way history timestamps are stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ErrInvalidTimestamp is returned for timestamps that match no accepted ISO-8601 layout.
var ErrInvalidTimestamp = errors.New("timestamp must be ISO-8601")

// timestampLayouts are tried in order. Fractional seconds are accepted after the
// seconds field of every layout that has one.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts the common ISO-8601 date-time shapes: RFC 3339, ±hhmm
// offsets, a space separator, no offset (read as UTC) and a bare date (UTC midnight).
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Clone returns a copy that shares no slices with e.
func (e GeneratedEmail) Clone() GeneratedEmail {
	out := e
	out.JobListing = e.JobListing.Clone()
	out.PortfolioLinks = append([]string{}, e.PortfolioLinks...)
	return out
}

func (e GeneratedEmail) createdAt() time.Time {
	t, err := ParseTimestamp(e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
