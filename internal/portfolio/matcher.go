// Package portfolio picks the showcase projects most relevant to a job posting.
package portfolio

import (
	"context"
	"strings"
	"time"

	"outreach-backend/internal/shared/besteffort"
	"outreach-backend/internal/shared/metrics"
	"outreach-backend/internal/shared/telemetry"
)

// MaxLinks caps the links returned per job.
const MaxLinks = 3

// Matcher queries a Searcher for the top portfolio urls.
type Matcher struct {
	searcher Searcher
	timeout  time.Duration
}

// NewMatcher builds a Matcher; timeout bounds each search.
func NewMatcher(searcher Searcher, timeout time.Duration) *Matcher {
	return &Matcher{searcher: searcher, timeout: timeout}
}

// Match returns at most three urls in the searcher's order. Any failure, including
// an empty result, yields FallbackLinks.
func (m *Matcher) Match(ctx context.Context, description string, skills []string) []string {
	query := strings.TrimSpace(description + " " + strings.Join(skills, " "))
	res := besteffort.Produce(ctx, m.timeout, func(ctx context.Context) ([]string, error) {
		if m.searcher == nil {
			return nil, ErrEmptyIndex
		}
		hits, err := m.searcher.Query(ctx, query, MaxLinks)
		if err != nil {
			return nil, err
		}
		links := make([]string, 0, MaxLinks)
		for _, hit := range hits {
			if url := strings.TrimSpace(hit.Entry.URL); url != "" {
				links = append(links, url)
			}
			if len(links) == MaxLinks {
				break
			}
		}
		if len(links) == 0 {
			return nil, ErrNoMatches
		}
		return links, nil
	}, FallbackLinks)
	if res.Degraded {
		metrics.IncPortfolioMatchFallback()
		telemetry.Warn("portfolio.match.fallback", map[string]any{
			"component": "matcher",
			"error":     res.Err,
		})
	}
	return res.Value
}
