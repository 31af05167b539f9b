// Package jobs turns a careers page into structured job listings.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"outreach-backend/internal/company"
	"outreach-backend/internal/llm"
	"outreach-backend/internal/shared/besteffort"
	"outreach-backend/internal/shared/metrics"
	"outreach-backend/internal/shared/telemetry"
)

// ErrNoJobs means the model answered but produced no usable posting.
var ErrNoJobs = errors.New("no jobs in model output")

// PageFetcher returns a page's visible text.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor finds job listings on a careers page with a language model and falls
// back to the mock catalog when the page or the model fails.
type Extractor struct {
	fetcher PageFetcher
	model   llm.Completer
	timeout time.Duration
}

// NewExtractor builds an Extractor. timeout bounds the model call.
func NewExtractor(fetcher PageFetcher, model llm.Completer, timeout time.Duration) *Extractor {
	if model == nil {
		model = llm.PlaceholderClient{}
	}
	return &Extractor{fetcher: fetcher, model: model, timeout: timeout}
}

// Extract never fails: every path yields at least one listing with a fresh id.
func (e *Extractor) Extract(ctx context.Context, pageURL string) []JobListing {
	companyName := company.Resolve(pageURL)

	if e.fetcher == nil {
		return e.fallback(pageURL, UnknownCompany, "fetch", errors.New("no fetcher configured"))
	}
	text, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return e.fallback(pageURL, UnknownCompany, "fetch", err)
	}

	prompt := llm.ExtractJobsPrompt(text, companyName)
	res := besteffort.Produce(ctx, e.timeout, func(ctx context.Context) ([]JobListing, error) {
		raw, err := e.model.Complete(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return ParseJobs(raw, companyName)
	}, func() []JobListing {
		return MockCatalog(companyName)
	})
	if res.Degraded {
		metrics.IncJobsExtractFallback()
		telemetry.Warn("jobs.extract.fallback", map[string]any{
			"component": "extractor",
			"reason":    "model",
			"url":       pageURL,
			"company":   companyName,
			"error":     res.Err,
		})
	}
	return res.Value
}

func (e *Extractor) fallback(pageURL, companyName, reason string, err error) []JobListing {
	metrics.IncJobsExtractFallback()
	telemetry.Warn("jobs.extract.fallback", map[string]any{
		"component": "extractor",
		"reason":    reason,
		"url":       pageURL,
		"company":   companyName,
		"error":     err,
	})
	return MockCatalog(companyName)
}

type modelJob struct {
	Title       string   `json:"title"`
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience"`
	Description string   `json:"description"`
}

// ParseJobs decodes the model's {"jobs":[...]} answer. The company field is always set
// to companyName and every listing gets a fresh id. Listings without a title are
// dropped; an answer with none left is ErrNoJobs.
func ParseJobs(raw, companyName string) ([]JobListing, error) {
	body := jsonObject(raw)
	var parsed struct {
		Jobs []modelJob `json:"jobs"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	out := make([]JobListing, 0, len(parsed.Jobs))
	for _, mj := range parsed.Jobs {
		title := strings.TrimSpace(mj.Title)
		if title == "" {
			continue
		}
		skills := make([]string, 0, len(mj.Skills))
		for _, s := range mj.Skills {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		out = append(out, JobListing{
			ID:          uuid.NewString(),
			Title:       title,
			Skills:      skills,
			Experience:  strings.TrimSpace(mj.Experience),
			Description: strings.TrimSpace(mj.Description),
			Company:     companyName,
		})
	}
	if len(out) == 0 {
		return nil, ErrNoJobs
	}
	return out, nil
}

// jsonObject trims chatter and code fences around the outermost JSON object.
func jsonObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return raw
	}
	return raw[start : end+1]
}
