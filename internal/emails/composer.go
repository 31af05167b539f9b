// Package emails writes cold outreach emails for job listings.
package emails

import (
	"context"
	"time"

	"outreach-backend/internal/jobs"
	"outreach-backend/internal/llm"
	"outreach-backend/internal/shared/besteffort"
	"outreach-backend/internal/shared/metrics"
	"outreach-backend/internal/shared/telemetry"
)

// Style carries optional user preferences for the model prompt.
type Style struct {
	Tone   string
	Length string
}

// Composer drafts emails with a language model, falling back to FallbackDraft.
type Composer struct {
	model   llm.Completer
	timeout time.Duration
}

// NewComposer builds a Composer; timeout bounds the model call.
func NewComposer(model llm.Completer, timeout time.Duration) *Composer {
	if model == nil {
		model = llm.PlaceholderClient{}
	}
	return &Composer{model: model, timeout: timeout}
}

// Compose drafts an email for job referencing links. It never fails.
func (c *Composer) Compose(ctx context.Context, job jobs.JobListing, links []string) Draft {
	return c.ComposeStyled(ctx, job, links, Style{})
}

// ComposeStyled is Compose with tone and length hints for the model.
func (c *Composer) ComposeStyled(ctx context.Context, job jobs.JobListing, links []string, style Style) Draft {
	prompt := llm.ColdEmailPrompt(llm.EmailPromptInput{
		JobTitle:       job.Title,
		Company:        job.Company,
		Skills:         job.Skills,
		Experience:     job.Experience,
		Description:    job.Description,
		PortfolioLinks: links,
		Tone:           style.Tone,
		Length:         style.Length,
	})

	res := besteffort.Produce(ctx, c.timeout, func(ctx context.Context) (Draft, error) {
		raw, err := c.model.Complete(ctx, prompt)
		if err != nil {
			return Draft{}, err
		}
		return ParseDraft(raw)
	}, func() Draft {
		return FallbackDraft(job)
	})
	if res.Degraded {
		metrics.IncEmailsComposeFallback()
		telemetry.Warn("emails.compose.fallback", map[string]any{
			"component": "composer",
			"job_title": job.Title,
			"company":   job.Company,
			"error":     res.Err,
		})
	}
	return res.Value
}
