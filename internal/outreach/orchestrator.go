// Package outreach sequences job extraction and email generation for API callers.
package outreach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"outreach-backend/internal/emails"
	"outreach-backend/internal/history"
	"outreach-backend/internal/jobs"
	"outreach-backend/internal/shared/metrics"
	"outreach-backend/internal/shared/telemetry"
)

// JobExtractor finds listings on a careers page.
type JobExtractor interface {
	Extract(ctx context.Context, pageURL string) []jobs.JobListing
}

// LinkMatcher picks portfolio links relevant to a job.
type LinkMatcher interface {
	Match(ctx context.Context, description string, skills []string) []string
}

// EmailComposer drafts the email body and subject.
type EmailComposer interface {
	ComposeStyled(ctx context.Context, job jobs.JobListing, links []string, style emails.Style) emails.Draft
}

// StyleSource looks up a user's writing preferences.
type StyleSource interface {
	StyleFor(ctx context.Context, userID string) (emails.Style, error)
}

// Deps are the collaborators of an Orchestrator. Styles is optional.
type Deps struct {
	Extractor JobExtractor
	Matcher   LinkMatcher
	Composer  EmailComposer
	History   history.Repo
	Styles    StyleSource
}

// Orchestrator runs each pipeline call to completion and never hands a hard
// failure back for ExtractJobs or GenerateEmail.
type Orchestrator struct {
	deps  Deps
	now   func() time.Time
	newID func() string
}

func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{deps: deps, now: time.Now, newID: uuid.NewString}
}

// Generation is a generated email plus whether the outer fallback produced it.
type Generation struct {
	Email    history.GeneratedEmail
	Degraded bool
}

// ExtractJobs returns the listings found at pageURL, or the mock catalog for
// "Unknown Company" when anything escapes the extractor.
func (o *Orchestrator) ExtractJobs(ctx context.Context, pageURL string) (listings []jobs.JobListing) {
	start := time.Now()
	metrics.IncJobsExtract()
	defer func() {
		if rec := recover(); rec != nil {
			o.logRecovered("extract", rec, map[string]any{"url": pageURL})
			listings = jobs.MockCatalog(jobs.UnknownCompany)
		}
		metrics.ObservePipelineDurationMs(float64(time.Since(start).Milliseconds()))
	}()

	if o.deps.Extractor == nil {
		panic("outreach: extractor not configured")
	}
	listings = o.deps.Extractor.Extract(ctx, pageURL)
	if len(listings) == 0 {
		listings = jobs.MockCatalog(jobs.UnknownCompany)
	}
	return listings
}

// GenerateEmail drafts an email for job and appends it to userID's history.
func (o *Orchestrator) GenerateEmail(ctx context.Context, job jobs.JobListing, userID string) history.GeneratedEmail {
	return o.Generate(ctx, job, userID).Email
}

// Generate is GenerateEmail that also reports use of the outer fallback.
func (o *Orchestrator) Generate(ctx context.Context, job jobs.JobListing, userID string) Generation {
	start := time.Now()
	defer func() {
		metrics.ObservePipelineDurationMs(float64(time.Since(start).Milliseconds()))
	}()

	job = job.Clone()
	gen := o.compose(ctx, job, userID)
	email := history.GeneratedEmail{
		ID:             o.newID(),
		Subject:        gen.draft.Subject,
		Content:        gen.draft.Body,
		JobListing:     job,
		PortfolioLinks: gen.links,
		Timestamp:      history.FormatTimestamp(o.now()),
	}
	metrics.IncEmailsGenerated()

	if err := o.save(ctx, userID, email); err != nil {
		telemetry.Error("outreach.history.save_failed", map[string]any{
			"user_id":  userID,
			"email_id": email.ID,
			"error":    err.Error(),
		})
	}
	return Generation{Email: email, Degraded: gen.degraded}
}

type composed struct {
	draft    emails.Draft
	links    []string
	degraded bool
}

// compose runs matcher then composer. The components already degrade on their
// own; the recover here catches anything that still escapes them.
func (o *Orchestrator) compose(ctx context.Context, job jobs.JobListing, userID string) (out composed) {
	defer func() {
		if rec := recover(); rec != nil {
			o.logRecovered("generate", rec, map[string]any{"job_title": job.Title, "user_id": userID})
			out = composed{draft: emails.FallbackDraft(job), links: []string{}, degraded: true}
		}
	}()

	if o.deps.Matcher == nil || o.deps.Composer == nil {
		panic("outreach: matcher or composer not configured")
	}
	links := o.deps.Matcher.Match(ctx, job.Description, job.Skills)
	if links == nil {
		links = []string{}
	}
	draft := o.deps.Composer.ComposeStyled(ctx, job, links, o.styleFor(ctx, userID))
	return composed{draft: draft, links: links}
}

func (o *Orchestrator) styleFor(ctx context.Context, userID string) emails.Style {
	if o.deps.Styles == nil || strings.TrimSpace(userID) == "" {
		return emails.Style{}
	}
	style, err := o.deps.Styles.StyleFor(ctx, userID)
	if err != nil {
		telemetry.Debug("outreach.style.unavailable", map[string]any{"user_id": userID, "error": err.Error()})
		return emails.Style{}
	}
	return style
}

// ListHistory returns userID's emails newest first.
func (o *Orchestrator) ListHistory(ctx context.Context, userID string) ([]history.GeneratedEmail, error) {
	if o.deps.History == nil {
		return []history.GeneratedEmail{}, nil
	}
	out, err := o.deps.History.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	if out == nil {
		out = []history.GeneratedEmail{}
	}
	return out, nil
}

// SaveToHistory stores a client-provided email. A missing timestamp becomes now;
// any ISO-8601 timestamp is kept as sent.
func (o *Orchestrator) SaveToHistory(ctx context.Context, userID string, email history.GeneratedEmail) error {
	if strings.TrimSpace(email.ID) == "" {
		return fmt.Errorf("%w: id is required", history.ErrInvalidInput)
	}
	if strings.TrimSpace(email.Timestamp) == "" {
		email.Timestamp = history.FormatTimestamp(o.now())
	} else if _, err := history.ParseTimestamp(email.Timestamp); err != nil {
		return fmt.Errorf("%w: %v", history.ErrInvalidInput, err)
	}
	if email.PortfolioLinks == nil {
		email.PortfolioLinks = []string{}
	}
	return o.save(ctx, userID, email)
}

// DeleteFromHistory reports whether an email was removed.
func (o *Orchestrator) DeleteFromHistory(ctx context.Context, userID, emailID string) (bool, error) {
	if o.deps.History == nil {
		return false, nil
	}
	return o.deps.History.Delete(ctx, userID, emailID)
}

// FindInHistory returns one email from userID's history.
func (o *Orchestrator) FindInHistory(ctx context.Context, userID, emailID string) (history.GeneratedEmail, error) {
	emailsList, err := o.ListHistory(ctx, userID)
	if err != nil {
		return history.GeneratedEmail{}, err
	}
	for _, e := range emailsList {
		if e.ID == emailID {
			return e, nil
		}
	}
	return history.GeneratedEmail{}, history.ErrNotFound
}

func (o *Orchestrator) save(ctx context.Context, userID string, email history.GeneratedEmail) error {
	if o.deps.History == nil {
		return errors.New("history store not configured")
	}
	return o.deps.History.Save(ctx, userID, email)
}

func (o *Orchestrator) logRecovered(op string, rec any, fields map[string]any) {
	fields["component"] = "orchestrator"
	fields["op"] = op
	fields["panic"] = fmt.Sprint(rec)
	telemetry.Error("outreach.recovered", fields)
}
