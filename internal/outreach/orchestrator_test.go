package outreach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach-backend/internal/emails"
	"outreach-backend/internal/history"
	"outreach-backend/internal/jobs"
	"outreach-backend/internal/llm"
	"outreach-backend/internal/portfolio"
)

type extractorFunc func(ctx context.Context, pageURL string) []jobs.JobListing

func (f extractorFunc) Extract(ctx context.Context, pageURL string) []jobs.JobListing {
	return f(ctx, pageURL)
}

type matcherFunc func(ctx context.Context, description string, skills []string) []string

func (f matcherFunc) Match(ctx context.Context, description string, skills []string) []string {
	return f(ctx, description, skills)
}

type composerFunc func(ctx context.Context, job jobs.JobListing, links []string, style emails.Style) emails.Draft

func (f composerFunc) ComposeStyled(ctx context.Context, job jobs.JobListing, links []string, style emails.Style) emails.Draft {
	return f(ctx, job, links, style)
}

type styleFunc func(ctx context.Context, userID string) (emails.Style, error)

func (f styleFunc) StyleFor(ctx context.Context, userID string) (emails.Style, error) {
	return f(ctx, userID)
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

type failingSearcher struct{}

func (failingSearcher) Query(context.Context, string, int) ([]portfolio.Hit, error) {
	return nil, errors.New("index offline")
}

func failingModel() llm.Completer {
	return llm.CompleterFunc(func(context.Context, string) (string, error) {
		return "", errors.New("model unreachable")
	})
}

func sampleJob() jobs.JobListing {
	return jobs.JobListing{
		ID:          "job-1",
		Title:       "DevOps Engineer",
		Company:     "Acme",
		Skills:      []string{"Docker", "Kubernetes", "AWS"},
		Experience:  "3-5 years",
		Description: "Build and run our cloud platform.",
	}
}

func staticDeps(repo history.Repo) Deps {
	return Deps{
		Extractor: extractorFunc(func(context.Context, string) []jobs.JobListing {
			return []jobs.JobListing{{ID: "j1", Title: "Platform Engineer", Company: "Acme"}}
		}),
		Matcher: matcherFunc(func(context.Context, string, []string) []string {
			return []string{"https://a", "https://b"}
		}),
		Composer: composerFunc(func(_ context.Context, job jobs.JobListing, _ []string, _ emails.Style) emails.Draft {
			return emails.Draft{Subject: "Hello " + job.Company, Body: "Body for " + job.Title}
		}),
		History: repo,
	}
}

func TestExtractJobsPassesThrough(t *testing.T) {
	o := NewOrchestrator(staticDeps(history.NewMemoryRepo()))
	got := o.ExtractJobs(context.Background(), "https://acme.com/careers")
	require.Len(t, got, 1)
	assert.Equal(t, "Platform Engineer", got[0].Title)
}

func TestExtractJobsRecoversFromPanic(t *testing.T) {
	deps := staticDeps(history.NewMemoryRepo())
	deps.Extractor = extractorFunc(func(context.Context, string) []jobs.JobListing {
		panic("parser blew up")
	})
	got := NewOrchestrator(deps).ExtractJobs(context.Background(), "https://acme.com/careers")

	require.Len(t, got, 4)
	for _, job := range got {
		assert.Equal(t, jobs.UnknownCompany, job.Company)
		assert.NotEmpty(t, job.ID)
	}
}

func TestExtractJobsEmptyResultUsesMockCatalog(t *testing.T) {
	deps := staticDeps(history.NewMemoryRepo())
	deps.Extractor = extractorFunc(func(context.Context, string) []jobs.JobListing { return nil })
	got := NewOrchestrator(deps).ExtractJobs(context.Background(), "https://acme.com/careers")
	assert.Len(t, got, 4)
}

func TestExtractJobsWithFailingFetchReturnsUnknownCompanyCatalog(t *testing.T) {
	deps := staticDeps(history.NewMemoryRepo())
	deps.Extractor = jobs.NewExtractor(failingFetcher{}, failingModel(), time.Second)
	o := NewOrchestrator(deps)

	for _, u := range []string{"https://acme.com/careers", "https://jobs.example.org", "http://x.io/a?b=c"} {
		got := o.ExtractJobs(context.Background(), u)
		require.Len(t, got, 4, u)
		for _, job := range got {
			assert.Equal(t, "Unknown Company", job.Company)
		}
	}
}

func TestExtractJobsIDsAreUnique(t *testing.T) {
	deps := staticDeps(history.NewMemoryRepo())
	deps.Extractor = jobs.NewExtractor(failingFetcher{}, nil, 0)
	o := NewOrchestrator(deps)

	seen := make(map[string]struct{}, 10000)
	for len(seen) < 10000 {
		before := len(seen)
		for _, job := range o.ExtractJobs(context.Background(), "https://acme.com") {
			_, dup := seen[job.ID]
			require.False(t, dup, "duplicate id %s", job.ID)
			seen[job.ID] = struct{}{}
		}
		require.Greater(t, len(seen), before)
	}
}

func TestGenerateEmailSavesToHistory(t *testing.T) {
	repo := history.NewMemoryRepo()
	o := NewOrchestrator(staticDeps(repo))
	fixed := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	o.now = func() time.Time { return fixed }

	email := o.GenerateEmail(context.Background(), sampleJob(), "u1")
	assert.NotEmpty(t, email.ID)
	assert.Equal(t, "Hello Acme", email.Subject)
	assert.Equal(t, "Body for DevOps Engineer", email.Content)
	assert.Equal(t, []string{"https://a", "https://b"}, email.PortfolioLinks)
	assert.Equal(t, "2026-04-01T10:00:00Z", email.Timestamp)
	assert.Equal(t, sampleJob(), email.JobListing)

	list, err := o.ListHistory(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, email, list[0])
}

func TestGenerateEmailWithFailingUpstreamsUsesFallbacks(t *testing.T) {
	repo := history.NewMemoryRepo()
	o := NewOrchestrator(Deps{
		Extractor: extractorFunc(func(context.Context, string) []jobs.JobListing { return nil }),
		Matcher:   portfolio.NewMatcher(failingSearcher{}, time.Second),
		Composer:  emails.NewComposer(failingModel(), time.Second),
		History:   repo,
	})

	job := sampleJob()
	email := o.GenerateEmail(context.Background(), job, "u1")

	assert.Equal(t, "Solve Your DevOps Engineer Hiring Challenge - Atliq Can Help", email.Subject)
	assert.Contains(t, email.Content, "Acme")
	assert.Contains(t, email.Content, "Docker")
	assert.Equal(t, portfolio.FallbackLinks(), email.PortfolioLinks)
}

func TestGenerateRecoversFromComposerPanic(t *testing.T) {
	repo := history.NewMemoryRepo()
	deps := staticDeps(repo)
	deps.Composer = composerFunc(func(context.Context, jobs.JobListing, []string, emails.Style) emails.Draft {
		panic("template missing")
	})
	o := NewOrchestrator(deps)

	gen := o.Generate(context.Background(), sampleJob(), "u1")
	assert.True(t, gen.Degraded)
	assert.Equal(t, emails.FallbackDraft(sampleJob()).Subject, gen.Email.Subject)
	assert.Equal(t, emails.FallbackDraft(sampleJob()).Body, gen.Email.Content)
	assert.NotNil(t, gen.Email.PortfolioLinks)
	assert.Empty(t, gen.Email.PortfolioLinks)

	list, _ := o.ListHistory(context.Background(), "u1")
	assert.Len(t, list, 1)
}

func TestGenerateRecoversFromMatcherPanic(t *testing.T) {
	deps := staticDeps(history.NewMemoryRepo())
	deps.Matcher = matcherFunc(func(context.Context, string, []string) []string {
		panic("index corrupted")
	})
	gen := NewOrchestrator(deps).Generate(context.Background(), sampleJob(), "u1")
	assert.True(t, gen.Degraded)
	assert.Empty(t, gen.Email.PortfolioLinks)
	assert.True(t, strings.HasPrefix(gen.Email.Subject, "Solve Your DevOps Engineer"))
}

func TestGenerateEmailIDsAreUnique(t *testing.T) {
	o := NewOrchestrator(staticDeps(history.NewMemoryRepo()))
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		email := o.GenerateEmail(context.Background(), sampleJob(), "u1")
		_, dup := seen[email.ID]
		require.False(t, dup, "duplicate id %s", email.ID)
		seen[email.ID] = struct{}{}
	}
}

func TestGenerateUsesUserStyle(t *testing.T) {
	var got emails.Style
	deps := staticDeps(history.NewMemoryRepo())
	deps.Composer = composerFunc(func(_ context.Context, _ jobs.JobListing, _ []string, style emails.Style) emails.Draft {
		got = style
		return emails.Draft{Subject: "s", Body: "b"}
	})
	deps.Styles = styleFunc(func(context.Context, string) (emails.Style, error) {
		return emails.Style{Tone: "friendly", Length: "short"}, nil
	})
	NewOrchestrator(deps).GenerateEmail(context.Background(), sampleJob(), "u1")
	assert.Equal(t, emails.Style{Tone: "friendly", Length: "short"}, got)
}

func TestGenerateIgnoresStyleErrors(t *testing.T) {
	deps := staticDeps(history.NewMemoryRepo())
	deps.Styles = styleFunc(func(context.Context, string) (emails.Style, error) {
		return emails.Style{}, errors.New("user not found")
	})
	email := NewOrchestrator(deps).GenerateEmail(context.Background(), sampleJob(), "u1")
	assert.Equal(t, "Hello Acme", email.Subject)
}

func TestSaveToHistoryValidates(t *testing.T) {
	o := NewOrchestrator(staticDeps(history.NewMemoryRepo()))
	err := o.SaveToHistory(context.Background(), "u1", history.GeneratedEmail{ID: "", Timestamp: history.FormatTimestamp(time.Now())})
	assert.ErrorIs(t, err, history.ErrInvalidInput)

	err = o.SaveToHistory(context.Background(), "u1", history.GeneratedEmail{ID: "e1", Timestamp: "last tuesday"})
	assert.ErrorIs(t, err, history.ErrInvalidInput)

	err = o.SaveToHistory(context.Background(), "u1", history.GeneratedEmail{ID: "e1", Timestamp: "2026-01-02T03:04:05.678Z"})
	require.NoError(t, err)

	got, err := o.FindInHistory(context.Background(), "u1", "e1")
	require.NoError(t, err)
	assert.NotNil(t, got.PortfolioLinks)
}

func TestSaveToHistoryAcceptsISOTimestamps(t *testing.T) {
	for _, ts := range []string{
		"2024-05-01T10:00:00.123456",
		"2024-05-01T10:00:00+0000",
		"2024-05-01T12:00:00+02:00",
		"2024-05-01",
	} {
		t.Run(ts, func(t *testing.T) {
			o := NewOrchestrator(staticDeps(history.NewMemoryRepo()))
			require.NoError(t, o.SaveToHistory(context.Background(), "u1", history.GeneratedEmail{ID: "e1", Timestamp: ts}))

			got, err := o.FindInHistory(context.Background(), "u1", "e1")
			require.NoError(t, err)
			assert.Equal(t, ts, got.Timestamp)
		})
	}
}

func TestSaveToHistoryDefaultsMissingTimestamp(t *testing.T) {
	o := NewOrchestrator(staticDeps(history.NewMemoryRepo()))
	fixed := time.Date(2026, time.May, 4, 8, 0, 0, 0, time.UTC)
	o.now = func() time.Time { return fixed }

	require.NoError(t, o.SaveToHistory(context.Background(), "u1", history.GeneratedEmail{ID: "e1"}))
	got, err := o.FindInHistory(context.Background(), "u1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "2026-05-04T08:00:00Z", got.Timestamp)
}

func TestDeleteFromHistory(t *testing.T) {
	o := NewOrchestrator(staticDeps(history.NewMemoryRepo()))

	removed, err := o.DeleteFromHistory(context.Background(), "u1", "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	email := o.GenerateEmail(context.Background(), sampleJob(), "u1")
	removed, err = o.DeleteFromHistory(context.Background(), "u1", email.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = o.FindInHistory(context.Background(), "u1", email.ID)
	assert.ErrorIs(t, err, history.ErrNotFound)
}
