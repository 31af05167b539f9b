package history

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach-backend/internal/jobs"
	"outreach-backend/internal/shared/storage/object/local"
)

func sampleEmail() GeneratedEmail {
	return GeneratedEmail{
		ID:             "abc",
		Subject:        "Solve Your DevOps Engineer Hiring Challenge - Atliq Can Help",
		Content:        "Dear Hiring Manager,\n\nHello.",
		JobListing:     jobs.JobListing{Title: "DevOps Engineer", Company: "Acme"},
		PortfolioLinks: []string{"https://atliq.com/portfolio/cloud-solutions", "https://atliq.com/portfolio/mobile-apps"},
		Timestamp:      FormatTimestamp(time.Date(2026, time.March, 1, 15, 4, 5, 0, time.UTC)),
	}
}

func TestRenderTextLayout(t *testing.T) {
	want := strings.Join([]string{
		"Outreach Pro - Generated Email",
		"==============================",
		"",
		"Subject: Solve Your DevOps Engineer Hiring Challenge - Atliq Can Help",
		"",
		"Email Content:",
		"Dear Hiring Manager,",
		"",
		"Hello.",
		"",
		"Target Job: DevOps Engineer at Acme",
		"",
		"Generated on: 3/1/2026, 3:04:05 PM UTC",
		"",
		"Portfolio Links:",
		"- https://atliq.com/portfolio/cloud-solutions",
		"- https://atliq.com/portfolio/mobile-apps",
	}, "\n")
	assert.Equal(t, want, RenderText(sampleEmail()))
}

func TestRenderTextKeepsUnparsedTimestamp(t *testing.T) {
	email := sampleEmail()
	email.Timestamp = "sometime"
	email.PortfolioLinks = nil
	out := RenderText(email)
	assert.Contains(t, out, "Generated on: sometime")
	assert.True(t, strings.HasSuffix(out, "Portfolio Links:"))
}

func TestExporterStoresCopy(t *testing.T) {
	store := local.New(t.TempDir())
	exp := NewExporter(store)

	out, err := exp.Export(context.Background(), "user-1", sampleEmail())
	require.NoError(t, err)
	assert.Equal(t, "outreach-email-abc.txt", out.FileName)
	require.NotEmpty(t, out.StorageKey)

	rc, err := store.Open(context.Background(), out.StorageKey)
	require.NoError(t, err)
	defer rc.Close()
	stored, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, out.Body, stored)
}

func TestExporterWithoutStore(t *testing.T) {
	out, err := NewExporter(nil).Export(context.Background(), "user-1", sampleEmail())
	require.NoError(t, err)
	assert.Empty(t, out.StorageKey)
	assert.NotEmpty(t, out.Body)
}
