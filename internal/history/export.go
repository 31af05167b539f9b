package history

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"outreach-backend/internal/shared/storage/object"
	"outreach-backend/internal/shared/telemetry"
)

const exportContentType = "text/plain; charset=utf-8"

// Export is a rendered email ready for download.
type Export struct {
	FileName   string
	StorageKey string
	Body       []byte
}

// Exporter renders emails as text files and keeps a copy in the object store.
type Exporter struct {
	Store object.ObjectStore
}

// NewExporter constructs an Exporter. A nil store skips persistence.
func NewExporter(store object.ObjectStore) *Exporter {
	return &Exporter{Store: store}
}

// ExportFileName is the download name for email.
func ExportFileName(email GeneratedEmail) string {
	return fmt.Sprintf("outreach-email-%s.txt", email.ID)
}

// RenderText lays out email as the plain-text export document.
func RenderText(email GeneratedEmail) string {
	generated := email.Timestamp
	if t, err := ParseTimestamp(email.Timestamp); err == nil {
		generated = t.UTC().Format("1/2/2006, 3:04:05 PM") + " UTC"
	}

	var b strings.Builder
	b.WriteString("Outreach Pro - Generated Email\n")
	b.WriteString("==============================\n\n")
	fmt.Fprintf(&b, "Subject: %s\n\n", email.Subject)
	fmt.Fprintf(&b, "Email Content:\n%s\n\n", email.Content)
	fmt.Fprintf(&b, "Target Job: %s at %s\n\n", email.JobListing.Title, email.JobListing.Company)
	fmt.Fprintf(&b, "Generated on: %s\n\n", generated)
	b.WriteString("Portfolio Links:\n")
	for i, link := range email.PortfolioLinks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- " + link)
	}
	return strings.TrimSpace(b.String())
}

// Export renders email and writes it to the user's namespace in the object store.
func (e *Exporter) Export(ctx context.Context, userID string, email GeneratedEmail) (Export, error) {
	out := Export{
		FileName: ExportFileName(email),
		Body:     []byte(RenderText(email)),
	}
	if e == nil || e.Store == nil {
		return out, nil
	}
	key, size, err := e.Store.Put(ctx, userID, out.FileName, exportContentType, bytes.NewReader(out.Body))
	if err != nil {
		return Export{}, fmt.Errorf("store export: %w", err)
	}
	out.StorageKey = key
	telemetry.Info("history.export.stored", map[string]any{
		"email_id":   email.ID,
		"key":        key,
		"size_bytes": size,
	})
	return out, nil
}
