package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"outreach-backend/internal/jobs"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Save(ctx context.Context, userID string, email GeneratedEmail) error {
	createdAt, err := ParseTimestamp(email.Timestamp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	jobJSON, err := json.Marshal(email.JobListing)
	if err != nil {
		return fmt.Errorf("marshal job listing: %w", err)
	}
	links := email.PortfolioLinks
	if links == nil {
		links = []string{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("marshal portfolio links: %w", err)
	}

	const query = `
INSERT INTO email_history (id, user_id, subject, content, job_listing, portfolio_links, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id, id) DO UPDATE SET
  subject = EXCLUDED.subject,
  content = EXCLUDED.content,
  job_listing = EXCLUDED.job_listing,
  portfolio_links = EXCLUDED.portfolio_links,
  created_at = EXCLUDED.created_at,
  inserted_at = clock_timestamp()`
	_, err = r.DB.ExecContext(ctx, query,
		email.ID,
		userID,
		email.Subject,
		email.Content,
		jobJSON,
		linksJSON,
		createdAt.UTC(),
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, userID string) ([]GeneratedEmail, error) {
	const query = `
SELECT id, subject, content, job_listing, portfolio_links, created_at
FROM email_history
WHERE user_id = $1
ORDER BY created_at DESC, inserted_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GeneratedEmail{}
	for rows.Next() {
		var (
			email     GeneratedEmail
			jobJSON   []byte
			linksJSON []byte
			createdAt time.Time
		)
		if err := rows.Scan(&email.ID, &email.Subject, &email.Content, &jobJSON, &linksJSON, &createdAt); err != nil {
			return nil, err
		}
		var job jobs.JobListing
		if err := json.Unmarshal(jobJSON, &job); err != nil {
			return nil, fmt.Errorf("decode job listing %s: %w", email.ID, err)
		}
		email.JobListing = job
		email.PortfolioLinks = []string{}
		if len(linksJSON) > 0 {
			if err := json.Unmarshal(linksJSON, &email.PortfolioLinks); err != nil {
				return nil, fmt.Errorf("decode portfolio links %s: %w", email.ID, err)
			}
		}
		email.Timestamp = FormatTimestamp(createdAt)
		out = append(out, email)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, emailID string) (bool, error) {
	const query = `DELETE FROM email_history WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, emailID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
