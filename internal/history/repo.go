package history

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repo persists generated emails per user. List is newest-first by timestamp;
// Delete reports whether anything was removed.
type Repo interface {
	Save(ctx context.Context, userID string, email GeneratedEmail) error
	List(ctx context.Context, userID string) ([]GeneratedEmail, error)
	Delete(ctx context.Context, userID, emailID string) (bool, error)
}
