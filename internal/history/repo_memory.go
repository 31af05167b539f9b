package history

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]GeneratedEmail // userID -> emails in insertion order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]GeneratedEmail),
	}
}

// Save appends email to the user's history. Saving an id that is already stored
// replaces that entry, matching the Postgres upsert.
func (r *MemoryRepo) Save(ctx context.Context, userID string, email GeneratedEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	emails := r.data[userID]
	for i := range emails {
		if emails[i].ID == email.ID {
			// Move to the end so ties still favour the latest save.
			emails = append(emails[:i:i], emails[i+1:]...)
			break
		}
	}
	r.data[userID] = append(emails, email.Clone())
	return nil
}

// List returns the user's emails newest first. Equal timestamps put the later save first.
func (r *MemoryRepo) List(ctx context.Context, userID string) ([]GeneratedEmail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	stored := r.data[userID]
	out := make([]GeneratedEmail, len(stored))
	for i := range stored {
		// Reverse insertion order so the stable sort breaks ties newest-saved first.
		out[len(stored)-1-i] = stored[i].Clone()
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].createdAt().After(out[j].createdAt())
	})
	return out, nil
}

// Delete removes every email with emailID from the user's history.
func (r *MemoryRepo) Delete(ctx context.Context, userID, emailID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	emails := r.data[userID]
	kept := make([]GeneratedEmail, 0, len(emails))
	for _, e := range emails {
		if e.ID != emailID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(emails) {
		return false, nil
	}
	r.data[userID] = kept
	return true, nil
}
