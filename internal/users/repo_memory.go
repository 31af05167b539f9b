package users

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	users   map[string]User
	byEmail map[string]string // email -> user id
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:   make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return ErrUserExists
	}
	if _, ok := r.users[user.ID]; ok {
		return ErrUserExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.ID] = user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.users[id], nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, userID, name, picture string) error {
	return r.update(ctx, userID, func(u *User) {
		u.Name = name
		u.Picture = picture
	})
}

func (r *MemoryRepo) UpdatePreferences(ctx context.Context, userID string, prefs Preferences) error {
	return r.update(ctx, userID, func(u *User) { u.Preferences = prefs })
}

func (r *MemoryRepo) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	return r.update(ctx, userID, func(u *User) {
		t := at.UTC()
		u.LastLoginAt = &t
	})
}

func (r *MemoryRepo) update(ctx context.Context, userID string, fn func(*User)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	fn(&user)
	r.users[userID] = user
	return nil
}
