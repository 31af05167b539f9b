package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

type Repo interface {
	// Create inserts a new user; ErrUserExists when the email is taken.
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateProfile(ctx context.Context, userID, name, picture string) error
	UpdatePreferences(ctx context.Context, userID string, prefs Preferences) error
	TouchLogin(ctx context.Context, userID string, at time.Time) error
}
