package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"outreach-backend/internal/shared/telemetry"
)

var (
	validTones   = map[string]bool{"professional": true, "friendly": true, "casual": true, "formal": true}
	validLengths = map[string]bool{"short": true, "medium": true, "long": true}
)

// TokenSigner issues session tokens.
type TokenSigner interface {
	Sign(subject, email, name, picture string) (string, error)
}

type Service struct {
	Repo   Repo
	Signer TokenSigner
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
	now  func() time.Time
}

func NewService(repo Repo, signer TokenSigner) *Service {
	return &Service{Repo: repo, Signer: signer, now: time.Now}
}

// Signup registers a password account with default preferences and signs it in.
func (s *Service) Signup(ctx context.Context, email, password, name string) (AuthResult, error) {
	if err := s.ready(); err != nil {
		return AuthResult{}, err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return AuthResult{}, err
	}
	name = strings.TrimSpace(name)
	if password == "" || name == "" {
		return AuthResult{}, fmt.Errorf("%w: email, password and name are required", ErrInvalidInput)
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Preferences:  DefaultPreferences(),
		AuthProvider: ProviderPassword,
		PasswordHash: string(hash),
		CreatedAt:    s.clock().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	telemetry.Info("users.signup", map[string]any{"user_id": user.ID})
	return s.issue(user)
}

// Login checks a password account. Unknown emails and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if err := s.ready(); err != nil {
		return AuthResult{}, err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if user.PasswordHash == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err := s.Repo.TouchLogin(ctx, user.ID, s.clock()); err != nil {
		telemetry.Warn("users.touch_login.failed", map[string]any{"user_id": user.ID, "error": err.Error()})
	}
	return s.issue(user)
}

// UpsertFromAuth records an identity confirmed by an external provider. An existing
// account with the same email is reused so password and Google sign-in share history.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	email, err := normalizeEmail(user.Email)
	if err != nil {
		return User{}, err
	}
	user.Email = email

	existing, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		name := firstNonEmpty(user.Name, existing.Name)
		picture := firstNonEmpty(user.Picture, existing.Picture)
		if err := s.Repo.UpdateProfile(ctx, existing.ID, name, picture); err != nil {
			return User{}, err
		}
		existing.Name, existing.Picture = name, picture
		user = existing
	case errors.Is(err, ErrNotFound):
		if user.AuthProvider == "" {
			user.AuthProvider = ProviderGoogle
		}
		user.Preferences = DefaultPreferences()
		user.CreatedAt = s.clock().UTC()
		if err := s.Repo.Create(ctx, user); err != nil {
			return User{}, err
		}
	default:
		return User{}, err
	}
	if err := s.Repo.TouchLogin(ctx, user.ID, s.clock()); err != nil {
		telemetry.Warn("users.touch_login.failed", map[string]any{"user_id": user.ID, "error": err.Error()})
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpdatePreferences validates and stores prefs. Empty fields keep their current value.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, prefs Preferences) (User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	merged := Preferences{
		Tone:        strings.ToLower(firstNonEmpty(strings.TrimSpace(prefs.Tone), user.Preferences.Tone)),
		Language:    strings.ToLower(firstNonEmpty(strings.TrimSpace(prefs.Language), user.Preferences.Language)),
		EmailLength: strings.ToLower(firstNonEmpty(strings.TrimSpace(prefs.EmailLength), user.Preferences.EmailLength)),
	}
	if !validTones[merged.Tone] {
		return User{}, fmt.Errorf("%w: tone must be one of professional, friendly, casual, formal", ErrInvalidInput)
	}
	if !validLengths[merged.EmailLength] {
		return User{}, fmt.Errorf("%w: emailLength must be one of short, medium, long", ErrInvalidInput)
	}
	if err := s.Repo.UpdatePreferences(ctx, userID, merged); err != nil {
		return User{}, err
	}
	user.Preferences = merged
	return user, nil
}

// IssueToken signs a session token for user.
func (s *Service) IssueToken(user User) (string, error) {
	if s == nil || s.Signer == nil {
		return "", errors.New("token signer not configured")
	}
	return s.Signer.Sign(user.ID, user.Email, user.Name, user.Picture)
}

func (s *Service) issue(user User) (AuthResult, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{Token: token, User: user}, nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil || s.Signer == nil {
		return errors.New("users service not configured")
	}
	return nil
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return strings.ToLower(addr.Address), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
