package outreach

import (
	"context"

	"outreach-backend/internal/emails"
	"outreach-backend/internal/users"
)

// UserLookup is the part of the users service the orchestrator reads.
type UserLookup interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

// UserStyles maps stored account preferences to composer styles.
type UserStyles struct {
	Users UserLookup
}

func (s UserStyles) StyleFor(ctx context.Context, userID string) (emails.Style, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return emails.Style{}, err
	}
	return emails.Style{Tone: user.Preferences.Tone, Length: user.Preferences.EmailLength}, nil
}
