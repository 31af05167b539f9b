package users

import "time"

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// Preferences steer generated emails for a user.
type Preferences struct {
	Tone        string `json:"tone"`
	Language    string `json:"language"`
	EmailLength string `json:"emailLength"`
}

// DefaultPreferences are assigned at signup.
func DefaultPreferences() Preferences {
	return Preferences{Tone: "professional", Language: "english", EmailLength: "medium"}
}

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Picture      string      `json:"picture,omitempty"`
	Preferences  Preferences `json:"preferences"`
	AuthProvider string      `json:"-"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	LastLoginAt  *time.Time  `json:"-"`
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
