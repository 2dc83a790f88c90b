package domain

import "time"

type User struct {
	ID           string
	Email        string // unique, stored case-sensitively
	DisplayName  string
	PasswordHash string // argon2id encoded, never the raw password

	// Preference defaults set at registration; the auth subsystem never
	// reads them again.
	Preferences        string
	TrackingConsent    bool
	LocationPermission bool

	CreatedAt   time.Time
	LastLoginAt *time.Time // nil until the first login
}

// Summary is the public shape of a user returned alongside tokens.
type UserSummary struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}
