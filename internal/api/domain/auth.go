package domain

import "time"

// AuthResult is what a successful registration or login hands back: a
// signed access token plus the public user summary.
type AuthResult struct {
	Token     string
	ExpiresIn time.Duration
	User      UserSummary
}
