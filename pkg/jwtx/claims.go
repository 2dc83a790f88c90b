package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the fixed lifetime of an access token. There is
// no refresh flow; once a token expires the user logs in again. Keeping
// tokens short-lived is the only invalidation mechanism we have, since
// nothing is revoked server-side.
const DefaultAccessTokenTTL = time.Hour

// Claims are the identity data embedded in an access token. The token is
// self-contained: the subject is the user id and the email rides along so
// handlers can identify the caller without a database round trip.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user at issuance time. May be stale
	// relative to later profile changes, which is acceptable for the
	// one hour the token lives.
	Email string `json:"email,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for a user.
func NewAccessClaims(userID, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer matches the expected value. An empty
// expected issuer enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf). The instant of expiry itself counts as expired.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
