package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orchardhq/fruitdex/pkg/jwtx"
)

const testIssuer = "fruitdex-test"

var testSecret = []byte("httpx-test-secret-0123456789abcdef")

func mintToken(t *testing.T, userID, email string, ttl time.Duration) string {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(userID, email, testIssuer, ttl, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func newVerifier(t *testing.T) jwtx.Verifier {
	t.Helper()

	v, err := jwtx.NewVerifierHS256(testSecret, testIssuer)
	require.NoError(t, err)
	return v
}

func TestAuthn_MissingHeader(t *testing.T) {
	handlerRan := false
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
	}), Authn(newVerifier(t)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, handlerRan, "handler must not run without a token")
	require.Contains(t, rec.Body.String(), "no_token")
}

func TestAuthn_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", mintToken(t, "u1", "a@b.c", time.Hour)},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"scheme only", "Bearer "},
		{"empty token", "Bearer    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerRan := false
			h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerRan = true
			}), Authn(newVerifier(t)))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusForbidden, rec.Code)
			require.False(t, handlerRan)
			require.Contains(t, rec.Body.String(), "invalid_token")
		})
	}
}

func TestAuthn_ExpiredToken(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an expired token")
	}), Authn(newVerifier(t)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "u1", "a@b.c", -time.Minute))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthn_ValidToken_AttachesIdentity(t *testing.T) {
	var gotUserID, gotEmail string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromCtx(r.Context())
		gotEmail = EmailFromCtx(r.Context())
	}), Authn(newVerifier(t)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "01J0ALICE", "alice@example.com", time.Hour))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "01J0ALICE", gotUserID)
	require.Equal(t, "alice@example.com", gotEmail)
}
