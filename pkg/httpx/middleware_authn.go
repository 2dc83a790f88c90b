package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/orchardhq/fruitdex/pkg/jwtx"
	"github.com/orchardhq/fruitdex/pkg/slogx"
)

// Error codes used by the gating middlewares.
const (
	ErrorCodeNoToken      = "no_token"
	ErrorCodeInvalidToken = "invalid_token"
	ErrorCodeForbidden    = "forbidden"
	ErrorCodeLookupFailed = "lookup_failed"
	ErrorCodeServerError  = "server_error"
)

// Authn gates every protected route. A missing Authorization header is a
// 401; a present-but-broken header (wrong scheme, bad signature, expired)
// is a 403. On success the decoded claims are attached to the request
// context; the user record is NOT re-fetched here, claims are trusted for
// the lifetime of the token.
func Authn(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" {
				writeBearerError(w, http.StatusUnauthorized, ErrorCodeNoToken, "missing bearer token")
				return
			}

			// Expect exactly "Bearer <token>". A header without the
			// scheme prefix is an explicit invalid-token rejection,
			// not a silently-empty token.
			scheme, raw, found := strings.Cut(authz, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				writeBearerError(w, http.StatusForbidden, ErrorCodeInvalidToken, "malformed authorization header")
				return
			}

			claims, err := v.Verify(strings.TrimSpace(raw))
			if err != nil {
				log.Warn("token verification failed", "err", err)
				writeBearerError(w, http.StatusForbidden, ErrorCodeInvalidToken, "token verification failed")
				return
			}

			ctx = contextWithIdentity(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithIdentity(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// writeBearerError emits an RFC 6750 WWW-Authenticate header alongside
// the standard JSON error body.
func writeBearerError(w http.ResponseWriter, status int, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, status, code, desc)
}
