package httpx

import (
	"context"
	"net/http"
	"slices"

	"github.com/orchardhq/fruitdex/pkg/slogx"
)

// RoleLookup resolves the role names assigned to a user. The identity
// store implements this; keeping it an interface means the middleware
// never couples to a concrete database.
type RoleLookup interface {
	RolesForUser(ctx context.Context, userID string) ([]string, error)
}

// RequireRole returns a middleware bound to a single role name. It must
// be composed after Authn on every route: the caller's id is read from
// the request context, their assigned role names are looked up, and the
// request proceeds only if the required name is among them.
//
// A store failure during the lookup is a 500, deliberately distinct from
// the 403 a plain denial gets: denials are expected traffic, a store
// failure is an operational incident.
func RequireRole(lookup RoleLookup, role string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			userID := UserIDFromCtx(ctx)
			if userID == "" {
				// Programming error: RequireRole composed without Authn.
				log.Error("role gate reached without authenticated identity", "required_role", role)
				WriteError(w, http.StatusInternalServerError, ErrorCodeServerError, "internal server error")
				return
			}

			roles, err := lookup.RolesForUser(ctx, userID)
			if err != nil {
				log.Error("role lookup failed", "user_id", userID, "err", err)
				WriteError(w, http.StatusInternalServerError, ErrorCodeLookupFailed, "could not verify permissions")
				return
			}

			if !slices.Contains(roles, role) {
				WriteError(w, http.StatusForbidden, ErrorCodeForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
