package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRoleLookup struct {
	roles map[string][]string
	err   error
}

func (f *fakeRoleLookup) RolesForUser(_ context.Context, userID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roles[userID], nil
}

func authedRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	ctx := context.WithValue(req.Context(), CtxKeyUserID, userID)
	return req.WithContext(ctx)
}

func TestRequireRole_Allowed(t *testing.T) {
	lookup := &fakeRoleLookup{roles: map[string][]string{"u1": {"user"}}}

	handlerRan := false
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
	}), RequireRole(lookup, "user"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest("u1"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, handlerRan)
}

func TestRequireRole_Forbidden(t *testing.T) {
	lookup := &fakeRoleLookup{roles: map[string][]string{"u1": {"user"}}}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a denied caller")
	}), RequireRole(lookup, "admin"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest("u1"))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "forbidden")
}

func TestRequireRole_MembershipAmongMany(t *testing.T) {
	// Role checks are set-aware: any assignment containing the required
	// name passes, regardless of how many roles the user holds.
	lookup := &fakeRoleLookup{roles: map[string][]string{"u1": {"user", "admin"}}}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		RequireRole(lookup, "admin"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest("u1"))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_LookupFailure(t *testing.T) {
	// A store failure is an internal error, not a 403: the two must stay
	// distinguishable for alerting.
	lookup := &fakeRoleLookup{err: errors.New("connection refused")}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when the role lookup fails")
	}), RequireRole(lookup, "admin"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest("u1"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "lookup_failed")
}

func TestRequireRole_NoIdentity(t *testing.T) {
	// Composed without Authn: a programming error surfaced as a 500, not
	// a normal rejection.
	lookup := &fakeRoleLookup{roles: map[string][]string{}}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without identity")
	}), RequireRole(lookup, "admin"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
