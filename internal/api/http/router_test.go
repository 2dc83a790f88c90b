package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/service"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/internal/api/store/drivers/sqlite"
	"github.com/orchardhq/fruitdex/internal/api/vision"
	"github.com/orchardhq/fruitdex/pkg/cryptox"
	"github.com/orchardhq/fruitdex/pkg/idx"
	"github.com/orchardhq/fruitdex/pkg/jwtx"
)

const testIssuer = "fruitdex-test"

var testSecret = []byte("router-test-secret-0123456789abc")

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-test-pepper")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// testEnv is a fully wired router over a temp-file sqlite store, the
// same object graph the real application builds.
type testEnv struct {
	store  store.Store
	router *Router
	server *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bootstrap := &service.BootstrapService{Store: st, Logger: logger}
	require.NoError(t, bootstrap.EnsureRoles(context.Background()))

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, testIssuer)
	require.NoError(t, err)

	rolesService := &service.RolesService{Store: st}

	router := NewRouter(verifier, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    testIssuer,
		AccessTTL: jwtx.DefaultAccessTokenTTL,
	}
	router.UserService = &service.UserService{Store: st}
	router.RolesService = rolesService
	router.CatalogService = &service.CatalogService{Store: st}
	router.RecognitionService = &service.RecognitionService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{store: st, router: router, server: srv}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, e.server.URL+path, buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// register creates an account through the real endpoint and returns the
// issued token plus user id.
func (e *testEnv) register(t *testing.T, email string) (token, userID string) {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/v1/auth/register", "", RegisterRequest{
		Email:       email,
		Password:    "a fine passphrase",
		DisplayName: "Test User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody[TokenResponse](t, resp)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken, body.User.ID
}

// promoteToAdmin assigns the admin role directly through the store, the
// way an operator would out of band.
func (e *testEnv) promoteToAdmin(t *testing.T, userID string) {
	t.Helper()

	role, err := e.store.Roles().GetRoleByName(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, e.store.Roles().AssignRole(context.Background(), userID, role.ID))
}

func TestRegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	token, userID := env.register(t, "alice@example.com")
	require.NotEmpty(t, userID)

	// The token works against a protected endpoint straight away.
	resp := env.do(t, http.MethodGet, "/v1/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[MeResponse](t, resp)
	require.Equal(t, "alice@example.com", me.Email)
	require.Equal(t, []string{domain.RoleUser}, me.Roles)

	// Login with the same credentials issues a fresh, working token.
	resp = env.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Email:    "alice@example.com",
		Password: "a fine passphrase",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeBody[TokenResponse](t, resp)
	require.Equal(t, userID, login.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/v1/auth/register", "", RegisterRequest{
		Email: "missing@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "bob@example.com")

	resp := env.do(t, http.MethodPost, "/v1/auth/register", "", RegisterRequest{
		Email:       "bob@example.com",
		Password:    "another pass",
		DisplayName: "Other Bob",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginFailureStatuses(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "carol@example.com")

	// Unknown email and wrong password are distinct failures.
	resp := env.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Email: "carol@example.com", Password: "not the password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedEndpointRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)

	// No header at all.
	resp := env.do(t, http.MethodGet, "/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage token.
	resp = env.do(t, http.MethodGet, "/v1/me", "not-a-jwt", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Wrong scheme never reaches the handler.
	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/v1/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	require.Equal(t, http.StatusForbidden, raw.StatusCode)

	// Expired token.
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	expired, err := signer.Sign(jwtx.NewAccessClaims("uid", "x@example.com", testIssuer, time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)
	resp = env.do(t, http.MethodGet, "/v1/me", expired, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRoleGating(t *testing.T) {
	env := newTestEnv(t)

	userToken, _ := env.register(t, "dave@example.com")
	adminToken, adminID := env.register(t, "admin@example.com")
	env.promoteToAdmin(t, adminID)

	// A plain user is denied the admin surface.
	resp := env.do(t, http.MethodGet, "/v1/roles", userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/v1/fruits", userToken, FruitRequest{Name: "Mango", Season: "summer"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// But allowed the user surface.
	resp = env.do(t, http.MethodGet, "/v1/fruits", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The admin passes both gates.
	resp = env.do(t, http.MethodGet, "/v1/roles", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	roles := decodeBody[ListRolesResponse](t, resp)
	require.Len(t, roles.Roles, 2)

	resp = env.do(t, http.MethodPost, "/v1/fruits", adminToken, FruitRequest{Name: "Mango", Season: "summer"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestFruitCatalogCRUD(t *testing.T) {
	env := newTestEnv(t)

	adminToken, adminID := env.register(t, "admin@example.com")
	env.promoteToAdmin(t, adminID)

	resp := env.do(t, http.MethodPost, "/v1/fruits", adminToken, FruitRequest{
		Name: "Mango", Description: "Tropical stone fruit", Season: "summer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[FruitResponse](t, resp)
	require.NotEmpty(t, created.ID)

	// Duplicate name conflicts, case-insensitively.
	resp = env.do(t, http.MethodPost, "/v1/fruits", adminToken, FruitRequest{Name: "MANGO", Season: "summer"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/v1/fruits/"+created.ID, adminToken, FruitRequest{
		Name: "Mango", Description: "Updated", Season: "summer",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[FruitResponse](t, resp)
	require.Equal(t, "Updated", updated.Description)

	resp = env.do(t, http.MethodDelete, "/v1/fruits/"+created.ID, adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/v1/fruits/"+created.ID, adminToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecipeSubmission(t *testing.T) {
	env := newTestEnv(t)

	userToken, userID := env.register(t, "erin@example.com")
	adminToken, adminID := env.register(t, "admin@example.com")
	env.promoteToAdmin(t, adminID)

	resp := env.do(t, http.MethodPost, "/v1/fruits", adminToken, FruitRequest{Name: "Apple", Season: "autumn"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	fruit := decodeBody[FruitResponse](t, resp)

	// Any member can submit; the author is taken from the token.
	resp = env.do(t, http.MethodPost, "/v1/recipes", userToken, RecipeRequest{
		FruitID: fruit.ID, Title: "Apple crumble", Instructions: "Crumble the apples.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	recipe := decodeBody[RecipeResponse](t, resp)
	require.Equal(t, userID, recipe.AuthorID)

	// Deletion is admin only.
	resp = env.do(t, http.MethodDelete, "/v1/recipes/"+recipe.ID, userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/v1/recipes/"+recipe.ID, adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestProfileUpdates(t *testing.T) {
	env := newTestEnv(t)

	token, _ := env.register(t, "frank@example.com")

	resp := env.do(t, http.MethodPut, "/v1/me", token, UpdateMeRequest{DisplayName: "Frank F."})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[MeResponse](t, resp)
	require.Equal(t, "Frank F.", me.DisplayName)

	// Password change with the wrong current password is rejected.
	resp = env.do(t, http.MethodPut, "/v1/me/password", token, ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "new passphrase",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/v1/me/password", token, ChangePasswordRequest{
		CurrentPassword: "a fine passphrase", NewPassword: "new passphrase",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The new password is live.
	resp = env.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Email: "frank@example.com", Password: "new passphrase",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRecognizeEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	token, _ := env.register(t, "grace@example.com")

	// Unconfigured provider: advertised as unavailable.
	resp := env.do(t, http.MethodPost, "/v1/recognize", token, RecognizeRequest{Image: "aGVsbG8="})
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// Stand up a fake provider and seed the catalog so the label matches.
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(vision.Classification{Label: "mango", Confidence: 0.88})
	}))
	defer provider.Close()
	env.router.RecognitionService.Classifier = vision.NewClient(provider.URL, "key")

	require.NoError(t, env.store.Fruits().CreateFruit(context.Background(), domain.Fruit{
		ID: idx.New().String(), Name: "Mango", Season: "summer",
	}))

	resp = env.do(t, http.MethodPost, "/v1/recognize", token, RecognizeRequest{Image: "aGVsbG8="})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decodeBody[RecognizeResponse](t, resp)
	require.Equal(t, "mango", rec.Label)
	require.NotNil(t, rec.Fruit)
	require.Equal(t, "Mango", rec.Fruit.Name)

	// Provider failure maps to a bad gateway, not a 500.
	provider.Close()
	resp = env.do(t, http.MethodPost, "/v1/recognize", token, RecognizeRequest{Image: "aGVsbG8="})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health := decodeBody[HealthResponse](t, resp)
	require.Equal(t, "ok", health.Status)
}
