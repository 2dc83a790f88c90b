package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/internal/api/store/drivers/sqlite"
	"github.com/orchardhq/fruitdex/pkg/cryptox"
	"github.com/orchardhq/fruitdex/pkg/jwtx"
)

const testIssuer = "fruitdex-test"

var testSecret = []byte("test-signing-secret-0123456789ab")

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test-pepper")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// seedRoles runs the startup bootstrap so registration can find the
// "user" role, mirroring the real boot order.
func seedRoles(t *testing.T, s store.Store) {
	t.Helper()

	bs := &BootstrapService{Store: s, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	require.NoError(t, bs.EnsureRoles(context.Background()))
}

func newAuthService(t *testing.T, s store.Store) *AuthService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	return &AuthService{
		Store:     s,
		Signer:    signer,
		Issuer:    testIssuer,
		AccessTTL: jwtx.DefaultAccessTokenTTL,
	}
}

func registerTestUser(t *testing.T, svc *AuthService, email, password string) *domain.AuthResult {
	t.Helper()

	res, err := svc.Register(context.Background(), email, password, "Test User")
	require.NoError(t, err)
	return res
}

// Shared clock helper for tests that care about claim timing.
func withinSkew(t *testing.T, want, got time.Time, skew time.Duration) {
	t.Helper()
	require.WithinDuration(t, want, got, skew)
}
