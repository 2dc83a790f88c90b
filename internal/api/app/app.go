package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/orchardhq/fruitdex/internal/api/http"
	"github.com/orchardhq/fruitdex/internal/api/service"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/internal/api/store/drivers/sqlite"
	"github.com/orchardhq/fruitdex/internal/api/vision"
	"github.com/orchardhq/fruitdex/pkg/cryptox"
	"github.com/orchardhq/fruitdex/pkg/jwtx"
	"github.com/orchardhq/fruitdex/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the API service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	authService        *service.AuthService
	userService        *service.UserService
	rolesService       *service.RolesService
	bootstrapService   *service.BootstrapService
	catalogService     *service.CatalogService
	recognitionService *service.RecognitionService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized. The roles
// table is seeded here, before any listener exists, so every request the
// server ever handles sees the seed roles in place.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "fruitdex-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := jwtx.NewSignerHS256([]byte(cfg.JWTSecret))
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	app.initServices(signer)

	if err := app.bootstrapService.EnsureRoles(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed roles: %w", err)
	}

	app.initHTTP(verifier)

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("fruitdex api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down fruitdex api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("fruitdex api stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices(signer jwtx.Signer) {
	app.authService = &service.AuthService{
		Store:     app.db,
		Signer:    signer,
		Issuer:    app.cfg.Issuer,
		AccessTTL: jwtx.DefaultAccessTokenTTL,
	}

	app.userService = &service.UserService{Store: app.db}
	app.rolesService = &service.RolesService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store:  app.db,
		Logger: app.logger,
	}
	app.catalogService = &service.CatalogService{Store: app.db}

	app.recognitionService = &service.RecognitionService{Store: app.db}
	if app.cfg.VisionURL != "" {
		app.recognitionService.Classifier = vision.NewClient(app.cfg.VisionURL, app.cfg.VisionKey)
		app.logger.Info("fruit recognition enabled", "provider", app.cfg.VisionURL)
	} else {
		app.logger.Info("fruit recognition disabled: no provider configured")
	}
}

func (app *Application) initHTTP(verifier jwtx.Verifier) {
	router := httpapi.NewRouter(
		verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.RolesService = app.rolesService
	router.CatalogService = app.catalogService
	router.RecognitionService = app.recognitionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
