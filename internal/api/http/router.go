package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/service"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/pkg/httpx"
	"github.com/orchardhq/fruitdex/pkg/jwtx"
	"github.com/orchardhq/fruitdex/pkg/slogx"

	_ "github.com/orchardhq/fruitdex/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	AuthService        *service.AuthService
	UserService        *service.UserService
	RolesService       *service.RolesService
	CatalogService     *service.CatalogService
	RecognitionService *service.RecognitionService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerRoles()
	r.registerFruits()
	r.registerRegions()
	r.registerRecipes()
	r.registerRecognition()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			FruitDex API
//	@version		0.1.0
//	@description	Catalog and content-management API for a fruit education platform.
//	@description	Registration and login issue JWT access tokens; catalog writes need the admin role.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential endpoints take the strict limit by IP: these are the
	// brute-force targets.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &MeHandler{
		UserService:  r.UserService,
		RolesService: r.RolesService,
	}

	authed := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.Authn(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/me", authed(h.HandleGet))
	r.Mux.Handle("PUT /v1/me", authed(h.HandleUpdate))
	r.Mux.Handle("PUT /v1/me/password",
		httpx.Chain(http.HandlerFunc(h.HandlePassword),
			httpx.Authn(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRoles() {
	r.Mux.Handle("GET /v1/roles",
		httpx.Chain(&RolesHandler{RolesService: r.RolesService},
			httpx.Authn(r.verifier),
			httpx.RequireRole(r.RolesService, domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerFruits() {
	h := &FruitsHandler{Catalog: r.CatalogService}

	r.Mux.Handle("GET /v1/fruits", r.authedRead(h.HandleList))
	r.Mux.Handle("GET /v1/fruits/{id}", r.authedRead(h.HandleGet))

	r.Mux.Handle("POST /v1/fruits", r.adminWrite(h.HandleCreate))
	r.Mux.Handle("PUT /v1/fruits/{id}", r.adminWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/fruits/{id}", r.adminWrite(h.HandleDelete))
}

func (r *Router) registerRegions() {
	h := &RegionsHandler{Catalog: r.CatalogService}

	r.Mux.Handle("GET /v1/regions", r.authedRead(h.HandleList))
	r.Mux.Handle("GET /v1/regions/{id}", r.authedRead(h.HandleGet))

	r.Mux.Handle("POST /v1/regions", r.adminWrite(h.HandleCreate))
	r.Mux.Handle("PUT /v1/regions/{id}", r.adminWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/regions/{id}", r.adminWrite(h.HandleDelete))
}

func (r *Router) registerRecipes() {
	h := &RecipesHandler{Catalog: r.CatalogService}

	r.Mux.Handle("GET /v1/recipes", r.authedRead(h.HandleList))
	r.Mux.Handle("GET /v1/recipes/{id}", r.authedRead(h.HandleGet))

	// Any member with the "user" role can contribute a recipe.
	r.Mux.Handle("POST /v1/recipes",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.Authn(r.verifier),
			httpx.RequireRole(r.RolesService, domain.RoleUser),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/recipes/{id}", r.adminWrite(h.HandleDelete))
}

func (r *Router) registerRecognition() {
	r.Mux.Handle("POST /v1/recognize",
		httpx.Chain(&RecognizeHandler{Recognition: r.RecognitionService},
			httpx.Authn(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

// authedRead gates a catalog read: any valid token, lenient per-user limit.
func (r *Router) authedRead(fn http.HandlerFunc) http.Handler {
	return httpx.Chain(fn,
		httpx.Authn(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
}

// adminWrite gates a catalog write behind the admin role.
func (r *Router) adminWrite(fn http.HandlerFunc) http.Handler {
	return httpx.Chain(fn,
		httpx.Authn(r.verifier),
		httpx.RequireRole(r.RolesService, domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}
