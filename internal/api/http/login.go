package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/orchardhq/fruitdex/internal/api/service"
	"github.com/orchardhq/fruitdex/pkg/httpx"
	"github.com/orchardhq/fruitdex/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Log in with email and password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LoginRequest	true	"email, password"
//	@Success		200		{object}	TokenResponse	"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"wrong password"
//	@Failure		404		{object}	httpx.ErrorResponse	"no account for this email"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user_not_found", "No account exists for this email")
		return
	case errors.Is(err, service.ErrWrongPassword):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Incorrect password")
		return
	case err != nil:
		log.Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to log in")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, newTokenResponse(res))
}
