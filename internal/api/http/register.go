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

// RegisterHandler serves POST /v1/auth/register.
type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates a user with the default "user" role and returns a fresh access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RegisterRequest	true	"email, password, display_name"
//	@Success		201		{object}	TokenResponse	"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	httpx.ErrorResponse	"missing or malformed fields"
//	@Failure		409		{object}	httpx.ErrorResponse	"email already registered"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email, password, and display_name are required")
		return
	}

	res, err := h.AuthService.Register(ctx, req.Email, req.Password, req.DisplayName)
	switch {
	case errors.Is(err, service.ErrAlreadyRegistered):
		httpx.WriteError(w, http.StatusConflict, "already_registered", "An account with this email already exists")
		return
	case err != nil:
		log.Error("registration failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to register account")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, newTokenResponse(res))
}
