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

// MeHandler serves the /v1/me profile endpoints. All of them sit behind
// the authn middleware, so the caller's id is always in the context.
type MeHandler struct {
	UserService  *service.UserService
	RolesService *service.RolesService
}

// HandleGet godoc
//
//	@Summary	Current user profile
//	@Tags		Profile
//	@Produce	json
//	@Success	200	{object}	MeResponse	"profile with role names"
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	500	{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		log.Error("failed to load profile", "user_id", userID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load profile")
		return
	}

	roles, err := h.RolesService.RolesForUser(ctx, userID)
	if err != nil {
		log.Error("failed to load roles", "user_id", userID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MeResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       roles,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	})
}

// HandleUpdate godoc
//
//	@Summary	Update display name
//	@Tags		Profile
//	@Accept		json
//	@Produce	json
//	@Param		body	body		UpdateMeRequest	true	"display_name"
//	@Success	200		{object}	MeResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/me [put].
func (h *MeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)

	var req UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "display_name is required")
		return
	}

	if err := h.UserService.UpdateDisplayName(ctx, userID, req.DisplayName); err != nil {
		log.Error("failed to update display name", "user_id", userID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update profile")
		return
	}

	h.HandleGet(w, r)
}

// HandlePassword godoc
//
//	@Summary	Change password
//	@Description	Verifies the current password before storing the new one.
//	@Tags		Profile
//	@Accept		json
//	@Param		body	body	ChangePasswordRequest	true	"current_password, new_password"
//	@Success	204
//	@Failure	400	{object}	httpx.ErrorResponse
//	@Failure	401	{object}	httpx.ErrorResponse	"current password is wrong"
//	@Security	BearerAuth
//	@Router		/v1/me/password [put].
func (h *MeHandler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "current_password and new_password are required")
		return
	}

	err := h.UserService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, service.ErrWrongPassword):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Current password is incorrect")
		return
	case err != nil:
		log.Error("failed to change password", "user_id", userID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to change password")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
