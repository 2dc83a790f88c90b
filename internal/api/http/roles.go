package http

import (
	"net/http"

	"github.com/orchardhq/fruitdex/internal/api/service"
	"github.com/orchardhq/fruitdex/pkg/httpx"
	"github.com/orchardhq/fruitdex/pkg/slogx"
)

// RolesHandler serves GET /v1/roles (admin only).
type RolesHandler struct {
	RolesService *service.RolesService
}

// ServeHTTP godoc
//
//	@Summary	List all roles
//	@Tags		Roles
//	@Produce	json
//	@Success	200	{object}	ListRolesResponse
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	403	{object}	httpx.ErrorResponse	"caller lacks the admin role"
//	@Failure	500	{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/roles [get].
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	roles, err := h.RolesService.ListAll(ctx)
	if err != nil {
		log.Error("failed to list roles", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to retrieve roles")
		return
	}

	response := ListRolesResponse{Roles: make([]RoleInfo, len(roles))}
	for i, role := range roles {
		response.Roles[i] = RoleInfo{ID: role.ID, Name: role.Name}
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
