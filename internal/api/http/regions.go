package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/service"
	"github.com/orchardhq/fruitdex/pkg/httpx"
	"github.com/orchardhq/fruitdex/pkg/slogx"
)

// RegionsHandler serves the /v1/regions catalog, same gating shape as
// fruits: reads authenticated, writes admin.
type RegionsHandler struct {
	Catalog *service.CatalogService
}

// HandleList godoc
//
//	@Summary	List growing regions
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{object}	ListRegionsResponse
//	@Security	BearerAuth
//	@Router		/v1/regions [get].
func (h *RegionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regions, err := h.Catalog.ListRegions(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list regions", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list regions")
		return
	}

	response := ListRegionsResponse{Regions: make([]RegionResponse, len(regions))}
	for i, reg := range regions {
		response.Regions[i] = newRegionResponse(reg)
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet godoc
//
//	@Summary	Get a region
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string	true	"region id"
//	@Success	200	{object}	RegionResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/regions/{id} [get].
func (h *RegionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	region, err := h.Catalog.GetRegion(ctx, r.PathValue("id"))
	if err != nil {
		writeStoreError(ctx, w, err, "Failed to load region")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newRegionResponse(region))
}

// HandleCreate godoc
//
//	@Summary	Create a region
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RegionRequest	true	"name, climate, description"
//	@Success	201		{object}	RegionResponse
//	@Failure	409		{object}	httpx.ErrorResponse	"duplicate name"
//	@Security	BearerAuth
//	@Router		/v1/regions [post].
func (h *RegionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeRegionRequest(w, r)
	if !ok {
		return
	}

	region, err := h.Catalog.CreateRegion(ctx, domain.Region{
		Name:        req.Name,
		Climate:     req.Climate,
		Description: req.Description,
	})
	if err != nil {
		writeStoreError(ctx, w, err, "Failed to create region")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, newRegionResponse(region))
}

// HandleUpdate godoc
//
//	@Summary	Update a region
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"region id"
//	@Param		body	body		RegionRequest	true	"name, climate, description"
//	@Success	200		{object}	RegionResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/regions/{id} [put].
func (h *RegionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeRegionRequest(w, r)
	if !ok {
		return
	}

	region, err := h.Catalog.UpdateRegion(ctx, domain.Region{
		ID:          r.PathValue("id"),
		Name:        req.Name,
		Climate:     req.Climate,
		Description: req.Description,
	})
	if err != nil {
		writeStoreError(ctx, w, err, "Failed to update region")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newRegionResponse(region))
}

// HandleDelete godoc
//
//	@Summary	Delete a region
//	@Tags		Catalog
//	@Param		id	path	string	true	"region id"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/regions/{id} [delete].
func (h *RegionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Catalog.DeleteRegion(ctx, r.PathValue("id")); err != nil {
		writeStoreError(ctx, w, err, "Failed to delete region")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeRegionRequest(w http.ResponseWriter, r *http.Request) (RegionRequest, bool) {
	var req RegionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return req, false
	}
	return req, true
}
