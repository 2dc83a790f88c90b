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

// FruitsHandler serves the /v1/fruits catalog. Reads need authn; writes
// additionally need the admin role, enforced by middleware before any of
// these methods run.
type FruitsHandler struct {
	Catalog *service.CatalogService
}

// HandleList godoc
//
//	@Summary	List fruits
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{object}	ListFruitsResponse
//	@Security	BearerAuth
//	@Router		/v1/fruits [get].
func (h *FruitsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fruits, err := h.Catalog.ListFruits(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list fruits", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list fruits")
		return
	}

	response := ListFruitsResponse{Fruits: make([]FruitResponse, len(fruits))}
	for i, f := range fruits {
		response.Fruits[i] = newFruitResponse(f)
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet godoc
//
//	@Summary	Get a fruit
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string	true	"fruit id"
//	@Success	200	{object}	FruitResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/fruits/{id} [get].
func (h *FruitsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fruit, err := h.Catalog.GetFruit(ctx, r.PathValue("id"))
	if err != nil {
		writeStoreError(ctx, w, err, "Failed to load fruit")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newFruitResponse(fruit))
}

// HandleCreate godoc
//
//	@Summary	Create a fruit
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		body	body		FruitRequest	true	"name, description, season, region_id"
//	@Success	201		{object}	FruitResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	403		{object}	httpx.ErrorResponse
//	@Failure	409		{object}	httpx.ErrorResponse	"duplicate name"
//	@Security	BearerAuth
//	@Router		/v1/fruits [post].
func (h *FruitsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeFruitRequest(w, r)
	if !ok {
		return
	}

	fruit, err := h.Catalog.CreateFruit(ctx, domain.Fruit{
		Name:        req.Name,
		Description: req.Description,
		Season:      req.Season,
		RegionID:    req.RegionID,
	})
	if err != nil {
		writeStoreError(ctx, w, err, "Failed to create fruit")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, newFruitResponse(fruit))
}

// HandleUpdate godoc
//
//	@Summary	Update a fruit
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"fruit id"
//	@Param		body	body		FruitRequest	true	"name, description, season, region_id"
//	@Success	200		{object}	FruitResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Failure	409		{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/fruits/{id} [put].
func (h *FruitsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeFruitRequest(w, r)
	if !ok {
		return
	}

	fruit, err := h.Catalog.UpdateFruit(ctx, domain.Fruit{
		ID:          r.PathValue("id"),
		Name:        req.Name,
		Description: req.Description,
		Season:      req.Season,
		RegionID:    req.RegionID,
	})
	if err != nil {
		writeStoreError(ctx, w, err, "Failed to update fruit")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newFruitResponse(fruit))
}

// HandleDelete godoc
//
//	@Summary	Delete a fruit
//	@Tags		Catalog
//	@Param		id	path	string	true	"fruit id"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/fruits/{id} [delete].
func (h *FruitsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Catalog.DeleteFruit(ctx, r.PathValue("id")); err != nil {
		writeStoreError(ctx, w, err, "Failed to delete fruit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeFruitRequest(w http.ResponseWriter, r *http.Request) (FruitRequest, bool) {
	var req FruitRequest
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
