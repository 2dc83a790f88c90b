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

// RecipesHandler serves the /v1/recipes catalog. Any authenticated user
// with the "user" role can submit a recipe; deletion is admin only.
type RecipesHandler struct {
	Catalog *service.CatalogService
}

// HandleList godoc
//
//	@Summary	List recipes
//	@Tags		Catalog
//	@Produce	json
//	@Param		fruit_id	query		string	false	"filter by fruit"
//	@Success	200			{object}	ListRecipesResponse
//	@Security	BearerAuth
//	@Router		/v1/recipes [get].
func (h *RecipesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recipes, err := h.Catalog.ListRecipes(ctx, r.URL.Query().Get("fruit_id"))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list recipes", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list recipes")
		return
	}

	response := ListRecipesResponse{Recipes: make([]RecipeResponse, len(recipes))}
	for i, rec := range recipes {
		response.Recipes[i] = newRecipeResponse(rec)
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet godoc
//
//	@Summary	Get a recipe
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string	true	"recipe id"
//	@Success	200	{object}	RecipeResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/recipes/{id} [get].
func (h *RecipesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recipe, err := h.Catalog.GetRecipe(ctx, r.PathValue("id"))
	if err != nil {
		writeStoreError(ctx, w, err, "Failed to load recipe")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newRecipeResponse(recipe))
}

// HandleCreate godoc
//
//	@Summary	Submit a recipe
//	@Description	The authenticated caller is recorded as the author.
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RecipeRequest	true	"fruit_id, title, instructions"
//	@Success	201		{object}	RecipeResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	404		{object}	httpx.ErrorResponse	"fruit does not exist"
//	@Security	BearerAuth
//	@Router		/v1/recipes [post].
func (h *RecipesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.FruitID == "" || req.Title == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "fruit_id and title are required")
		return
	}

	recipe, err := h.Catalog.CreateRecipe(ctx, domain.Recipe{
		FruitID:      req.FruitID,
		Title:        req.Title,
		Instructions: req.Instructions,
	}, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeStoreError(ctx, w, err, "Failed to create recipe")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, newRecipeResponse(recipe))
}

// HandleDelete godoc
//
//	@Summary	Delete a recipe
//	@Tags		Catalog
//	@Param		id	path	string	true	"recipe id"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/recipes/{id} [delete].
func (h *RecipesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Catalog.DeleteRecipe(ctx, r.PathValue("id")); err != nil {
		writeStoreError(ctx, w, err, "Failed to delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
