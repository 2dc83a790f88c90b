package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orchardhq/fruitdex/internal/api/service"
	"github.com/orchardhq/fruitdex/pkg/httpx"
	"github.com/orchardhq/fruitdex/pkg/slogx"
)

// RecognizeHandler serves POST /v1/recognize.
type RecognizeHandler struct {
	Recognition *service.RecognitionService
}

// ServeHTTP godoc
//
//	@Summary		Recognize a fruit from an image
//	@Description	Sends the image to the vision provider and matches the returned label against the fruit catalog.
//	@Tags			Recognition
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RecognizeRequest	true	"image as base64 payload or URL"
//	@Success		200		{object}	RecognizeResponse	"label, confidence, matched fruit when known"
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		502		{object}	httpx.ErrorResponse	"vision provider failed"
//	@Failure		503		{object}	httpx.ErrorResponse	"no vision provider configured"
//	@Security		BearerAuth
//	@Router			/v1/recognize [post].
func (h *RecognizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RecognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	if req.Image == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "image is required")
		return
	}

	res, err := h.Recognition.Recognize(ctx, req.Image)
	switch {
	case errors.Is(err, service.ErrRecognitionUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, "recognition_unavailable", "Fruit recognition is not configured")
		return
	case errors.Is(err, service.ErrRecognitionUpstream):
		httpx.WriteError(w, http.StatusBadGateway, "recognition_failed", "The vision provider could not classify the image")
		return
	case err != nil:
		log.Error("recognition failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to recognize image")
		return
	}

	response := RecognizeResponse{
		Label:      res.Label,
		Confidence: res.Confidence,
	}
	if res.Fruit != nil {
		fruit := newFruitResponse(*res.Fruit)
		response.Fruit = &fruit
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}
