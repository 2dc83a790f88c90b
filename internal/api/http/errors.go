package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/pkg/httpx"
	"github.com/orchardhq/fruitdex/pkg/slogx"
)

// writeStoreError maps store sentinel errors onto catalog responses.
// Anything unexpected is logged and reported as an opaque 500.
func writeStoreError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Resource does not exist")
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, "conflict", "A resource with this name already exists")
	default:
		slogx.FromContext(ctx).Error("store operation failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", fallback)
	}
}
