// ABOUTME: Maps store and asset errors onto HTTP status codes.
// ABOUTME: One translation point so handlers stay uniform.

package server

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/harper/mariposa/internal/assets"
	"github.com/harper/mariposa/internal/store"
)

func mapError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		respondError(w, http.StatusBadRequest, "validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, store.ErrNoteNotFound),
		errors.Is(err, store.ErrStickyNotFound),
		errors.Is(err, store.ErrSectionNotFound),
		errors.Is(err, store.ErrCategoryNotFound),
		errors.Is(err, assets.ErrImageNotFound):
		respondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, store.ErrDuplicateCategory),
		errors.Is(err, store.ErrSlugConflict):
		respondError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, store.ErrInvalidName),
		errors.Is(err, store.ErrDefaultCategory),
		errors.Is(err, store.ErrCategoryNotEmpty),
		errors.Is(err, assets.ErrUnsupportedFormat),
		errors.Is(err, assets.ErrInvalidAssetName):
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		respondError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
