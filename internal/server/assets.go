// ABOUTME: REST handlers for the image assets resource.
// ABOUTME: Multipart upload, raw byte passthrough, duplicate, delete.

package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/harper/mariposa/internal/models"
)

// maxUploadBytes caps multipart image uploads.
const maxUploadBytes = 20 << 20

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing image field", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload", nil)
		return
	}

	img, err := s.assets.ProcessAndSave(data, header.Filename, r.FormValue("category"))
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, img)
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	images, err := s.assets.List(r.URL.Query().Get("category"))
	if err != nil {
		mapError(w, err)
		return
	}
	if images == nil {
		images = []*models.Image{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"images": images})
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.assets.Get(r.PathValue("filename"))
	if err != nil {
		mapError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type duplicateImageRequest struct {
	Category OptionalString `json:"category"`
}

func (s *Server) handleDuplicateImage(w http.ResponseWriter, r *http.Request) {
	var req duplicateImageRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
	}

	// Absent category inherits the source sidecar; null or "" clears it.
	var category *string
	if req.Category.Present {
		value := ""
		if req.Category.Value != nil {
			value = *req.Category.Value
		}
		category = &value
	}

	img, err := s.assets.Duplicate(r.PathValue("id"), category)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, img)
}

type imageCategoryRequest struct {
	Category OptionalString `json:"category"`
}

func (s *Server) handleImageCategory(w http.ResponseWriter, r *http.Request) {
	var req imageCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	ok, err := s.assets.UpdateCategory(r.PathValue("id"), req.Category.Value)
	if err != nil {
		mapError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "image not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.assets.Delete(r.PathValue("id"))
	if err != nil {
		mapError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "image not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
