// ABOUTME: REST handlers for the categories resource.
// ABOUTME: Creation, metadata updates, and migration-aware deletion.

package server

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (r createCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

type updateCategoryRequest struct {
	DisplayName *string `json:"displayName"`
	Position    *int    `json:"position"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("meta") == "true" {
		categories, err := s.store.ListCategoryMeta()
		if err != nil {
			mapError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
		return
	}

	names, err := s.store.ListCategories()
	if err != nil {
		mapError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": names})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		mapError(w, err)
		return
	}

	category, err := s.store.CreateCategory(req.Name)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	category, err := s.store.UpdateCategoryMeta(r.PathValue("name"), req.DisplayName, req.Position)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	moved, err := s.store.DeleteCategory(r.PathValue("name"), r.URL.Query().Get("moveTo"))
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "movedNotes": moved})
}
