// ABOUTME: REST handlers for stickies and sections.
// ABOUTME: Same lifecycle as notes with a smaller field set.

package server

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/harper/mariposa/internal/models"
	"github.com/harper/mariposa/internal/store"
)

type createStickyRequest struct {
	Text     string           `json:"text"`
	Category string           `json:"category"`
	Position *models.Position `json:"position"`
}

func (r createStickyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, 2000)),
	)
}

type createSectionRequest struct {
	Title    string           `json:"title"`
	Category string           `json:"category"`
	Position *models.Position `json:"position"`
}

func (r createSectionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
	)
}

type updateBoardRequest struct {
	Text     *string          `json:"text"`
	Title    *string          `json:"title"`
	Category *string          `json:"category"`
	Position OptionalPosition `json:"position"`
}

func (r updateBoardRequest) params() store.UpdateBoardParams {
	return store.UpdateBoardParams{
		Text:          r.Text,
		Title:         r.Title,
		Category:      r.Category,
		Position:      r.Position.Value,
		ClearPosition: r.Position.Present && r.Position.Value == nil,
	}
}

// --- Stickies ---

func (s *Server) handleListStickies(w http.ResponseWriter, r *http.Request) {
	stickies, err := s.store.ListStickies(r.URL.Query().Get("category"))
	if err != nil {
		mapError(w, err)
		return
	}
	if stickies == nil {
		stickies = []*models.Sticky{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"stickies": stickies})
}

func (s *Server) handleCreateSticky(w http.ResponseWriter, r *http.Request) {
	var req createStickyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		mapError(w, err)
		return
	}

	sticky, err := s.store.CreateSticky(req.Text, req.Category, req.Position)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sticky)
}

func (s *Server) handleUpdateSticky(w http.ResponseWriter, r *http.Request) {
	var req updateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	sticky, err := s.store.UpdateSticky(r.PathValue("slug"), req.params())
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sticky)
}

func (s *Server) handleDeleteSticky(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteSticky(r.PathValue("slug"))
	if err != nil {
		mapError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "sticky not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Sections ---

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := s.store.ListSections(r.URL.Query().Get("category"))
	if err != nil {
		mapError(w, err)
		return
	}
	if sections == nil {
		sections = []*models.Section{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"sections": sections})
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	var req createSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		mapError(w, err)
		return
	}

	section, err := s.store.CreateSection(req.Title, req.Category, req.Position)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, section)
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var req updateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	section, err := s.store.UpdateSection(r.PathValue("slug"), req.params())
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, section)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteSection(r.PathValue("slug"))
	if err != nil {
		mapError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "section not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
