// ABOUTME: REST handlers for the notes resource.
// ABOUTME: Validates request bodies and delegates to the note store.

package server

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/harper/mariposa/internal/models"
	"github.com/harper/mariposa/internal/store"
)

type createNoteRequest struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Category string           `json:"category"`
	Tags     []string         `json:"tags"`
	Position *models.Position `json:"position"`
}

func (r createNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}

type updateNoteRequest struct {
	Title    *string          `json:"title"`
	Content  *string          `json:"content"`
	Category *string          `json:"category"`
	Tags     []string         `json:"tags"`
	Position OptionalPosition `json:"position"`
}

func (r updateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.Length(1, 100)),
	)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	notes, err := s.store.ListNotes(store.NoteFilter{
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Search:   q.Get("search"),
	})
	if err != nil {
		mapError(w, err)
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		mapError(w, err)
		return
	}

	note, err := s.store.CreateNote(req.Title, req.Content, req.Category, req.Tags, req.Position)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.store.GetNote(r.PathValue("slug"))
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		mapError(w, err)
		return
	}

	note, err := s.store.UpdateNote(r.PathValue("slug"), store.UpdateNoteParams{
		Title:         req.Title,
		Content:       req.Content,
		Category:      req.Category,
		Tags:          req.Tags,
		Position:      req.Position.Value,
		ClearPosition: req.Position.Present && req.Position.Value == nil,
	})
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteNote(r.PathValue("slug"))
	if err != nil {
		mapError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "note not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.NoteTags()
	if err != nil {
		mapError(w, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"tags": tags})
}
