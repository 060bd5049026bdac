// ABOUTME: JSON response helpers and tri-state request field types.
// ABOUTME: Marshals before writing headers so failures stay clean 500s.

package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/harper/mariposa/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode response", nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

func respondError(w http.ResponseWriter, status int, message string, details any) {
	body := map[string]any{"error": message}
	if details != nil {
		body["details"] = details
	}
	payload, err := json.Marshal(body)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// OptionalString distinguishes an absent JSON field from an explicit
// null or value. Absent means "leave unchanged" (or "inherit" for image
// duplication); null means "clear".
type OptionalString struct {
	Present bool
	Value   *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// OptionalPosition carries the same tri-state for canvas placement:
// absent keeps the current position, null unplaces the element.
type OptionalPosition struct {
	Present bool
	Value   *models.Position
}

func (o *OptionalPosition) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}
	var p models.Position
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	o.Value = &p
	return nil
}
