// ABOUTME: HTTP handler tests over a real store in a temp directory.
// ABOUTME: Covers the notes, categories, boards, and images routes.

package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/mariposa/internal/assets"
	"github.com/harper/mariposa/internal/store"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	st, err := store.Open(dir, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	as, err := assets.Open(filepath.Join(dir, "images"), logger)
	if err != nil {
		t.Fatalf("open assets: %v", err)
	}
	return New(st, as, logger).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestNoteCRUD(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, "POST", "/api/notes", map[string]any{
		"title":    "Meeting Notes",
		"content":  "Discuss roadmap",
		"category": "work",
		"tags":     []string{"planning"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created struct {
		Slug     string `json:"slug"`
		Category string `json:"category"`
	}
	decodeBody(t, rec, &created)
	if created.Slug != "meeting-notes" {
		t.Errorf("slug = %q", created.Slug)
	}
	// Unknown category falls back to the default folder.
	if created.Category != "uncategorized" {
		t.Errorf("category = %q, want uncategorized", created.Category)
	}

	rec = doJSON(t, h, "GET", "/api/notes/"+created.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(t, h, "PUT", "/api/notes/"+created.Slug, map[string]any{
		"content":  "Updated agenda",
		"position": map[string]float64{"x": 10, "y": 20},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}
	var updated struct {
		Content  string `json:"content"`
		Position *struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		} `json:"position"`
	}
	decodeBody(t, rec, &updated)
	if updated.Content != "Updated agenda" {
		t.Errorf("content = %q", updated.Content)
	}
	if updated.Position == nil || updated.Position.X != 10 {
		t.Errorf("position not applied: %+v", updated.Position)
	}

	// Explicit null clears the position.
	req := httptest.NewRequest("PUT", "/api/notes/"+created.Slug, strings.NewReader(`{"position": null}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear position status = %d", rec.Code)
	}
	decodeBody(t, rec, &updated)
	if updated.Position != nil {
		t.Errorf("position not cleared: %+v", updated.Position)
	}

	rec = doJSON(t, h, "DELETE", "/api/notes/"+created.Slug, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, h, "DELETE", "/api/notes/"+created.Slug, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
}

func TestNoteValidation(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, "POST", "/api/notes", map[string]any{"content": "no title"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	decodeBody(t, rec, &body)
	if _, ok := body.Details["title"]; !ok {
		t.Errorf("missing title detail: %+v", body)
	}

	rec = doJSON(t, h, "GET", "/api/notes/no-such-note", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing note status = %d", rec.Code)
	}
}

func TestListNotesEnvelope(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, "GET", "/api/notes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Notes []json.RawMessage `json:"notes"`
	}
	decodeBody(t, rec, &body)
	if body.Notes == nil {
		t.Error("notes should be an empty array, not null")
	}

	doJSON(t, h, "POST", "/api/notes", map[string]any{"title": "One", "tags": []string{"a"}})
	doJSON(t, h, "POST", "/api/notes", map[string]any{"title": "Two", "tags": []string{"b"}})

	rec = doJSON(t, h, "GET", "/api/notes?tag=a", nil)
	decodeBody(t, rec, &body)
	if len(body.Notes) != 1 {
		t.Errorf("tag filter returned %d notes", len(body.Notes))
	}

	rec = doJSON(t, h, "GET", "/api/tags", nil)
	var tags struct {
		Tags []string `json:"tags"`
	}
	decodeBody(t, rec, &tags)
	if len(tags.Tags) != 2 {
		t.Errorf("tags = %v", tags.Tags)
	}
}

func TestCategoryRoutes(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, "POST", "/api/categories", map[string]any{"name": "work"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, h, "POST", "/api/categories", map[string]any{"name": "work"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", rec.Code)
	}
	rec = doJSON(t, h, "POST", "/api/categories", map[string]any{"name": "bad name!"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid name status = %d", rec.Code)
	}

	rec = doJSON(t, h, "GET", "/api/categories", nil)
	var names struct {
		Categories []string `json:"categories"`
	}
	decodeBody(t, rec, &names)
	found := false
	for _, n := range names.Categories {
		if n == "work" {
			found = true
		}
	}
	if !found {
		t.Errorf("work missing from %v", names.Categories)
	}

	rec = doJSON(t, h, "PUT", "/api/categories/work", map[string]any{"displayName": "Work Stuff", "position": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}

	// Non-empty deletion requires an explicit migration target.
	doJSON(t, h, "POST", "/api/notes", map[string]any{"title": "Keep", "category": "work"})
	rec = doJSON(t, h, "DELETE", "/api/categories/work", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("delete without target status = %d", rec.Code)
	}
	rec = doJSON(t, h, "DELETE", "/api/categories/work?moveTo=uncategorized", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete with target status = %d, body %s", rec.Code, rec.Body)
	}
	var del struct {
		Success    bool `json:"success"`
		MovedNotes int  `json:"movedNotes"`
	}
	decodeBody(t, rec, &del)
	if !del.Success || del.MovedNotes != 1 {
		t.Errorf("delete response = %+v", del)
	}

	rec = doJSON(t, h, "DELETE", "/api/categories/uncategorized", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("default category delete status = %d", rec.Code)
	}
}

func TestStickyAndSectionRoutes(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, "POST", "/api/stickies", map[string]any{
		"text":     "Buy milk",
		"position": map[string]float64{"x": 5, "y": 5},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create sticky status = %d, body %s", rec.Code, rec.Body)
	}
	var sticky struct {
		Slug string `json:"slug"`
	}
	decodeBody(t, rec, &sticky)

	rec = doJSON(t, h, "PUT", "/api/stickies/"+sticky.Slug, map[string]any{"text": "Buy oat milk"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update sticky status = %d", rec.Code)
	}

	rec = doJSON(t, h, "GET", "/api/stickies", nil)
	var stickies struct {
		Stickies []json.RawMessage `json:"stickies"`
	}
	decodeBody(t, rec, &stickies)
	if len(stickies.Stickies) != 1 {
		t.Errorf("stickies = %d", len(stickies.Stickies))
	}

	rec = doJSON(t, h, "DELETE", "/api/stickies/"+sticky.Slug, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete sticky status = %d", rec.Code)
	}

	rec = doJSON(t, h, "POST", "/api/sections", map[string]any{"title": "Backlog"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create section status = %d, body %s", rec.Code, rec.Body)
	}
	var section struct {
		Slug string `json:"slug"`
	}
	decodeBody(t, rec, &section)
	rec = doJSON(t, h, "DELETE", "/api/sections/"+section.Slug, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete section status = %d", rec.Code)
	}
}

func uploadPNG(t *testing.T, h http.Handler, category string) map[string]any {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "test.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(pngBuf.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if category != "" {
		mw.WriteField("category", category)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body)
	}
	var result map[string]any
	decodeBody(t, rec, &result)
	return result
}

func TestImageRoutes(t *testing.T) {
	h := newTestHandler(t)

	uploaded := uploadPNG(t, h, "photos")
	filename, _ := uploaded["filename"].(string)
	id, _ := uploaded["id"].(string)
	if filename == "" || id == "" {
		t.Fatalf("upload response = %+v", uploaded)
	}

	rec := doJSON(t, h, "GET", "/api/images/"+filename, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("content type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "immutable") {
		t.Errorf("cache control = %q", cc)
	}

	rec = doJSON(t, h, "GET", "/api/images?category=photos", nil)
	var list struct {
		Images []json.RawMessage `json:"images"`
	}
	decodeBody(t, rec, &list)
	if len(list.Images) != 1 {
		t.Errorf("category filter returned %d images", len(list.Images))
	}

	rec = doJSON(t, h, "POST", "/api/images/"+id+"/duplicate", map[string]any{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("duplicate status = %d, body %s", rec.Code, rec.Body)
	}
	var dup struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	decodeBody(t, rec, &dup)
	if dup.ID == id {
		t.Error("duplicate reused source id")
	}
	if dup.Category != "photos" {
		t.Errorf("duplicate category = %q, want inherited photos", dup.Category)
	}

	rec = doJSON(t, h, "PUT", "/api/images/"+id+"/category", map[string]any{"category": "archive"})
	if rec.Code != http.StatusOK {
		t.Fatalf("category update status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, "DELETE", "/api/images/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, h, "DELETE", "/api/images/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}

	rec = doJSON(t, h, "GET", "/api/images/missing.jpg", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing image status = %d", rec.Code)
	}
}
