// ABOUTME: HTTP server wiring: routes, CORS, logging, panic recovery.
// ABOUTME: REST surface over the note, category, board, and asset stores.

package server

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/cors"

	"github.com/harper/mariposa/internal/assets"
	"github.com/harper/mariposa/internal/store"
)

type Server struct {
	store  *store.Store
	assets *assets.Store
	logger *slog.Logger

	// mcpHandler is mounted at /mcp when set; the MCP SDK transport owns
	// its own session lifecycle.
	mcpHandler http.Handler
}

func New(st *store.Store, as *assets.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: st, assets: as, logger: logger}
}

// MountMCP attaches a streamable-HTTP MCP handler at /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.mcpHandler = h
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/notes", s.handleListNotes)
	mux.HandleFunc("POST /api/notes", s.handleCreateNote)
	mux.HandleFunc("GET /api/notes/{slug}", s.handleGetNote)
	mux.HandleFunc("PUT /api/notes/{slug}", s.handleUpdateNote)
	mux.HandleFunc("DELETE /api/notes/{slug}", s.handleDeleteNote)
	mux.HandleFunc("GET /api/tags", s.handleListTags)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PUT /api/categories/{name}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{name}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/stickies", s.handleListStickies)
	mux.HandleFunc("POST /api/stickies", s.handleCreateSticky)
	mux.HandleFunc("PUT /api/stickies/{slug}", s.handleUpdateSticky)
	mux.HandleFunc("DELETE /api/stickies/{slug}", s.handleDeleteSticky)

	mux.HandleFunc("GET /api/sections", s.handleListSections)
	mux.HandleFunc("POST /api/sections", s.handleCreateSection)
	mux.HandleFunc("PUT /api/sections/{slug}", s.handleUpdateSection)
	mux.HandleFunc("DELETE /api/sections/{slug}", s.handleDeleteSection)

	mux.HandleFunc("POST /api/images", s.handleUploadImage)
	mux.HandleFunc("GET /api/images", s.handleListImages)
	mux.HandleFunc("GET /api/images/{filename}", s.handleGetImage)
	mux.HandleFunc("POST /api/images/{id}/duplicate", s.handleDuplicateImage)
	mux.HandleFunc("PUT /api/images/{id}/category", s.handleImageCategory)
	mux.HandleFunc("DELETE /api/images/{id}", s.handleDeleteImage)

	if s.mcpHandler != nil {
		mux.Handle("/mcp", s.mcpHandler)
	}

	handler := s.recovery(s.requestLog(mux))
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	}).Handler(handler)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"stack", string(debug.Stack()),
				)
				respondError(w, http.StatusInternalServerError, "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
