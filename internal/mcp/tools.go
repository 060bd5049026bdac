// ABOUTME: MCP tools for note, category, and sticky operations.
// ABOUTME: Maps the REST functionality to an MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/mariposa/internal/models"
	"github.com/harper/mariposa/internal/store"
)

func (s *Server) registerTools() {
	// add_note
	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a new note with title and content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"content": {"type": "string", "description": "Note content (markdown)"},
				"category": {"type": "string", "description": "Category name (defaults to uncategorized)"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Optional tags"}
			},
			"required": ["title"]
		}`),
	}, s.handleAddNote)

	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes with optional filtering",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"category": {"type": "string", "description": "Filter by category"},
				"tag": {"type": "string", "description": "Filter by tag"},
				"search": {"type": "string", "description": "Substring search over title and content"}
			}
		}`),
	}, s.handleListNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by slug",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"slug": {"type": "string", "description": "Note slug"}
			},
			"required": ["slug"]
		}`),
	}, s.handleGetNote)

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title, content, category, or tags",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"slug": {"type": "string", "description": "Note slug"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content"},
				"category": {"type": "string", "description": "New category (moves the note)"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Replacement tag set"}
			},
			"required": ["slug"]
		}`),
	}, s.handleUpdateNote)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note by slug",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"slug": {"type": "string", "description": "Note slug"}
			},
			"required": ["slug"]
		}`),
	}, s.handleDeleteNote)

	// search_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "search_notes",
		Description: "Search notes by title and content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchNotes)

	// move_note
	s.server.AddTool(&mcp.Tool{
		Name:        "move_note",
		Description: "Move a note to another category",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"slug": {"type": "string", "description": "Note slug"},
				"category": {"type": "string", "description": "Destination category"}
			},
			"required": ["slug", "category"]
		}`),
	}, s.handleMoveNote)

	// list_categories
	s.server.AddTool(&mcp.Tool{
		Name:        "list_categories",
		Description: "List all categories with note counts",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListCategories)

	// create_category
	s.server.AddTool(&mcp.Tool{
		Name:        "create_category",
		Description: "Create a new category",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Category name (letters, digits, hyphen, underscore)"}
			},
			"required": ["name"]
		}`),
	}, s.handleCreateCategory)

	// delete_category
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_category",
		Description: "Delete a category, moving its notes to another category",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Category to delete"},
				"move_to": {"type": "string", "description": "Destination for member notes (required when non-empty)"}
			},
			"required": ["name"]
		}`),
	}, s.handleDeleteCategory)

	// list_tags
	s.server.AddTool(&mcp.Tool{
		Name:        "list_tags",
		Description: "List every tag in use",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)

	// list_stickies
	s.server.AddTool(&mcp.Tool{
		Name:        "list_stickies",
		Description: "List sticky notes",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"category": {"type": "string", "description": "Filter by category"}
			}
		}`),
	}, s.handleListStickies)

	// add_sticky
	s.server.AddTool(&mcp.Tool{
		Name:        "add_sticky",
		Description: "Create a sticky note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"text": {"type": "string", "description": "Sticky text"},
				"category": {"type": "string", "description": "Category name"}
			},
			"required": ["text"]
		}`),
	}, s.handleAddSticky)
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Title) == "" {
		return errorResult("note title cannot be empty"), nil
	}

	note, err := s.store.CreateNote(params.Title, params.Content, params.Category, params.Tags, nil)
	if err != nil {
		return errorResult("failed to create note: %v", err), nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Category string `json:"category"`
		Tag      string `json:"tag"`
		Search   string `json:"search"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	notes, err := s.store.ListNotes(store.NoteFilter{
		Category: params.Category,
		Tag:      params.Tag,
		Search:   params.Search,
	})
	if err != nil {
		return errorResult("failed to list notes: %v", err), nil
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	return jsonResult(notes), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.store.GetNote(params.Slug)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Slug     string   `json:"slug"`
		Title    *string  `json:"title"`
		Content  *string  `json:"content"`
		Category *string  `json:"category"`
		Tags     []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.store.UpdateNote(params.Slug, store.UpdateNoteParams{
		Title:    params.Title,
		Content:  params.Content,
		Category: params.Category,
		Tags:     params.Tags,
	})
	if err != nil {
		return errorResult("failed to update note: %v", err), nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	deleted, err := s.store.DeleteNote(params.Slug)
	if err != nil {
		return errorResult("failed to delete note: %v", err), nil
	}
	if !deleted {
		return errorResult("note %q not found", params.Slug), nil
	}
	return textResult("Deleted note %s", params.Slug), nil
}

func (s *Server) handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	notes, err := s.store.ListNotes(store.NoteFilter{Search: params.Query})
	if err != nil {
		return errorResult("search failed: %v", err), nil
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	return jsonResult(notes), nil
}

func (s *Server) handleMoveNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Slug     string `json:"slug"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.store.UpdateNote(params.Slug, store.UpdateNoteParams{
		Category: &params.Category,
	})
	if err != nil {
		return errorResult("failed to move note: %v", err), nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleListCategories(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := s.store.ListCategoryMeta()
	if err != nil {
		return errorResult("failed to list categories: %v", err), nil
	}
	return jsonResult(categories), nil
}

func (s *Server) handleCreateCategory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	category, err := s.store.CreateCategory(params.Name)
	if err != nil {
		return errorResult("failed to create category: %v", err), nil
	}
	return jsonResult(category), nil
}

func (s *Server) handleDeleteCategory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name   string `json:"name"`
		MoveTo string `json:"move_to"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	moved, err := s.store.DeleteCategory(params.Name, params.MoveTo)
	if err != nil {
		return errorResult("failed to delete category: %v", err), nil
	}
	return textResult("Deleted category %s (%d notes moved)", params.Name, moved), nil
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.store.NoteTags()
	if err != nil {
		return errorResult("failed to list tags: %v", err), nil
	}
	if tags == nil {
		tags = []string{}
	}
	return jsonResult(tags), nil
}

func (s *Server) handleListStickies(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	stickies, err := s.store.ListStickies(params.Category)
	if err != nil {
		return errorResult("failed to list stickies: %v", err), nil
	}
	if stickies == nil {
		stickies = []*models.Sticky{}
	}
	return jsonResult(stickies), nil
}

func (s *Server) handleAddSticky(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Text     string `json:"text"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Text) == "" {
		return errorResult("sticky text cannot be empty"), nil
	}

	sticky, err := s.store.CreateSticky(params.Text, params.Category, nil)
	if err != nil {
		return errorResult("failed to create sticky: %v", err), nil
	}
	return jsonResult(sticky), nil
}
