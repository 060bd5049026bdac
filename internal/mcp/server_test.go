// ABOUTME: Tests for the MCP surface over an in-memory transport pair.
// ABOUTME: Covers tool results, prompt registration, and prompt arguments.

package mcp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/mariposa/internal/store"
)

func newTestSession(t *testing.T) (*mcp.ClientSession, *store.Store) {
	t.Helper()
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	srv := NewServer(st)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := srv.server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { clientSession.Close() })

	return clientSession, st
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func TestListNotesToolEmptyCorpus(t *testing.T) {
	cs, _ := newTestSession(t)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_notes",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	if got := resultText(t, res); got != "[]" {
		t.Errorf("empty corpus rendered as %q, want []", got)
	}
}

func TestAddAndGetNoteTools(t *testing.T) {
	cs, _ := newTestSession(t)
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name: "add_note",
		Arguments: map[string]any{
			"title":   "Shopping List",
			"content": "- milk",
			"tags":    []string{"todo"},
		},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), `"shopping-list"`) {
		t.Errorf("missing slug in result: %s", resultText(t, res))
	}

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_note",
		Arguments: map[string]any{"slug": "shopping-list"},
	})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_note",
		Arguments: map[string]any{"slug": "no-such-note"},
	})
	if err != nil {
		t.Fatalf("get missing failed at protocol level: %v", err)
	}
	if !res.IsError {
		t.Error("missing note should be an error result, not a payload")
	}
}

func TestPromptsRegistered(t *testing.T) {
	cs, _ := newTestSession(t)

	res, err := cs.ListPrompts(context.Background(), nil)
	if err != nil {
		t.Fatalf("list prompts failed: %v", err)
	}

	found := make(map[string]bool)
	for _, p := range res.Prompts {
		found[p.Name] = true
	}
	for _, name := range []string{
		"create-meeting-notes",
		"create-daily-journal",
		"summarize-note",
		"organize-notes",
		"tidy-sticky-board",
	} {
		if !found[name] {
			t.Errorf("prompt %s not registered", name)
		}
	}
}

func TestSummarizeNotePrompt(t *testing.T) {
	cs, _ := newTestSession(t)
	ctx := context.Background()

	res, err := cs.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "summarize-note",
		Arguments: map[string]string{"slug": "shopping-list"},
	})
	if err != nil {
		t.Fatalf("get prompt failed: %v", err)
	}
	if len(res.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(res.Messages))
	}
	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Messages[0].Content)
	}
	if !strings.Contains(text.Text, "shopping-list") {
		t.Errorf("prompt does not mention the slug: %s", text.Text)
	}

	if _, err := cs.GetPrompt(ctx, &mcp.GetPromptParams{Name: "summarize-note"}); err == nil {
		t.Error("expected an error without a slug argument")
	}
}

func TestMeetingNotesPromptCategory(t *testing.T) {
	cs, _ := newTestSession(t)

	res, err := cs.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name: "create-meeting-notes",
		Arguments: map[string]string{
			"meeting_title": "Q3 Planning",
			"category":      "work",
		},
	})
	if err != nil {
		t.Fatalf("get prompt failed: %v", err)
	}
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	if !strings.Contains(text, "Q3 Planning") {
		t.Errorf("prompt missing the meeting title: %s", text)
	}
	if !strings.Contains(text, `"work"`) || !strings.Contains(text, "create_category") {
		t.Errorf("prompt missing the category instructions: %s", text)
	}
}
