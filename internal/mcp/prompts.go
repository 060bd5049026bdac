// ABOUTME: MCP prompts for common note-taking workflows.
// ABOUTME: Pre-configured prompts that drive the note and board tools.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-meeting-notes",
		Description: "Create structured meeting notes with attendees, agenda, and action items",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "meeting_title",
				Description: "Title of the meeting",
				Required:    true,
			},
			{
				Name:        "category",
				Description: "Category to file the note under (defaults to uncategorized)",
				Required:    false,
			},
		},
	}, s.getMeetingNotesPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-daily-journal",
		Description: "Create a daily journal entry with prompts for reflection",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "date",
				Description: "Date for the journal entry (YYYY-MM-DD)",
				Required:    false,
			},
		},
	}, s.getDailyJournalPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Generate a summary of an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "slug",
				Description: "Slug of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-notes",
		Description: "Get suggestions for organizing notes into categories and tags",
	}, s.getOrganizeNotesPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "tidy-sticky-board",
		Description: "Review the sticky board and promote durable stickies into notes",
	}, s.getTidyBoardPrompt)
}

func promptResult(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getMeetingNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	meetingTitle, ok := req.Params.Arguments["meeting_title"]
	if !ok || meetingTitle == "" {
		meetingTitle = "Meeting"
	}
	category := req.Params.Arguments["category"]

	template := fmt.Sprintf(`Create meeting notes for: %s

Please structure the notes with the following sections:

## Attendees
- [List attendees]

## Agenda
1. [Topic 1]
2. [Topic 2]

## Discussion Notes
[Key points discussed]

## Decisions Made
- [Decision 1]
- [Decision 2]

## Action Items
- [ ] [Action 1] - @owner - Due: [date]
- [ ] [Action 2] - @owner - Due: [date]

## Next Steps
[What happens next]

Use the add_note tool to create this note with tags like "meeting".`, meetingTitle)

	if category != "" {
		template += fmt.Sprintf(`
File it under the %q category; if list_categories does not show it, create it first with create_category.`, category)
	}

	return promptResult(template), nil
}

func (s *Server) getDailyJournalPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	date, ok := req.Params.Arguments["date"]
	if !ok || date == "" {
		date = "today"
	}

	template := fmt.Sprintf(`Create a daily journal entry for %s.

Please include reflections on:

## Today's Highlights
- What went well today?
- What am I grateful for?

## Challenges
- What difficulties did I face?
- What can I learn from them?

## Progress
- What did I accomplish?
- What progress did I make on my goals?

## Tomorrow's Focus
- What are my top 3 priorities?
- What do I want to accomplish?

Use the add_note tool to create this journal entry with tags like "journal", "daily-notes".`, date)

	return promptResult(template), nil
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	slug, ok := req.Params.Arguments["slug"]
	if !ok || slug == "" {
		return nil, fmt.Errorf("slug argument is required")
	}

	template := fmt.Sprintf(`Please summarize the note with slug: %s

1. Use the get_note tool to retrieve the note content
2. Read and analyze the note
3. Create a concise summary highlighting:
   - Main topic or theme
   - Key points or takeaways
   - Important details or action items
4. Use the update_note tool to add a "Summary" section at the top of the note`, slug)

	return promptResult(template), nil
}

func (s *Server) getOrganizeNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `Help me organize my notes by:

1. Use the list_notes tool to see all my notes and list_categories for the current folders
2. Analyze the content and identify common themes
3. Suggest categories that would group related notes, creating missing ones with create_category
4. Move misfiled notes with move_note and suggest tags for the rest
5. Identify notes that might need updating or archiving

Please provide specific recommendations with note slugs and suggested categories or tags.`

	return promptResult(template), nil
}

func (s *Server) getTidyBoardPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `Help me tidy my sticky board:

1. Use the list_stickies tool to see everything currently on the board
2. Group stickies that belong to the same topic or task
3. For anything worth keeping long term, create a proper note with add_note
   that collects the related stickies, then tell me which sticky slugs are
   now safe to remove
4. Flag stickies that look stale or already done

Keep the board to short-lived reminders; durable content belongs in notes.`

	return promptResult(template), nil
}
