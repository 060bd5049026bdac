// ABOUTME: Terminal formatting for mariposa CLI output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/harper/mariposa/internal/models"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

func FormatNoteListItem(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(note.Slug), bold(note.Title)))
	sb.WriteString(fmt.Sprintf("         %s %s\n", faint("Category:"), green(note.Category)))

	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("         %s %s\n",
			faint("Tags:"),
			cyan(strings.Join(note.Tags, ", "))))
	}

	sb.WriteString(fmt.Sprintf("         %s %s\n",
		faint("Updated:"),
		faint(note.UpdatedAt.Format("2006-01-02 15:04"))))

	return sb.String()
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return rendered, nil
}

func FormatNoteHeader(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Slug:"), faint(note.Slug)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Category:"), green(note.Category)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.CreatedAt.Format("2006-01-02 15:04"))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Format("2006-01-02 15:04"))))

	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(note.Tags, ", "))))
	}

	sb.WriteString(strings.Repeat("-", 60) + "\n")
	return sb.String()
}

func FormatCategoryListItem(c *models.Category) string {
	label := c.DisplayName
	if label == "" {
		label = c.Name
	}
	return fmt.Sprintf("  %s  %s %s\n", bold(label), faint(c.Name), faint(fmt.Sprintf("(%d notes)", c.NoteCount)))
}
