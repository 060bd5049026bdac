// ABOUTME: Note model representing a markdown note with frontmatter metadata.
// ABOUTME: Provides constructor and methods for note lifecycle.

package models

import "time"

// DefaultCategory is the fallback category for notes. It always exists
// and can never be deleted.
const DefaultCategory = "uncategorized"

// DefaultTitle is used when a note is created or decoded without a title.
const DefaultTitle = "Untitled"

// Position is a 2D canvas coordinate. A nil Position means "unplaced".
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type Note struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Position  *Position `json:"position,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewNote(title, content, category string, tags []string) *Note {
	if title == "" {
		title = DefaultTitle
	}
	if category == "" {
		category = DefaultCategory
	}
	if tags == nil {
		tags = []string{}
	}
	now := time.Now()
	return &Note{
		Title:     title,
		Content:   content,
		Category:  category,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
}

// HasTag reports whether the note carries the given tag.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
