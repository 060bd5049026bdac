// ABOUTME: Sticky and section models for canvas board elements.
// ABOUTME: Lightweight variants of Note with the same lifecycle shape.

package models

import "time"

// Sticky is a small free-form text element placed on the canvas.
type Sticky struct {
	Slug      string    `json:"slug"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	Position  *Position `json:"position,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewSticky(text, category string) *Sticky {
	if category == "" {
		category = DefaultCategory
	}
	now := time.Now()
	return &Sticky{
		Text:      text,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Sticky) Touch() {
	s.UpdatedAt = time.Now()
}

// Section is a titled region used to visually group canvas elements.
type Section struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Position  *Position `json:"position,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewSection(title, category string) *Section {
	if title == "" {
		title = DefaultTitle
	}
	if category == "" {
		category = DefaultCategory
	}
	now := time.Now()
	return &Section{
		Title:     title,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Section) Touch() {
	s.UpdatedAt = time.Now()
}
