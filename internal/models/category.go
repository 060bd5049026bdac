// ABOUTME: Category model for grouping notes into folders.
// ABOUTME: Normalizes names and validates the safe character set.

package models

import (
	"regexp"
	"strings"
)

var categoryNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type Category struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Position    int    `json:"position"`
	NoteCount   int    `json:"noteCount"`
}

func NewCategory(name string) *Category {
	name = strings.TrimSpace(name)
	return &Category{
		Name:        name,
		DisplayName: name,
	}
}

// ValidCategoryName reports whether name is non-empty and restricted to
// letters, digits, hyphen, and underscore.
func ValidCategoryName(name string) bool {
	return categoryNameRe.MatchString(name)
}

// IsDefault reports whether this is the undeletable fallback category.
func (c *Category) IsDefault() bool {
	return c.Name == DefaultCategory
}
