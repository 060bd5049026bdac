// ABOUTME: Tests for the core data models.
// ABOUTME: Constructor defaults, tag lookup, and category name rules.

package models

import "testing"

func TestNewNoteDefaults(t *testing.T) {
	note := NewNote("", "some content", "", nil)
	if note.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", note.Title, DefaultTitle)
	}
	if note.Category != DefaultCategory {
		t.Errorf("category = %q, want %q", note.Category, DefaultCategory)
	}
	if note.Tags == nil {
		t.Error("tags should be an empty slice, not nil")
	}
	if note.CreatedAt.IsZero() || !note.CreatedAt.Equal(note.UpdatedAt) {
		t.Error("timestamps not initialized together")
	}
}

func TestNoteHasTag(t *testing.T) {
	note := NewNote("Groceries", "", "", []string{"errands", "food"})
	if !note.HasTag("food") {
		t.Error("expected food tag")
	}
	if note.HasTag("Food") {
		t.Error("tag match should be exact")
	}
}

func TestValidCategoryName(t *testing.T) {
	valid := []string{"work", "work-stuff", "q3_2026", "A1"}
	for _, name := range valid {
		if !ValidCategoryName(name) {
			t.Errorf("%q should be valid", name)
		}
	}
	invalid := []string{"", "bad name", "trailing ", "notes/sub", "dots.here"}
	for _, name := range invalid {
		if ValidCategoryName(name) {
			t.Errorf("%q should be invalid", name)
		}
	}
}

func TestCategoryIsDefault(t *testing.T) {
	if !NewCategory(DefaultCategory).IsDefault() {
		t.Error("default category not recognized")
	}
	if NewCategory("work").IsDefault() {
		t.Error("work flagged as default")
	}
}

func TestImageSetDimensions(t *testing.T) {
	img := NewImage()
	img.SetDimensions(800, 600)
	if img.AspectRatio < 1.33 || img.AspectRatio > 1.34 {
		t.Errorf("aspect ratio = %f", img.AspectRatio)
	}
	img.SetDimensions(10, 0)
	if img.AspectRatio != 1.3333333333333333 {
		// Zero height leaves the previous ratio untouched.
		t.Errorf("ratio changed on zero height: %f", img.AspectRatio)
	}
}
