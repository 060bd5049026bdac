// ABOUTME: CRUD operations for notes persisted as frontmatter markdown files.
// ABOUTME: Handles slug assignment, filtering, and category moves.

package store

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/harper/mariposa/internal/frontmatter"
	"github.com/harper/mariposa/internal/models"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrSlugConflict = errors.New("slug already exists in destination category")
)

// NoteFilter is a conjunction of optional predicates.
type NoteFilter struct {
	Category string // exact match
	Tag      string // membership
	Search   string // case-insensitive substring over title and body
}

// UpdateNoteParams carries a partial update. Nil pointers keep the prior
// value. Tags replaces the whole set when non-nil. ClearPosition removes
// the canvas placement; otherwise a nil Position keeps the existing one.
type UpdateNoteParams struct {
	Title         *string
	Content       *string
	Category      *string
	Tags          []string
	Position      *models.Position
	ClearPosition bool
}

// CreateNote persists a new note and assigns it a corpus-unique slug.
// An invalid or unknown category falls back to the default.
func (s *Store) CreateNote(title, content, category string, tags []string, pos *models.Position) (*models.Note, error) {
	note := models.NewNote(title, content, s.resolveCategory(category), tags)
	note.Position = pos

	base := Slugify(note.Title)
	s.mu.Lock()
	note.Slug = uniqueSlug(base, func(candidate string) bool {
		_, ok := s.index[candidate]
		return ok
	})
	s.index[note.Slug] = note.Category
	s.mu.Unlock()

	if err := s.writeNote(note); err != nil {
		s.dropIndex(note.Slug)
		return nil, err
	}

	s.logger.Debug("note created", "slug", note.Slug, "category", note.Category)
	return note, nil
}

// GetNote returns the note for slug, or ErrNoteNotFound.
func (s *Store) GetNote(slug string) (*models.Note, error) {
	category, ok := s.lookup(slug)
	if !ok {
		return nil, ErrNoteNotFound
	}
	note, err := s.readNote(category, slug)
	if err != nil {
		if os.IsNotExist(err) {
			s.dropIndex(slug)
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

// UpdateNote applies a partial update. A changed category physically
// relocates the file: the new copy is written and verified before the
// original is removed, so a mid-operation failure keeps the note intact.
func (s *Store) UpdateNote(slug string, params UpdateNoteParams) (*models.Note, error) {
	mu := s.slugLock(slug)
	mu.Lock()
	defer mu.Unlock()

	note, err := s.GetNote(slug)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		note.Title = *params.Title
	}
	if params.Content != nil {
		note.Content = *params.Content
	}
	if params.Tags != nil {
		note.Tags = params.Tags
	}
	if params.ClearPosition {
		note.Position = nil
	} else if params.Position != nil {
		note.Position = params.Position
	}
	note.Touch()

	if params.Category != nil && *params.Category != note.Category {
		return s.moveNote(note, *params.Category)
	}

	if err := s.writeNote(note); err != nil {
		return nil, err
	}
	return note, nil
}

// moveNote relocates a note to another category folder, keeping the slug.
func (s *Store) moveNote(note *models.Note, dest string) (*models.Note, error) {
	if err := s.requireCategory(dest); err != nil {
		return nil, err
	}

	oldPath := s.notePath(note.Category, note.Slug)
	newPath := s.notePath(dest, note.Slug)
	if _, err := os.Stat(newPath); err == nil {
		return nil, ErrSlugConflict
	}

	note.Category = dest
	if err := s.writeNote(note); err != nil {
		return nil, err
	}
	// Verify the copy landed before dropping the original.
	if _, err := s.readNote(dest, note.Slug); err != nil {
		return nil, fmt.Errorf("verify moved note: %w", err)
	}
	if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove old note file: %w", err)
	}

	s.setIndex(note.Slug, dest)
	s.logger.Debug("note moved", "slug", note.Slug, "category", dest)
	return note, nil
}

// DeleteNote removes a note file. Absence is not an error.
func (s *Store) DeleteNote(slug string) (bool, error) {
	mu := s.slugLock(slug)
	mu.Lock()
	defer mu.Unlock()

	category, ok := s.lookup(slug)
	if !ok {
		return false, nil
	}
	if err := os.Remove(s.notePath(category, slug)); err != nil {
		if os.IsNotExist(err) {
			s.dropIndex(slug)
			return false, nil
		}
		return false, err
	}
	s.dropIndex(slug)
	return true, nil
}

// ListNotes returns the filtered corpus, sorted by slug for a
// deterministic order.
func (s *Store) ListNotes(filter NoteFilter) ([]*models.Note, error) {
	var notes []*models.Note
	err := s.walkNoteFiles(func(category, slug string) error {
		if filter.Category != "" && category != filter.Category {
			return nil
		}
		note, err := s.readNote(category, slug)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if filter.Tag != "" && !note.HasTag(filter.Tag) {
			return nil
		}
		if filter.Search != "" && !matchesSearch(note, filter.Search) {
			return nil
		}
		notes = append(notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].Slug < notes[j].Slug })
	return notes, nil
}

// NoteCategories returns the distinct category names in use, sorted.
func (s *Store) NoteCategories() []string {
	s.mu.RLock()
	set := make(map[string]struct{})
	for _, category := range s.index {
		set[category] = struct{}{}
	}
	s.mu.RUnlock()

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NoteTags scans the corpus and returns every tag in use, sorted.
func (s *Store) NoteTags() ([]string, error) {
	set := make(map[string]struct{})
	err := s.walkNoteFiles(func(category, slug string) error {
		note, err := s.readNote(category, slug)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		for _, tag := range note.Tags {
			set[tag] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

func (s *Store) readNote(category, slug string) (*models.Note, error) {
	data, err := os.ReadFile(s.notePath(category, slug))
	if err != nil {
		return nil, err
	}
	meta, body, err := frontmatter.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", category, slug, err)
	}
	return &models.Note{
		Slug:    slug,
		Title:   meta.Title,
		Content: body,
		// The directory is authoritative for category membership.
		Category:  category,
		Tags:      meta.Tags,
		Position:  meta.Position,
		CreatedAt: meta.Created,
		UpdatedAt: meta.Updated,
	}, nil
}

func (s *Store) writeNote(note *models.Note) error {
	meta := &frontmatter.Meta{
		Title:    note.Title,
		Category: note.Category,
		Tags:     note.Tags,
		Position: note.Position,
		Created:  note.CreatedAt,
		Updated:  note.UpdatedAt,
	}
	data, err := frontmatter.Encode(meta, note.Content)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.notePath(note.Category, note.Slug), data, 0o644)
}

// resolveCategory maps a requested category to one that exists on disk,
// falling back to the default for invalid or unknown names.
func (s *Store) resolveCategory(category string) string {
	if category == "" || !models.ValidCategoryName(category) {
		return models.DefaultCategory
	}
	if _, err := os.Stat(s.categoryDir(category)); err != nil {
		return models.DefaultCategory
	}
	return category
}

func matchesSearch(note *models.Note, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(note.Title), q) ||
		strings.Contains(strings.ToLower(note.Content), q)
}
