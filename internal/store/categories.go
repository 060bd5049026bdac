// ABOUTME: Category folder management with sidecar display metadata.
// ABOUTME: Handles creation, listing, metadata updates, and safe deletion.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/harper/mariposa/internal/models"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrInvalidName       = errors.New("category name contains invalid characters")
	ErrDefaultCategory   = errors.New("the default category cannot be deleted")
	ErrCategoryNotEmpty  = errors.New("category has notes and no migration target was given")
)

// categoryMetaFile is the per-folder sidecar holding display metadata
// that has no home in the notes themselves.
const categoryMetaFile = ".category.json"

type categoryMeta struct {
	DisplayName string `json:"displayName,omitempty"`
	Position    int    `json:"position,omitempty"`
}

func (s *Store) categoryDir(name string) string {
	return filepath.Join(s.notesDir(), name)
}

// requireCategory rejects names that are invalid or have no folder on
// disk. Used when the caller names a destination explicitly.
func (s *Store) requireCategory(name string) error {
	if !models.ValidCategoryName(name) {
		return ErrInvalidName
	}
	if _, err := os.Stat(s.categoryDir(name)); err != nil {
		if os.IsNotExist(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// CreateCategory makes a new category folder.
func (s *Store) CreateCategory(name string) (*models.Category, error) {
	if !models.ValidCategoryName(name) {
		return nil, ErrInvalidName
	}
	dir := s.categoryDir(name)
	if _, err := os.Stat(dir); err == nil {
		return nil, ErrDuplicateCategory
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create category folder: %w", err)
	}
	s.logger.Debug("category created", "name", name)
	return models.NewCategory(name), nil
}

// ListCategories returns the category names on disk, sorted.
func (s *Store) ListCategories() ([]string, error) {
	entries, err := os.ReadDir(s.notesDir())
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListCategoryMeta returns full category records with computed note
// counts, ordered by position then name.
func (s *Store) ListCategoryMeta() ([]*models.Category, error) {
	names, err := s.ListCategories()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	s.mu.RLock()
	for _, category := range s.index {
		counts[category]++
	}
	s.mu.RUnlock()

	categories := make([]*models.Category, 0, len(names))
	for _, name := range names {
		c := models.NewCategory(name)
		meta, err := s.readCategoryMeta(name)
		if err != nil {
			return nil, err
		}
		if meta.DisplayName != "" {
			c.DisplayName = meta.DisplayName
		}
		c.Position = meta.Position
		c.NoteCount = counts[name]
		categories = append(categories, c)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Position != categories[j].Position {
			return categories[i].Position < categories[j].Position
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// UpdateCategoryMeta changes display name and/or ordering position.
func (s *Store) UpdateCategoryMeta(name string, displayName *string, position *int) (*models.Category, error) {
	if _, err := os.Stat(s.categoryDir(name)); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	meta, err := s.readCategoryMeta(name)
	if err != nil {
		return nil, err
	}
	if displayName != nil {
		meta.DisplayName = *displayName
	}
	if position != nil {
		meta.Position = *position
	}
	if err := s.writeCategoryMeta(name, meta); err != nil {
		return nil, err
	}

	c := models.NewCategory(name)
	if meta.DisplayName != "" {
		c.DisplayName = meta.DisplayName
	}
	c.Position = meta.Position
	s.mu.RLock()
	for _, category := range s.index {
		if category == name {
			c.NoteCount++
		}
	}
	s.mu.RUnlock()
	return c, nil
}

// DeleteCategory removes a category folder. The default category is
// always rejected. A category that still holds notes requires an
// explicit moveTo target; every member note is relocated (and verified)
// before the folder itself goes away. Returns how many notes moved.
func (s *Store) DeleteCategory(name, moveTo string) (int, error) {
	if name == models.DefaultCategory {
		return 0, ErrDefaultCategory
	}
	if _, err := os.Stat(s.categoryDir(name)); err != nil {
		if os.IsNotExist(err) {
			return 0, ErrCategoryNotFound
		}
		return 0, err
	}

	slugs, err := listMarkdown(s.categoryDir(name))
	if err != nil {
		return 0, err
	}

	moved := 0
	if len(slugs) > 0 {
		if moveTo == "" {
			return 0, ErrCategoryNotEmpty
		}
		if _, err := os.Stat(s.categoryDir(moveTo)); err != nil {
			if os.IsNotExist(err) {
				return 0, ErrCategoryNotFound
			}
			return 0, err
		}
		for _, slug := range slugs {
			note, err := s.readNote(name, slug)
			if err != nil {
				return moved, err
			}
			if _, err := s.moveNote(note, moveTo); err != nil {
				return moved, err
			}
			moved++
		}
	}

	// All member notes are confirmed relocated; only the sidecar and
	// stray temp files may remain.
	if err := os.RemoveAll(s.categoryDir(name)); err != nil {
		return moved, fmt.Errorf("remove category folder: %w", err)
	}
	s.logger.Debug("category deleted", "name", name, "moved", moved)
	return moved, nil
}

func (s *Store) readCategoryMeta(name string) (*categoryMeta, error) {
	meta := &categoryMeta{}
	data, err := os.ReadFile(filepath.Join(s.categoryDir(name), categoryMetaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return meta, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, fmt.Errorf("parse category metadata for %s: %w", name, err)
	}
	return meta, nil
}

func (s *Store) writeCategoryMeta(name string, meta *categoryMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.categoryDir(name), categoryMetaFile), data, 0o644)
}
