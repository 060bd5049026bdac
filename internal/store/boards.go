// ABOUTME: Sticky and section stores, the lightweight board entities.
// ABOUTME: Same frontmatter file lifecycle as notes, flat directories.

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harper/mariposa/internal/frontmatter"
	"github.com/harper/mariposa/internal/models"
)

var (
	ErrStickyNotFound  = errors.New("sticky not found")
	ErrSectionNotFound = errors.New("section not found")
)

// UpdateBoardParams is a partial update for a sticky or section. Text
// applies to stickies, Title to sections.
type UpdateBoardParams struct {
	Text          *string
	Title         *string
	Category      *string
	Position      *models.Position
	ClearPosition bool
}

// stickySlugWords caps how much of the text feeds the slug.
const stickySlugWords = 6

func stickySlugBase(text string) string {
	words := strings.Fields(text)
	if len(words) > stickySlugWords {
		words = words[:stickySlugWords]
	}
	base := Slugify(strings.Join(words, " "))
	if base == "note" {
		base = "sticky"
	}
	return base
}

// fileTaken reports whether dir already holds slug.md.
func fileTaken(dir, slug string) bool {
	_, err := os.Stat(filepath.Join(dir, slug+".md"))
	return err == nil
}

// --- Stickies ---

func (s *Store) CreateSticky(text, category string, pos *models.Position) (*models.Sticky, error) {
	sticky := models.NewSticky(text, s.resolveCategory(category))
	sticky.Position = pos
	sticky.Slug = uniqueSlug(stickySlugBase(text), func(candidate string) bool {
		return fileTaken(s.stickiesDir(), candidate)
	})

	if err := s.writeSticky(sticky); err != nil {
		return nil, err
	}
	s.logger.Debug("sticky created", "slug", sticky.Slug)
	return sticky, nil
}

func (s *Store) GetSticky(slug string) (*models.Sticky, error) {
	sticky, err := s.readSticky(slug)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStickyNotFound
		}
		return nil, err
	}
	return sticky, nil
}

func (s *Store) UpdateSticky(slug string, params UpdateBoardParams) (*models.Sticky, error) {
	mu := s.slugLock("sticky:" + slug)
	mu.Lock()
	defer mu.Unlock()

	sticky, err := s.GetSticky(slug)
	if err != nil {
		return nil, err
	}
	if params.Text != nil {
		sticky.Text = *params.Text
	}
	if params.Category != nil {
		if err := s.requireCategory(*params.Category); err != nil {
			return nil, err
		}
		sticky.Category = *params.Category
	}
	if params.ClearPosition {
		sticky.Position = nil
	} else if params.Position != nil {
		sticky.Position = params.Position
	}
	sticky.Touch()

	if err := s.writeSticky(sticky); err != nil {
		return nil, err
	}
	return sticky, nil
}

func (s *Store) DeleteSticky(slug string) (bool, error) {
	err := os.Remove(filepath.Join(s.stickiesDir(), slug+".md"))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) ListStickies(category string) ([]*models.Sticky, error) {
	slugs, err := listMarkdown(s.stickiesDir())
	if err != nil {
		return nil, err
	}
	sort.Strings(slugs)

	var stickies []*models.Sticky
	for _, slug := range slugs {
		sticky, err := s.readSticky(slug)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if category != "" && sticky.Category != category {
			continue
		}
		stickies = append(stickies, sticky)
	}
	return stickies, nil
}

func (s *Store) readSticky(slug string) (*models.Sticky, error) {
	data, err := os.ReadFile(filepath.Join(s.stickiesDir(), slug+".md"))
	if err != nil {
		return nil, err
	}
	meta, body, err := frontmatter.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode sticky %s: %w", slug, err)
	}
	return &models.Sticky{
		Slug:      slug,
		Text:      body,
		Category:  meta.Category,
		Position:  meta.Position,
		CreatedAt: meta.Created,
		UpdatedAt: meta.Updated,
	}, nil
}

func (s *Store) writeSticky(sticky *models.Sticky) error {
	meta := &frontmatter.Meta{
		Category: sticky.Category,
		Tags:     []string{},
		Position: sticky.Position,
		Created:  sticky.CreatedAt,
		Updated:  sticky.UpdatedAt,
	}
	data, err := frontmatter.Encode(meta, sticky.Text)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.stickiesDir(), sticky.Slug+".md"), data, 0o644)
}

// --- Sections ---

func (s *Store) CreateSection(title, category string, pos *models.Position) (*models.Section, error) {
	section := models.NewSection(title, s.resolveCategory(category))
	section.Position = pos
	section.Slug = uniqueSlug(Slugify(section.Title), func(candidate string) bool {
		return fileTaken(s.sectionsDir(), candidate)
	})

	if err := s.writeSection(section); err != nil {
		return nil, err
	}
	s.logger.Debug("section created", "slug", section.Slug)
	return section, nil
}

func (s *Store) GetSection(slug string) (*models.Section, error) {
	section, err := s.readSection(slug)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return section, nil
}

func (s *Store) UpdateSection(slug string, params UpdateBoardParams) (*models.Section, error) {
	mu := s.slugLock("section:" + slug)
	mu.Lock()
	defer mu.Unlock()

	section, err := s.GetSection(slug)
	if err != nil {
		return nil, err
	}
	if params.Title != nil {
		section.Title = *params.Title
	}
	if params.Category != nil {
		if err := s.requireCategory(*params.Category); err != nil {
			return nil, err
		}
		section.Category = *params.Category
	}
	if params.ClearPosition {
		section.Position = nil
	} else if params.Position != nil {
		section.Position = params.Position
	}
	section.Touch()

	if err := s.writeSection(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *Store) DeleteSection(slug string) (bool, error) {
	err := os.Remove(filepath.Join(s.sectionsDir(), slug+".md"))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) ListSections(category string) ([]*models.Section, error) {
	slugs, err := listMarkdown(s.sectionsDir())
	if err != nil {
		return nil, err
	}
	sort.Strings(slugs)

	var sections []*models.Section
	for _, slug := range slugs {
		section, err := s.readSection(slug)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if category != "" && section.Category != category {
			continue
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func (s *Store) readSection(slug string) (*models.Section, error) {
	data, err := os.ReadFile(filepath.Join(s.sectionsDir(), slug+".md"))
	if err != nil {
		return nil, err
	}
	meta, _, err := frontmatter.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode section %s: %w", slug, err)
	}
	return &models.Section{
		Slug:      slug,
		Title:     meta.Title,
		Category:  meta.Category,
		Position:  meta.Position,
		CreatedAt: meta.Created,
		UpdatedAt: meta.Updated,
	}, nil
}

func (s *Store) writeSection(section *models.Section) error {
	meta := &frontmatter.Meta{
		Title:    section.Title,
		Category: section.Category,
		Tags:     []string{},
		Position: section.Position,
		Created:  section.CreatedAt,
		Updated:  section.UpdatedAt,
	}
	data, err := frontmatter.Encode(meta, "")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.sectionsDir(), section.Slug+".md"), data, 0o644)
}
