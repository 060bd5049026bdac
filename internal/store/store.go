// ABOUTME: Filesystem-backed store root for notes, stickies, and sections.
// ABOUTME: Owns directory layout, atomic writes, and the in-memory slug index.

package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/harper/mariposa/internal/models"
)

const (
	notesDirName    = "notes"
	stickiesDirName = "stickies"
	sectionsDirName = "sections"

	// tempFilePrefix is the prefix used for temporary atomic write files.
	tempFilePrefix = "mariposa-tmp-"
)

// Store is the filesystem database. One markdown file per note under its
// category folder, flat folders for stickies and sections. A slug index
// (slug -> category) is rebuilt from a directory scan at startup and kept
// current on writes; external edits are picked up by the watcher.
type Store struct {
	root   string
	logger *slog.Logger

	mu    sync.RWMutex
	index map[string]string

	locks sync.Map // slug -> *sync.Mutex
}

func Open(root string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		root:   root,
		logger: logger,
		index:  make(map[string]string),
	}

	for _, dir := range []string{
		s.notesDir(),
		filepath.Join(s.notesDir(), models.DefaultCategory),
		s.stickiesDir(),
		s.sectionsDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	if err := s.rebuildIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) notesDir() string    { return filepath.Join(s.root, notesDirName) }
func (s *Store) stickiesDir() string { return filepath.Join(s.root, stickiesDirName) }
func (s *Store) sectionsDir() string { return filepath.Join(s.root, sectionsDirName) }

// notePath is a pure function of category and slug.
func (s *Store) notePath(category, slug string) string {
	return filepath.Join(s.notesDir(), category, slug+".md")
}

// rebuildIndex rescans the notes tree and replaces the slug index.
func (s *Store) rebuildIndex() error {
	matches, err := doublestar.Glob(os.DirFS(s.notesDir()), "*/*.md")
	if err != nil {
		return fmt.Errorf("scan notes: %w", err)
	}

	index := make(map[string]string, len(matches))
	for _, m := range matches {
		category := filepath.Dir(m)
		slug := strings.TrimSuffix(filepath.Base(m), ".md")
		index[slug] = category
	}

	s.mu.Lock()
	s.index = index
	s.mu.Unlock()
	return nil
}

// lookup returns the category holding slug, if any.
func (s *Store) lookup(slug string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.index[slug]
	return category, ok
}

func (s *Store) setIndex(slug, category string) {
	s.mu.Lock()
	s.index[slug] = category
	s.mu.Unlock()
}

func (s *Store) dropIndex(slug string) {
	s.mu.Lock()
	delete(s.index, slug)
	s.mu.Unlock()
}

// slugLock returns the advisory mutex for a slug's read-modify-write
// sequences. Concurrent writers to different slugs never contend.
func (s *Store) slugLock(slug string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(slug, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// writeFileAtomic writes data to a file atomically by writing to a temp
// file in the same directory and renaming it over the target.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}

// listMarkdown returns the slugs of all .md files directly under dir.
func listMarkdown(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var slugs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(e.Name(), ".md"))
	}
	return slugs, nil
}

// walkNoteFiles visits every note file path in the corpus.
func (s *Store) walkNoteFiles(fn func(category, slug string) error) error {
	s.mu.RLock()
	snapshot := make(map[string]string, len(s.index))
	for slug, category := range s.index {
		snapshot[slug] = category
	}
	s.mu.RUnlock()

	for slug, category := range snapshot {
		if err := fn(category, slug); err != nil {
			return err
		}
	}
	return nil
}
