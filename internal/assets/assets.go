// ABOUTME: Image asset store: UUID-keyed full/thumbnail JPEG pairs.
// ABOUTME: Re-encodes uploads, manages sidecar category metadata.

package assets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/harper/mariposa/internal/models"
)

var (
	ErrImageNotFound     = errors.New("image not found")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidAssetName  = errors.New("invalid asset filename")
)

const (
	thumbWidth   = 300
	fullQuality  = 85
	thumbQuality = 75

	metaSuffix  = ".meta.json"
	thumbSuffix = "-thumb.jpg"
	fullSuffix  = ".jpg"
)

type sidecar struct {
	Category string `json:"category"`
}

// Store persists image pairs in a single flat directory. Ids are
// discovered from the filename pattern; there is no separate index.
type Store struct {
	dir    string
	logger *slog.Logger
}

func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create assets directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// ProcessAndSave decodes an upload, re-encodes a full-size copy and a
// fixed-width thumbnail as JPEG, and assigns a fresh id. The category
// sidecar is written only when a category is given.
func (s *Store) ProcessAndSave(data []byte, originalFilename, category string) (*models.Image, error) {
	src, err := decodeImage(data, originalFilename)
	if err != nil {
		return nil, err
	}

	img := models.NewImage()
	bounds := src.Bounds()
	img.SetDimensions(bounds.Dx(), bounds.Dy())
	img.Category = category

	full, err := encodeJPEG(src, fullQuality)
	if err != nil {
		return nil, err
	}
	thumb, err := encodeJPEG(scaleToWidth(src, thumbWidth), thumbQuality)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(filepath.Join(s.dir, img.Filename), full, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, img.Thumbnail), thumb, 0o644); err != nil {
		return nil, fmt.Errorf("write thumbnail: %w", err)
	}
	if category != "" {
		if err := s.writeSidecar(img.ID.String(), category); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("image saved", "id", img.ID, "width", img.Width, "height", img.Height)
	return img, nil
}

// Get returns the raw bytes of a stored artifact by exact filename,
// with its content type. Path traversal is rejected outright.
func (s *Store) Get(filename string) ([]byte, string, error) {
	if filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return nil, "", ErrInvalidAssetName
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrImageNotFound
		}
		return nil, "", err
	}
	return data, contentTypeFor(filename), nil
}

// List enumerates every stored image, re-deriving dimensions from the
// full blob per item. Category filters on the sidecar value.
func (s *Store) List(category string) ([]*models.Image, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var images []*models.Image
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, fullSuffix) || strings.HasSuffix(name, thumbSuffix) {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(name, fullSuffix))
		if err != nil {
			continue
		}
		img, err := s.load(id)
		if err != nil {
			s.logger.Warn("skipping unreadable image", "file", name, "error", err)
			continue
		}
		if category != "" && img.Category != category {
			continue
		}
		images = append(images, img)
	}

	sort.Slice(images, func(i, j int) bool { return images[i].CreatedAt.Before(images[j].CreatedAt) })
	return images, nil
}

// Duplicate copies both blobs under a fresh id. A nil category inherits
// the source sidecar; an empty string clears it.
func (s *Store) Duplicate(id string, category *string) (*models.Image, error) {
	srcID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrImageNotFound
	}

	full, err := os.ReadFile(filepath.Join(s.dir, srcID.String()+fullSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	thumb, err := os.ReadFile(filepath.Join(s.dir, srcID.String()+thumbSuffix))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	newCategory := s.readSidecar(srcID.String())
	if category != nil {
		newCategory = *category
	}

	img := models.NewImage()
	img.Category = newCategory
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(full)); err == nil {
		img.SetDimensions(cfg.Width, cfg.Height)
	}

	if err := os.WriteFile(filepath.Join(s.dir, img.Filename), full, 0o644); err != nil {
		return nil, fmt.Errorf("write duplicate: %w", err)
	}
	if thumb != nil {
		if err := os.WriteFile(filepath.Join(s.dir, img.Thumbnail), thumb, 0o644); err != nil {
			// Keep the pair consistent rather than half-visible.
			os.Remove(filepath.Join(s.dir, img.Filename))
			return nil, fmt.Errorf("write duplicate thumbnail: %w", err)
		}
	}
	if newCategory != "" {
		if err := s.writeSidecar(img.ID.String(), newCategory); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("image duplicated", "source", srcID, "id", img.ID)
	return img, nil
}

// Delete removes every file whose name starts with the id: full image,
// thumbnail, and sidecar in one sweep.
func (s *Store) Delete(id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return false, err
	}
	removed := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), id) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				return removed, err
			}
			removed = true
		}
	}
	return removed, nil
}

// UpdateCategory sets or clears the sidecar category. A nil or empty
// value clears it.
func (s *Store) UpdateCategory(id string, category *string) (bool, error) {
	srcID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	if _, err := os.Stat(filepath.Join(s.dir, srcID.String()+fullSuffix)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	if category == nil || *category == "" {
		err := os.Remove(filepath.Join(s.dir, srcID.String()+metaSuffix))
		if err != nil && !os.IsNotExist(err) {
			return false, err
		}
		return true, nil
	}
	if err := s.writeSidecar(srcID.String(), *category); err != nil {
		return false, err
	}
	return true, nil
}

// load builds the metadata view for one id, decoding the stored full
// image header for dimensions. Never cached.
func (s *Store) load(id uuid.UUID) (*models.Image, error) {
	path := filepath.Join(s.dir, id.String()+fullSuffix)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	img := &models.Image{
		ID:        id,
		Filename:  id.String() + fullSuffix,
		Thumbnail: id.String() + thumbSuffix,
		Category:  s.readSidecar(id.String()),
		CreatedAt: info.ModTime(),
	}
	img.SetDimensions(cfg.Width, cfg.Height)
	return img, nil
}

func (s *Store) readSidecar(id string) string {
	data, err := os.ReadFile(filepath.Join(s.dir, id+metaSuffix))
	if err != nil {
		return ""
	}
	var sc sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return ""
	}
	return sc.Category
}

func (s *Store) writeSidecar(id, category string) error {
	data, err := json.MarshalIndent(sidecar{Category: category}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, id+metaSuffix), data, 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}

func decodeImage(data []byte, filename string) (image.Image, error) {
	// webp has no magic-based sniffing registered in some builds, so try
	// the extension first, then generic decode.
	if strings.EqualFold(filepath.Ext(filename), ".webp") {
		if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
			return img, nil
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return img, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scaleToWidth scales proportionally to the target width. Images already
// narrower are kept at their native size.
func scaleToWidth(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= width {
		return src
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
