// ABOUTME: Frontmatter codec for markdown notes with a YAML metadata header.
// ABOUTME: Splits/joins the --- delimited header and applies field defaults.

package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/mariposa/internal/models"
)

var ErrUnterminated = errors.New("frontmatter started but no closing delimiter found")

// Meta is the structured header of a note file. The position sub-record
// nests x/y as plain numbers; yaml.v3 quotes the "y" key on encode so it
// never reads back as a YAML 1.1 boolean.
type Meta struct {
	Title    string           `yaml:"title"`
	Category string           `yaml:"category"`
	Tags     []string         `yaml:"tags"`
	Position *models.Position `yaml:"position,omitempty"`
	Created  time.Time        `yaml:"created"`
	Updated  time.Time        `yaml:"updated"`
}

// Decode parses raw file bytes into metadata and body. A file without a
// frontmatter header decodes as all-default metadata plus the full text
// as body. Missing fields resolve to documented defaults: Untitled, the
// default category, empty tags, current time.
func Decode(data []byte) (*Meta, string, error) {
	meta := &Meta{}
	body := string(data)

	if bytes.HasPrefix(data, []byte("---\n")) || bytes.HasPrefix(data, []byte("---\r\n")) {
		rest := data[3:]
		parts := bytes.SplitN(rest, []byte("\n---"), 2)
		if len(parts) == 1 {
			return nil, "", ErrUnterminated
		}
		if err := yaml.Unmarshal(parts[0], meta); err != nil {
			return nil, "", fmt.Errorf("parse frontmatter: %w", err)
		}
		body = strings.TrimPrefix(string(parts[1]), "\n")
		body = strings.TrimPrefix(body, "\r\n")
	}

	applyDefaults(meta)
	return meta, body, nil
}

// Encode serializes metadata and body into file bytes. A nil Position is
// omitted from the header entirely.
func Encode(meta *Meta, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

func applyDefaults(meta *Meta) {
	if meta.Title == "" {
		meta.Title = models.DefaultTitle
	}
	if meta.Category == "" {
		meta.Category = models.DefaultCategory
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	now := time.Now()
	if meta.Created.IsZero() {
		meta.Created = now
	}
	if meta.Updated.IsZero() {
		meta.Updated = now
	}
}
