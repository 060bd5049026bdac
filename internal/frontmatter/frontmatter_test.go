// ABOUTME: Tests for the frontmatter codec.
// ABOUTME: Covers round-trip, defaults, position handling, and bad input.

package frontmatter

import (
	"strings"
	"testing"
	"time"

	"github.com/harper/mariposa/internal/models"
)

func TestRoundTrip(t *testing.T) {
	now := time.Now().Round(time.Second)
	meta := &Meta{
		Title:    "Shopping List",
		Category: "errands",
		Tags:     []string{"todo", "weekly"},
		Position: &models.Position{X: 120.5, Y: 44},
		Created:  now,
		Updated:  now,
	}
	body := "# Groceries\n\n- milk\n- eggs\n"

	raw, err := Encode(meta, body)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	got, gotBody, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if got.Title != meta.Title {
		t.Errorf("expected title %q, got %q", meta.Title, got.Title)
	}
	if got.Category != meta.Category {
		t.Errorf("expected category %q, got %q", meta.Category, got.Category)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "todo" || got.Tags[1] != "weekly" {
		t.Errorf("tags did not round-trip: %v", got.Tags)
	}
	if got.Position == nil {
		t.Fatal("expected position to round-trip")
	}
	if got.Position.X != 120.5 || got.Position.Y != 44 {
		t.Errorf("position did not round-trip: %+v", got.Position)
	}
	if !got.Created.Equal(meta.Created) || !got.Updated.Equal(meta.Updated) {
		t.Errorf("timestamps did not round-trip: %v / %v", got.Created, got.Updated)
	}
	if gotBody != body {
		t.Errorf("expected body %q, got %q", body, gotBody)
	}
}

func TestDecodeDefaults(t *testing.T) {
	raw := []byte("---\ntags:\n  - orphan\n---\nsome text\n")

	meta, body, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if meta.Title != models.DefaultTitle {
		t.Errorf("expected default title, got %q", meta.Title)
	}
	if meta.Category != models.DefaultCategory {
		t.Errorf("expected default category, got %q", meta.Category)
	}
	if meta.Created.IsZero() || meta.Updated.IsZero() {
		t.Error("expected timestamps to default to now")
	}
	if body != "some text\n" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestDecodeNoHeader(t *testing.T) {
	meta, body, err := Decode([]byte("just a plain file\n"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body != "just a plain file\n" {
		t.Errorf("unexpected body: %q", body)
	}
	if meta.Title != models.DefaultTitle {
		t.Errorf("expected default title, got %q", meta.Title)
	}
	if meta.Tags == nil {
		t.Error("expected tags to default to empty set, not nil")
	}
}

func TestDecodeUnterminated(t *testing.T) {
	_, _, err := Decode([]byte("---\ntitle: broken\n"))
	if err == nil {
		t.Fatal("expected error for unterminated frontmatter")
	}
}

// The y axis key is a YAML 1.1 boolean literal; it must still read back
// as a plain number whether or not the encoder quoted it.
func TestPositionAxisKeyCollision(t *testing.T) {
	raw := []byte("---\ntitle: Pinned\nposition:\n  x: 10\n  y: 25\n---\n")

	meta, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if meta.Position == nil || meta.Position.X != 10 || meta.Position.Y != 25 {
		t.Fatalf("position axes did not decode as numbers: %+v", meta.Position)
	}

	encoded, err := Encode(meta, "")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	again, _, err := Decode(encoded)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if again.Position.Y != 25 {
		t.Errorf("expected y=25 after round-trip, got %v", again.Position.Y)
	}
}

func TestEncodeOmitsUnsetPosition(t *testing.T) {
	meta := &Meta{Title: "Loose", Category: "misc", Tags: []string{}, Created: time.Now(), Updated: time.Now()}
	raw, err := Encode(meta, "body")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if strings.Contains(string(raw), "position") {
		t.Errorf("unset position must not be serialized:\n%s", raw)
	}
}
