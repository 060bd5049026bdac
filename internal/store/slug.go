// ABOUTME: Slug derivation for notes, stickies, and sections.
// ABOUTME: Lowercased, hyphen-separated, corpus-globally unique.

package store

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a filesystem-safe base slug from a title. Runs of
// non-alphanumeric characters collapse into a single hyphen.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonAlnumRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "note"
	}
	return slug
}

// uniqueSlug appends a numeric suffix to base until taken reports false.
// Uniqueness is global across the corpus, not per category, so a later
// category move never needs a rename.
func uniqueSlug(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
