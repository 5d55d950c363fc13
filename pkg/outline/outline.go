// Package outline extracts the heading outline of a markdown document.
package outline

import (
	"regexp"
	"strings"
)

// MaxLevel is the deepest heading rank that is part of an outline.
const MaxLevel = 3

var (
	headingPattern = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+)$`)
	slugPattern    = regexp.MustCompile(`[^a-z0-9]+`)
)

// Heading is one entry of a document outline.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Headings is an ordered outline.
type Headings []Heading

// Extract scans text for rank 1-3 heading lines and returns them in
// document order. A document without headings yields an empty outline.
func Extract(text string) Headings {
	var out Headings
	for _, match := range headingPattern.FindAllStringSubmatch(text, -1) {
		title := strings.TrimSpace(match[2])
		out = append(out, Heading{
			ID:    Slug(title),
			Text:  title,
			Level: len(match[1]),
		})
	}
	return out
}

// Slug derives the anchor id for heading text: runs outside [a-z0-9]
// become one hyphen and no hyphen leads or trails. Identical texts share an
// id.
func Slug(text string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(text), "-"), "-")
}

// IDs returns the heading ids in order, duplicates included.
func (h Headings) IDs() []string {
	ids := make([]string, 0, len(h))
	for _, heading := range h {
		ids = append(ids, heading.ID)
	}
	return ids
}

// Find returns the first heading with the given id.
func (h Headings) Find(id string) (Heading, bool) {
	if i := h.Index(id); i >= 0 {
		return h[i], true
	}
	return Heading{}, false
}

// Index returns the position of the first heading with the given id, or -1.
func (h Headings) Index(id string) int {
	for i, heading := range h {
		if heading.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether any heading carries id.
func (h Headings) Contains(id string) bool {
	return h.Index(id) >= 0
}

// Equal reports whether both outlines hold the same entries in the same order.
func (h Headings) Equal(other Headings) bool {
	if len(h) != len(other) {
		return false
	}
	for i := range h {
		if h[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with h.
func (h Headings) Clone() Headings {
	if h == nil {
		return nil
	}
	out := make(Headings, len(h))
	copy(out, h)
	return out
}
