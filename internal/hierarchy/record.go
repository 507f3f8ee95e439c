package hierarchy

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record is a persisted outline record at any level.
//
// ID is opaque, stable, and never changes as a side effect of
// renumbering. ParentID is immutable after creation. Number is the
// record's position within its sibling group; it is the only field
// the sequencing engine ever rewrites.
type Record struct {
	ID       string
	Level    Level
	ParentID string
	Number   int
	Title    string
	Body     string
}

// Sibling is the projection of a record used by the sequencing
// engine: identity plus position, nothing else.
type Sibling struct {
	ID     string
	Number int
}

// Payload carries the caller-supplied content of a new record.
type Payload struct {
	Title string
	Body  string
}

// Normalize returns the payload with its title NFC-normalized and
// trimmed. Titles are compared and rendered in many places; storing
// a single normal form avoids visually identical titles that differ
// in byte representation.
func (p Payload) Normalize() Payload {
	p.Title = NormalizeTitle(p.Title)
	return p
}

// NormalizeTitle NFC-normalizes and trims surrounding whitespace.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(norm.NFC.String(title))
}
