package hierarchy

import (
	"fmt"
	"strings"
)

// Level identifies one of the four hierarchy levels.
//
// Levels are ordered: Part is the top level, Notion the bottom. The
// integer values are persisted in the store, so they must never be
// renumbered.
type Level int

const (
	// Part is the top level. Parts belong to the reserved root parent.
	Part Level = 1

	// Chapter records belong to a Part.
	Chapter Level = 2

	// Paragraph records belong to a Chapter.
	Paragraph Level = 3

	// Notion is the bottom level. Notions belong to a Paragraph.
	Notion Level = 4
)

// RootParent is the parent id shared by all Part records.
//
// SQLite treats NULLs as distinct in unique indexes, so the top level
// uses an empty-string sentinel to keep the (level, parent_id, seq)
// uniqueness constraint real for Parts too.
const RootParent = ""

// Valid reports whether l is one of the four defined levels.
func (l Level) Valid() bool {
	return l >= Part && l <= Notion
}

// Parent returns the level a parent record of l lives at.
// ok is false for Part, which has no parent level.
func (l Level) Parent() (parent Level, ok bool) {
	if l <= Part || l > Notion {
		return 0, false
	}
	return l - 1, true
}

// Child returns the level child records of l live at.
// ok is false for Notion, which has no child level.
func (l Level) Child() (child Level, ok bool) {
	if l < Part || l >= Notion {
		return 0, false
	}
	return l + 1, true
}

// String returns the lowercase level name ("part", "chapter",
// "paragraph", "notion"), or "level(N)" for undefined values.
func (l Level) String() string {
	switch l {
	case Part:
		return "part"
	case Chapter:
		return "chapter"
	case Paragraph:
		return "paragraph"
	case Notion:
		return "notion"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive. Returns an error naming the valid levels on
// unknown input.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "part":
		return Part, nil
	case "chapter":
		return Chapter, nil
	case "paragraph":
		return Paragraph, nil
	case "notion":
		return Notion, nil
	default:
		return 0, fmt.Errorf("unknown level %q: must be one of part, chapter, paragraph, notion", name)
	}
}

// Levels returns the four levels in top-down order.
func Levels() []Level {
	return []Level{Part, Chapter, Paragraph, Notion}
}
