// Package hierarchy defines the core domain types for the outline store.
//
// An outline is a strict four-level tree:
//
//	Part → Chapter → Paragraph → Notion
//
// Every record belongs to exactly one parent (Parts belong to the
// reserved root parent) and carries a sequence number that is unique
// and dense within its sibling group: for a group of N records the
// numbers in use are exactly 1..N. Keeping that invariant true across
// mutations is the job of package engine; this package only defines
// the vocabulary.
package hierarchy
