package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutlineDocument is the YAML import format: a nested outline whose
// sibling order in the file becomes the sequence numbering (first
// entry → number 1, and so on).
type OutlineDocument struct {
	// Title names the document. Informational only.
	Title string `yaml:"title,omitempty"`

	// Parts is the top level of the outline.
	Parts []PartEntry `yaml:"parts"`
}

// PartEntry is one part with its chapters.
type PartEntry struct {
	Title    string         `yaml:"title"`
	Body     string         `yaml:"body,omitempty"`
	Chapters []ChapterEntry `yaml:"chapters,omitempty"`
}

// ChapterEntry is one chapter with its paragraphs.
type ChapterEntry struct {
	Title      string           `yaml:"title"`
	Body       string           `yaml:"body,omitempty"`
	Paragraphs []ParagraphEntry `yaml:"paragraphs,omitempty"`
}

// ParagraphEntry is one paragraph with its notions.
type ParagraphEntry struct {
	Title   string        `yaml:"title"`
	Body    string        `yaml:"body,omitempty"`
	Notions []NotionEntry `yaml:"notions,omitempty"`
}

// NotionEntry is one notion, the bottom of the hierarchy.
type NotionEntry struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body,omitempty"`
}

// LoadOutlineDocument reads and validates a YAML outline file.
func LoadOutlineDocument(path string) (*OutlineDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read outline file: %w", err)
	}

	var doc OutlineDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse outline file: %w", err)
	}

	if len(doc.Parts) == 0 {
		return nil, fmt.Errorf("outline file %s has no parts", path)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("outline file %s: %w", path, err)
	}

	return &doc, nil
}

// validate rejects entries without titles; everything else about the
// numbering is derived from file order, so there is nothing more a
// document can get wrong.
func (d *OutlineDocument) validate() error {
	for pi, part := range d.Parts {
		if part.Title == "" {
			return fmt.Errorf("part %d has no title", pi+1)
		}
		for ci, chapter := range part.Chapters {
			if chapter.Title == "" {
				return fmt.Errorf("part %d chapter %d has no title", pi+1, ci+1)
			}
			for gi, paragraph := range chapter.Paragraphs {
				if paragraph.Title == "" {
					return fmt.Errorf("part %d chapter %d paragraph %d has no title", pi+1, ci+1, gi+1)
				}
				for ni, notion := range paragraph.Notions {
					if notion.Title == "" {
						return fmt.Errorf("part %d chapter %d paragraph %d notion %d has no title", pi+1, ci+1, gi+1, ni+1)
					}
				}
			}
		}
	}
	return nil
}
