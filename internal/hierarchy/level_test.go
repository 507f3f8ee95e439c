package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "part", Part.String())
	assert.Equal(t, "chapter", Chapter.String())
	assert.Equal(t, "paragraph", Paragraph.String())
	assert.Equal(t, "notion", Notion.String())
	assert.Equal(t, "level(7)", Level(7).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"part", Part},
		{"Chapter", Chapter},
		{"PARAGRAPH", Paragraph},
		{" notion ", Notion},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseLevelUnknown(t *testing.T) {
	_, err := ParseLevel("volume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume")
	assert.Contains(t, err.Error(), "part, chapter, paragraph, notion")
}

func TestLevelParentChild(t *testing.T) {
	// The parent/child chain walks the four levels exactly.
	parent, ok := Chapter.Parent()
	require.True(t, ok)
	assert.Equal(t, Part, parent)

	_, ok = Part.Parent()
	assert.False(t, ok)

	child, ok := Paragraph.Child()
	require.True(t, ok)
	assert.Equal(t, Notion, child)

	_, ok = Notion.Child()
	assert.False(t, ok)
}

func TestLevelValid(t *testing.T) {
	for _, l := range Levels() {
		assert.True(t, l.Valid(), "level %s", l)
	}
	assert.False(t, Level(0).Valid())
	assert.False(t, Level(5).Valid())
}
