package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
)

func TestBuildVariantIndex(t *testing.T) {
	t.Parallel() // Enable parallel execution
	dict := &domain.Dictionary{
		Categories: []domain.Category{
			{
				ID: "people",
				Entries: []domain.Entry{
					{Word: "argentino/a", English: "Argentinian"},
					{Word: "amigo", English: "friend"},
				},
			},
			{
				ID: "misc",
				Entries: []domain.Entry{
					{Word: "", English: "ignored"},
					{Word: "Amigo", English: "pal"},
				},
			},
		},
	}

	entries, index := BuildVariantIndex(dict)

	// Entries keep declaration order and skip blank words.
	require.Len(t, entries, 3)
	assert.Equal(t, "argentino/a", entries[0].Word)
	assert.Equal(t, "amigo", entries[1].Word)
	assert.Equal(t, "Amigo", entries[2].Word)

	// Gender pattern expands to both completions.
	assert.Equal(t, "argentino/a", index["argentino"].Word)
	assert.Equal(t, "argentino/a", index["argentina"].Word)

	// First-write-wins: the earlier "amigo" keeps the variant.
	got, ok := index["amigo"]
	require.True(t, ok)
	assert.Equal(t, "friend", got.English)
	assert.Equal(t, "people", got.Category)
}

func TestBuildVariantIndexNil(t *testing.T) {
	t.Parallel()
	entries, index := BuildVariantIndex(nil)
	assert.Nil(t, entries)
	assert.Empty(t, index)
}
