package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryUnmarshalPreservesOrder(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Keys deliberately out of alphabetical order.
	data := []byte(`{
		"zoo": [{"word": "lion", "english": "lion"}],
		"alpha": [{"word": "a", "english": "a"}],
		"mid": [{"word": "m", "english": "m"}]
	}`)

	var d Dictionary
	require.NoError(t, json.Unmarshal(data, &d))

	require.Len(t, d.Categories, 3)
	assert.Equal(t, "zoo", d.Categories[0].ID)
	assert.Equal(t, "alpha", d.Categories[1].ID)
	assert.Equal(t, "mid", d.Categories[2].ID)
	assert.Equal(t, "lion", d.Categories[0].Entries[0].Word)
}

func TestDictionaryMarshalRoundTrip(t *testing.T) {
	t.Parallel()
	d := Dictionary{Categories: []Category{
		{ID: "b", Entries: []Entry{{Word: "deux", English: "two"}}},
		{ID: "a", Entries: []Entry{{Word: "un", English: "one"}}},
	}}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var back Dictionary
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back.Categories, 2)
	assert.Equal(t, "b", back.Categories[0].ID)
	assert.Equal(t, "a", back.Categories[1].ID)
}

func TestDictionaryUnmarshalRejectsNonObject(t *testing.T) {
	t.Parallel()
	var d Dictionary
	err := json.Unmarshal([]byte(`[1, 2, 3]`), &d)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDictionaryFlatten(t *testing.T) {
	t.Parallel()
	d := Dictionary{Categories: []Category{
		{ID: "fruits", Entries: []Entry{{Word: "pomme"}, {Word: "poire"}}},
		{ID: "school", Entries: []Entry{{Word: "école"}}},
	}}

	flat := d.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, "fruits", flat[0].Category)
	assert.Equal(t, "pomme", flat[0].Word)
	assert.Equal(t, "school", flat[2].Category)
	assert.Equal(t, "école", flat[2].Word)
}

func TestDictionaryEmpty(t *testing.T) {
	t.Parallel()
	assert.True(t, (&Dictionary{}).Empty())
	assert.True(t, (&Dictionary{Categories: []Category{{ID: "x"}}}).Empty())
	assert.False(t, (&Dictionary{Categories: []Category{{ID: "x", Entries: []Entry{{Word: "w"}}}}}).Empty())
}
