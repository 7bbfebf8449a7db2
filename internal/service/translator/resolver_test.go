package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
)

func testDicts() Dictionaries {
	french := &domain.Dictionary{Categories: []domain.Category{
		{ID: "fruits", Entries: []domain.Entry{
			{Word: "pomme", English: "apple", Bengali: "আপেল"},
			{Word: "poire", English: "pear", Bengali: "নাশপাতি"},
		}},
		{ID: "greetings", Entries: []domain.Entry{
			{Word: "bonjour", English: "hello / good morning", Bengali: "নমস্কার"},
		}},
	}}
	spanish := &domain.Dictionary{Categories: []domain.Category{
		{ID: "fruits", Entries: []domain.Entry{
			{Word: "manzana", English: "apple", Bengali: "আপেল"},
		}},
		{ID: "greetings", Entries: []domain.Entry{
			{Word: "hola", English: "hello", Bengali: "হ্যালো"},
		}},
	}}
	return Dictionaries{
		domain.LanguageFrench:  french,
		domain.LanguageSpanish: spanish,
	}
}

func TestResolveFromSpanishWord(t *testing.T) {
	t.Parallel() // Enable parallel execution
	r := NewResolver(nil)

	res := r.Resolve(testDicts(), "manzana", domain.SourceAuto)

	assert.Equal(t, domain.LanguageSpanish, res.Detected)
	assert.Equal(t, "manzana", res.Results[domain.LanguageSpanish])
	assert.Equal(t, "apple", res.Results[domain.LanguageEnglish])
	assert.Equal(t, "আপেল", res.Results[domain.LanguageBengali])
	// Pivot through the "apple" gloss reaches the French entry.
	assert.Equal(t, "pomme", res.Results[domain.LanguageFrench])
}

func TestResolveFromFrenchWordWithMultiGloss(t *testing.T) {
	t.Parallel()
	r := NewResolver(nil)

	res := r.Resolve(testDicts(), "Bonjour", domain.SourceAuto)

	assert.Equal(t, domain.LanguageFrench, res.Detected)
	assert.Equal(t, "bonjour", res.Results[domain.LanguageFrench])
	assert.Equal(t, "hello / good morning", res.Results[domain.LanguageEnglish])
	// Pivot uses only the primary gloss "hello".
	assert.Equal(t, "hola", res.Results[domain.LanguageSpanish])
}

func TestResolveFromEnglishGloss(t *testing.T) {
	t.Parallel()
	r := NewResolver(nil)

	res := r.Resolve(testDicts(), "apple", domain.SourceAuto)

	assert.Equal(t, domain.LanguageEnglish, res.Detected)
	assert.Equal(t, "apple", res.Results[domain.LanguageEnglish])
	assert.Equal(t, "pomme", res.Results[domain.LanguageFrench])
	assert.Equal(t, "manzana", res.Results[domain.LanguageSpanish])
	assert.Equal(t, "আপেল", res.Results[domain.LanguageBengali])
}

func TestResolveEnglishLowConfidenceDoesNotPivot(t *testing.T) {
	t.Parallel()
	r := NewResolver(nil)

	// "morning" is a non-leading token of "good morning": below the
	// confidence gate, so no dictionary language may claim it.
	res := r.Resolve(testDicts(), "morning", domain.SourceAuto)

	assert.Equal(t, domain.LanguageEnglish, res.Detected)
	assert.Equal(t, "morning", res.Results[domain.LanguageEnglish])
	assert.Equal(t, "", res.Results[domain.LanguageFrench])
	assert.Equal(t, "", res.Results[domain.LanguageSpanish])
	assert.Equal(t, "", res.Results[domain.LanguageBengali])
}

func TestResolveBengaliScript(t *testing.T) {
	t.Parallel()
	r := NewResolver(nil)

	res := r.Resolve(testDicts(), "আপেল", domain.SourceAuto)

	assert.Equal(t, domain.LanguageBengali, res.Detected)
	assert.Equal(t, "আপেল", res.Results[domain.LanguageBengali])
	// Both dictionaries carry the script form; each keeps its own word,
	// and the tied English gloss comes from French, the earlier language.
	assert.Equal(t, "pomme", res.Results[domain.LanguageFrench])
	assert.Equal(t, "manzana", res.Results[domain.LanguageSpanish])
	assert.Equal(t, "apple", res.Results[domain.LanguageEnglish])
}

func TestResolveHonorsSourceHint(t *testing.T) {
	t.Parallel()
	r := NewResolver(nil)

	// Without the hint "hola" would be detected as Spanish; the hint
	// forces English, where "hola" matches nothing.
	res := r.Resolve(testDicts(), "hola", "en")

	assert.Equal(t, domain.LanguageEnglish, res.Detected)
	assert.Equal(t, "hola", res.Results[domain.LanguageEnglish])
	assert.Equal(t, "", res.Results[domain.LanguageSpanish])
}

func TestResolveUnknownWordEchoes(t *testing.T) {
	t.Parallel()
	r := NewResolver(nil)

	res := r.Resolve(testDicts(), "xyzzy", "fr")

	require.Equal(t, domain.LanguageFrench, res.Detected)
	assert.Equal(t, "xyzzy", res.Results[domain.LanguageFrench])
	assert.Equal(t, "", res.Results[domain.LanguageEnglish])
	assert.Equal(t, "", res.Results[domain.LanguageSpanish])
	assert.Equal(t, "", res.Results[domain.LanguageBengali])
}

func TestResolveEmptyDictionaries(t *testing.T) {
	t.Parallel()
	r := NewResolver(nil)

	res := r.Resolve(Dictionaries{}, "pomme", domain.SourceAuto)

	assert.Equal(t, domain.LanguageEnglish, res.Detected, "no matches default to English")
	assert.Equal(t, "pomme", res.Results[domain.LanguageEnglish])
}
