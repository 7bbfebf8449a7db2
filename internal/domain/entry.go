package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is a single dictionary word. Entries are immutable once loaded;
// the in-memory dictionary for a language is their sole owner.
type Entry struct {
	// Word is the surface form in the target language (e.g. "pomme").
	Word string `json:"word"`
	// English holds one or more glosses separated by delimiters such as
	// "/" or "," (e.g. "hello / good morning").
	English string `json:"english"`
	// Bengali is the Bengali-script rendering of the word.
	Bengali string `json:"bengali,omitempty"`

	Pronunciation string `json:"pronunciation,omitempty"`
	Example       string `json:"example,omitempty"`
	ExampleEN     string `json:"example_en,omitempty"`
	ExampleBN     string `json:"example_bn,omitempty"`
}

// CategorizedEntry is an Entry annotated with the category it was declared
// under. Identity for dedup purposes is (Category, Word).
type CategorizedEntry struct {
	Entry
	Category string `json:"category"`
}

// Category is a named, ordered group of dictionary entries.
type Category struct {
	ID      string
	Entries []Entry
}

// Dictionary is the vocabulary of one language, grouped by category.
// Category order is the declaration order of the source data; it matters
// because matching and indexing break ties by first occurrence.
type Dictionary struct {
	Categories []Category
}

// UnmarshalJSON decodes a {"category": [entries...]} object while
// preserving the key order of the source document. A plain map would
// randomize category order and make index tie-breaking nondeterministic.
func (d *Dictionary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: dictionary must be a JSON object", ErrInvalidFormat)
	}

	d.Categories = d.Categories[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("%w: dictionary category key", ErrInvalidFormat)
		}

		var entries []Entry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("decoding category %q: %w", key, err)
		}
		d.Categories = append(d.Categories, Category{ID: key, Entries: entries})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the dictionary back into a category-keyed object in
// declaration order.
func (d Dictionary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range d.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.ID)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		entries, err := json.Marshal(cat.Entries)
		if err != nil {
			return nil, err
		}
		buf.Write(entries)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Empty reports whether the dictionary has no entries at all.
func (d *Dictionary) Empty() bool {
	if d == nil {
		return true
	}
	for _, cat := range d.Categories {
		if len(cat.Entries) > 0 {
			return false
		}
	}
	return true
}

// Flatten returns every entry annotated with its category, in declaration
// order.
func (d *Dictionary) Flatten() []CategorizedEntry {
	if d == nil {
		return nil
	}
	var out []CategorizedEntry
	for _, cat := range d.Categories {
		for _, e := range cat.Entries {
			out = append(out, CategorizedEntry{Entry: e, Category: cat.ID})
		}
	}
	return out
}

// Sentence is one corpus sentence with its provenance.
type Sentence struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}
