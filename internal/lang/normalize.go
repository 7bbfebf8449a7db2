// Package lang implements the text canonicalization and fuzzy matching
// that dictionary lookups are built on: accent-insensitive normalization,
// gender-variant expansion, a surface-form index, and tiered scoring
// against word, gloss, and Bengali-script fields.
package lang

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// stripAccents decomposes and removes combining marks so that
	// "élève" and "eleve" compare equal.
	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	nonAlnumRe     = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	genderSuffixRe = regexp.MustCompile(`(?i)^(.+?)([oa])/([oa])$`)

	// TokenRe matches word tokens in Latin-script sentences, keeping
	// internal apostrophes ("l'école" yields "l'école" as one token).
	TokenRe = regexp.MustCompile(`[A-Za-zÀ-ÿ]+(?:'[A-Za-zÀ-ÿ]+)?`)
)

// Normalize canonicalizes text for matching: lowercase, accents stripped,
// apostrophes treated as separators, every run of other punctuation
// collapsed to a single space. Empty input yields empty output.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return ""
	}
	s, _, _ = transform.String(stripAccents, s)
	s = strings.ReplaceAll(s, "'", " ")
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeScript performs the lighter normalization used for scripts
// where stripping combining marks would corrupt the text (Bengali vowel
// signs are combining marks): canonical composition plus whitespace
// collapse only.
func NormalizeScript(text string) string {
	s := norm.NFC.String(strings.TrimSpace(text))
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// HasBengaliScript reports whether any rune falls in the Bengali Unicode
// block. Used to route queries to NormalizeScript instead of Normalize.
func HasBengaliScript(text string) bool {
	for _, r := range text {
		if r >= 0x0980 && r <= 0x09FF {
			return true
		}
	}
	return false
}

// WordMatchVariants returns the sorted set of normalized surface forms a
// word can be looked up under. Besides the whole word, a gender pattern
// like "argentino/a" expands to both completions ("argentino" and
// "argentina").
func WordMatchVariants(word string) []string {
	w := strings.TrimSpace(word)
	if w == "" {
		return nil
	}

	raw := []string{w}
	if m := genderSuffixRe.FindStringSubmatch(w); m != nil {
		raw = append(raw, m[1]+m[2], m[1]+m[3])
	}

	seen := make(map[string]bool, len(raw))
	var variants []string
	for _, v := range raw {
		n := Normalize(v)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		variants = append(variants, n)
	}
	sort.Strings(variants)
	return variants
}

// glossDelimRe splits a gloss field like "hello / good morning" into its
// synonym parts.
var glossDelimRe = regexp.MustCompile(`\s*(?:/|;|,|\||·|•)\s*`)

// SplitGlosses breaks a delimiter-separated gloss field into trimmed,
// non-empty parts.
func SplitGlosses(english string) []string {
	s := strings.TrimSpace(english)
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range glossDelimRe.Split(s, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PrimaryGloss picks the single leading gloss, the one used as the pivot
// key for cross-language resolution.
func PrimaryGloss(english string) string {
	parts := SplitGlosses(english)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// BlankFirstToken replaces the first token of the sentence whose
// normalized form matches any variant of word with "____", producing a
// cloze prompt. Returns "" when no token matches.
func BlankFirstToken(sentence, word string) string {
	if sentence == "" || word == "" {
		return ""
	}
	variants := WordMatchVariants(word)
	if len(variants) == 0 {
		return ""
	}
	set := make(map[string]bool, len(variants))
	for _, v := range variants {
		set[v] = true
	}

	loc := TokenRe.FindAllStringIndex(sentence, -1)
	for _, m := range loc {
		if set[Normalize(sentence[m[0]:m[1]])] {
			return sentence[:m[0]] + "____" + sentence[m[1]:]
		}
	}
	return ""
}
