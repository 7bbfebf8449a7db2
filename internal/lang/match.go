package lang

import (
	"strings"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
)

// Match score tiers. Exact matches must dominate; prefix beats bare
// substring because a prefix query is likely a truncation or inflection
// root rather than a coincidental fragment. These values are tuned
// constants; changing them changes which translations count as confident
// enough to show.
const (
	ScoreExact     = 100
	ScorePrefix    = 80
	ScoreSubstring = 60

	// Single-token gloss tiers. The token tier (55) sits below prefix
	// and prefix-of-gloss so that e.g. "glass" does not claim the entry
	// glossed "wine glass" at high confidence.
	GlossScoreExact      = 100
	GlossScoreFirstToken = 88
	GlossScorePrefix     = 60
	GlossScoreToken      = 55
	GlossScoreSubstring  = 45

	// Multi-token gloss tiers.
	GlossScoreMultiPrefix    = 85
	GlossScoreMultiSubstring = 70

	// Script-field tiers.
	ScriptScoreExact     = 100
	ScriptScoreSubstring = 80

	// HighConfidence gates cross-language pivoting: an English-gloss
	// match below this is too weak to propagate into other languages.
	HighConfidence = 90
)

// Match is one scored dictionary hit.
type Match struct {
	Entry domain.CategorizedEntry
	Score int
}

// Found reports whether the match carries an entry.
func (m Match) Found() bool {
	return m.Score > 0
}

// MatchByWord scores the normalized query against each entry's
// normalized word: exact 100, prefix 80, substring 60. The first
// best-scoring entry wins; iteration stops early on a perfect score,
// which cannot change the tie-break because later equal scores never
// displace the current best.
func MatchByWord(dict *domain.Dictionary, queryNorm string) Match {
	var best Match
	if queryNorm == "" || dict == nil {
		return best
	}

	for _, cat := range dict.Categories {
		for _, e := range cat.Entries {
			wordNorm := Normalize(e.Word)
			if wordNorm == "" {
				continue
			}

			var score int
			switch {
			case queryNorm == wordNorm:
				score = ScoreExact
			case strings.HasPrefix(wordNorm, queryNorm):
				score = ScorePrefix
			case strings.Contains(wordNorm, queryNorm):
				score = ScoreSubstring
			}

			if score > best.Score {
				best = Match{Entry: domain.CategorizedEntry{Entry: e, Category: cat.ID}, Score: score}
				if best.Score >= ScoreExact {
					return best
				}
			}
		}
	}
	return best
}

// MatchByGloss scores the normalized query against every gloss of every
// entry. Within an entry the best gloss score counts; across entries the
// first best-scoring entry wins.
func MatchByGloss(dict *domain.Dictionary, queryNorm string) Match {
	var best Match
	if queryNorm == "" || dict == nil {
		return best
	}

	queryTokens := strings.Fields(queryNorm)
	single := len(queryTokens) == 1

	for _, cat := range dict.Categories {
		for _, e := range cat.Entries {
			score := glossScore(e.English, queryNorm, single)
			if score > best.Score {
				best = Match{Entry: domain.CategorizedEntry{Entry: e, Category: cat.ID}, Score: score}
			}
		}
	}
	return best
}

// glossScore returns the maximum tier the query reaches across the
// entry's glosses.
func glossScore(english, queryNorm string, single bool) int {
	score := 0
	for _, g := range SplitGlosses(english) {
		glossNorm := Normalize(g)
		if glossNorm == "" {
			continue
		}

		if queryNorm == glossNorm {
			score = max(score, GlossScoreExact)
			continue
		}

		if single {
			glossTokens := strings.Fields(glossNorm)
			switch {
			case len(glossTokens) > 0 && glossTokens[0] == queryNorm:
				score = max(score, GlossScoreFirstToken)
			case containsToken(glossTokens, queryNorm):
				score = max(score, GlossScoreToken)
			case strings.HasPrefix(glossNorm, queryNorm):
				score = max(score, GlossScorePrefix)
			case strings.Contains(glossNorm, queryNorm):
				score = max(score, GlossScoreSubstring)
			}
			continue
		}

		switch {
		case strings.HasPrefix(glossNorm, queryNorm):
			score = max(score, GlossScoreMultiPrefix)
		case strings.Contains(glossNorm, queryNorm):
			score = max(score, GlossScoreMultiSubstring)
		}
	}
	return score
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

// MatchByScript scores a script-normalized query against each entry's
// Bengali field: exact 100, substring containment 80.
func MatchByScript(dict *domain.Dictionary, queryScript string) Match {
	var best Match
	if queryScript == "" || dict == nil {
		return best
	}

	for _, cat := range dict.Categories {
		for _, e := range cat.Entries {
			fieldNorm := NormalizeScript(e.Bengali)
			if fieldNorm == "" {
				continue
			}

			var score int
			switch {
			case queryScript == fieldNorm:
				score = ScriptScoreExact
			case strings.Contains(fieldNorm, queryScript):
				score = ScriptScoreSubstring
			}

			if score > best.Score {
				best = Match{Entry: domain.CategorizedEntry{Entry: e, Category: cat.ID}, Score: score}
			}
		}
	}
	return best
}
