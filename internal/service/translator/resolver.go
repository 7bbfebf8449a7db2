// Package translator resolves free-text queries into per-language
// translations, first against the local dictionaries and then, depending
// on policy, through a remote provider.
package translator

import (
	"log/slog"
	"strings"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/lang"
)

// Dictionaries holds the per-language vocabulary the resolver works
// against. Missing languages behave as empty dictionaries.
type Dictionaries map[domain.Language]*domain.Dictionary

// Resolution is the outcome of local resolution: the detected source
// language and, per output language, the resolved string ("" when the
// language could not be resolved locally).
type Resolution struct {
	Detected domain.Language
	Results  map[domain.Language]string
}

// Resolver detects the likely source language of a query and resolves it
// across languages by pivoting through the English gloss. The
// dictionaries are bilingual (target language <-> English), so any
// target-to-target resolution must route through the shared gloss.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a Resolver. If logger is nil, the default logger
// is used.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger.With(slog.String("component", "language_resolver"))}
}

// Resolve detects the source language of text (honoring sourceHint when
// it names a concrete language) and fills in every output language it
// can. A query with no dictionary match is not an error: the detected
// language echoes the raw input and the rest stay empty.
func (r *Resolver) Resolve(dicts Dictionaries, text, sourceHint string) Resolution {
	res := Resolution{Results: make(map[domain.Language]string, len(domain.Languages()))}
	for _, l := range domain.Languages() {
		res.Results[l] = ""
	}

	hasScript := lang.HasBengaliScript(text)
	var queryNorm, queryScript string
	if hasScript {
		queryScript = lang.NormalizeScript(text)
	} else {
		queryNorm = lang.Normalize(text)
	}

	// Word matches against each Latin-alphabet dictionary drive both
	// detection and, for a detected dictionary language, resolution.
	wordMatches := make(map[domain.Language]lang.Match, len(domain.DictionaryLanguages()))
	for _, l := range domain.DictionaryLanguages() {
		wordMatches[l] = lang.MatchByWord(dicts[l], queryNorm)
	}

	res.Detected = r.detect(sourceHint, hasScript, wordMatches)

	switch {
	case res.Detected == domain.LanguageBengali:
		r.resolveFromScript(dicts, &res, text, queryScript)
	case res.Detected == domain.LanguageEnglish:
		r.resolveFromEnglish(dicts, &res, text, queryNorm)
	default:
		r.resolveFromDictionaryLanguage(dicts, &res, text, wordMatches[res.Detected])
	}
	return res
}

// detect applies the detection policy: explicit hint first, then script
// detection, then high-confidence word matches, defaulting to English.
func (r *Resolver) detect(
	sourceHint string,
	hasScript bool,
	wordMatches map[domain.Language]lang.Match,
) domain.Language {
	hint := strings.ToLower(strings.TrimSpace(sourceHint))
	if hint != "" && hint != domain.SourceAuto {
		if l, err := domain.ParseLanguage(hint); err == nil {
			return l
		}
	}

	if hasScript {
		return domain.LanguageBengali
	}

	fr := wordMatches[domain.LanguageFrench].Score
	es := wordMatches[domain.LanguageSpanish].Score
	switch {
	case fr >= lang.HighConfidence && fr > es:
		return domain.LanguageFrench
	case es >= lang.HighConfidence && es > fr:
		return domain.LanguageSpanish
	default:
		return domain.LanguageEnglish
	}
}

// resolveFromDictionaryLanguage fills results when the detected language
// has its own dictionary. Any positive match resolves the word; the
// entry's gloss and script fields come along verbatim, and every other
// dictionary language is pivoted through the entry's primary gloss.
func (r *Resolver) resolveFromDictionaryLanguage(
	dicts Dictionaries,
	res *Resolution,
	text string,
	match lang.Match,
) {
	detected := res.Detected
	if !match.Found() {
		// Graceful degradation: echo the raw input for the detected
		// language and leave the rest empty.
		res.Results[detected] = text
		return
	}

	res.Results[detected] = strings.TrimSpace(match.Entry.Word)
	res.Results[domain.LanguageEnglish] = strings.TrimSpace(match.Entry.English)
	res.Results[domain.LanguageBengali] = strings.TrimSpace(match.Entry.Bengali)

	pivot := lang.Normalize(lang.PrimaryGloss(match.Entry.English))
	if pivot == "" {
		return
	}
	for _, other := range domain.DictionaryLanguages() {
		if other == detected {
			continue
		}
		if m := lang.MatchByGloss(dicts[other], pivot); m.Found() {
			res.Results[other] = strings.TrimSpace(m.Entry.Word)
		}
	}
}

// resolveFromEnglish fills results when the query is (or defaults to)
// English. Only high-confidence gloss matches populate the dictionary
// languages, and the script field propagates only from the strongest of
// those matches so a weak secondary match cannot attach its gloss.
func (r *Resolver) resolveFromEnglish(
	dicts Dictionaries,
	res *Resolution,
	text, queryNorm string,
) {
	res.Results[domain.LanguageEnglish] = text

	bestScriptScore := 0
	for _, l := range domain.DictionaryLanguages() {
		m := lang.MatchByGloss(dicts[l], queryNorm)
		if !m.Found() || m.Score < lang.HighConfidence {
			continue
		}
		res.Results[l] = strings.TrimSpace(m.Entry.Word)
		if script := strings.TrimSpace(m.Entry.Bengali); script != "" && m.Score > bestScriptScore {
			res.Results[domain.LanguageBengali] = script
			bestScriptScore = m.Score
		}
	}
}

// resolveFromScript fills results for a Bengali-script query: match the
// script field of each dictionary, take the stronger match for the
// English gloss, fill each dictionary language from its own script
// match, then pivot through the gloss for any still-empty language.
func (r *Resolver) resolveFromScript(
	dicts Dictionaries,
	res *Resolution,
	text, queryScript string,
) {
	res.Results[domain.LanguageBengali] = text

	var best lang.Match
	for _, l := range domain.DictionaryLanguages() {
		m := lang.MatchByScript(dicts[l], queryScript)
		// Strictly greater, so the earlier language keeps ties.
		if m.Found() && m.Score > best.Score {
			best = m
		}
		if m.Found() {
			res.Results[l] = strings.TrimSpace(m.Entry.Word)
		}
	}

	if best.Found() {
		res.Results[domain.LanguageEnglish] = strings.TrimSpace(best.Entry.English)
	}

	pivot := lang.Normalize(lang.PrimaryGloss(res.Results[domain.LanguageEnglish]))
	if pivot == "" {
		return
	}
	for _, l := range domain.DictionaryLanguages() {
		if res.Results[l] != "" {
			continue
		}
		if m := lang.MatchByGloss(dicts[l], pivot); m.Found() {
			res.Results[l] = strings.TrimSpace(m.Entry.Word)
		}
	}
}
