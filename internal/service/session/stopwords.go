package session

import "github.com/bhasha-shikkha/coach-api/internal/domain"

// stopwords holds normalized (lowercased, accents stripped) function
// words per language. The corpus drill skips these when hunting for a
// blankable token, otherwise half the cloze questions would ask for
// "le" or "de".
var stopwords = map[domain.Language]map[string]bool{
	domain.LanguageFrench: toSet(
		"a", "au", "aux", "avec", "ce", "ces", "cest", "dans", "de", "des", "du", "elle", "en", "et",
		"il", "ils", "je", "la", "le", "les", "leur", "leurs", "ma", "mais", "mes", "mon", "ne", "nous",
		"on", "ou", "par", "pas", "pour", "que", "qui", "sa", "se", "ses", "son", "ta", "te", "tes",
		"toi", "ton", "tu", "un", "une", "vous", "y",
	),
	domain.LanguageSpanish: toSet(
		"a", "al", "con", "como", "de", "del", "el", "ella", "ellas", "ellos", "en", "es", "esta", "esto",
		"la", "las", "lo", "los", "mas", "mi", "mis", "muy", "no", "nosotros", "o", "para", "pero", "por",
		"porque", "que", "se", "si", "sin", "su", "sus", "tu", "tus", "un", "una", "unos", "unas", "y",
		"yo",
	),
}

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
