package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/lang"
	"github.com/bhasha-shikkha/coach-api/internal/platform/logger"
)

// Corpus drill tuning. The due fetch is deliberately wide so that a
// drill built from random sentences still lands on scheduled words, and
// the attempt cap bounds the sentence lottery on corpora that rarely
// contain vocabulary words.
const (
	corpusDueFetchFloor     = 200
	corpusDueFetchPerTarget = 12
	corpusAttemptsPerTarget = 80
)

// BuildCorpusDrill assembles a cloze session from the sentence corpus:
// each question blanks a vocabulary word out of a real sentence. Words
// due for review are preferred when the sentence offers a choice.
// Returns an empty slice when the corpus or vocabulary is missing.
func (b *Builder) BuildCorpusDrill(ctx context.Context, language domain.Language, n int) ([]Question, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)

	if _, err := domain.ParseDictionaryLanguage(string(language)); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultQuestions
	}

	snap := b.content.Get()
	corpus := snap.Corpus(language)
	if len(corpus) == 0 {
		return nil, nil
	}
	entries, variantIndex := lang.BuildVariantIndex(snap.Dictionary(language))
	if len(entries) == 0 {
		return nil, nil
	}

	stop := stopwords[language]

	dueFetch := corpusDueFetchPerTarget * n
	if dueFetch < corpusDueFetchFloor {
		dueFetch = corpusDueFetchFloor
	}
	due, err := b.progress.ListDue(ctx, language, b.now(), dueFetch)
	if err != nil {
		return nil, fmt.Errorf("failed to list due words: %w", err)
	}
	dueSet := make(map[string]bool, len(due))
	for _, r := range due {
		dueSet[r.Word] = true
	}

	wrongPool := uniqueWords(entries)
	ttsLang := language.LangTag()

	b.mu.Lock()
	defer b.mu.Unlock()

	used := make(map[string]bool)
	var questions []Question
	maxAttempts := corpusAttemptsPerTarget * n

	for attempts := 0; len(questions) < n && attempts < maxAttempts; attempts++ {
		s := corpus[b.rng.Intn(len(corpus))]
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}

		candidates := sentenceCandidates(text, variantIndex, stop)
		if len(dueSet) > 0 {
			var dueCandidates []domain.CategorizedEntry
			for _, e := range candidates {
				if dueSet[e.Word] {
					dueCandidates = append(dueCandidates, e)
				}
			}
			if len(dueCandidates) > 0 {
				candidates = dueCandidates
			}
		}
		if len(candidates) == 0 {
			continue
		}

		// Prefer not to repeat words in the same session if possible.
		var fresh []domain.CategorizedEntry
		for _, e := range candidates {
			if !used[e.Word] {
				fresh = append(fresh, e)
			}
		}
		pickFrom := fresh
		if len(pickFrom) == 0 {
			pickFrom = candidates
		}
		entry := pickFrom[b.rng.Intn(len(pickFrom))]

		blanked := lang.BlankFirstToken(text, entry.Word)
		if blanked == "" {
			continue
		}

		hint := "Hint:"
		if entry.English != "" {
			hint = "Hint: " + entry.English
		}
		if entry.Bengali != "" {
			hint += " • বাংলা: " + entry.Bengali
		}

		var wrong []string
		for _, w := range wrongPool {
			if w != entry.Word {
				wrong = append(wrong, w)
			}
		}
		b.rng.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })
		if len(wrong) > 3 {
			wrong = wrong[:3]
		}
		if len(wrong) == 0 {
			continue
		}

		questions = append(questions, Question{
			ID:        len(questions) + 1,
			Kind:      KindMCQ,
			Mode:      ModeCorpusCloze,
			ModeLabel: "📚 Corpus",
			PromptEN:  "Fill in the blank: " + blanked,
			PromptBN:  hint,
			TTSText:   text,
			TTSLang:   ttsLang,
			Choices:   b.shuffledChoices(entry.Word, wrong),
			Answer:    entry.Word,
			Word:      entry.Word,
			XPCorrect: xpClozeCorrect,
			XPWrong:   xpClozeWrong,
		})
		used[entry.Word] = true
	}

	log.Debug("built corpus drill",
		slog.String("language", string(language)),
		slog.Int("questions", len(questions)))
	return questions, nil
}

// sentenceCandidates resolves each content token of the sentence against
// the variant index, skipping stopwords and multi-word vocabulary
// entries. Each vocabulary word appears at most once.
func sentenceCandidates(
	text string,
	variantIndex lang.VariantIndex,
	stop map[string]bool,
) []domain.CategorizedEntry {
	var candidates []domain.CategorizedEntry
	seen := make(map[string]bool)
	for _, tok := range lang.TokenRe.FindAllString(text, -1) {
		norm := lang.Normalize(tok)
		if norm == "" || stop[norm] {
			continue
		}
		entry, ok := variantIndex[norm]
		if !ok {
			continue
		}
		if entry.Word == "" || seen[entry.Word] || strings.Contains(entry.Word, " ") {
			continue
		}
		seen[entry.Word] = true
		candidates = append(candidates, entry)
	}
	return candidates
}

// uniqueWords returns the distinct words of the entries, keeping first
// occurrence order.
func uniqueWords(entries []domain.CategorizedEntry) []string {
	seen := make(map[string]bool, len(entries))
	var out []string
	for _, e := range entries {
		if e.Word == "" || seen[e.Word] {
			continue
		}
		seen[e.Word] = true
		out = append(out, e.Word)
	}
	return out
}
