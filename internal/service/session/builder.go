package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bhasha-shikkha/coach-api/internal/content"
	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/lang"
	"github.com/bhasha-shikkha/coach-api/internal/platform/logger"
	"github.com/bhasha-shikkha/coach-api/internal/store"
)

// Session size bounds, applied by the API layer.
const (
	MinQuestions     = 5
	MaxQuestions     = 25
	DefaultQuestions = 12
)

// contextSampleSize caps the random pass over the corpus when looking
// for a sentence containing the word. The exhaustive fallback only runs
// when the sample misses.
const contextSampleSize = 80

// ErrNoVocabulary indicates the language has no usable vocabulary
// entries, so no session can be built.
var ErrNoVocabulary = errors.New("no vocabulary available")

// sentencePunctRe strips sentence punctuation before tokenizing for
// the word-ordering exercise.
var sentencePunctRe = regexp.MustCompile(`[\\.,;:!?]`)

// Builder assembles practice sessions from vocabulary, review history
// and the sentence corpus.
type Builder struct {
	progress store.WordProgressStore
	content  *content.Service
	logger   *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRand replaces the random source, letting tests fix the question mix.
func WithRand(rng *rand.Rand) Option {
	return func(b *Builder) { b.rng = rng }
}

// WithNow replaces the clock, letting tests fix which words count as due.
func WithNow(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder creates a session Builder.
func NewBuilder(
	progress store.WordProgressStore,
	contentSvc *content.Service,
	log *slog.Logger,
	opts ...Option,
) *Builder {
	// Validate inputs
	if progress == nil {
		panic("progress store cannot be nil")
	}
	if contentSvc == nil {
		panic("content service cannot be nil")
	}

	// Use provided logger or create default
	if log == nil {
		log = slog.Default()
	}

	b := &Builder{
		progress: progress,
		content:  contentSvc,
		logger:   log.With(slog.String("component", "session_builder")),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildPractice assembles a mixed practice session of n questions for
// the language. Words due for review come first; random vocabulary
// fills the remainder, so new learners get a full session too.
func (b *Builder) BuildPractice(ctx context.Context, language domain.Language, n int) ([]Question, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)

	if _, err := domain.ParseDictionaryLanguage(string(language)); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultQuestions
	}

	snap := b.content.Get()
	vocabAll := usableEntries(snap.Dictionary(language))
	if len(vocabAll) == 0 {
		return nil, ErrNoVocabulary
	}
	corpus := snap.Corpus(language)

	selected, err := b.selectEntries(ctx, language, n, vocabAll)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	wrongPool := make([]domain.CategorizedEntry, len(vocabAll))
	copy(wrongPool, vocabAll)
	b.rng.Shuffle(len(wrongPool), func(i, j int) {
		wrongPool[i], wrongPool[j] = wrongPool[j], wrongPool[i]
	})

	questions := make([]Question, 0, len(selected))
	for idx, entry := range selected {
		q := b.buildQuestion(language, entry, wrongPool, corpus)
		q.ID = idx + 1
		questions = append(questions, q)
	}
	b.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	log.Debug("built practice session",
		slog.String("language", string(language)),
		slog.Int("questions", len(questions)))
	return questions, nil
}

// selectEntries prefers due words, then pads with a random sample of the
// remaining vocabulary up to n entries.
func (b *Builder) selectEntries(
	ctx context.Context,
	language domain.Language,
	n int,
	vocabAll []domain.CategorizedEntry,
) ([]domain.CategorizedEntry, error) {
	lookup := make(map[string]domain.CategorizedEntry, len(vocabAll))
	for _, e := range vocabAll {
		lookup[e.Word] = e
	}

	due, err := b.progress.ListDue(ctx, language, b.now(), n)
	if err != nil {
		return nil, fmt.Errorf("failed to list due words: %w", err)
	}

	var selected []domain.CategorizedEntry
	chosen := make(map[string]bool)
	for _, r := range due {
		if entry, ok := lookup[r.Word]; ok && !chosen[entry.Word] {
			selected = append(selected, entry)
			chosen[entry.Word] = true
		}
	}

	if len(selected) < n {
		var pool []domain.CategorizedEntry
		for _, e := range vocabAll {
			if !chosen[e.Word] {
				pool = append(pool, e)
			}
		}
		b.mu.Lock()
		b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		b.mu.Unlock()
		for _, e := range pool {
			if len(selected) >= n {
				break
			}
			if !chosen[e.Word] {
				selected = append(selected, e)
				chosen[e.Word] = true
			}
		}
	}

	if len(selected) > n {
		selected = selected[:n]
	}
	return selected, nil
}

// buildQuestion picks an exercise template for one entry and fills it
// in. Callers must hold b.mu.
func (b *Builder) buildQuestion(
	language domain.Language,
	entry domain.CategorizedEntry,
	wrongPool []domain.CategorizedEntry,
	corpus []domain.Sentence,
) Question {
	word := entry.Word
	english := entry.English
	bengali := entry.Bengali
	ttsLang := language.LangTag()

	modes := []string{ModeListenToEnglish, ModeWordToEnglish, ModeEnglishToWord, ModeTypeEnglishToWord}

	example := strings.TrimSpace(entry.Example)
	exampleEN := strings.TrimSpace(entry.ExampleEN)
	var orderTokens []string
	if example != "" && exampleEN != "" {
		tokens := strings.Fields(sentencePunctRe.ReplaceAllString(example, ""))
		if len(tokens) >= 3 && len(tokens) <= 10 {
			orderTokens = tokens
			modes = append(modes, ModeOrderSentence)
		}
	}

	var clozeSentence domain.Sentence
	var clozeBlanked string
	if len(corpus) > 0 && !strings.Contains(word, " ") && len([]rune(word)) >= 2 {
		if sent, blanked, ok := b.findContext(corpus, word); ok {
			clozeSentence, clozeBlanked = sent, blanked
			// Double weight: context questions are the most valuable
			// when a matching sentence exists.
			modes = append(modes, ModeContextCloze, ModeContextCloze)
		}
	}

	mode := modes[b.rng.Intn(len(modes))]
	wrong := b.sampleWrong(wrongPool, word, 3)

	switch mode {
	case ModeListenToEnglish:
		return Question{
			Kind:      KindMCQ,
			Mode:      ModeListenToEnglish,
			ModeLabel: "🔊 Listening",
			PromptEN:  "Listen and choose the correct meaning (English)",
			PromptBN:  "শুনে সঠিক অর্থ নির্বাচন করুন (ইংরেজি)",
			TTSText:   word,
			TTSLang:   ttsLang,
			Choices:   b.shuffledChoices(english, glosses(wrong)),
			Answer:    english,
			Word:      word,
			XPCorrect: xpChoiceCorrect,
			XPWrong:   xpChoiceWrong,
		}
	case ModeContextCloze:
		hint := "Hint: " + english
		if bengali != "" {
			hint += " • বাংলা: " + bengali
		}
		ttsText := clozeSentence.Text
		if ttsText == "" {
			ttsText = word
		}
		return Question{
			Kind:      KindMCQ,
			Mode:      ModeContextCloze,
			ModeLabel: "Context",
			PromptEN:  "Fill in the blank: " + clozeBlanked,
			PromptBN:  hint,
			TTSText:   ttsText,
			TTSLang:   ttsLang,
			Choices:   b.shuffledChoices(word, words(wrong)),
			Answer:    word,
			Word:      word,
			XPCorrect: xpClozeCorrect,
			XPWrong:   xpClozeWrong,
		}
	case ModeOrderSentence:
		shuffled := make([]string, len(orderTokens))
		copy(shuffled, orderTokens)
		b.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		promptBN := strings.TrimSpace(entry.ExampleBN)
		if promptBN == "" {
			promptBN = "শব্দগুলো সাজান"
		}
		return Question{
			Kind:      KindOrder,
			Mode:      ModeOrderSentence,
			ModeLabel: "🧩 Order the sentence",
			PromptEN:  exampleEN,
			PromptBN:  promptBN,
			Tokens:    shuffled,
			Answer:    strings.Join(orderTokens, " "),
			Word:      word,
			TTSText:   example,
			TTSLang:   ttsLang,
			XPCorrect: xpTypeCorrect,
			XPWrong:   xpTypeWrong,
		}
	case ModeEnglishToWord:
		return Question{
			Kind:      KindMCQ,
			Mode:      ModeEnglishToWord,
			ModeLabel: "✅ Choose",
			PromptEN:  fmt.Sprintf("How do you say “%s” in %s?", english, language.NativeName()),
			PromptBN:  fmt.Sprintf("“%s” %s ভাষায় কীভাবে বলে?", english, language.BengaliName()),
			Choices:   b.shuffledChoices(word, words(wrong)),
			Answer:    word,
			Word:      word,
			XPCorrect: xpChoiceCorrect,
			XPWrong:   xpChoiceWrong,
		}
	case ModeTypeEnglishToWord:
		return Question{
			Kind:      KindType,
			Mode:      ModeTypeEnglishToWord,
			ModeLabel: "⌨️ Type",
			PromptEN:  fmt.Sprintf("Type the %s word for: %s", language.Name(), english),
			PromptBN:  fmt.Sprintf("%s — লিখুন (%s শব্দ)", english, language.BengaliName()),
			HintBN:    bengali,
			Answer:    word,
			Word:      word,
			TTSText:   word,
			TTSLang:   ttsLang,
			XPCorrect: xpTypeCorrect,
			XPWrong:   xpTypeWrong,
		}
	default:
		return Question{
			Kind:      KindMCQ,
			Mode:      ModeWordToEnglish,
			ModeLabel: "✅ Choose",
			PromptEN:  fmt.Sprintf("What does “%s” mean in English?", word),
			PromptBN:  fmt.Sprintf("“%s” ইংরেজিতে কী?", word),
			TTSText:   word,
			TTSLang:   ttsLang,
			Choices:   b.shuffledChoices(english, glosses(wrong)),
			Answer:    english,
			Word:      word,
			XPCorrect: xpChoiceCorrect,
			XPWrong:   xpChoiceWrong,
		}
	}
}

// findContext hunts for a corpus sentence containing the word: a random
// sample first, then an exhaustive scan. Returns the sentence and its
// blanked form.
func (b *Builder) findContext(corpus []domain.Sentence, word string) (domain.Sentence, string, bool) {
	variants := lang.WordMatchVariants(word)
	if len(variants) == 0 {
		return domain.Sentence{}, "", false
	}

	sampleN := contextSampleSize
	if len(corpus) < sampleN {
		sampleN = len(corpus)
	}
	for _, i := range b.rng.Perm(len(corpus))[:sampleN] {
		if sent, blanked, ok := matchSentence(corpus[i], word, variants); ok {
			return sent, blanked, true
		}
	}
	for _, s := range corpus {
		if sent, blanked, ok := matchSentence(s, word, variants); ok {
			return sent, blanked, true
		}
	}
	return domain.Sentence{}, "", false
}

func matchSentence(s domain.Sentence, word string, variants []string) (domain.Sentence, string, bool) {
	text := strings.TrimSpace(s.Text)
	if text == "" {
		return domain.Sentence{}, "", false
	}
	padded := " " + lang.Normalize(text) + " "
	for _, v := range variants {
		if strings.Contains(padded, " "+v+" ") {
			if blanked := lang.BlankFirstToken(text, word); blanked != "" {
				return s, blanked, true
			}
			break
		}
	}
	return domain.Sentence{}, "", false
}

// sampleWrong picks up to n distractor entries whose word differs from
// the answer. Callers must hold b.mu.
func (b *Builder) sampleWrong(pool []domain.CategorizedEntry, word string, n int) []domain.CategorizedEntry {
	var others []domain.CategorizedEntry
	for _, e := range pool {
		if e.Word != word {
			others = append(others, e)
		}
	}
	if len(others) <= n {
		return others
	}
	picked := make([]domain.CategorizedEntry, 0, n)
	for _, i := range b.rng.Perm(len(others))[:n] {
		picked = append(picked, others[i])
	}
	return picked
}

// shuffledChoices prepends the answer to the distractors and shuffles.
// Callers must hold b.mu.
func (b *Builder) shuffledChoices(answer string, wrong []string) []string {
	choices := append([]string{answer}, wrong...)
	b.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// usableEntries flattens a dictionary down to the entries a question can
// be built from.
func usableEntries(dict *domain.Dictionary) []domain.CategorizedEntry {
	if dict == nil {
		return nil
	}
	var out []domain.CategorizedEntry
	for _, e := range dict.Flatten() {
		if e.Word != "" && e.English != "" {
			out = append(out, e)
		}
	}
	return out
}

func words(entries []domain.CategorizedEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Word)
	}
	return out
}

func glosses(entries []domain.CategorizedEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.English)
	}
	return out
}
