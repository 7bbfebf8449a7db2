package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/bhasha-shikkha/coach-api/internal/content"
	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/domain/leitner"
	"github.com/bhasha-shikkha/coach-api/internal/platform/logger"
	"github.com/bhasha-shikkha/coach-api/internal/store"
)

// streakWindow bounds how many recent active dates feed the streak
// calculation. Sixty days is plenty for consecutive-day counting.
const streakWindow = 60

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	progress  store.WordProgressStore
	activity  store.ActivityStore
	scheduler leitner.Service
	content   *content.Service
	logger    *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option customizes a review service.
type Option func(*serviceImpl)

// WithRand replaces the random source, letting tests fix the shuffle order.
func WithRand(rng *rand.Rand) Option {
	return func(s *serviceImpl) { s.rng = rng }
}

// WithNow replaces the clock, letting tests fix the current time.
func WithNow(now func() time.Time) Option {
	return func(s *serviceImpl) { s.now = now }
}

// NewService creates a new review Service implementation.
func NewService(
	progress store.WordProgressStore,
	activity store.ActivityStore,
	scheduler leitner.Service,
	contentSvc *content.Service,
	log *slog.Logger,
	opts ...Option,
) Service {
	// Validate inputs
	if progress == nil {
		panic("progress store cannot be nil")
	}
	if activity == nil {
		panic("activity store cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if contentSvc == nil {
		panic("content service cannot be nil")
	}

	// Use provided logger or create default
	if log == nil {
		log = slog.Default()
	}

	s := &serviceImpl{
		progress:  progress,
		activity:  activity,
		scheduler: scheduler,
		content:   contentSvc,
		logger:    log.With(slog.String("component", "review_service")),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitAnswer implements Service.SubmitAnswer.
func (s *serviceImpl) SubmitAnswer(
	ctx context.Context,
	language domain.Language,
	answer Answer,
) (*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := domain.ParseDictionaryLanguage(string(language)); err != nil {
		return nil, err
	}
	if answer.Word == "" {
		return nil, ErrEmptyWord
	}

	xp := answer.XP
	if xp < 0 {
		xp = 0
	}
	if xp > MaxAnswerXP {
		xp = MaxAnswerXP
	}

	current, err := s.progress.Get(ctx, language, answer.Word)
	if err != nil {
		if !errors.Is(err, store.ErrProgressNotFound) {
			log.Error("failed to load word progress",
				slog.String("error", err.Error()),
				slog.String("language", string(language)),
				slog.String("word", answer.Word))
			return nil, fmt.Errorf("failed to load word progress: %w", err)
		}
		current, err = domain.NewWordProgress(language, answer.Word)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	next, err := s.scheduler.NextReview(current, answer.Correct, now)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule next review: %w", err)
	}

	if err := s.progress.Record(ctx, next, answer.Correct); err != nil {
		log.Error("failed to record word progress",
			slog.String("error", err.Error()),
			slog.String("language", string(language)),
			slog.String("word", answer.Word))
		return nil, fmt.Errorf("failed to record word progress: %w", err)
	}

	correctDelta, wrongDelta := 0, 1
	if answer.Correct {
		correctDelta, wrongDelta = 1, 0
	}
	date := now.Format(domain.DateLayout)
	if err := s.activity.Add(ctx, date, xp, 1, correctDelta, wrongDelta); err != nil {
		// The answer is already recorded; a lost activity row should not
		// fail the whole request.
		log.Warn("failed to log daily activity",
			slog.String("error", err.Error()),
			slog.String("date", date))
	}

	log.Debug("recorded answer",
		slog.String("language", string(language)),
		slog.String("word", answer.Word),
		slog.Bool("correct", answer.Correct),
		slog.Int("box", next.Box))
	return next, nil
}

// SelectWords implements Service.SelectWords.
func (s *serviceImpl) SelectWords(
	ctx context.Context,
	language domain.Language,
	mode Mode,
	limit int,
) ([]domain.CategorizedEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := domain.ParseDictionaryLanguage(string(language)); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	lookup := buildLookup(s.content.Get().Dictionary(language))

	var selected []domain.CategorizedEntry
	var err error
	switch mode {
	case ModeDue:
		selected, err = s.selectDue(ctx, language, limit, lookup)
	case ModeWeak:
		selected, err = s.selectWeak(ctx, language, limit, lookup)
	}
	if err != nil {
		return nil, err
	}

	if len(selected) == 0 {
		// Fallback: random sample (good for new learners without history)
		selected = s.randomSample(lookup, limit)
	}

	log.Debug("selected review words",
		slog.String("language", string(language)),
		slog.String("mode", string(mode)),
		slog.Int("count", len(selected)))
	return selected, nil
}

func (s *serviceImpl) selectDue(
	ctx context.Context,
	language domain.Language,
	limit int,
	lookup map[string]domain.CategorizedEntry,
) ([]domain.CategorizedEntry, error) {
	records, err := s.progress.ListDue(ctx, language, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due words: %w", err)
	}

	var selected []domain.CategorizedEntry
	for _, r := range records {
		if entry, ok := lookup[r.Word]; ok {
			selected = append(selected, entry)
		}
	}
	return selected, nil
}

func (s *serviceImpl) selectWeak(
	ctx context.Context,
	language domain.Language,
	limit int,
	lookup map[string]domain.CategorizedEntry,
) ([]domain.CategorizedEntry, error) {
	records, err := s.progress.ListByLanguage(ctx, language)
	if err != nil {
		return nil, fmt.Errorf("failed to list word progress: %w", err)
	}

	var scored []domain.WordProgress
	for _, r := range records {
		if r.WeakScore() > 0 {
			scored = append(scored, r)
		}
	}
	// Worst words first. Ties break toward more mistakes, then more
	// attempts, so well-practiced trouble words outrank fresh ones.
	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.WeakScore() != b.WeakScore() {
			return a.WeakScore() > b.WeakScore()
		}
		if a.Incorrect != b.Incorrect {
			return a.Incorrect > b.Incorrect
		}
		if a.Attempts() != b.Attempts() {
			return a.Attempts() > b.Attempts()
		}
		return a.Word > b.Word
	})

	// Truncate before the dictionary lookup, so progress rows for words
	// no longer in the vocabulary shrink the list instead of pulling in
	// lower-ranked replacements.
	if len(scored) > limit {
		scored = scored[:limit]
	}

	var selected []domain.CategorizedEntry
	for _, r := range scored {
		if entry, ok := lookup[r.Word]; ok {
			selected = append(selected, entry)
		}
	}
	return selected, nil
}

func (s *serviceImpl) randomSample(
	lookup map[string]domain.CategorizedEntry,
	limit int,
) []domain.CategorizedEntry {
	entries := make([]domain.CategorizedEntry, 0, len(lookup))
	for _, e := range lookup {
		entries = append(entries, e)
	}
	// Map order is random; sort before shuffling so a seeded source
	// produces a repeatable sample.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Word < entries[j].Word })

	s.mu.Lock()
	s.rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
	s.mu.Unlock()

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// ActivitySummary implements Service.ActivitySummary.
func (s *serviceImpl) ActivitySummary(ctx context.Context) (*domain.ActivitySummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now()
	today := now.Format(domain.DateLayout)

	activity, err := s.activity.Today(ctx, today)
	if err != nil {
		log.Error("failed to load today's activity", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load today's activity: %w", err)
	}

	dates, err := s.activity.ActiveDates(ctx, streakWindow)
	if err != nil {
		log.Error("failed to load active dates", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load active dates: %w", err)
	}

	active := make(map[string]bool, len(dates))
	for _, d := range dates {
		active[d] = true
	}

	return &domain.ActivitySummary{
		XPToday:      activity.XP,
		ReviewsToday: activity.Reviews,
		StreakDays:   domain.Streak(active, now),
	}, nil
}

// buildLookup indexes vocabulary entries by their verbatim word. When
// a word appears in several categories, the entry carrying a
// pronunciation or example wins so review cards stay informative.
func buildLookup(dict *domain.Dictionary) map[string]domain.CategorizedEntry {
	lookup := make(map[string]domain.CategorizedEntry)
	if dict == nil {
		return lookup
	}
	for _, entry := range dict.Flatten() {
		if entry.Word == "" {
			continue
		}
		existing, ok := lookup[entry.Word]
		if !ok {
			lookup[entry.Word] = entry
			continue
		}
		if (existing.Pronunciation == "" && entry.Pronunciation != "") ||
			(existing.Example == "" && entry.Example != "") {
			lookup[entry.Word] = entry
		}
	}
	return lookup
}
