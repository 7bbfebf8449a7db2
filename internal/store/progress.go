package store

import (
	"context"
	"time"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
)

// WordProgressStore persists per-(language, word) review state.
// Version: 1.0
type WordProgressStore interface {
	// Get retrieves the progress record for one word.
	// Returns ErrProgressNotFound if the word has never been answered.
	Get(ctx context.Context, language domain.Language, word string) (*domain.WordProgress, error)

	// Record upserts the record after a scheduler transition. The
	// counter deltas (exactly one of correct/incorrect advanced by one)
	// must be applied as atomic increments at the store level so that
	// concurrent answers for the same word never lose counts; box,
	// next_due and last_review are last-write-wins.
	Record(ctx context.Context, p *domain.WordProgress, correct bool) error

	// ListDue returns up to limit records that are due at now: next_due
	// unset or not after now, ordered by (next_due ascending with nulls
	// first, box ascending, incorrect descending). The ordering must
	// agree with domain.CompareDue.
	ListDue(ctx context.Context, language domain.Language, now time.Time, limit int) ([]domain.WordProgress, error)

	// ListByLanguage returns every progress record for a language, in
	// unspecified order.
	ListByLanguage(ctx context.Context, language domain.Language) ([]domain.WordProgress, error)
}

// ActivityStore persists daily activity counters.
// Version: 1.0
type ActivityStore interface {
	// Add increments the counters for the given calendar date,
	// creating the row when absent. Increments are atomic at the store
	// level.
	Add(ctx context.Context, date string, xp, reviews, correct, wrong int) error

	// Today returns the counters for the given date; a missing row
	// yields zeroes, not an error.
	Today(ctx context.Context, date string) (*domain.DailyActivity, error)

	// ActiveDates returns the most recent dates (up to limit) that
	// earned any XP, newest first. Used for streak derivation.
	ActiveDates(ctx context.Context, limit int) ([]string, error)
}
