package review

import (
	"context"
	"errors"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
)

// Mode selects how review words are picked.
type Mode string

const (
	// ModeDue picks words whose spaced repetition schedule has come due.
	ModeDue Mode = "due"
	// ModeWeak picks words the learner keeps getting wrong.
	ModeWeak Mode = "weak"
	// ModeRandom picks a random vocabulary sample.
	ModeRandom Mode = "random"
)

// ParseMode normalizes a raw mode string, defaulting to ModeDue.
func ParseMode(raw string) Mode {
	switch Mode(raw) {
	case ModeWeak:
		return ModeWeak
	case ModeRandom:
		return ModeRandom
	default:
		return ModeDue
	}
}

// MaxAnswerXP caps the XP a single answer may claim. Clients report
// their own XP per action, so the cap keeps inflated values out of the
// activity log.
const MaxAnswerXP = 50

// Answer is a learner's reported result for one word.
type Answer struct {
	Word    string
	Correct bool
	XP      int
}

// Common error types for the review service.
var (
	// ErrEmptyWord indicates an answer without a word.
	ErrEmptyWord = errors.New("answer word cannot be empty")
)

// Service records answers and selects words for review sessions.
type Service interface {
	// SubmitAnswer applies one answer to the word's spaced repetition
	// state and logs the activity for today. Words never seen before
	// start in box 1. Returns the updated progress record.
	SubmitAnswer(ctx context.Context, language domain.Language, answer Answer) (*domain.WordProgress, error)

	// SelectWords picks up to limit vocabulary entries for a review
	// session. Due and weak modes fall back to a random sample when the
	// learner has no qualifying history, so new learners always get a
	// session.
	SelectWords(ctx context.Context, language domain.Language, mode Mode, limit int) ([]domain.CategorizedEntry, error)

	// ActivitySummary reports today's XP and reviews plus the current
	// daily streak.
	ActivitySummary(ctx context.Context) (*domain.ActivitySummary, error)
}
