package domain

import (
	"errors"
	"time"
)

// Review outcome validation errors.
var (
	ErrEmptyProgressWord     = errors.New("word progress word cannot be empty")
	ErrEmptyProgressLanguage = errors.New("word progress language cannot be empty")
	ErrInvalidBox            = errors.New("box must be between 1 and 5")
)

// WordProgress tracks a learner's spaced repetition state for one
// (language, word) pair. The external store owns persistence; this type
// only carries state between the store and the scheduler.
type WordProgress struct {
	Language  Language   `json:"language"`
	Word      string     `json:"word"`
	Box       int        `json:"box"`
	Correct   int        `json:"correct"`
	Incorrect int        `json:"incorrect"`
	// NextDue is nil for words that have never been scheduled, which the
	// due queue treats as "due now".
	NextDue    *time.Time `json:"next_due,omitempty"`
	LastReview *time.Time `json:"last_review,omitempty"`
}

// NewWordProgress creates the initial progress record for a word. New
// words start in box 1 and are immediately due.
func NewWordProgress(language Language, word string) (*WordProgress, error) {
	p := &WordProgress{
		Language: language,
		Word:     word,
		Box:      1,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the invariants of a progress record.
func (p *WordProgress) Validate() error {
	if p.Language == "" {
		return ErrEmptyProgressLanguage
	}
	if p.Word == "" {
		return ErrEmptyProgressWord
	}
	if p.Box < 1 || p.Box > 5 {
		return ErrInvalidBox
	}
	return nil
}

// Attempts returns the total number of recorded answers.
func (p *WordProgress) Attempts() int {
	return p.Correct + p.Incorrect
}

// WeakScore rates how much a word needs attention based on its mistake
// history. Positive scores mark weak words; words with at most one
// attempt are first-exposure noise and score zero.
func (p *WordProgress) WeakScore() int {
	if p.Attempts() <= 1 {
		return 0
	}
	return 2*p.Incorrect - p.Correct
}

// CompareDue orders two progress records the way the due queue does:
// never-scheduled words first, then earliest due date, then lower box,
// then higher mistake count. Returns a negative value when a sorts
// before b. The SQL due query must produce the same order.
func CompareDue(a, b *WordProgress) int {
	switch {
	case a.NextDue == nil && b.NextDue != nil:
		return -1
	case a.NextDue != nil && b.NextDue == nil:
		return 1
	case a.NextDue != nil && b.NextDue != nil:
		if a.NextDue.Before(*b.NextDue) {
			return -1
		}
		if b.NextDue.Before(*a.NextDue) {
			return 1
		}
	}
	if a.Box != b.Box {
		return a.Box - b.Box
	}
	return b.Incorrect - a.Incorrect
}

// DailyActivity aggregates a learner's activity for one calendar date.
type DailyActivity struct {
	Date    string `json:"date"` // ISO date, e.g. "2025-04-01"
	XP      int    `json:"xp"`
	Reviews int    `json:"reviews"`
	Correct int    `json:"correct"`
	Wrong   int    `json:"wrong"`
}

// ActivitySummary is the derived view of recent activity.
type ActivitySummary struct {
	XPToday      int `json:"xp_today"`
	ReviewsToday int `json:"reviews_today"`
	StreakDays   int `json:"streak_days"`
}

// Streak counts consecutive active days ending today. activeDates holds
// ISO dates that earned XP; today anchors the count so a gap yesterday
// breaks the streak even if older days were active.
func Streak(activeDates map[string]bool, today time.Time) int {
	streak := 0
	cursor := today
	for activeDates[cursor.Format(DateLayout)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// DateLayout is the ISO calendar-date layout used for activity keys.
const DateLayout = "2006-01-02"
