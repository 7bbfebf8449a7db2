// Package leitner implements the box-based spaced repetition model used
// to schedule vocabulary reviews. The scheduler is a pure state machine
// over domain.WordProgress; persistence belongs to the caller.
package leitner

import (
	"errors"
	"time"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
)

// Common errors.
var (
	ErrNilProgress = errors.New("word progress cannot be nil")
)

// Service defines the scheduling operations.
type Service interface {
	// NextReview computes the progress state after one answer event.
	// It returns a new record and never mutates the input.
	NextReview(p *domain.WordProgress, correct bool, now time.Time) (*domain.WordProgress, error)
}

type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduler with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduler with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

func (s *defaultService) NextReview(
	p *domain.WordProgress,
	correct bool,
	now time.Time,
) (*domain.WordProgress, error) {
	if p == nil {
		return nil, ErrNilProgress
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	next := advance(p, correct, now, s.params)
	return next, nil
}

// advance applies one Leitner transition. A correct answer promotes the
// word one box (capped at MaxBox) and schedules it after the new box's
// interval; a wrong answer demotes it all the way back to box 1 and
// retries after a short delay. Full demotion is deliberate: the due
// queue ranks low boxes first, so a lapsed word jumps the queue.
func advance(
	p *domain.WordProgress,
	correct bool,
	now time.Time,
	params *Params,
) *domain.WordProgress {
	next := &domain.WordProgress{
		Language:  p.Language,
		Word:      p.Word,
		Box:       p.Box,
		Correct:   p.Correct,
		Incorrect: p.Incorrect,
	}

	var due time.Time
	if correct {
		next.Box = p.Box + 1
		if next.Box > MaxBox {
			next.Box = MaxBox
		}
		next.Correct++
		due = now.AddDate(0, 0, params.BoxIntervals[next.Box])
	} else {
		next.Box = MinBox
		next.Incorrect++
		due = now.Add(params.FailRetry)
	}

	reviewed := now
	next.NextDue = &due
	next.LastReview = &reviewed
	return next
}
