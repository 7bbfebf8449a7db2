package leitner

import "time"

// Box bounds for the Leitner model.
const (
	MinBox = 1
	MaxBox = 5
)

// Params defines the configurable parameters of the scheduler.
type Params struct {
	// BoxIntervals maps a box number to the number of days until the
	// next review after a correct answer lands the word in that box.
	BoxIntervals map[int]int

	// FailRetry is how soon a word comes back after a wrong answer.
	FailRetry time.Duration
}

// NewDefaultParams returns the standard scheduling parameters. The
// interval ladder (1, 2, 4, 7, 14 days) and the 6 hour retry are tuned
// constants; changing them changes every learner's review load.
func NewDefaultParams() *Params {
	return &Params{
		BoxIntervals: map[int]int{
			1: 1,
			2: 2,
			3: 4,
			4: 7,
			5: 14,
		},
		FailRetry: 6 * time.Hour,
	}
}
