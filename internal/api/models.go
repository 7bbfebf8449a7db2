package api

import (
	"fmt"
	"time"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/service/session"
	"github.com/bhasha-shikkha/coach-api/internal/service/translator"
)

// Common request/response structures

// TranslateRequest defines the payload for the translate endpoint.
type TranslateRequest struct {
	Text string `json:"text"   validate:"required,max=200"`
	// Source is a language hint; "auto" or empty asks the resolver to
	// detect the source language.
	Source string `json:"source" validate:"omitempty,oneof=auto en fr es bn"`
}

// TranslateResponse defines the translate endpoint response: one result
// per supported language, plus the detected source and any remote
// provider warnings.
type TranslateResponse struct {
	OK       bool                                  `json:"ok"`
	Query    string                                `json:"query"`
	Source   string                                `json:"source"`
	Provider string                                `json:"provider"`
	Warnings []string                              `json:"warnings"`
	Results  map[domain.Language]translator.Result `json:"results"`
}

// looseBool is a JSON boolean that clients may also send as the
// integers 0 and 1.
type looseBool bool

// UnmarshalJSON implements json.Unmarshaler for looseBool.
func (b *looseBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return fmt.Errorf("cannot unmarshal %s into a boolean", data)
	}
	return nil
}

// ProgressRequest defines the payload for recording one answered word.
type ProgressRequest struct {
	Language string    `json:"language" validate:"required"`
	Word     string    `json:"word"     validate:"required"`
	Correct  looseBool `json:"correct"`
	// XP is the client-reported award for this answer; the server
	// clamps it, so out-of-range values are accepted rather than
	// rejected.
	XP int `json:"xp"`
}

// ProgressResponse confirms a recorded answer with the updated
// scheduling state.
type ProgressResponse struct {
	OK        bool       `json:"ok"`
	Word      string     `json:"word"`
	Box       int        `json:"box"`
	Correct   int        `json:"correct"`
	Incorrect int        `json:"incorrect"`
	NextDue   *time.Time `json:"next_due,omitempty"`
}

// ReviewResponse defines the review words endpoint response.
type ReviewResponse struct {
	OK    bool                      `json:"ok"`
	Mode  string                    `json:"mode"`
	Words []domain.CategorizedEntry `json:"words"`
}

// PracticeResponse defines the practice session endpoint response.
type PracticeResponse struct {
	OK        bool               `json:"ok"`
	Questions []session.Question `json:"questions"`
}

// ActivityResponse defines the activity summary endpoint response.
type ActivityResponse struct {
	OK           bool `json:"ok"`
	XPToday      int  `json:"xp_today"`
	ReviewsToday int  `json:"reviews_today"`
	StreakDays   int  `json:"streak_days"`
}
