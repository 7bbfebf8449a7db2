package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bhasha-shikkha/coach-api/internal/api/shared"
	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/platform/logger"
	"github.com/bhasha-shikkha/coach-api/internal/service/review"
)

// Review list size bounds.
const (
	minReviewWords     = 5
	maxReviewWords     = 80
	defaultReviewWords = 40
)

// ReviewHandler handles spaced repetition HTTP requests
type ReviewHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService review.Service, log *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("review service cannot be nil for ReviewHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// SubmitProgress handles POST /api/progress requests.
// It records one answered word, advancing its Leitner box and logging
// today's activity.
func (h *ReviewHandler) SubmitProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ProgressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode progress request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	language, err := domain.ParseDictionaryLanguage(req.Language)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	progress, err := h.reviewService.SubmitAnswer(r.Context(), language, review.Answer{
		Word:    req.Word,
		Correct: bool(req.Correct),
		XP:      req.XP,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProgressResponse{
		OK:        true,
		Word:      progress.Word,
		Box:       progress.Box,
		Correct:   progress.Correct,
		Incorrect: progress.Incorrect,
		NextDue:   progress.NextDue,
	})
}

// GetReviewWords handles GET /api/review/{language} requests.
// Query parameters: mode (due, weak, random) and n (list size).
func (h *ReviewHandler) GetReviewWords(w http.ResponseWriter, r *http.Request) {
	language, err := domain.ParseDictionaryLanguage(chi.URLParam(r, "language"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	mode := review.ParseMode(r.URL.Query().Get("mode"))
	limit := clampQueryInt(r, "n", minReviewWords, maxReviewWords, defaultReviewWords)

	words, err := h.reviewService.SelectWords(r.Context(), language, mode, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if words == nil {
		words = []domain.CategorizedEntry{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{
		OK:    true,
		Mode:  string(mode),
		Words: words,
	})
}

// GetActivity handles GET /api/activity requests.
func (h *ReviewHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reviewService.ActivitySummary(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ActivityResponse{
		OK:           true,
		XPToday:      summary.XPToday,
		ReviewsToday: summary.ReviewsToday,
		StreakDays:   summary.StreakDays,
	})
}

// clampQueryInt parses an integer query parameter, clamping it into
// [low, high] and falling back to def on absent or malformed values.
func clampQueryInt(r *http.Request, key string, low, high, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < low {
		return low
	}
	if n > high {
		return high
	}
	return n
}
