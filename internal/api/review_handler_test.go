package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/service/review"
	"github.com/bhasha-shikkha/coach-api/internal/store"
)

// MockReviewService is a mock implementation of review.Service for testing
type MockReviewService struct {
	SubmitAnswerFn    func(ctx context.Context, language domain.Language, answer review.Answer) (*domain.WordProgress, error)
	SelectWordsFn     func(ctx context.Context, language domain.Language, mode review.Mode, limit int) ([]domain.CategorizedEntry, error)
	ActivitySummaryFn func(ctx context.Context) (*domain.ActivitySummary, error)
}

// SubmitAnswer implements review.Service
func (m *MockReviewService) SubmitAnswer(
	ctx context.Context,
	language domain.Language,
	answer review.Answer,
) (*domain.WordProgress, error) {
	if m.SubmitAnswerFn != nil {
		return m.SubmitAnswerFn(ctx, language, answer)
	}
	return nil, nil
}

// SelectWords implements review.Service
func (m *MockReviewService) SelectWords(
	ctx context.Context,
	language domain.Language,
	mode review.Mode,
	limit int,
) ([]domain.CategorizedEntry, error) {
	if m.SelectWordsFn != nil {
		return m.SelectWordsFn(ctx, language, mode, limit)
	}
	return nil, nil
}

// ActivitySummary implements review.Service
func (m *MockReviewService) ActivitySummary(ctx context.Context) (*domain.ActivitySummary, error) {
	if m.ActivitySummaryFn != nil {
		return m.ActivitySummaryFn(ctx)
	}
	return &domain.ActivitySummary{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestReviewHandler_SubmitProgress(t *testing.T) {
	fixedDue := time.Date(2025, time.April, 12, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		requestBody    interface{}
		rawBody        string
		setupMock      func(*MockReviewService)
		expectedStatus int
		expectedBox    int
	}{
		{
			name: "successful_answer",
			requestBody: ProgressRequest{
				Language: "french",
				Word:     "pomme",
				Correct:  true,
				XP:       10,
			},
			setupMock: func(ms *MockReviewService) {
				ms.SubmitAnswerFn = func(_ context.Context, language domain.Language, answer review.Answer) (*domain.WordProgress, error) {
					assert.Equal(t, domain.LanguageFrench, language)
					assert.Equal(t, "pomme", answer.Word)
					assert.True(t, answer.Correct)
					return &domain.WordProgress{
						Language: language,
						Word:     answer.Word,
						Box:      2,
						Correct:  1,
						NextDue:  &fixedDue,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBox:    2,
		},
		{
			name:    "integer_correct_flag",
			rawBody: `{"language":"french","word":"pomme","correct":1,"xp":10}`,
			setupMock: func(ms *MockReviewService) {
				ms.SubmitAnswerFn = func(_ context.Context, language domain.Language, answer review.Answer) (*domain.WordProgress, error) {
					assert.True(t, answer.Correct, "correct=1 decodes as true")
					return &domain.WordProgress{
						Language: language,
						Word:     answer.Word,
						Box:      2,
						Correct:  1,
						NextDue:  &fixedDue,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBox:    2,
		},
		{
			name:    "integer_incorrect_flag",
			rawBody: `{"language":"french","word":"pomme","correct":0,"xp":0}`,
			setupMock: func(ms *MockReviewService) {
				ms.SubmitAnswerFn = func(_ context.Context, language domain.Language, answer review.Answer) (*domain.WordProgress, error) {
					assert.False(t, answer.Correct, "correct=0 decodes as false")
					return &domain.WordProgress{
						Language:  language,
						Word:      answer.Word,
						Box:       1,
						Incorrect: 1,
						NextDue:   &fixedDue,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBox:    1,
		},
		{
			name:    "negative_xp_reaches_service_clamp",
			rawBody: `{"language":"french","word":"pomme","correct":1,"xp":-5}`,
			setupMock: func(ms *MockReviewService) {
				ms.SubmitAnswerFn = func(_ context.Context, language domain.Language, answer review.Answer) (*domain.WordProgress, error) {
					assert.Equal(t, -5, answer.XP, "out-of-range xp is clamped downstream, not rejected")
					return &domain.WordProgress{
						Language: language,
						Word:     answer.Word,
						Box:      2,
						Correct:  1,
						NextDue:  &fixedDue,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBox:    2,
		},
		{
			name:           "malformed_json",
			rawBody:        "{not json",
			setupMock:      func(*MockReviewService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non_boolean_correct_flag",
			rawBody:        `{"language":"french","word":"pomme","correct":"yes"}`,
			setupMock:      func(*MockReviewService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing_word",
			requestBody: ProgressRequest{
				Language: "french",
				Correct:  true,
			},
			setupMock:      func(*MockReviewService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unsupported_language",
			requestBody: ProgressRequest{
				Language: "klingon",
				Word:     "pomme",
			},
			setupMock:      func(*MockReviewService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service_error",
			requestBody: ProgressRequest{
				Language: "french",
				Word:     "pomme",
			},
			setupMock: func(ms *MockReviewService) {
				ms.SubmitAnswerFn = func(context.Context, domain.Language, review.Answer) (*domain.WordProgress, error) {
					return nil, errors.New("database down")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mock := &MockReviewService{}
			tc.setupMock(mock)
			handler := NewReviewHandler(mock, testLogger())

			var body []byte
			if tc.rawBody != "" {
				body = []byte(tc.rawBody)
			} else {
				var err error
				body, err = json.Marshal(tc.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/progress", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.SubmitProgress(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				var resp ProgressResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.True(t, resp.OK)
				assert.Equal(t, "pomme", resp.Word)
				assert.Equal(t, tc.expectedBox, resp.Box)
				require.NotNil(t, resp.NextDue)
				assert.True(t, fixedDue.Equal(*resp.NextDue))
			}
		})
	}
}

// newReviewWordsRequest builds a request with the chi language URL param
// set, the way the router would.
func newReviewWordsRequest(language, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/review/"+language+query, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("language", language)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestReviewHandler_GetReviewWords(t *testing.T) {
	entries := []domain.CategorizedEntry{
		{Entry: domain.Entry{Word: "pomme", English: "apple"}, Category: "fruits"},
	}

	tests := []struct {
		name           string
		language       string
		query          string
		setupMock      func(*MockReviewService)
		expectedStatus int
		expectedMode   string
		expectedLimit  int
	}{
		{
			name:     "default_mode_and_limit",
			language: "french",
			setupMock: func(ms *MockReviewService) {
				ms.SelectWordsFn = func(_ context.Context, _ domain.Language, mode review.Mode, limit int) ([]domain.CategorizedEntry, error) {
					assert.Equal(t, review.ModeDue, mode)
					assert.Equal(t, 40, limit)
					return entries, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedMode:   "due",
		},
		{
			name:     "weak_mode_with_clamped_limit",
			language: "spanish",
			query:    "?mode=weak&n=500",
			setupMock: func(ms *MockReviewService) {
				ms.SelectWordsFn = func(_ context.Context, language domain.Language, mode review.Mode, limit int) ([]domain.CategorizedEntry, error) {
					assert.Equal(t, domain.LanguageSpanish, language)
					assert.Equal(t, review.ModeWeak, mode)
					assert.Equal(t, 80, limit, "n above the maximum is clamped")
					return entries, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedMode:   "weak",
		},
		{
			name:     "limit_clamped_up",
			language: "french",
			query:    "?n=1",
			setupMock: func(ms *MockReviewService) {
				ms.SelectWordsFn = func(_ context.Context, _ domain.Language, _ review.Mode, limit int) ([]domain.CategorizedEntry, error) {
					assert.Equal(t, 5, limit, "n below the minimum is clamped")
					return entries, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedMode:   "due",
		},
		{
			name:     "unknown_mode_defaults_to_due",
			language: "french",
			query:    "?mode=bogus",
			setupMock: func(ms *MockReviewService) {
				ms.SelectWordsFn = func(_ context.Context, _ domain.Language, mode review.Mode, _ int) ([]domain.CategorizedEntry, error) {
					assert.Equal(t, review.ModeDue, mode)
					return nil, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedMode:   "due",
		},
		{
			name:           "unsupported_language",
			language:       "german",
			setupMock:      func(*MockReviewService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mock := &MockReviewService{}
			tc.setupMock(mock)
			handler := NewReviewHandler(mock, testLogger())

			rr := httptest.NewRecorder()
			handler.GetReviewWords(rr, newReviewWordsRequest(tc.language, tc.query))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				var resp ReviewResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.True(t, resp.OK)
				assert.Equal(t, tc.expectedMode, resp.Mode)
				assert.NotNil(t, resp.Words, "nil selections serialize as an empty list")
			}
		})
	}
}

func TestReviewHandler_GetActivity(t *testing.T) {
	mock := &MockReviewService{
		ActivitySummaryFn: func(context.Context) (*domain.ActivitySummary, error) {
			return &domain.ActivitySummary{XPToday: 42, ReviewsToday: 6, StreakDays: 3}, nil
		},
	}
	handler := NewReviewHandler(mock, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	rr := httptest.NewRecorder()
	handler.GetActivity(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp ActivityResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 42, resp.XPToday)
	assert.Equal(t, 6, resp.ReviewsToday)
	assert.Equal(t, 3, resp.StreakDays)
}

func TestReviewHandler_GetActivityError(t *testing.T) {
	mock := &MockReviewService{
		ActivitySummaryFn: func(context.Context) (*domain.ActivitySummary, error) {
			return nil, store.ErrNotFound
		},
	}
	handler := NewReviewHandler(mock, testLogger())

	rr := httptest.NewRecorder()
	handler.GetActivity(rr, httptest.NewRequest(http.MethodGet, "/api/activity", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
