package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bhasha-shikkha/coach-api/internal/api/shared"
	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/platform/logger"
	"github.com/bhasha-shikkha/coach-api/internal/service/session"
)

// SessionHandler handles practice session HTTP requests
type SessionHandler struct {
	builder *session.Builder
	logger  *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(builder *session.Builder, log *slog.Logger) *SessionHandler {
	if builder == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session builder cannot be nil for SessionHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		builder: builder,
		logger:  log.With(slog.String("component", "session_handler")),
	}
}

// GetPractice handles GET /api/practice/{language} requests.
// Query parameters: n (question count) and mode; mode=resources builds
// a cloze drill from the sentence corpus instead of the standard mix.
func (h *SessionHandler) GetPractice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	language, err := domain.ParseDictionaryLanguage(chi.URLParam(r, "language"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	n := clampQueryInt(r, "n", session.MinQuestions, session.MaxQuestions, session.DefaultQuestions)
	mode := r.URL.Query().Get("mode")

	var questions []session.Question
	if mode == "resources" || mode == "resource" {
		questions, err = h.builder.BuildCorpusDrill(r.Context(), language, n)
	} else {
		questions, err = h.builder.BuildPractice(r.Context(), language, n)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if questions == nil {
		questions = []session.Question{}
	}

	log.Debug("built session",
		slog.String("language", string(language)),
		slog.String("mode", mode),
		slog.Int("questions", len(questions)))

	shared.RespondWithJSON(w, r, http.StatusOK, PracticeResponse{
		OK:        true,
		Questions: questions,
	})
}
