package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bhasha-shikkha/coach-api/internal/api/shared"
	"github.com/bhasha-shikkha/coach-api/internal/content"
	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/platform/logger"
	"github.com/bhasha-shikkha/coach-api/internal/service/translator"
)

// maxTranslateChars bounds the translate query length.
const maxTranslateChars = 200

// TranslateHandler handles translation HTTP requests
type TranslateHandler struct {
	translator *translator.Service
	content    *content.Service
	logger     *slog.Logger
}

// NewTranslateHandler creates a new TranslateHandler
func NewTranslateHandler(
	translatorSvc *translator.Service,
	contentSvc *content.Service,
	log *slog.Logger,
) *TranslateHandler {
	if translatorSvc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("translator service cannot be nil for TranslateHandler")
	}
	if contentSvc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("content service cannot be nil for TranslateHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TranslateHandler")
	}

	return &TranslateHandler{
		translator: translatorSvc,
		content:    contentSvc,
		logger:     log.With(slog.String("component", "translate_handler")),
	}
}

// Translate handles POST /api/translate requests.
// It resolves the query into every supported language, via the local
// dictionaries and, policy permitting, the remote provider.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TranslateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode translate request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing \"text\"")
		return
	}
	if len([]rune(text)) > maxTranslateChars {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Text too long (max 200 chars)")
		return
	}

	sourceHint := strings.ToLower(strings.TrimSpace(req.Source))
	switch sourceHint {
	case domain.SourceAuto, "en", "fr", "es", "bn":
	default:
		sourceHint = domain.SourceAuto
	}

	snap := h.content.Get()
	dicts := translator.Dictionaries{
		domain.LanguageFrench:  snap.Dictionary(domain.LanguageFrench),
		domain.LanguageSpanish: snap.Dictionary(domain.LanguageSpanish),
	}

	result := h.translator.Translate(r.Context(), dicts, text, sourceHint)

	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	log.Debug("translated query",
		slog.String("detected", string(result.Detected)),
		slog.String("policy", string(result.Policy)),
		slog.Int("warnings", len(warnings)))

	shared.RespondWithJSON(w, r, http.StatusOK, TranslateResponse{
		OK:       true,
		Query:    result.Query,
		Source:   string(result.Detected),
		Provider: string(result.Policy),
		Warnings: warnings,
		Results:  result.Results,
	})
}
