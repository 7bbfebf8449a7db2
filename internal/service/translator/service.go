package translator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/platform/logger"
)

// Policy selects how local resolution and the remote provider combine.
type Policy string

const (
	// PolicyLocal uses dictionary resolution only.
	PolicyLocal Policy = "local"
	// PolicyRemote ignores local results and asks the provider for
	// every language pair.
	PolicyRemote Policy = "remote"
	// PolicyHybrid seeds from local resolution and asks the provider
	// only for languages still empty.
	PolicyHybrid Policy = "hybrid"
)

// ParsePolicy validates a policy string, defaulting to hybrid.
func ParsePolicy(s string) Policy {
	switch Policy(s) {
	case PolicyLocal, PolicyRemote, PolicyHybrid:
		return Policy(s)
	default:
		return PolicyHybrid
	}
}

// maxWarnings caps the warning list surfaced to callers.
const maxWarnings = 3

// Provider is an external translation service for a single language pair.
type Provider interface {
	// Translate returns the translation of text from source to target.
	// Implementations must enforce their own hard timeout; a failure is
	// per-pair and never aborts the whole request.
	Translate(ctx context.Context, text string, source, target domain.Language) (string, error)
}

// Result is the per-language outcome of a translate request. Text is nil
// when the language could not be resolved, never an empty string.
type Result struct {
	Text    *string `json:"text"`
	LangTag string  `json:"lang_tag"`
}

// Translation is the full outcome of a translate request.
type Translation struct {
	Query    string
	Detected domain.Language
	Policy   Policy
	Warnings []string
	Results  map[domain.Language]Result
}

// Service wraps the resolver with the remote-provider fallback policy.
type Service struct {
	resolver *Resolver
	provider Provider
	policy   Policy
	logger   *slog.Logger
}

// NewService creates a translation service. A nil provider forces the
// local policy regardless of configuration.
func NewService(resolver *Resolver, provider Provider, policy Policy, log *slog.Logger) *Service {
	if resolver == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("resolver cannot be nil for translator.Service")
	}
	if log == nil {
		log = slog.Default()
	}
	if provider == nil {
		policy = PolicyLocal
	}
	return &Service{
		resolver: resolver,
		provider: provider,
		policy:   policy,
		logger:   log.With(slog.String("component", "translation_service")),
	}
}

// Translate resolves text into every supported language under the
// configured policy. Remote failures become warnings, never errors: a
// partial result always beats a failed request.
func (s *Service) Translate(
	ctx context.Context,
	dicts Dictionaries,
	text, sourceHint string,
) *Translation {
	log := logger.FromContextOrDefault(ctx, s.logger)

	local := s.resolver.Resolve(dicts, text, sourceHint)

	out := &Translation{
		Query:    text,
		Detected: local.Detected,
		Policy:   s.policy,
		Results:  make(map[domain.Language]Result, len(domain.Languages())),
	}

	resolved := local.Results
	if s.policy == PolicyRemote {
		// Remote policy discards local resolution entirely; only the
		// detected language keeps the query verbatim.
		resolved = make(map[domain.Language]string, len(domain.Languages()))
		resolved[local.Detected] = text
	}

	if s.policy != PolicyLocal {
		var warnings []string
		for _, target := range domain.Languages() {
			if resolved[target] != "" {
				continue
			}
			if target == local.Detected {
				resolved[target] = text
				continue
			}
			translated, err := s.provider.Translate(ctx, text, local.Detected, target)
			if err != nil {
				log.Debug("remote translation failed",
					slog.String("source", string(local.Detected)),
					slog.String("target", string(target)),
					slog.String("error", err.Error()))
				warnings = append(warnings, err.Error())
				continue
			}
			resolved[target] = translated
		}
		if len(warnings) > maxWarnings {
			warnings = warnings[:maxWarnings]
		}
		out.Warnings = warnings
	}

	for _, l := range domain.Languages() {
		out.Results[l] = newResult(resolved[l], l)
	}
	return out
}

// newResult normalizes a resolved string into the nullable output
// contract.
func newResult(text string, l domain.Language) Result {
	r := Result{LangTag: l.LangTag()}
	if t := strings.TrimSpace(text); t != "" {
		r.Text = &t
	}
	return r
}
