// Package mymemory implements the remote translation provider backed by
// the MyMemory REST API (https://mymemory.translated.net).
package mymemory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
)

const (
	// DefaultEndpoint is the public MyMemory API endpoint.
	DefaultEndpoint = "https://api.mymemory.translated.net/get"

	// DefaultTimeout is the hard per-call timeout. Remote translation
	// must never block other request handling.
	DefaultTimeout = 8 * time.Second

	// DefaultCacheSize bounds the translation memoization cache.
	DefaultCacheSize = 4096

	userAgent = "LanguageCoach/1.0"
)

// myMemoryCode maps a language to the pair code MyMemory expects.
// Bengali needs the region suffix.
func myMemoryCode(l domain.Language) string {
	if l == domain.LanguageBengali {
		return "bn-BD"
	}
	return string(l)
}

// Client calls the MyMemory API with a hard timeout and memoizes
// successful translations by (source, target, text).
type Client struct {
	endpoint string
	http     *http.Client
	cache    *lru.Cache[string, string]
	logger   *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint (used in tests).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithCacheSize overrides the memoization cache size.
func WithCacheSize(size int) Option {
	return func(c *Client) {
		if cache, err := lru.New[string, string](size); err == nil {
			c.cache = cache
		}
	}
}

// NewClient creates a MyMemory client. If logger is nil, the default
// logger is used.
func NewClient(log *slog.Logger, opts ...Option) *Client {
	if log == nil {
		log = slog.Default()
	}
	cache, _ := lru.New[string, string](DefaultCacheSize)
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		cache:    cache,
		logger:   log.With(slog.String("component", "mymemory_client")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response mirrors the subset of the MyMemory payload we read. The API
// reports responseStatus as a number on success but a string on some
// failures, so it decodes as any.
type response struct {
	ResponseStatus  any    `json:"responseStatus"`
	ResponseDetails string `json:"responseDetails"`
	ResponseData    struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// statusString renders responseStatus uniformly ("200" for both 200 and
// "200").
func (r *response) statusString() string {
	switch v := r.ResponseStatus.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}

// Translate implements translator.Provider. Failures come back as short
// errors suitable for user-facing warnings; the caller decides whether
// they abort anything.
func (c *Client) Translate(
	ctx context.Context,
	text string,
	source, target domain.Language,
) (string, error) {
	q := strings.TrimSpace(text)
	if q == "" {
		return "", nil
	}

	key := fmt.Sprintf("%s|%s|%s", myMemoryCode(source), myMemoryCode(target), q)
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("langpair", fmt.Sprintf("%s|%s", myMemoryCode(source), myMemoryCode(target)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building translation request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("closing response body", slog.String("error", cerr.Error()))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading translation response: %w", err)
	}

	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("malformed translation response: %w", err)
	}

	if payload.statusString() != "200" {
		detail := strings.TrimSpace(payload.ResponseDetails)
		if detail == "" {
			detail = fmt.Sprintf("MyMemory error (status %s)", payload.statusString())
		}
		return "", fmt.Errorf("%s", detail)
	}

	translated := strings.TrimSpace(payload.ResponseData.TranslatedText)
	c.cache.Add(key, translated)
	return translated, nil
}
