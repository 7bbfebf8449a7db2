// Package content loads the dictionary and corpus data files and serves
// them as immutable snapshots. A snapshot is rebuilt lazily when a file's
// modification time changes; readers always get a complete, consistent
// view and never need locks of their own.
package content

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
)

// Snapshot is one immutable view of the loaded content. Callers must not
// mutate it.
type Snapshot struct {
	// Vocabulary maps a dictionary language to its vocabulary.
	Vocabulary map[domain.Language]*domain.Dictionary
	// Sentences maps a dictionary language to its source-text corpus.
	Sentences map[domain.Language][]domain.Sentence
}

// Dictionary returns the vocabulary for a language, possibly nil.
func (s *Snapshot) Dictionary(l domain.Language) *domain.Dictionary {
	if s == nil {
		return nil
	}
	return s.Vocabulary[l]
}

// Corpus returns the sentence corpus for a language, possibly empty.
func (s *Snapshot) Corpus(l domain.Language) []domain.Sentence {
	if s == nil {
		return nil
	}
	return s.Sentences[l]
}

// StatFunc reports a file's modification time. Injected so tests can
// drive reloads without touching the filesystem clock.
type StatFunc func(path string) (time.Time, error)

// ReadFunc reads a file's contents.
type ReadFunc func(path string) ([]byte, error)

// Service serves content snapshots with lazy, mtime-driven reloads.
type Service struct {
	vocabPath     string
	sentencesPath string
	stat          StatFunc
	read          ReadFunc
	logger        *slog.Logger

	mu         sync.Mutex
	current    *Snapshot
	mtimes     map[string]time.Time
	parseError map[string]time.Time // last mtime that failed to parse, to log once
}

// Option customizes a Service.
type Option func(*Service)

// WithStat overrides the file-stat function.
func WithStat(stat StatFunc) Option {
	return func(s *Service) { s.stat = stat }
}

// WithRead overrides the file-read function.
func WithRead(read ReadFunc) Option {
	return func(s *Service) { s.read = read }
}

// NewService creates a content service reading vocabulary and sentence
// corpora from the given paths. If logger is nil, the default logger is
// used.
func NewService(vocabPath, sentencesPath string, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		vocabPath:     vocabPath,
		sentencesPath: sentencesPath,
		stat: func(path string) (time.Time, error) {
			info, err := os.Stat(path)
			if err != nil {
				return time.Time{}, err
			}
			return info.ModTime(), nil
		},
		read:       os.ReadFile,
		logger:     logger.With(slog.String("component", "content_service")),
		mtimes:     make(map[string]time.Time),
		parseError: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current snapshot, reloading any file whose
// modification time changed since the last load. A missing file behaves
// as empty content; a file that fails to parse keeps the previously
// loaded data. Get never fails outright; the worst case is an empty
// snapshot.
func (s *Service) Get() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.fileChanged(s.vocabPath) || s.fileChanged(s.sentencesPath)
	if s.current != nil && !changed {
		return s.current
	}

	snap := &Snapshot{
		Vocabulary: make(map[domain.Language]*domain.Dictionary),
		Sentences:  make(map[domain.Language][]domain.Sentence),
	}

	if err := s.loadVocabulary(snap); err != nil {
		if s.current != nil {
			snap.Vocabulary = s.current.Vocabulary
		}
		s.warnOnce(s.vocabPath, err)
	}
	if err := s.loadSentences(snap); err != nil {
		if s.current != nil {
			snap.Sentences = s.current.Sentences
		}
		s.warnOnce(s.sentencesPath, err)
	}

	s.current = snap
	return snap
}

// fileChanged records and reports an mtime change. Missing files count
// as changed only when they previously existed.
func (s *Service) fileChanged(path string) bool {
	mtime, err := s.stat(path)
	if err != nil {
		if _, had := s.mtimes[path]; had {
			delete(s.mtimes, path)
			return true
		}
		return false
	}
	if s.mtimes[path] == mtime {
		return false
	}
	s.mtimes[path] = mtime
	return true
}

// dictionary JSON layout: {"french": {"greetings": [entries...]}, ...}
var dictionaryKeys = map[string]domain.Language{
	"french":  domain.LanguageFrench,
	"spanish": domain.LanguageSpanish,
}

func (s *Service) loadVocabulary(snap *Snapshot) error {
	data, err := s.read(s.vocabPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading vocabulary: %w", err)
	}

	var byLanguage map[string]json.RawMessage
	if err := json.Unmarshal(data, &byLanguage); err != nil {
		return fmt.Errorf("parsing vocabulary: %w", err)
	}

	for key, code := range dictionaryKeys {
		raw, ok := byLanguage[key]
		if !ok {
			continue
		}
		dict := &domain.Dictionary{}
		if err := json.Unmarshal(raw, dict); err != nil {
			return fmt.Errorf("parsing vocabulary for %s: %w", key, err)
		}
		snap.Vocabulary[code] = dict
	}
	return nil
}

func (s *Service) loadSentences(snap *Snapshot) error {
	data, err := s.read(s.sentencesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading sentences: %w", err)
	}

	var byLanguage map[string][]domain.Sentence
	if err := json.Unmarshal(data, &byLanguage); err != nil {
		return fmt.Errorf("parsing sentences: %w", err)
	}

	for key, code := range dictionaryKeys {
		if list, ok := byLanguage[key]; ok {
			snap.Sentences[code] = list
		}
	}
	return nil
}

// warnOnce logs a load failure once per offending mtime so a broken file
// does not spam the logs on every request.
func (s *Service) warnOnce(path string, err error) {
	mtime := s.mtimes[path]
	if s.parseError[path] == mtime {
		return
	}
	s.parseError[path] = mtime
	s.logger.Warn("content load failed, serving previous data",
		slog.String("path", path),
		slog.String("error", err.Error()))
}
