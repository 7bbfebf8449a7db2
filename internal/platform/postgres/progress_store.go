package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/store"
)

// PostgresWordProgressStore implements the store.WordProgressStore
// interface using a PostgreSQL database as the storage backend.
type PostgresWordProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordProgressStore creates a new PostgreSQL implementation of the
// WordProgressStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordProgressStore(db store.DBTX, logger *slog.Logger) *PostgresWordProgressStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_progress_store")),
	}
}

// Ensure PostgresWordProgressStore implements store.WordProgressStore interface
var _ store.WordProgressStore = (*PostgresWordProgressStore)(nil)

// WithTx returns a copy of the store bound to the given transaction.
func (s *PostgresWordProgressStore) WithTx(tx *sql.Tx) *PostgresWordProgressStore {
	return &PostgresWordProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// Get implements store.WordProgressStore.Get
// Returns store.ErrProgressNotFound if no record exists for the pair.
func (s *PostgresWordProgressStore) Get(
	ctx context.Context,
	language domain.Language,
	word string,
) (*domain.WordProgress, error) {
	query := `
		SELECT language, word, box, correct, incorrect, next_due, last_review
		FROM word_progress
		WHERE language = $1 AND word = $2`

	p := &domain.WordProgress{}
	var lang string
	err := s.db.QueryRowContext(ctx, query, string(language), word).Scan(
		&lang, &p.Word, &p.Box, &p.Correct, &p.Incorrect, &p.NextDue, &p.LastReview,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		s.logger.ErrorContext(ctx, "failed to get word progress",
			slog.String("error", err.Error()),
			slog.String("language", string(language)),
			slog.String("word", word))
		return nil, MapError(err)
	}
	p.Language = domain.Language(lang)
	return p, nil
}

// Record implements store.WordProgressStore.Record
// The counters are advanced with atomic SQL increments so concurrent
// answers for the same word never lose counts. Box, next_due and
// last_review take the caller's values.
func (s *PostgresWordProgressStore) Record(
	ctx context.Context,
	p *domain.WordProgress,
	correct bool,
) error {
	if p == nil {
		return fmt.Errorf("%w: nil progress", store.ErrInvalidEntity)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	correctDelta, incorrectDelta := 0, 1
	if correct {
		correctDelta, incorrectDelta = 1, 0
	}

	query := `
		INSERT INTO word_progress (language, word, box, correct, incorrect, next_due, last_review)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (language, word) DO UPDATE SET
			box = EXCLUDED.box,
			correct = word_progress.correct + $4,
			incorrect = word_progress.incorrect + $5,
			next_due = EXCLUDED.next_due,
			last_review = EXCLUDED.last_review`

	_, err := s.db.ExecContext(ctx, query,
		string(p.Language), p.Word, p.Box,
		correctDelta, incorrectDelta,
		p.NextDue, p.LastReview,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record word progress",
			slog.String("error", err.Error()),
			slog.String("language", string(p.Language)),
			slog.String("word", p.Word))
		return MapError(err)
	}
	return nil
}

// ListDue implements store.WordProgressStore.ListDue
// The ordering mirrors domain.CompareDue: never-scheduled rows first,
// then earliest due, lower box, higher mistake count.
func (s *PostgresWordProgressStore) ListDue(
	ctx context.Context,
	language domain.Language,
	now time.Time,
	limit int,
) ([]domain.WordProgress, error) {
	query := `
		SELECT language, word, box, correct, incorrect, next_due, last_review
		FROM word_progress
		WHERE language = $1 AND (next_due IS NULL OR next_due <= $2)
		ORDER BY next_due ASC NULLS FIRST, box ASC, incorrect DESC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, string(language), now, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list due word progress",
			slog.String("error", err.Error()),
			slog.String("language", string(language)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanProgressRows(rows)
}

// ListByLanguage implements store.WordProgressStore.ListByLanguage
func (s *PostgresWordProgressStore) ListByLanguage(
	ctx context.Context,
	language domain.Language,
) ([]domain.WordProgress, error) {
	query := `
		SELECT language, word, box, correct, incorrect, next_due, last_review
		FROM word_progress
		WHERE language = $1`

	rows, err := s.db.QueryContext(ctx, query, string(language))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list word progress",
			slog.String("error", err.Error()),
			slog.String("language", string(language)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanProgressRows(rows)
}

func scanProgressRows(rows *sql.Rows) ([]domain.WordProgress, error) {
	var records []domain.WordProgress
	for rows.Next() {
		var p domain.WordProgress
		var lang string
		if err := rows.Scan(
			&lang, &p.Word, &p.Box, &p.Correct, &p.Incorrect, &p.NextDue, &p.LastReview,
		); err != nil {
			return nil, MapError(err)
		}
		p.Language = domain.Language(lang)
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return records, nil
}
