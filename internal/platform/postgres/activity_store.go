package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/store"
)

// PostgresActivityStore implements the store.ActivityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresActivityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresActivityStore creates a new PostgreSQL implementation of the
// ActivityStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresActivityStore(db store.DBTX, logger *slog.Logger) *PostgresActivityStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresActivityStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_store")),
	}
}

// Ensure PostgresActivityStore implements store.ActivityStore interface
var _ store.ActivityStore = (*PostgresActivityStore)(nil)

// Add implements store.ActivityStore.Add
// Counters are advanced with atomic SQL increments, so concurrent
// answers landing on the same date never lose activity.
func (s *PostgresActivityStore) Add(
	ctx context.Context,
	date string,
	xp, reviews, correct, wrong int,
) error {
	query := `
		INSERT INTO daily_activity (activity_date, xp, reviews, correct, wrong)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (activity_date) DO UPDATE SET
			xp = daily_activity.xp + $2,
			reviews = daily_activity.reviews + $3,
			correct = daily_activity.correct + $4,
			wrong = daily_activity.wrong + $5`

	_, err := s.db.ExecContext(ctx, query, date, xp, reviews, correct, wrong)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to add daily activity",
			slog.String("error", err.Error()),
			slog.String("date", date))
		return MapError(err)
	}
	return nil
}

// Today implements store.ActivityStore.Today
// A date with no recorded activity yields zero counters, not an error.
func (s *PostgresActivityStore) Today(ctx context.Context, date string) (*domain.DailyActivity, error) {
	query := `
		SELECT activity_date::text, xp, reviews, correct, wrong
		FROM daily_activity
		WHERE activity_date = $1`

	a := &domain.DailyActivity{}
	err := s.db.QueryRowContext(ctx, query, date).Scan(
		&a.Date, &a.XP, &a.Reviews, &a.Correct, &a.Wrong,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.DailyActivity{Date: date}, nil
		}
		s.logger.ErrorContext(ctx, "failed to get daily activity",
			slog.String("error", err.Error()),
			slog.String("date", date))
		return nil, MapError(err)
	}
	return a, nil
}

// ActiveDates implements store.ActivityStore.ActiveDates
// Only dates that earned XP count toward the streak.
func (s *PostgresActivityStore) ActiveDates(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT activity_date::text
		FROM daily_activity
		WHERE xp > 0
		ORDER BY activity_date DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list active dates",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, MapError(err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return dates, nil
}
