package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/bhasha-shikkha/coach-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil_error",
			input:    nil,
			expected: nil,
		},
		{
			name:     "no_rows_maps_to_not_found",
			input:    sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name:     "wrapped_no_rows",
			input:    fmt.Errorf("query: %w", sql.ErrNoRows),
			expected: store.ErrNotFound,
		},
		{
			name:     "unique_violation_maps_to_duplicate",
			input:    &pgconn.PgError{Code: "23505", ConstraintName: "word_progress_pkey"},
			expected: store.ErrDuplicate,
		},
		{
			name:     "check_violation_maps_to_invalid_entity",
			input:    &pgconn.PgError{Code: "23514", ConstraintName: "word_progress_box_check"},
			expected: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tc.input)
			if tc.expected == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.expected)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")
	assert.Same(t, err, MapError(err))
}

func TestMapErrorPreservesConstraintName(t *testing.T) {
	t.Parallel()

	err := MapError(&pgconn.PgError{Code: "23514", ConstraintName: "word_progress_box_check"})
	assert.Contains(t, err.Error(), "word_progress_box_check")
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}
