package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/docextract/internal/platform/postgres"
	"github.com/phrazzld/docextract/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "extractions",
		ColumnName:     "document_name",
		ConstraintName: "extractions_status_check",
	}
}

// mockResult implements sql.Result for testing.
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantPg  bool
		wantNil bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique", err: newPgError("23505"), wantIs: store.ErrDuplicate, wantPg: true},
		{name: "foreign key", err: newPgError("23503"), wantIs: store.ErrInvalidEntity, wantPg: true},
		{name: "check", err: newPgError("23514"), wantIs: store.ErrInvalidEntity, wantPg: true},
		{name: "not null", err: newPgError("23502"), wantIs: store.ErrInvalidEntity, wantPg: true},
		{
			name:   "wrapped unique",
			err:    fmt.Errorf("insert: %w", newPgError("23505")),
			wantIs: store.ErrDuplicate,
			wantPg: true,
		},
		{name: "unmapped pg code", err: newPgError("42P01"), wantIs: nil, wantPg: true},
		{name: "plain error", err: plain, wantIs: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := postgres.MapError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			require.Error(t, got)
			if tt.wantIs != nil {
				assert.ErrorIs(t, got, tt.wantIs)
			}
			if tt.wantPg {
				var pgErr *pgconn.PgError
				assert.ErrorAs(t, got, &pgErr, "original pg error should stay reachable")
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("wrapped: %w", newPgError("23505"))))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503")))
	assert.False(t, postgres.IsUniqueViolation(errors.New("23505")))
	assert.False(t, postgres.IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(mockResult{rowsAffected: 1}, nil))
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{}, nil), store.ErrNotFound)
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(mockResult{}, store.ErrExtractionNotFound),
		store.ErrExtractionNotFound)

	resultErr := errors.New("driver does not support RowsAffected")
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{err: resultErr}, nil), resultErr)
	assert.Error(t, postgres.CheckRowsAffected(nil, nil))
}
