package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/docextract/internal/domain"
	"github.com/phrazzld/docextract/internal/platform/logger"
	"github.com/phrazzld/docextract/internal/redact"
	"github.com/phrazzld/docextract/internal/store"
)

// Default and maximum page sizes for ListByUser.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

const extractionColumns = `id, user_id, document_name, status, fields, error, created_at, updated_at`

// PostgresExtractionStore implements store.ExtractionStore on PostgreSQL.
type PostgresExtractionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresExtractionStore implements store.ExtractionStore.
var _ store.ExtractionStore = (*PostgresExtractionStore)(nil)

// NewPostgresExtractionStore creates an extraction store over db, which may be
// a connection pool or a transaction. A nil logger falls back to slog.Default.
func NewPostgresExtractionStore(db store.DBTX, l *slog.Logger) *PostgresExtractionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if l == nil {
		l = slog.Default()
	}
	return &PostgresExtractionStore{
		db:     db,
		logger: l.With(slog.String("component", "extraction_store")),
	}
}

// Create implements store.ExtractionStore.Create.
func (s *PostgresExtractionStore) Create(ctx context.Context, e *domain.Extraction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := e.Validate(); err != nil {
		log.Warn("extraction validation failed during create",
			redact.Attr("error", err),
			slog.String("extraction_id", e.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO extractions (` + extractionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.DocumentName,
		string(e.Status),
		nullableJSON(e.Fields),
		e.Error,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create extraction",
			redact.Attr("error", err),
			slog.String("extraction_id", e.ID.String()))
		return MapError(err)
	}

	log.Info("extraction created",
		slog.String("extraction_id", e.ID.String()),
		slog.String("user_id", e.UserID.String()))
	return nil
}

// GetByID implements store.ExtractionStore.GetByID.
func (s *PostgresExtractionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + extractionColumns + ` FROM extractions WHERE id = $1`

	e, err := scanExtraction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("extraction not found", slog.String("extraction_id", id.String()))
			return nil, store.ErrExtractionNotFound
		}
		log.Error("failed to get extraction",
			redact.Attr("error", err),
			slog.String("extraction_id", id.String()))
		return nil, MapError(err)
	}
	return e, nil
}

// ListByUser implements store.ExtractionStore.ListByUser.
func (s *PostgresExtractionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Extraction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + extractionColumns + `
		FROM extractions
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to list extractions",
			redact.Attr("error", err),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	extractions := make([]*domain.Extraction, 0, limit)
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, MapError(err)
		}
		extractions = append(extractions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return extractions, nil
}

// UpdateStatus implements store.ExtractionStore.UpdateStatus.
func (s *PostgresExtractionStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ExtractionStatus,
	fields json.RawMessage,
	errMsg string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidExtractionStatus)
	}
	if len(fields) > 0 && !json.Valid(fields) {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidFields)
	}

	query := `
		UPDATE extractions
		SET status = $1, fields = $2, error = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		string(status), nullableJSON(fields), errMsg, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update extraction status",
			redact.Attr("error", err),
			slog.String("extraction_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrExtractionNotFound)
}

// Delete implements store.ExtractionStore.Delete.
func (s *PostgresExtractionStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM extractions WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete extraction",
			redact.Attr("error", err),
			slog.String("extraction_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrExtractionNotFound); err != nil {
		return err
	}

	log.Info("extraction deleted", slog.String("extraction_id", id.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row rowScanner) (*domain.Extraction, error) {
	var (
		e      domain.Extraction
		status string
		fields []byte
	)
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.DocumentName,
		&status,
		&fields,
		&e.Error,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Status = domain.ExtractionStatus(status)
	if len(fields) > 0 {
		e.Fields = json.RawMessage(fields)
	}
	return &e, nil
}

// nullableJSON stores empty field sets as SQL NULL.
func nullableJSON(fields json.RawMessage) any {
	if len(fields) == 0 {
		return nil
	}
	return string(fields)
}
