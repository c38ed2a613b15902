package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/phrazzld/docextract/internal/domain"
)

// ExtractionStore defines persistence for extractions.
type ExtractionStore interface {
	// Create saves a new extraction. The extraction is validated first.
	// Returns ErrDuplicate if an extraction with the same ID exists.
	Create(ctx context.Context, extraction *domain.Extraction) error

	// GetByID retrieves an extraction by its ID.
	// Returns ErrExtractionNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error)

	// ListByUser returns a page of the user's extractions, newest first.
	// Returns an empty slice when the user has none.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Extraction, error)

	// UpdateStatus records a status transition together with the extracted
	// fields or the failure reason.
	// Returns ErrExtractionNotFound if it does not exist.
	UpdateStatus(
		ctx context.Context,
		id uuid.UUID,
		status domain.ExtractionStatus,
		fields json.RawMessage,
		errMsg string,
	) error

	// Delete removes an extraction.
	// Returns ErrExtractionNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
