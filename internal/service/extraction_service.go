package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/docextract/internal/batch"
	"github.com/phrazzld/docextract/internal/config"
	"github.com/phrazzld/docextract/internal/domain"
	"github.com/phrazzld/docextract/internal/platform/logger"
	"github.com/phrazzld/docextract/internal/redact"
	"github.com/phrazzld/docextract/internal/store"
)

// ExtractionService provides extraction operations scoped to a user.
type ExtractionService interface {
	// Create registers a pending extraction for a newly uploaded document.
	Create(ctx context.Context, userID uuid.UUID, documentName string) (*domain.Extraction, error)

	// Get returns one of the user's extractions.
	// Returns ErrExtractionNotOwned when it belongs to someone else.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Extraction, error)

	// List returns a page of the user's extractions.
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Extraction, error)

	// GetMany loads each id independently. The outcomes are aligned with ids;
	// missing or foreign extractions are failed outcomes, not an error.
	GetMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]batch.Outcome[*domain.Extraction], error)

	// DeleteMany deletes each id independently, with the same outcome rules as GetMany.
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]batch.Outcome[uuid.UUID], error)
}

type extractionServiceImpl struct {
	store  store.ExtractionStore
	cfg    config.BatchConfig
	logger *slog.Logger
}

var _ ExtractionService = (*extractionServiceImpl)(nil)

// NewExtractionService creates an ExtractionService.
// It returns an error if the store is nil or the batch settings are unusable.
func NewExtractionService(
	extractionStore store.ExtractionStore,
	cfg config.BatchConfig,
	logger *slog.Logger,
) (ExtractionService, error) {
	if extractionStore == nil {
		return nil, errors.New("extraction store cannot be nil")
	}
	if cfg.Concurrency < 1 || cfg.MaxItems < 1 || cfg.ItemTimeoutSeconds < 0 {
		return nil, fmt.Errorf("%w: concurrency=%d max_items=%d item_timeout_seconds=%d",
			batch.ErrInvalidConfiguration, cfg.Concurrency, cfg.MaxItems, cfg.ItemTimeoutSeconds)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &extractionServiceImpl{
		store:  extractionStore,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "extraction_service")),
	}, nil
}

// Create implements ExtractionService.Create
func (s *extractionServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	documentName string,
) (*domain.Extraction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	extraction, err := domain.NewExtraction(userID, documentName)
	if err != nil {
		log.Debug("rejected extraction", redact.Attr("error", err))
		return nil, NewExtractionServiceError("create", err)
	}

	if err := s.store.Create(ctx, extraction); err != nil {
		log.Error("failed to store extraction",
			redact.Attr("error", err),
			slog.String("extraction_id", extraction.ID.String()))
		return nil, NewExtractionServiceError("create", err)
	}

	log.Debug("extraction created",
		slog.String("extraction_id", extraction.ID.String()),
		slog.String("user_id", userID.String()))
	return extraction, nil
}

// Get implements ExtractionService.Get
func (s *extractionServiceImpl) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Extraction, error) {
	extraction, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, NewExtractionServiceError("get", err)
	}
	return extraction, nil
}

// List implements ExtractionService.List
func (s *extractionServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Extraction, error) {
	if limit < 0 || offset < 0 {
		return nil, NewExtractionServiceError("list", ErrInvalidPagination)
	}

	list, err := s.store.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list extractions",
			redact.Attr("error", err),
			slog.String("user_id", userID.String()))
		return nil, NewExtractionServiceError("list", err)
	}
	return list, nil
}

// GetMany implements ExtractionService.GetMany
func (s *extractionServiceImpl) GetMany(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) ([]batch.Outcome[*domain.Extraction], error) {
	if err := s.checkBatchSize(len(ids)); err != nil {
		return nil, NewExtractionServiceError("get_many", err)
	}

	outcomes, err := batch.Execute(ctx, ids, s.cfg.Concurrency,
		func(ctx context.Context, id uuid.UUID) (*domain.Extraction, error) {
			return s.getOwned(ctx, userID, id)
		},
		s.batchOptions(ctx, "get_many")...,
	)
	if err != nil {
		return nil, NewExtractionServiceError("get_many", err)
	}
	return outcomes, nil
}

// DeleteMany implements ExtractionService.DeleteMany
func (s *extractionServiceImpl) DeleteMany(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) ([]batch.Outcome[uuid.UUID], error) {
	if err := s.checkBatchSize(len(ids)); err != nil {
		return nil, NewExtractionServiceError("delete_many", err)
	}

	outcomes, err := batch.Execute(ctx, ids, s.cfg.Concurrency,
		func(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
			if _, err := s.getOwned(ctx, userID, id); err != nil {
				return uuid.Nil, err
			}
			if err := s.store.Delete(ctx, id); err != nil {
				return uuid.Nil, err
			}
			return id, nil
		},
		s.batchOptions(ctx, "delete_many")...,
	)
	if err != nil {
		return nil, NewExtractionServiceError("delete_many", err)
	}

	succeeded, failed, cancelled := batch.Count(outcomes)
	logger.FromContextOrDefault(ctx, s.logger).Info("batch delete finished",
		slog.String("user_id", userID.String()),
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed),
		slog.Int("cancelled", cancelled))
	return outcomes, nil
}

// getOwned loads an extraction and checks that userID owns it.
func (s *extractionServiceImpl) getOwned(ctx context.Context, userID, id uuid.UUID) (*domain.Extraction, error) {
	extraction, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !extraction.IsOwnedBy(userID) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("extraction access denied",
			slog.String("extraction_id", id.String()),
			slog.String("user_id", userID.String()))
		return nil, ErrExtractionNotOwned
	}
	return extraction, nil
}

func (s *extractionServiceImpl) checkBatchSize(n int) error {
	if n == 0 {
		return ErrNoItems
	}
	if n > s.cfg.MaxItems {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyItems, n, s.cfg.MaxItems)
	}
	return nil
}

func (s *extractionServiceImpl) batchOptions(ctx context.Context, operation string) []batch.Option {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("operation", operation))
	return []batch.Option{
		batch.WithTimeout(s.cfg.ItemTimeout()),
		batch.WithLogger(log),
	}
}
