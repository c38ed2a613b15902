package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/docextract/internal/batch"
	"github.com/phrazzld/docextract/internal/domain"
	"github.com/phrazzld/docextract/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockExtractionService is a testify mock of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

var _ service.ExtractionService = (*MockExtractionService)(nil)

// Create is a mock implementation of service.ExtractionService.Create
func (m *MockExtractionService) Create(
	ctx context.Context,
	userID uuid.UUID,
	documentName string,
) (*domain.Extraction, error) {
	args := m.Called(ctx, userID, documentName)
	if e, ok := args.Get(0).(*domain.Extraction); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// Get is a mock implementation of service.ExtractionService.Get
func (m *MockExtractionService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Extraction, error) {
	args := m.Called(ctx, userID, id)
	if e, ok := args.Get(0).(*domain.Extraction); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of service.ExtractionService.List
func (m *MockExtractionService) List(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Extraction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if list, ok := args.Get(0).([]*domain.Extraction); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetMany is a mock implementation of service.ExtractionService.GetMany
func (m *MockExtractionService) GetMany(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) ([]batch.Outcome[*domain.Extraction], error) {
	args := m.Called(ctx, userID, ids)
	if out, ok := args.Get(0).([]batch.Outcome[*domain.Extraction]); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

// DeleteMany is a mock implementation of service.ExtractionService.DeleteMany
func (m *MockExtractionService) DeleteMany(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) ([]batch.Outcome[uuid.UUID], error) {
	args := m.Called(ctx, userID, ids)
	if out, ok := args.Get(0).([]batch.Outcome[uuid.UUID]); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}
