package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/phrazzld/docextract/internal/domain"
	"github.com/phrazzld/docextract/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockExtractionStore is a testify mock of store.ExtractionStore.
// Its methods may be called from several goroutines at once.
type MockExtractionStore struct {
	mock.Mock
}

var _ store.ExtractionStore = (*MockExtractionStore)(nil)

// Create is a mock implementation of store.ExtractionStore.Create
func (m *MockExtractionStore) Create(ctx context.Context, extraction *domain.Extraction) error {
	args := m.Called(ctx, extraction)
	return args.Error(0)
}

// GetByID is a mock implementation of store.ExtractionStore.GetByID
func (m *MockExtractionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*domain.Extraction); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser is a mock implementation of store.ExtractionStore.ListByUser
func (m *MockExtractionStore) ListByUser(
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

// UpdateStatus is a mock implementation of store.ExtractionStore.UpdateStatus
func (m *MockExtractionStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ExtractionStatus,
	fields json.RawMessage,
	errMsg string,
) error {
	args := m.Called(ctx, id, status, fields, errMsg)
	return args.Error(0)
}

// Delete is a mock implementation of store.ExtractionStore.Delete
func (m *MockExtractionStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
