package mocks

import (
	"context"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockCartRepository implements domain.CartRepository interface for testing
type MockCartRepository struct {
	UpsertFunc     func(ctx context.Context, item *domain.CartItem) error
	ListByUserFunc func(ctx context.Context, userID uint) ([]domain.CartItem, error)
	DeleteFunc     func(ctx context.Context, userID, itemID uint) error
}

// NewMockCartRepository creates a new MockCartRepository with default behaviors
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{}
}

// Upsert adds or merges a cart row
func (m *MockCartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, item)
	}
	return nil
}

// ListByUser returns the user's cart rows
func (m *MockCartRepository) ListByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// Delete removes a cart row owned by the user
func (m *MockCartRepository) Delete(ctx context.Context, userID, itemID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, itemID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.CartRepository = (*MockCartRepository)(nil)
