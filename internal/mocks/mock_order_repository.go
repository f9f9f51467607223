package mocks

import (
	"context"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockOrderRepository implements domain.OrderRepository interface for testing
type MockOrderRepository struct {
	CreateFunc     func(ctx context.Context, order *domain.Order) error
	ListByUserFunc func(ctx context.Context, userID uint) ([]domain.Order, error)
}

// NewMockOrderRepository creates a new MockOrderRepository with default behaviors
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

// Create persists the order with its items
func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	if order.ID == 0 {
		order.ID = 1
	}
	return nil
}

// ListByUser returns orders where the user is buyer or seller
func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.OrderRepository = (*MockOrderRepository)(nil)
