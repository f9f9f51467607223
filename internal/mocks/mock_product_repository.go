package mocks

import (
	"context"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockProductRepository implements domain.ProductRepository interface for testing
type MockProductRepository struct {
	CreateFunc   func(ctx context.Context, product *domain.Product) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Product, error)
	ListFunc     func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateFunc   func(ctx context.Context, product *domain.Product) error
}

// NewMockProductRepository creates a new MockProductRepository with default behaviors
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

// Create stores a new product
func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	if product.ID == 0 {
		product.ID = 1
	}
	return nil
}

// FindByID loads one product
func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

// List returns products matching the filter
func (m *MockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

// Update persists product changes
func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.ProductRepository = (*MockProductRepository)(nil)
