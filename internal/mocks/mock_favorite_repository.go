package mocks

import (
	"context"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockFavoriteRepository implements domain.FavoriteRepository interface for testing
type MockFavoriteRepository struct {
	CreateFunc     func(ctx context.Context, favorite *domain.Favorite) error
	ListByUserFunc func(ctx context.Context, userID uint) ([]domain.Favorite, error)
	DeleteFunc     func(ctx context.Context, userID, favoriteID uint) error
}

// NewMockFavoriteRepository creates a new MockFavoriteRepository with default behaviors
func NewMockFavoriteRepository() *MockFavoriteRepository {
	return &MockFavoriteRepository{}
}

// Create stores a new favorite
func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, favorite)
	}
	return nil
}

// ListByUser returns the user's favorites
func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// Delete removes a favorite owned by the user
func (m *MockFavoriteRepository) Delete(ctx context.Context, userID, favoriteID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, favoriteID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.FavoriteRepository = (*MockFavoriteRepository)(nil)
