package mocks

import (
	"context"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockCatalogService implements domain.CatalogService interface for testing
type MockCatalogService struct {
	CreateProductFunc  func(ctx context.Context, product *domain.Product) error
	GetProductFunc     func(ctx context.Context, id uint) (*domain.Product, error)
	ListProductsFunc   func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateProductFunc  func(ctx context.Context, farmerID, productID uint, update domain.ProductUpdate) (*domain.Product, error)
	AddCartItemFunc    func(ctx context.Context, userID, productID uint, quantity int) error
	ListCartFunc       func(ctx context.Context, userID uint) ([]domain.CartItem, error)
	RemoveCartItemFunc func(ctx context.Context, userID, itemID uint) error
	AddFavoriteFunc    func(ctx context.Context, userID, productID uint) error
	ListFavoritesFunc  func(ctx context.Context, userID uint) ([]domain.Favorite, error)
	RemoveFavoriteFunc func(ctx context.Context, userID, favoriteID uint) error
	PlaceOrderFunc     func(ctx context.Context, buyerID uint, shippingAddress string, items []domain.OrderItem) (*domain.Order, error)
	ListOrdersFunc     func(ctx context.Context, userID uint) ([]domain.Order, error)
}

// NewMockCatalogService creates a new MockCatalogService with default behaviors
func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

// CreateProduct lists a new product
func (m *MockCatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, product)
	}
	if product.ID == 0 {
		product.ID = 1
	}
	return nil
}

// GetProduct loads one product
func (m *MockCatalogService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

// ListProducts returns the filtered catalog
func (m *MockCatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, filter)
	}
	return nil, nil
}

// UpdateProduct edits an existing listing
func (m *MockCatalogService) UpdateProduct(ctx context.Context, farmerID, productID uint, update domain.ProductUpdate) (*domain.Product, error) {
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(ctx, farmerID, productID, update)
	}
	return nil, domain.ErrProductNotFound
}

// AddCartItem puts a product in the cart
func (m *MockCatalogService) AddCartItem(ctx context.Context, userID, productID uint, quantity int) error {
	if m.AddCartItemFunc != nil {
		return m.AddCartItemFunc(ctx, userID, productID, quantity)
	}
	return nil
}

// ListCart returns the user's cart
func (m *MockCatalogService) ListCart(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	if m.ListCartFunc != nil {
		return m.ListCartFunc(ctx, userID)
	}
	return nil, nil
}

// RemoveCartItem deletes a cart row
func (m *MockCatalogService) RemoveCartItem(ctx context.Context, userID, itemID uint) error {
	if m.RemoveCartItemFunc != nil {
		return m.RemoveCartItemFunc(ctx, userID, itemID)
	}
	return nil
}

// AddFavorite marks a product as favorite
func (m *MockCatalogService) AddFavorite(ctx context.Context, userID, productID uint) error {
	if m.AddFavoriteFunc != nil {
		return m.AddFavoriteFunc(ctx, userID, productID)
	}
	return nil
}

// ListFavorites returns the user's favorites
func (m *MockCatalogService) ListFavorites(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	if m.ListFavoritesFunc != nil {
		return m.ListFavoritesFunc(ctx, userID)
	}
	return nil, nil
}

// RemoveFavorite deletes a favorite row
func (m *MockCatalogService) RemoveFavorite(ctx context.Context, userID, favoriteID uint) error {
	if m.RemoveFavoriteFunc != nil {
		return m.RemoveFavoriteFunc(ctx, userID, favoriteID)
	}
	return nil
}

// PlaceOrder turns cart items into an order
func (m *MockCatalogService) PlaceOrder(ctx context.Context, buyerID uint, shippingAddress string, items []domain.OrderItem) (*domain.Order, error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, buyerID, shippingAddress, items)
	}
	return &domain.Order{ID: 1, BuyerID: buyerID, Status: domain.OrderPending, Items: items}, nil
}

// ListOrders returns orders the user participates in
func (m *MockCatalogService) ListOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, userID)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.CatalogService = (*MockCatalogService)(nil)
