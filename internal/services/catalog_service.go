package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// CatalogServiceImpl implements domain.CatalogService: product listings,
// carts, favorites and order placement for the marketplace.
type CatalogServiceImpl struct {
	productRepo  domain.ProductRepository
	cartRepo     domain.CartRepository
	favoriteRepo domain.FavoriteRepository
	orderRepo    domain.OrderRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	productRepo domain.ProductRepository,
	cartRepo domain.CartRepository,
	favoriteRepo domain.FavoriteRepository,
	orderRepo domain.OrderRepository,
) domain.CatalogService {
	return &CatalogServiceImpl{
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		favoriteRepo: favoriteRepo,
		orderRepo:    orderRepo,
	}
}

// CreateProduct implements domain.CatalogService.
func (s *CatalogServiceImpl) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateListing(product); err != nil {
		return err
	}

	product.IsActive = true
	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct implements domain.CatalogService. Only the owning farmer may
// change a listing; clearing IsActive is how a listing is withdrawn from the
// catalog without losing its order history.
func (s *CatalogServiceImpl) UpdateProduct(ctx context.Context, farmerID, productID uint, update domain.ProductUpdate) (*domain.Product, error) {
	existing, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if existing.FarmerID != farmerID {
		return nil, domain.ErrNotProductOwner
	}

	product := *existing
	product.Name = update.Name
	product.Description = update.Description
	product.Price = update.Price
	product.ImageURL = update.ImageURL
	product.Category = update.Category
	product.Quantity = update.Quantity
	product.Unit = update.Unit
	product.WasteType = update.WasteType
	if update.IsActive != nil {
		product.IsActive = *update.IsActive
	}
	if err := validateListing(&product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// validateListing checks the client-supplied fields of a product and fills
// in the default unit.
func validateListing(product *domain.Product) error {
	if product.Name == "" {
		return domain.NewValidationError("Product name is required")
	}
	cents, err := parsePrice(product.Price)
	if err != nil || cents <= 0 {
		return domain.NewValidationError("Product price must be a positive amount")
	}
	if product.Quantity < 0 {
		return domain.NewValidationError("Product quantity cannot be negative")
	}
	if product.Unit == "" {
		product.Unit = domain.UnitKg
	}
	if !domain.ValidUnit(product.Unit) {
		return domain.NewValidationError("Product unit must be kg, quintal or tons")
	}
	return nil
}

// GetProduct implements domain.CatalogService.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// ListProducts implements domain.CatalogService.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.productRepo.List(ctx, filter)
}

// AddCartItem implements domain.CatalogService.
func (s *CatalogServiceImpl) AddCartItem(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("Quantity must be positive")
	}
	if _, err := s.activeProduct(ctx, productID); err != nil {
		return err
	}
	item := &domain.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// ListCart implements domain.CatalogService.
func (s *CatalogServiceImpl) ListCart(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

// RemoveCartItem implements domain.CatalogService.
func (s *CatalogServiceImpl) RemoveCartItem(ctx context.Context, userID, itemID uint) error {
	return s.cartRepo.Delete(ctx, userID, itemID)
}

// AddFavorite implements domain.CatalogService.
func (s *CatalogServiceImpl) AddFavorite(ctx context.Context, userID, productID uint) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	favorite := &domain.Favorite{UserID: userID, ProductID: productID}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		if errors.Is(err, domain.ErrAlreadyFavorited) {
			return domain.ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// ListFavorites implements domain.CatalogService.
func (s *CatalogServiceImpl) ListFavorites(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userID)
}

// RemoveFavorite implements domain.CatalogService.
func (s *CatalogServiceImpl) RemoveFavorite(ctx context.Context, userID, favoriteID uint) error {
	return s.favoriteRepo.Delete(ctx, userID, favoriteID)
}

// PlaceOrder implements domain.CatalogService. Items must reference active
// products of a single farmer; the total is computed server-side from the
// stored prices, never taken from the client.
func (s *CatalogServiceImpl) PlaceOrder(ctx context.Context, buyerID uint, shippingAddress string, items []domain.OrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	var sellerID uint
	var totalCents int64
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, domain.NewValidationError("Item quantity must be positive")
		}
		product, err := s.activeProduct(ctx, items[i].ProductID)
		if err != nil {
			return nil, err
		}
		if sellerID == 0 {
			sellerID = product.FarmerID
		} else if sellerID != product.FarmerID {
			return nil, domain.ErrMixedSellers
		}
		cents, err := parsePrice(product.Price)
		if err != nil {
			return nil, fmt.Errorf("stored price for product %d is malformed: %w", product.ID, err)
		}
		items[i].Price = product.Price
		totalCents += cents * int64(items[i].Quantity)
	}

	order := &domain.Order{
		BuyerID:         buyerID,
		SellerID:        sellerID,
		TotalAmount:     formatPrice(totalCents),
		Status:          domain.OrderPending,
		ShippingAddress: shippingAddress,
		Items:           items,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// ListOrders implements domain.CatalogService.
func (s *CatalogServiceImpl) ListOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *CatalogServiceImpl) activeProduct(ctx context.Context, productID uint) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrProductInactive
	}
	return product, nil
}

// parsePrice converts a decimal string like "12.50" to cents. Prices carry
// at most two fractional digits.
func parsePrice(price string) (int64, error) {
	whole, frac, found := strings.Cut(price, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, fmt.Errorf("invalid price %q", price)
	}
	cents := units * 100
	if found {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid price %q", price)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil || f < 0 {
			return 0, fmt.Errorf("invalid price %q", price)
		}
		cents += f
	}
	return cents, nil
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
