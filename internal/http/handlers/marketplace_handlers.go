package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MarketplaceHandlers translates the product, cart, favorite and order
// routes into catalog service calls.
type MarketplaceHandlers struct {
	catalogSvc domain.CatalogService
}

// NewMarketplaceHandlers creates new marketplace handlers.
func NewMarketplaceHandlers(catalogSvc domain.CatalogService) *MarketplaceHandlers {
	return &MarketplaceHandlers{catalogSvc: catalogSvc}
}

// CreateProductRequest represents a new product listing.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	WasteType   string `json:"wasteType"`
}

// UpdateProductRequest represents a listing update. A null isActive keeps
// the stored flag; false withdraws the listing from the catalog.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	WasteType   string `json:"wasteType"`
	IsActive    *bool  `json:"isActive"`
}

// AddCartItemRequest represents a cart addition.
type AddCartItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// AddFavoriteRequest represents a favorite addition.
type AddFavoriteRequest struct {
	ProductID uint `json:"productId"`
}

// PlaceOrderRequest represents an order placement.
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	Items           []struct {
		ProductID uint `json:"productId"`
		Quantity  int  `json:"quantity"`
	} `json:"items"`
}

// ListProducts handles GET /api/products. Public: no token required.
func (h *MarketplaceHandlers) ListProducts(c *gin.Context) {
	var filter domain.ProductFilter
	filter.Category = c.Query("category")
	if raw := c.Query("farmerId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid farmerId"})
			return
		}
		filter.FarmerID = uint(id)
	}

	products, err := h.catalogSvc.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// GetProduct handles GET /api/products/:id.
func (h *MarketplaceHandlers) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalogSvc.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// CreateProduct handles POST /api/products. Farmers only (enforced by the
// role middleware); the owner is always the authenticated user.
func (h *MarketplaceHandlers) CreateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		FarmerID:    userID,
		WasteType:   req.WasteType,
	}
	if err := h.catalogSvc.CreateProduct(c.Request.Context(), product); err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// UpdateProduct handles PUT /api/products/:id. Only the owning farmer may
// edit or withdraw a listing.
func (h *MarketplaceHandlers) UpdateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := h.catalogSvc.UpdateProduct(c.Request.Context(), userID, productID, domain.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		WasteType:   req.WasteType,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// ListCart handles GET /api/cart.
func (h *MarketplaceHandlers) ListCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	items, err := h.catalogSvc.ListCart(c.Request.Context(), userID)
	if err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

// AddCartItem handles POST /api/cart.
func (h *MarketplaceHandlers) AddCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.catalogSvc.AddCartItem(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item added to cart"})
}

// RemoveCartItem handles DELETE /api/cart/:id.
func (h *MarketplaceHandlers) RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.RemoveCartItem(c.Request.Context(), userID, itemID); err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart"})
}

// ListFavorites handles GET /api/favorites.
func (h *MarketplaceHandlers) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	favorites, err := h.catalogSvc.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "favorites": favorites})
}

// AddFavorite handles POST /api/favorites.
func (h *MarketplaceHandlers) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.catalogSvc.AddFavorite(c.Request.Context(), userID, req.ProductID); err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product favorited"})
}

// RemoveFavorite handles DELETE /api/favorites/:id.
func (h *MarketplaceHandlers) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	favoriteID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.RemoveFavorite(c.Request.Context(), userID, favoriteID); err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Favorite removed"})
}

// ListOrders handles GET /api/orders. Buyers see purchases, farmers sales.
func (h *MarketplaceHandlers) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	orders, err := h.catalogSvc.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondMarketplaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// PlaceOrder handles POST /api/orders. Buyers only.
func (h *MarketplaceHandlers) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.catalogSvc.PlaceOrder(c.Request.Context(), userID, req.ShippingAddress, items)
	if err != nil {
		respondMarketplaceError(c, err)
		return
	}

	log.Printf("ORDER_PLACED: order_id=%d buyer_id=%d seller_id=%d total=%s",
		order.ID, order.BuyerID, order.SellerID, order.TotalAmount)
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func respondMarketplaceError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, domain.ErrProductInactive):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product is not available"})
	case errors.Is(err, domain.ErrNotProductOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this product"})
	case errors.Is(err, domain.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must contain at least one item"})
	case errors.Is(err, domain.ErrMixedSellers):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order items must belong to a single farmer"})
	case errors.Is(err, domain.ErrAlreadyFavorited):
		c.JSON(http.StatusConflict, gin.H{"error": "Product already favorited"})
	default:
		log.Printf("MARKETPLACE_ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
