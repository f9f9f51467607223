package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
	"github.com/Akshaj-M/IlavaHealth-2/internal/mocks"
)

func asUser(id string) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set("user_id", id)
	}
}

func TestMarketplaceHandlers_ListProducts(t *testing.T) {
	catalogSvc := mocks.NewMockCatalogService()
	var gotFilter domain.ProductFilter
	catalogSvc.ListProductsFunc = func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
		gotFilter = filter
		return []domain.Product{{ID: 1, Name: "Rice husk", Price: "12.50"}}, nil
	}
	h := NewMarketplaceHandlers(catalogSvc)

	w := performJSON(t, h.ListProducts, http.MethodGet, "/api/products?category=compost&farmerId=9", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "compost", gotFilter.Category)
	assert.Equal(t, uint(9), gotFilter.FarmerID)
	body := decodeBody(t, w)
	assert.Len(t, body["products"], 1)
}

func TestMarketplaceHandlers_ListProducts_BadFarmerID(t *testing.T) {
	h := NewMarketplaceHandlers(mocks.NewMockCatalogService())

	w := performJSON(t, h.ListProducts, http.MethodGet, "/api/products?farmerId=abc", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid farmerId", decodeBody(t, w)["error"])
}

func TestMarketplaceHandlers_GetProduct(t *testing.T) {
	tests := []struct {
		name           string
		paramID        string
		setupMocks     func(*mocks.MockCatalogService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:    "found",
			paramID: "1",
			setupMocks: func(svc *mocks.MockCatalogService) {
				svc.GetProductFunc = func(ctx context.Context, id uint) (*domain.Product, error) {
					return &domain.Product{ID: id, Name: "Rice husk", Price: "12.50"}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "absent",
			paramID:        "99",
			expectedStatus: http.StatusNotFound,
			expectedError:  "Product not found",
		},
		{
			name:           "non-numeric id",
			paramID:        "abc",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogSvc := mocks.NewMockCatalogService()
			if tt.setupMocks != nil {
				tt.setupMocks(catalogSvc)
			}
			h := NewMarketplaceHandlers(catalogSvc)

			w := performJSON(t, h.GetProduct, http.MethodGet, "/api/products/"+tt.paramID, nil, func(c *gin.Context) {
				c.Params = gin.Params{{Key: "id", Value: tt.paramID}}
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeBody(t, w)["error"])
			}
		})
	}
}

func TestMarketplaceHandlers_CreateProduct(t *testing.T) {
	t.Run("owner comes from the token", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		var created *domain.Product
		catalogSvc.CreateProductFunc = func(ctx context.Context, product *domain.Product) error {
			created = product
			product.ID = 1
			return nil
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.CreateProduct, http.MethodPost, "/api/products",
			CreateProductRequest{Name: "Rice husk", Price: "12.50", Quantity: 100}, asUser("9"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(9), created.FarmerID)
	})

	t.Run("validation failure", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		catalogSvc.CreateProductFunc = func(ctx context.Context, product *domain.Product) error {
			return domain.NewValidationError("Product price must be a positive amount")
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.CreateProduct, http.MethodPost, "/api/products",
			CreateProductRequest{Name: "Rice husk", Price: "0"}, asUser("9"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Product price must be a positive amount", decodeBody(t, w)["error"])
	})

	t.Run("missing user context", func(t *testing.T) {
		h := NewMarketplaceHandlers(mocks.NewMockCatalogService())

		w := performJSON(t, h.CreateProduct, http.MethodPost, "/api/products",
			CreateProductRequest{Name: "Rice husk", Price: "12.50"}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMarketplaceHandlers_UpdateProduct(t *testing.T) {
	primeOwner := func(c *gin.Context) {
		c.Set("user_id", "9")
		c.Params = gin.Params{{Key: "id", Value: "3"}}
	}

	t.Run("owner edits the listing", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		var gotFarmer, gotProduct uint
		var gotUpdate domain.ProductUpdate
		catalogSvc.UpdateProductFunc = func(ctx context.Context, farmerID, productID uint, update domain.ProductUpdate) (*domain.Product, error) {
			gotFarmer, gotProduct, gotUpdate = farmerID, productID, update
			return &domain.Product{ID: productID, Name: update.Name, Price: update.Price, FarmerID: farmerID, IsActive: true}, nil
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.UpdateProduct, http.MethodPut, "/api/products/3",
			UpdateProductRequest{Name: "Rice husk", Price: "14.00", Quantity: 80}, primeOwner)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(9), gotFarmer)
		assert.Equal(t, uint(3), gotProduct)
		assert.Nil(t, gotUpdate.IsActive)
		product := decodeBody(t, w)["product"].(map[string]any)
		assert.Equal(t, "14.00", product["price"])
	})

	t.Run("deactivation flag is threaded through", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		var gotUpdate domain.ProductUpdate
		catalogSvc.UpdateProductFunc = func(ctx context.Context, farmerID, productID uint, update domain.ProductUpdate) (*domain.Product, error) {
			gotUpdate = update
			return &domain.Product{ID: productID, Name: update.Name, Price: update.Price, IsActive: false}, nil
		}
		h := NewMarketplaceHandlers(catalogSvc)

		inactive := false
		w := performJSON(t, h.UpdateProduct, http.MethodPut, "/api/products/3",
			UpdateProductRequest{Name: "Rice husk", Price: "12.50", IsActive: &inactive}, primeOwner)

		assert.Equal(t, http.StatusOK, w.Code)
		if assert.NotNil(t, gotUpdate.IsActive) {
			assert.False(t, *gotUpdate.IsActive)
		}
	})

	t.Run("non-owner gets 403", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		catalogSvc.UpdateProductFunc = func(ctx context.Context, farmerID, productID uint, update domain.ProductUpdate) (*domain.Product, error) {
			return nil, domain.ErrNotProductOwner
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.UpdateProduct, http.MethodPut, "/api/products/3",
			UpdateProductRequest{Name: "Rice husk", Price: "12.50"}, primeOwner)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You do not own this product", decodeBody(t, w)["error"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		h := NewMarketplaceHandlers(mocks.NewMockCatalogService())

		w := performJSON(t, h.UpdateProduct, http.MethodPut, "/api/products/abc",
			UpdateProductRequest{Name: "Rice husk", Price: "12.50"}, func(c *gin.Context) {
				c.Set("user_id", "9")
				c.Params = gin.Params{{Key: "id", Value: "abc"}}
			})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id", decodeBody(t, w)["error"])
	})
}

func TestMarketplaceHandlers_Cart(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		var gotUser, gotProduct uint
		var gotQuantity int
		catalogSvc.AddCartItemFunc = func(ctx context.Context, userID, productID uint, quantity int) error {
			gotUser, gotProduct, gotQuantity = userID, productID, quantity
			return nil
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.AddCartItem, http.MethodPost, "/api/cart",
			AddCartItemRequest{ProductID: 3, Quantity: 2}, asUser("4"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(4), gotUser)
		assert.Equal(t, uint(3), gotProduct)
		assert.Equal(t, 2, gotQuantity)
	})

	t.Run("add inactive product", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		catalogSvc.AddCartItemFunc = func(ctx context.Context, userID, productID uint, quantity int) error {
			return domain.ErrProductInactive
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.AddCartItem, http.MethodPost, "/api/cart",
			AddCartItemRequest{ProductID: 3, Quantity: 2}, asUser("4"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Product is not available", decodeBody(t, w)["error"])
	})

	t.Run("list", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		catalogSvc.ListCartFunc = func(ctx context.Context, userID uint) ([]domain.CartItem, error) {
			return []domain.CartItem{{ID: 1, UserID: userID, ProductID: 3, Quantity: 2}}, nil
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.ListCart, http.MethodGet, "/api/cart", nil, asUser("4"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["items"], 1)
	})

	t.Run("remove", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		var gotUser, gotItem uint
		catalogSvc.RemoveCartItemFunc = func(ctx context.Context, userID, itemID uint) error {
			gotUser, gotItem = userID, itemID
			return nil
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.RemoveCartItem, http.MethodDelete, "/api/cart/7", nil, func(c *gin.Context) {
			c.Set("user_id", "4")
			c.Params = gin.Params{{Key: "id", Value: "7"}}
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(4), gotUser)
		assert.Equal(t, uint(7), gotItem)
	})
}

func TestMarketplaceHandlers_Favorites(t *testing.T) {
	t.Run("duplicate favorite conflicts", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		catalogSvc.AddFavoriteFunc = func(ctx context.Context, userID, productID uint) error {
			return domain.ErrAlreadyFavorited
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.AddFavorite, http.MethodPost, "/api/favorites",
			AddFavoriteRequest{ProductID: 3}, asUser("4"))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Product already favorited", decodeBody(t, w)["error"])
	})

	t.Run("add and list", func(t *testing.T) {
		catalogSvc := mocks.NewMockCatalogService()
		catalogSvc.ListFavoritesFunc = func(ctx context.Context, userID uint) ([]domain.Favorite, error) {
			return []domain.Favorite{{ID: 1, UserID: userID, ProductID: 3}}, nil
		}
		h := NewMarketplaceHandlers(catalogSvc)

		w := performJSON(t, h.AddFavorite, http.MethodPost, "/api/favorites",
			AddFavoriteRequest{ProductID: 3}, asUser("4"))
		assert.Equal(t, http.StatusOK, w.Code)

		w = performJSON(t, h.ListFavorites, http.MethodGet, "/api/favorites", nil, asUser("4"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["favorites"], 1)
	})
}

func TestMarketplaceHandlers_PlaceOrder(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMocks     func(*mocks.MockCatalogService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful order",
			body: map[string]any{
				"shippingAddress": "12 Farm Road",
				"items":           []map[string]any{{"productId": 1, "quantity": 2}},
			},
			setupMocks: func(svc *mocks.MockCatalogService) {
				svc.PlaceOrderFunc = func(ctx context.Context, buyerID uint, shippingAddress string, items []domain.OrderItem) (*domain.Order, error) {
					return &domain.Order{
						ID: 1, BuyerID: buyerID, SellerID: 9,
						TotalAmount: "25.00", Status: domain.OrderPending,
						ShippingAddress: shippingAddress, Items: items,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "empty order",
			body: map[string]any{"shippingAddress": "12 Farm Road"},
			setupMocks: func(svc *mocks.MockCatalogService) {
				svc.PlaceOrderFunc = func(ctx context.Context, buyerID uint, shippingAddress string, items []domain.OrderItem) (*domain.Order, error) {
					return nil, domain.ErrEmptyOrder
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Order must contain at least one item",
		},
		{
			name: "two farmers in one order",
			body: map[string]any{
				"items": []map[string]any{
					{"productId": 1, "quantity": 1},
					{"productId": 3, "quantity": 1},
				},
			},
			setupMocks: func(svc *mocks.MockCatalogService) {
				svc.PlaceOrderFunc = func(ctx context.Context, buyerID uint, shippingAddress string, items []domain.OrderItem) (*domain.Order, error) {
					return nil, domain.ErrMixedSellers
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Order items must belong to a single farmer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogSvc := mocks.NewMockCatalogService()
			if tt.setupMocks != nil {
				tt.setupMocks(catalogSvc)
			}
			h := NewMarketplaceHandlers(catalogSvc)

			w := performJSON(t, h.PlaceOrder, http.MethodPost, "/api/orders", tt.body, asUser("4"))

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
				return
			}
			order := body["order"].(map[string]any)
			assert.Equal(t, "25.00", order["totalAmount"])
		})
	}
}
