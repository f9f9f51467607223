package e2e

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketplaceBuyerJourney(t *testing.T) {
	env := newTestEnv(t)
	farmerToken := env.registerUser(t, "ravi@example.com", "secret1", "farmer")
	buyerToken := env.registerUser(t, "anya@example.com", "secret1", "buyer")

	var productID float64
	t.Run("farmer lists a product", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/products", farmerToken, map[string]any{
			"name":      "Rice husk",
			"price":     "12.50",
			"category":  "crop-residue",
			"quantity":  100,
			"unit":      "kg",
			"wasteType": "agricultural",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		product := body["product"].(map[string]any)
		productID = product["id"].(float64)
		require.NotZero(t, productID)
	})

	t.Run("buyer may not list products", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/products", buyerToken, map[string]any{
			"name":  "Sneaky listing",
			"price": "1.00",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Access Denied", body["error"])
	})

	t.Run("anyone can browse the catalog", func(t *testing.T) {
		w, body := env.do(t, http.MethodGet, "/api/products", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["products"], 1)

		w, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%.0f", productID), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		product := body["product"].(map[string]any)
		assert.Equal(t, "Rice husk", product["name"])
	})

	t.Run("buyer builds a cart", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/cart", buyerToken, map[string]any{
			"productId": productID,
			"quantity":  3,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Item added to cart", body["message"])

		w, body = env.do(t, http.MethodGet, "/api/cart", buyerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		items := body["items"].([]any)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.Equal(t, float64(3), item["quantity"])
	})

	t.Run("farmer may not touch the cart", func(t *testing.T) {
		w, _ := env.do(t, http.MethodGet, "/api/cart", farmerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("buyer favorites the product once", func(t *testing.T) {
		w, _ := env.do(t, http.MethodPost, "/api/favorites", buyerToken, map[string]any{"productId": productID})
		require.Equal(t, http.StatusOK, w.Code)

		w, body := env.do(t, http.MethodPost, "/api/favorites", buyerToken, map[string]any{"productId": productID})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Product already favorited", body["error"])

		w, body = env.do(t, http.MethodGet, "/api/favorites", buyerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["favorites"], 1)
	})

	t.Run("buyer places an order with a server computed total", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/orders", buyerToken, map[string]any{
			"shippingAddress": "12 Farm Road",
			"items": []map[string]any{
				{"productId": productID, "quantity": 3},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		order := body["order"].(map[string]any)
		assert.Equal(t, "37.50", order["totalAmount"])
		assert.Equal(t, "pending", order["status"])
		assert.Equal(t, "12 Farm Road", order["shippingAddress"])
	})

	t.Run("both sides see the order", func(t *testing.T) {
		for _, token := range []string{buyerToken, farmerToken} {
			w, body := env.do(t, http.MethodGet, "/api/orders", token, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, body["orders"], 1)
		}
	})

	t.Run("buyer may not edit the listing", func(t *testing.T) {
		w, _ := env.do(t, http.MethodPut, fmt.Sprintf("/api/products/%.0f", productID), buyerToken, map[string]any{
			"name":  "Rice husk",
			"price": "0.01",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("farmer withdraws the listing", func(t *testing.T) {
		w, body := env.do(t, http.MethodPut, fmt.Sprintf("/api/products/%.0f", productID), farmerToken, map[string]any{
			"name":      "Rice husk",
			"price":     "12.50",
			"category":  "crop-residue",
			"quantity":  100,
			"unit":      "kg",
			"wasteType": "agricultural",
			"isActive":  false,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		product := body["product"].(map[string]any)
		assert.Equal(t, false, product["isActive"])

		w, body = env.do(t, http.MethodGet, "/api/products", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, body["products"])

		w, body = env.do(t, http.MethodPost, "/api/cart", buyerToken, map[string]any{
			"productId": productID,
			"quantity":  1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Product is not available", body["error"])
	})

	t.Run("empty orders are rejected", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/orders", buyerToken, map[string]any{
			"shippingAddress": "12 Farm Road",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Order must contain at least one item", body["error"])
	})
}
