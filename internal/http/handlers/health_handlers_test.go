package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/repositories"
	"github.com/Akshaj-M/IlavaHealth-2/internal/mocks"
)

func TestHealthHandlers_Health(t *testing.T) {
	t.Run("reports user count", func(t *testing.T) {
		userRepo := repositories.NewMemoryUserRepository()
		for _, email := range []string{"a@example.com", "b@example.com"} {
			err := userRepo.Create(context.Background(), &domain.User{Email: email, Role: "buyer"})
			assert.NoError(t, err)
		}
		h := NewHealthHandlers(userRepo)

		w := performJSON(t, h.Health, http.MethodGet, "/api/health", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "connected", body["database"])
		assert.Equal(t, float64(2), body["userCount"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("reports datastore failure", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.ListAllFunc = func(ctx context.Context) ([]domain.User, error) {
			return nil, assert.AnError
		}
		h := NewHealthHandlers(userRepo)

		w := performJSON(t, h.Health, http.MethodGet, "/api/health", nil, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "disconnected", body["database"])
	})
}
