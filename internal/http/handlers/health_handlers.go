package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// HealthHandlers reports service liveness. The user store is exercised as a
// proxy for datastore health.
type HealthHandlers struct {
	userRepo domain.UserRepository
}

// NewHealthHandlers creates new health handlers.
func NewHealthHandlers(userRepo domain.UserRepository) *HealthHandlers {
	return &HealthHandlers{userRepo: userRepo}
}

// Health handles GET /api/health.
func (h *HealthHandlers) Health(c *gin.Context) {
	users, err := h.userRepo.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("HEALTH_CHECK_FAILED: error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "error",
			"database":  "disconnected",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  "connected",
		"userCount": len(users),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
