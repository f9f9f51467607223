package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated user id the auth middleware stored
// in the request context.
func currentUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	str, ok := raw.(string)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(str, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
