package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/auth"
)

// CasbinMW enforces role-based access on marketplace routes. Subjects are
// role names prefixed with "role_", objects are request paths, actions are
// HTTP methods.
type CasbinMW struct {
	casbinSvc *auth.CasbinService
}

// NewCasbinMW creates new casbin middleware.
func NewCasbinMW(casbinSvc *auth.CasbinService) *CasbinMW {
	return &CasbinMW{casbinSvc: casbinSvc}
}

// Enforce returns a middleware that authorizes the authenticated user's
// role against the request path and method.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, ok := c.Get("user_role")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		role, _ := roleVal.(string)

		sub := fmt.Sprintf("role_%s", role)
		allowed, err := mw.casbinSvc.E.Enforce(sub, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
