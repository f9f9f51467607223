package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Akshaj-M/IlavaHealth-2/internal/config"
	httpx "github.com/Akshaj-M/IlavaHealth-2/internal/http"
	"github.com/Akshaj-M/IlavaHealth-2/internal/http/handlers"
	"github.com/Akshaj-M/IlavaHealth-2/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	mktH := handlers.NewMarketplaceHandlers(c.CatalogSvc)
	healthH := handlers.NewHealthHandlers(c.UserRepo)

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(c.CasbinSvc)

	r := httpx.BuildRouter(authH, mktH, healthH, jwtMW, casbinMW, cfg.CORSOrigins)

	if err := seedPolicies(c); err != nil {
		return err
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default marketplace role policies on first boot.
// Farmers manage their listings, buyers shop; both sides read their own
// orders. A partial seed would deny the whole marketplace surface, so any
// failure aborts startup.
func seedPolicies(c *Container) error {
	policies, err := c.CasbinSvc.E.GetPolicy()
	if err != nil {
		return fmt.Errorf("casbin: failed to read policies: %w", err)
	}
	if len(policies) > 0 {
		return nil
	}
	defaults := [][]string{
		{"role_farmer", "/api/products", "POST"},
		{"role_farmer", "/api/products/:id", "PUT"},
		{"role_farmer", "/api/orders", "GET"},
		{"role_buyer", "/api/cart", "(GET|POST)"},
		{"role_buyer", "/api/cart/:id", "DELETE"},
		{"role_buyer", "/api/favorites", "(GET|POST)"},
		{"role_buyer", "/api/favorites/:id", "DELETE"},
		{"role_buyer", "/api/orders", "(GET|POST)"},
	}
	for _, p := range defaults {
		if _, err := c.CasbinSvc.E.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("casbin: failed to add policy %v: %w", p, err)
		}
	}
	if err := c.CasbinSvc.E.SavePolicy(); err != nil {
		return fmt.Errorf("casbin: failed to persist policies: %w", err)
	}
	log.Println("casbin: seeded default policies")
	return nil
}
