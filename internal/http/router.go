package httpx

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Akshaj-M/IlavaHealth-2/internal/http/handlers"
	"github.com/Akshaj-M/IlavaHealth-2/internal/http/middleware"
)

// BuildRouter assembles the API routes. Auth endpoints under /api/auth are
// public except /me and /logout; marketplace writes additionally pass
// through the casbin role check.
func BuildRouter(ah *handlers.AuthHandlers, mh *handlers.MarketplaceHandlers, hh *handlers.HealthHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/api/health", hh.Health)

	auth := r.Group("/api/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/send-otp", ah.SendOTP)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.POST("/google", ah.Google)
	auth.POST("/apple", ah.Apple)

	me := r.Group("/api/auth").Use(jwtmw.WithJWT())
	me.GET("/me", ah.Me)
	me.POST("/logout", ah.Logout)

	r.GET("/api/products", mh.ListProducts)
	r.GET("/api/products/:id", mh.GetProduct)

	mkt := r.Group("/api").Use(jwtmw.WithJWT(), cb.Enforce())
	mkt.POST("/products", mh.CreateProduct)
	mkt.PUT("/products/:id", mh.UpdateProduct)
	mkt.GET("/cart", mh.ListCart)
	mkt.POST("/cart", mh.AddCartItem)
	mkt.DELETE("/cart/:id", mh.RemoveCartItem)
	mkt.GET("/favorites", mh.ListFavorites)
	mkt.POST("/favorites", mh.AddFavorite)
	mkt.DELETE("/favorites/:id", mh.RemoveFavorite)
	mkt.GET("/orders", mh.ListOrders)
	mkt.POST("/orders", mh.PlaceOrder)

	return r
}
