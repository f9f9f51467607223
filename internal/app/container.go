package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
	"github.com/Akshaj-M/IlavaHealth-2/internal/config"
	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/auth"
	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/database"
	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/notifications"
	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/repositories"
	"github.com/Akshaj-M/IlavaHealth-2/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	CasbinSvc   *auth.CasbinService

	// Repositories
	UserRepo     domain.UserRepository
	OTPRepo      domain.OTPRepository
	SessionRepo  domain.SessionRepository
	ProductRepo  domain.ProductRepository
	CartRepo     domain.CartRepository
	FavoriteRepo domain.FavoriteRepository
	OrderRepo    domain.OrderRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	CatalogSvc      domain.CatalogService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	casbinSvc, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}

	c.DB = db
	c.CasbinSvc = casbinSvc
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OTPRepo = repositories.NewOTPRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.TokenTTL)
	c.ProductRepo = repositories.NewProductRepository(c.DB)
	c.CartRepo = repositories.NewCartRepository(c.DB)
	c.FavoriteRepo = repositories.NewFavoriteRepository(c.DB)
	c.OrderRepo = repositories.NewOrderRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.TokenTTL)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)

	otpConfig := services.OTPConfig{
		Length: c.Config.OTPLength,
		TTL:    c.Config.OTPTTL,
	}
	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.NotificationSvc, otpConfig)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		auth.NewGoogleVerifier(c.Config.GoogleClientID),
		auth.NewAppleVerifier(c.Config.AppleClientID),
		c.Config.TokenTTL,
	)

	c.CatalogSvc = services.NewCatalogService(c.ProductRepo, c.CartRepo, c.FavoriteRepo, c.OrderRepo)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
