package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/repositories"
)

// Open creates a new database connection. TranslateError is on so unique
// constraint violations surface as gorm.ErrDuplicatedKey, which is the sole
// source of conflict errors in the repositories.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBOTPCode{},
		&repositories.DBProduct{},
		&repositories.DBOrder{},
		&repositories.DBOrderItem{},
		&repositories.DBCartItem{},
		&repositories.DBFavorite{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}
