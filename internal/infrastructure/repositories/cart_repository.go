package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// CartRepositoryImpl implements domain.CartRepository using GORM.
type CartRepositoryImpl struct {
	db *gorm.DB
}

// DBCartItem is the database model for a cart row.
type DBCartItem struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"column:user_id;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint `gorm:"column:product_id;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int  `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM.
func (DBCartItem) TableName() string {
	return "cart_items"
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) domain.CartRepository {
	return &CartRepositoryImpl{db: db}
}

// Upsert implements domain.CartRepository. A second add of the same product
// increases the quantity of the existing row.
func (r *CartRepositoryImpl) Upsert(ctx context.Context, item *domain.CartItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DBCartItem
		err := tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(&row).Error
		switch {
		case err == nil:
			row.Quantity += item.Quantity
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = DBCartItem{UserID: item.UserID, ProductID: item.ProductID, Quantity: item.Quantity}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		default:
			return err
		}
		item.ID = row.ID
		item.Quantity = row.Quantity
		return nil
	})
}

// ListByUser implements domain.CartRepository.
func (r *CartRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	var rows []DBCartItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]domain.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.CartItem{
			ID:        row.ID,
			UserID:    row.UserID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
		})
	}
	return items, nil
}

// Delete implements domain.CartRepository. The user id guards against
// removing another user's row.
func (r *CartRepositoryImpl) Delete(ctx context.Context, userID, itemID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&DBCartItem{}).Error
}
