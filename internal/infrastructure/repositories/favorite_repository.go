package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// FavoriteRepositoryImpl implements domain.FavoriteRepository using GORM.
type FavoriteRepositoryImpl struct {
	db *gorm.DB
}

// DBFavorite is the database model for a saved product.
type DBFavorite struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"column:user_id;not null;uniqueIndex:idx_fav_user_product"`
	ProductID uint `gorm:"column:product_id;not null;uniqueIndex:idx_fav_user_product"`
}

// TableName returns the table name for GORM.
func (DBFavorite) TableName() string {
	return "favorites"
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return &FavoriteRepositoryImpl{db: db}
}

// Create implements domain.FavoriteRepository.
func (r *FavoriteRepositoryImpl) Create(ctx context.Context, favorite *domain.Favorite) error {
	row := &DBFavorite{UserID: favorite.UserID, ProductID: favorite.ProductID}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyFavorited
		}
		return err
	}
	favorite.ID = row.ID
	return nil
}

// ListByUser implements domain.FavoriteRepository.
func (r *FavoriteRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	var rows []DBFavorite
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	favorites := make([]domain.Favorite, 0, len(rows))
	for _, row := range rows {
		favorites = append(favorites, domain.Favorite{
			ID:        row.ID,
			UserID:    row.UserID,
			ProductID: row.ProductID,
		})
	}
	return favorites, nil
}

// Delete implements domain.FavoriteRepository.
func (r *FavoriteRepositoryImpl) Delete(ctx context.Context, userID, favoriteID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", favoriteID, userID).
		Delete(&DBFavorite{}).Error
}
