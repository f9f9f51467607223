package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// ProductRepositoryImpl implements domain.ProductRepository using GORM.
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// DBProduct is the database model for a marketplace listing.
type DBProduct struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	Price       string `gorm:"type:decimal(10,2);not null"`
	ImageURL    string `gorm:"column:image_url;type:text"`
	Category    string `gorm:"size:50;index"`
	Quantity    int    `gorm:"not null;default:0"`
	Unit        string `gorm:"size:20;not null;default:kg"`
	FarmerID    uint   `gorm:"column:farmer_id;not null;index"`
	WasteType   string `gorm:"column:waste_type;size:50"`
	IsActive    bool   `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM.
func (DBProduct) TableName() string {
	return "products"
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// Create implements domain.ProductRepository.
func (r *ProductRepositoryImpl) Create(ctx context.Context, product *domain.Product) error {
	row := productToDB(product)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	product.ID = row.ID
	product.CreatedAt = row.CreatedAt
	product.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByID implements domain.ProductRepository.
func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var row DBProduct
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return productToDomain(&row), nil
}

// List implements domain.ProductRepository. Only active listings are
// returned; zero filter fields match everything.
func (r *ProductRepositoryImpl) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.FarmerID != 0 {
		q = q.Where("farmer_id = ?", filter.FarmerID)
	}

	var rows []DBProduct
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *productToDomain(&rows[i]))
	}
	return products, nil
}

// Update implements domain.ProductRepository. Columns are written through a
// map so zero values (quantity 0, is_active false) are not skipped.
func (r *ProductRepositoryImpl) Update(ctx context.Context, product *domain.Product) error {
	res := r.db.WithContext(ctx).Model(&DBProduct{}).Where("id = ?", product.ID).Updates(map[string]any{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"image_url":   product.ImageURL,
		"category":    product.Category,
		"quantity":    product.Quantity,
		"unit":        product.Unit,
		"waste_type":  product.WasteType,
		"is_active":   product.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func productToDB(p *domain.Product) *DBProduct {
	return &DBProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		FarmerID:    p.FarmerID,
		WasteType:   p.WasteType,
		IsActive:    p.IsActive,
	}
}

func productToDomain(row *DBProduct) *domain.Product {
	return &domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		ImageURL:    row.ImageURL,
		Category:    row.Category,
		Quantity:    row.Quantity,
		Unit:        row.Unit,
		FarmerID:    row.FarmerID,
		WasteType:   row.WasteType,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
