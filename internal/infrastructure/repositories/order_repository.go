package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// OrderRepositoryImpl implements domain.OrderRepository using GORM.
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// DBOrder is the database model for an order.
type DBOrder struct {
	ID              uint   `gorm:"primaryKey"`
	BuyerID         uint   `gorm:"column:buyer_id;not null;index"`
	SellerID        uint   `gorm:"column:seller_id;not null;index"`
	TotalAmount     string `gorm:"column:total_amount;type:decimal(10,2);not null"`
	Status          string `gorm:"size:20;not null;default:pending"`
	ShippingAddress string `gorm:"column:shipping_address;type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM.
func (DBOrder) TableName() string {
	return "orders"
}

// DBOrderItem is the database model for a purchased line item.
type DBOrderItem struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"column:order_id;not null;index"`
	ProductID uint   `gorm:"column:product_id;not null"`
	Quantity  int    `gorm:"not null"`
	Price     string `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (DBOrderItem) TableName() string {
	return "order_items"
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create implements domain.OrderRepository. The order and its items are
// written in one transaction; a failed item insert rolls back the order row.
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &DBOrder{
			BuyerID:         order.BuyerID,
			SellerID:        order.SellerID,
			TotalAmount:     order.TotalAmount,
			Status:          order.Status,
			ShippingAddress: order.ShippingAddress,
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		order.ID = row.ID
		order.CreatedAt = row.CreatedAt
		order.UpdatedAt = row.UpdatedAt

		for i := range order.Items {
			item := &DBOrderItem{
				OrderID:   row.ID,
				ProductID: order.Items[i].ProductID,
				Quantity:  order.Items[i].Quantity,
				Price:     order.Items[i].Price,
			}
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			order.Items[i].ID = item.ID
			order.Items[i].OrderID = row.ID
		}
		return nil
	})
}

// ListByUser implements domain.OrderRepository. Both sides of the trade see
// the order: buyers find what they bought, farmers what they sold.
func (r *OrderRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var rows []DBOrder
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		var itemRows []DBOrderItem
		if err := r.db.WithContext(ctx).Where("order_id = ?", row.ID).Find(&itemRows).Error; err != nil {
			return nil, err
		}
		items := make([]domain.OrderItem, 0, len(itemRows))
		for _, ir := range itemRows {
			items = append(items, domain.OrderItem{
				ID:        ir.ID,
				OrderID:   ir.OrderID,
				ProductID: ir.ProductID,
				Quantity:  ir.Quantity,
				Price:     ir.Price,
				CreatedAt: ir.CreatedAt,
			})
		}
		orders = append(orders, domain.Order{
			ID:              row.ID,
			BuyerID:         row.BuyerID,
			SellerID:        row.SellerID,
			TotalAmount:     row.TotalAmount,
			Status:          row.Status,
			ShippingAddress: row.ShippingAddress,
			Items:           items,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
	}
	return orders, nil
}
