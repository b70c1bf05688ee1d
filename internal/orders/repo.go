package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/routesales/routesales-backend/pkg/db/models"
	"github.com/routesales/routesales-backend/pkg/pagination"
)

// Repository exposes persistence operations for orders and their items.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindClient loads a client by ID.
func (r *Repository) FindClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindSalesRep loads a sales representative by ID.
func (r *Repository) FindSalesRep(ctx context.Context, id uuid.UUID) (*models.SalesRep, error) {
	var rep models.SalesRep
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// CreateOrder inserts an order header.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Omit("Items", "Client", "SalesRep").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// CreateItems inserts the provided items under the order.
func (r *Repository) CreateItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Omit("Product", "PriceOption").Create(&items).Error
}

// FindDetail loads an order with items, products, client, and rep expanded.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.PriceOption").
		Preload("Client").
		Preload("SalesRep").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOwned loads an order only when it belongs to the given sales rep.
func (r *Repository) FindOwned(ctx context.Context, id, salesRepID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND sales_rep_id = ?", id, salesRepID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListBySalesRep returns one page of the rep's orders, newest first, with the
// total row count for pagination metadata.
func (r *Repository) ListBySalesRep(ctx context.Context, salesRepID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	normalized := params.Normalize()

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("sales_rep_id = ?", salesRepID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []models.Order
	err = r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.PriceOption").
		Preload("Client").
		Preload("SalesRep").
		Where("sales_rep_id = ?", salesRepID).
		Order("created_at DESC").
		Limit(normalized.Limit).
		Offset(normalized.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindItemByProduct returns the order's item for the product, if any.
func (r *Repository) FindItemByProduct(ctx context.Context, orderID, productID uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity overwrites an item's quantity.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteItems removes every item belonging to the order.
func (r *Repository) DeleteItems(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error
}

// DeleteOrder removes the order header.
func (r *Repository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Order{}).Error
}

// SumItemQuantities totals item quantities across the rep's orders, optionally
// restricted to orders created at or after the since timestamp.
func (r *Repository) SumItemQuantities(ctx context.Context, salesRepID uuid.UUID, since *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.sales_rep_id = ?", salesRepID)
	if since != nil {
		query = query.Where("orders.created_at >= ?", *since)
	}

	var total decimal.Decimal
	err := query.
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// RecentBySalesRep returns the rep's most recent orders with items and client
// expanded.
func (r *Repository) RecentBySalesRep(ctx context.Context, salesRepID uuid.UUID, limit int) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Client").
		Where("sales_rep_id = ?", salesRepID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
