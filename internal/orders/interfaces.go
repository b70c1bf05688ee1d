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

// OrderRepository defines the persistence surface required by the order service.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	FindClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindSalesRep(ctx context.Context, id uuid.UUID) (*models.SalesRep, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindOwned(ctx context.Context, id, salesRepID uuid.UUID) (*models.Order, error)
	ListBySalesRep(ctx context.Context, salesRepID uuid.UUID, params pagination.Params) ([]models.Order, int64, error)
	FindItemByProduct(ctx context.Context, orderID, productID uuid.UUID) (*models.OrderItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) error
	DeleteItems(ctx context.Context, orderID uuid.UUID) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	SumItemQuantities(ctx context.Context, salesRepID uuid.UUID, since *time.Time) (decimal.Decimal, error)
	RecentBySalesRep(ctx context.Context, salesRepID uuid.UUID, limit int) ([]models.Order, error)
}
