package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/pkg/db/models"
	"github.com/routesales/routesales-backend/pkg/enums"
)

// SaleRepository defines the persistence surface required by the sales service.
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	List(ctx context.Context) ([]models.Sale, error)
	SumTotals(ctx context.Context) (decimal.Decimal, error)
	CountByStatus(ctx context.Context) (map[enums.SaleStatus]int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SaleStatus) error
	Lock(ctx context.Context, id uuid.UUID) error
}
