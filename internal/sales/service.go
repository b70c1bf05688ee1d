package sales

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/routesales/routesales-backend/pkg/db/models"
	"github.com/routesales/routesales-backend/pkg/enums"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
)

// RoleAdmin may lock any sale; everyone else may lock only their own.
const RoleAdmin = "admin"

// CreateSaleInput captures the payload for a new sale record.
type CreateSaleInput struct {
	ProductID uuid.UUID
	ClientID  uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// StatusCount pairs a sale status with the number of sales holding it.
type StatusCount struct {
	Status enums.SaleStatus `json:"status"`
	Count  int64            `json:"count"`
}

// Summary aggregates monetary totals and per-status counts.
type Summary struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	SalesByStatus []StatusCount   `json:"sales_by_status"`
}

// Service exposes the raw sales module.
type Service interface {
	Create(ctx context.Context, createdBy uuid.UUID, input CreateSaleInput) (*models.Sale, error)
	List(ctx context.Context) ([]models.Sale, error)
	Summary(ctx context.Context) (*Summary, error)
	Detail(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SaleStatus) (*models.Sale, error)
	Lock(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*models.Sale, error)
}

type service struct {
	repo SaleRepository
}

// NewService builds a sales service backed by the provided repository.
func NewService(repo SaleRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	return &service{repo: repo}, nil
}

// Create records a new sale. Every sale starts pending and unlocked.
func (s *service) Create(ctx context.Context, createdBy uuid.UUID, input CreateSaleInput) (*models.Sale, error) {
	if createdBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sales rep identity required")
	}
	if input.ProductID == uuid.Nil || input.ClientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id and client id are required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	if input.UnitPrice.IsNegative() || input.Total.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price and total must not be negative")
	}

	sale := &models.Sale{
		ProductID: input.ProductID,
		ClientID:  input.ClientID,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Total:     input.Total,
		CreatedBy: createdBy,
		Status:    enums.SaleStatusPending,
		IsLocked:  false,
	}
	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist sale")
	}

	return s.detail(ctx, created.ID)
}

// List returns all sales, newest first.
func (s *service) List(ctx context.Context) ([]models.Sale, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return rows, nil
}

// Summary aggregates the grand total and per-status counts.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	total, err := s.repo.SumTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum sales")
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count sales by status")
	}

	byStatus := make([]StatusCount, 0, len(counts))
	for _, status := range []enums.SaleStatus{enums.SaleStatusPending, enums.SaleStatusCompleted, enums.SaleStatusCancelled} {
		if count, ok := counts[status]; ok {
			byStatus = append(byStatus, StatusCount{Status: status, Count: count})
		}
	}

	return &Summary{TotalSales: total, SalesByStatus: byStatus}, nil
}

// Detail loads one sale with product and client expanded.
func (s *service) Detail(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	return s.detail(ctx, id)
}

// UpdateStatus transitions a sale's status unless the sale is locked.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SaleStatus) (*models.Sale, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid sale status %q", status))
	}

	sale, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.IsLocked {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "sale is locked and cannot be modified")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sale status")
	}
	return s.detail(ctx, id)
}

// Lock marks a sale immutable. Only the creator or an admin may lock it.
func (s *service) Lock(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*models.Sale, error) {
	sale, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != RoleAdmin && sale.CreatedBy != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to lock this sale")
	}

	if err := s.repo.Lock(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock sale")
	}
	return s.detail(ctx, id)
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return sale, nil
}

func (s *service) detail(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	sale, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return sale, nil
}
