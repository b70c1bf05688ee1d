package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/routesales/routesales-backend/pkg/db/models"
	"github.com/routesales/routesales-backend/pkg/enums"
)

// Repository exposes persistence operations for sale records.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new sale.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Omit("Product", "Client").Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// FindByID loads a sale without relations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindDetail loads a sale with product and client expanded.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Client").
		Where("id = ?", id).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns every sale, newest first, with product and client expanded.
func (r *Repository) List(ctx context.Context) ([]models.Sale, error) {
	var rows []models.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Client").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumTotals returns the grand total across all sales.
func (r *Repository) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

type statusCountRow struct {
	Status enums.SaleStatus
	Count  int64
}

// CountByStatus returns sale counts grouped by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.SaleStatus]int64, error) {
	var rows []statusCountRow
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[enums.SaleStatus]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result, nil
}

// UpdateStatus overwrites the sale's status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SaleStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Lock marks the sale as locked.
func (r *Repository) Lock(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", id).
		Update("is_locked", true).Error
}
