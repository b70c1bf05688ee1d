package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/routesales/routesales-backend/pkg/db/models"
)

// Repository exposes read access to the product catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ProductsByIDs loads the requested products keyed by ID. Unknown IDs are
// simply absent from the map.
func (r *Repository) ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	result := make(map[uuid.UUID]*models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		result[rows[i].ID] = &rows[i]
	}
	return result, nil
}

// CategoriesByIDs loads the requested categories with their price options,
// keyed by ID.
func (r *Repository) CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Category, error) {
	result := make(map[uuid.UUID]*models.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.Category
	err := r.db.WithContext(ctx).
		Preload("PriceOptions").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		result[rows[i].ID] = &rows[i]
	}
	return result, nil
}
