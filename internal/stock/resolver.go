package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/routesales/routesales-backend/pkg/db/models"
)

// Resolver answers availability questions against the store_quantities table.
// Availability within a region is the largest quantity held by any single
// store, never the sum across stores: an order line ships from one store.
type Resolver struct {
	db *gorm.DB
}

// NewResolver constructs a stock resolver bound to the provided DB.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// WithTx binds the resolver to a transaction.
func (r *Resolver) WithTx(tx *gorm.DB) *Resolver {
	if tx == nil {
		return r
	}
	return &Resolver{db: tx}
}

// StoreIDsByRegion returns the IDs of all stores operating in the region.
func (r *Resolver) StoreIDsByRegion(ctx context.Context, regionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("region_id = ?", regionID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

type maxQuantityRow struct {
	ProductID   uuid.UUID
	MaxQuantity int
}

// MaxAvailableAcross returns, per product, the largest single-store quantity
// among the provided stores. Products with no stock rows are absent from the
// result map.
func (r *Resolver) MaxAvailableAcross(ctx context.Context, productIDs, storeIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	result := make(map[uuid.UUID]int, len(productIDs))
	if len(productIDs) == 0 || len(storeIDs) == 0 {
		return result, nil
	}

	var rows []maxQuantityRow
	err := r.db.WithContext(ctx).
		Model(&models.StoreQuantity{}).
		Select("product_id, MAX(quantity) AS max_quantity").
		Where("product_id IN ?", productIDs).
		Where("store_id IN ?", storeIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ProductID] = row.MaxQuantity
	}
	return result, nil
}

// MaxAvailable resolves the availability of a single product in a region.
// It returns 0 when the region has no stores or no stock rows exist.
func (r *Resolver) MaxAvailable(ctx context.Context, productID, regionID uuid.UUID) (int, error) {
	storeIDs, err := r.StoreIDsByRegion(ctx, regionID)
	if err != nil {
		return 0, err
	}
	if len(storeIDs) == 0 {
		return 0, nil
	}

	quantities, err := r.MaxAvailableAcross(ctx, []uuid.UUID{productID}, storeIDs)
	if err != nil {
		return 0, err
	}
	return quantities[productID], nil
}
