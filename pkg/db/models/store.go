package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is a physical warehouse inside a region.
type Store struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RegionID   uuid.UUID       `gorm:"column:region_id;type:uuid;not null"`
	Name       string          `gorm:"column:name;not null"`
	Quantities []StoreQuantity `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// StoreQuantity is the on-hand quantity of one product at one store.
// Inventory processes outside this service mutate it; order validation
// only ever reads it.
type StoreQuantity struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_store_product"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_store_product"`
	Quantity  int       `gorm:"column:quantity;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
