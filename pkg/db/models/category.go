package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups products, supplies the fallback pack size, and owns the
// price options a line item may select from.
type Category struct {
	ID           uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string        `gorm:"column:name;not null"`
	PackSize     *int          `gorm:"column:pack_size"`
	PriceOptions []PriceOption `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// PriceOption is a category-scoped unit price a line item may reference.
type PriceOption struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Label      string          `gorm:"column:label;not null"`
	Value      decimal.Decimal `gorm:"column:value;type:numeric(14,2);not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
