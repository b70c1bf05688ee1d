package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/pkg/enums"
)

// Sale is a raw product sale record, independent of the order pipeline.
// Locked sales refuse status transitions.
type Sale struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	ClientID  uuid.UUID        `gorm:"column:client_id;type:uuid;not null"`
	Quantity  int              `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal  `gorm:"column:unit_price;type:numeric(14,2);not null"`
	Total     decimal.Decimal  `gorm:"column:total;type:numeric(14,2);not null"`
	CreatedBy uuid.UUID        `gorm:"column:created_by;type:uuid;not null"`
	Status    enums.SaleStatus `gorm:"column:status;not null;default:'pending'"`
	IsLocked  bool             `gorm:"column:is_locked;not null;default:false"`
	Product   *Product         `gorm:"foreignKey:ProductID"`
	Client    *Client          `gorm:"foreignKey:ClientID"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
