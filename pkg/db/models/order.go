package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/pkg/enums"
)

// Order is the header row created atomically with its items. TotalAmount is
// derived: it must equal the sum of unit_value * quantity across the items.
// Customer fields are snapshots taken at creation so later client edits do
// not rewrite history.
type Order struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SalesRepID   uuid.UUID          `gorm:"column:sales_rep_id;type:uuid;not null"`
	ClientID     uuid.UUID          `gorm:"column:client_id;type:uuid;not null"`
	TotalAmount  decimal.Decimal    `gorm:"column:total_amount;type:numeric(14,2);not null;default:0"`
	Comment      string             `gorm:"column:comment;not null;default:''"`
	CustomerType enums.CustomerType `gorm:"column:customer_type;not null;default:'BUSINESS'"`
	CustomerID   string             `gorm:"column:customer_id;not null;default:''"`
	CustomerName string             `gorm:"column:customer_name;not null;default:''"`
	Items        []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Client       *Client            `gorm:"foreignKey:ClientID"`
	SalesRep     *SalesRep          `gorm:"foreignKey:SalesRepID"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is a single line on an order. Quantity counts packs and must be
// a whole number whenever the resolved pack size exceeds one. UnitValue is
// the price-option value resolved at creation time (zero when no option was
// selected).
type OrderItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity      decimal.Decimal `gorm:"column:quantity;type:numeric(12,2);not null"`
	PriceOptionID *uuid.UUID      `gorm:"column:price_option_id;type:uuid"`
	UnitValue     decimal.Decimal `gorm:"column:unit_value;type:numeric(14,2);not null;default:0"`
	Product       *Product        `gorm:"foreignKey:ProductID"`
	PriceOption   *PriceOption    `gorm:"foreignKey:PriceOptionID"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
