package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is an outlet a sales rep sells into. The client_type code maps onto
// the CustomerType snapshot taken when an order is created.
type Client struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string          `gorm:"column:name;not null"`
	Address    string          `gorm:"column:address;not null"`
	Email      *string         `gorm:"column:email"`
	Contact    *string         `gorm:"column:contact"`
	TaxPIN     *string         `gorm:"column:tax_pin"`
	Latitude   *float64        `gorm:"column:latitude"`
	Longitude  *float64        `gorm:"column:longitude"`
	ClientType *int            `gorm:"column:client_type"`
	RegionID   *uuid.UUID      `gorm:"column:region_id;type:uuid"`
	Balance    decimal.Decimal `gorm:"column:balance;type:numeric(14,2);not null;default:0"`
	Payments   []ClientPayment `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// OutletProduct tracks product quantities held at an outlet. Maintained by
// field processes; this service only reads it back per outlet.
type OutletProduct struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID  uuid.UUID `gorm:"column:client_id;type:uuid;not null;uniqueIndex:idx_client_product"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_client_product"`
	Quantity  int       `gorm:"column:quantity;not null;default:0"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
