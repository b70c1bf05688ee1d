package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/pkg/enums"
)

// ClientPayment records a payment submitted against an outlet's balance.
// The image URL points at externally hosted proof-of-payment media.
type ClientPayment struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID  uuid.UUID           `gorm:"column:client_id;type:uuid;not null"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric(14,2);not null"`
	ImageURL  string              `gorm:"column:image_url;not null"`
	Status    enums.PaymentStatus `gorm:"column:status;not null;default:'PENDING'"`
	Date      time.Time           `gorm:"column:date;autoCreateTime"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
