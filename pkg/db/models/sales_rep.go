package models

import (
	"time"

	"github.com/google/uuid"
)

// SalesRep is the authenticated field agent. Every rep is assigned exactly
// one region; orders they create are validated against that region's stock.
type SalesRep struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Phone     string    `gorm:"column:phone;not null"`
	Email     *string   `gorm:"column:email"`
	RegionID  uuid.UUID `gorm:"column:region_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
