package models

import (
	"time"

	"github.com/google/uuid"
)

// Region groups the stores an order can be fulfilled from.
type Region struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Stores    []Store   `gorm:"foreignKey:RegionID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
