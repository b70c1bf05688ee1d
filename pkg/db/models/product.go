package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item. PackSize overrides the category default when
// set; quantity validation resolves product > category > 1.
type Product struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string     `gorm:"column:name;not null"`
	PackSize   *int       `gorm:"column:pack_size"`
	CategoryID *uuid.UUID `gorm:"column:category_id;type:uuid"`
	Category   *Category  `gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
