package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RepairPart is a stockable physical part, independent of the
// Product/ColorVariation catalog hierarchy.
type RepairPart struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DeviceModel    string          `gorm:"index;not null"`
	PartName       string          `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	AvailableStock int             `gorm:"not null;default:0"`
	MinStockAlert  int             `gorm:"not null;default:5"`
	Status         string          `gorm:"not null;default:'available'"` // available | unavailable
	CreatedAt      time.Time
}
