package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase records one parts order placed with a supplier.
// SupplierName is free text, not a foreign key.
type Purchase struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseNumber string          `gorm:"uniqueIndex;not null"` // COMP-YYYY-NNN
	SupplierName   string          `gorm:"not null"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalValue     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes          string
	CreatedAt      time.Time

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// PurchaseItem is one line of a purchase. TotalCost = Quantity × UnitCost,
// stored denormalized.
type PurchaseItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	RepairPartID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     int             `gorm:"not null"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	RepairPart *RepairPart `gorm:"foreignKey:RepairPartID"`
}
