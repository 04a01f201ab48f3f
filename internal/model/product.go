package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product groups color variations of one catalog item.
// Deleting a product deletes its variations (handled explicitly in the
// repository, never by orphaning the FK).
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Manufacturer  string    `gorm:"not null;default:'Genérico'"`
	Compatibility string    `gorm:"not null;default:'Universal'"`
	Category      string    `gorm:"not null;default:'Capas'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Variations []ColorVariation `gorm:"foreignKey:ProductID"`
	Suppliers  []Supplier       `gorm:"many2many:supplier_products"`
}

// ColorVariation is the stockable SKU level of a product.
// AvailableStock never goes negative; the ledger enforces it, not the schema.
type ColorVariation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ColorName      string    `gorm:"not null"`
	FullSKU        string    `gorm:"column:full_sku;uniqueIndex;not null"`
	VariationPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	AvailableStock int       `gorm:"not null;default:0"`
	MinStockAlert  int       `gorm:"not null;default:10"`
	Status         string    `gorm:"not null;default:'available'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
