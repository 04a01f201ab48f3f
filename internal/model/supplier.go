package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier holds the contact data of a parts/catalog source.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"uniqueIndex;not null"`
	Email         *string
	Phone         *string
	ContactPerson *string
	Observations  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Products this supplier sources — plain membership, no ordering.
	Products []Product `gorm:"many2many:supplier_products"`
}
