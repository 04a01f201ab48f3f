package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement kinds accepted by the ledger.
const (
	MovementEntrada = "entrada"
	MovementSaida   = "saida"
	MovementAjuste  = "ajuste"
)

// StockMovement is the immutable audit record of one balance change.
// PreviousStock/NewStock are snapshots taken inside the same transaction
// that updated the variation; rows are never updated or deleted.
type StockMovement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VariationID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MovementType  string    `gorm:"not null"`
	Quantity      int       `gorm:"not null"`
	PreviousStock int       `gorm:"not null"`
	NewStock      int       `gorm:"not null"`
	Reason        string
	CreatedAt     time.Time

	Variation *ColorVariation `gorm:"foreignKey:VariationID"`
}
