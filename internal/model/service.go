package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a non-stockable labor offering (troca de tela, formatação…).
type Service struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"index;not null"`
	Description   string
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EstimatedTime *int            // minutes, optional
	Status        string          `gorm:"not null;default:'active'"` // active | inactive
	CreatedAt     time.Time
}
