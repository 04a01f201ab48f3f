package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service order statuses. em_andamento is the only initial state;
// concluido and cancelado are terminal.
const (
	OrderEmAndamento = "em_andamento"
	OrderConcluido   = "concluido"
	OrderCancelado   = "cancelado"
)

// ServiceOrder aggregates the parts consumed and labor performed for one
// client/device. TotalValue is denormalized and re-derived on every
// part/service change.
type ServiceOrder struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber        string          `gorm:"uniqueIndex;not null"` // OS-YYYY-NNN
	ClientName         string          `gorm:"not null"`
	ClientPhone        string
	ClientEmail        string
	DeviceModel        string
	ServiceDescription string
	Status             string          `gorm:"not null;default:'em_andamento'"`
	TotalValue         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes              string
	CreatedAt          time.Time
	CompletedAt        *time.Time

	Parts    []ServiceOrderPart    `gorm:"foreignKey:ServiceOrderID"`
	Services []ServiceOrderService `gorm:"foreignKey:ServiceOrderID"`
}

// ServiceOrderPart is the weighted order↔part association. The quantity
// attribute makes it a real entity rather than a bare join relation.
type ServiceOrderPart struct {
	ServiceOrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RepairPartID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity       int       `gorm:"not null;default:1"`

	RepairPart *RepairPart `gorm:"foreignKey:RepairPartID"`
}

func (ServiceOrderPart) TableName() string { return "service_order_parts" }

// ServiceOrderService is the weighted order↔service association.
type ServiceOrderService struct {
	ServiceOrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity       int       `gorm:"not null;default:1"`

	Service *Service `gorm:"foreignKey:ServiceID"`
}

func (ServiceOrderService) TableName() string { return "service_order_services" }
