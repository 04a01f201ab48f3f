package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateRepairPartRequest struct {
	DeviceModel    string           `json:"device_model" validate:"required"`
	PartName       string           `json:"part_name" validate:"required"`
	Price          decimal.Decimal  `json:"price" validate:"min=0"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	AvailableStock *int             `json:"available_stock"`
	MinStockAlert  *int             `json:"min_stock_alert"`
	CreatedAt      *time.Time       `json:"created_at"`
}

type UpdateRepairPartRequest struct {
	DeviceModel    *string          `json:"device_model"`
	PartName       *string          `json:"part_name"`
	Price          *decimal.Decimal `json:"price"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	AvailableStock *int             `json:"available_stock"`
	MinStockAlert  *int             `json:"min_stock_alert"`
	Status         *string          `json:"status"`
}

// UpdatePartCostRequest sets the cost basis directly (finance screen).
type UpdatePartCostRequest struct {
	CostPrice decimal.Decimal `json:"cost_price" validate:"min=0"`
}

type RepairPartResponse struct {
	ID             string          `json:"id"`
	DeviceModel    string          `json:"device_model"`
	PartName       string          `json:"part_name"`
	Price          decimal.Decimal `json:"price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	AvailableStock int             `json:"available_stock"`
	MinStockAlert  int             `json:"min_stock_alert"`
	Status         string          `json:"status"`
}
