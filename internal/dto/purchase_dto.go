package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseItemInput struct {
	RepairPartID string          `json:"repair_part_id" validate:"required"`
	Quantity     int             `json:"quantity" validate:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

type CreatePurchaseRequest struct {
	SupplierName string              `json:"supplier_name" validate:"required"`
	ShippingCost decimal.Decimal     `json:"shipping_cost"`
	Notes        string              `json:"notes"`
	Items        []PurchaseItemInput `json:"items" validate:"required,dive"`
	CreatedAt    *time.Time          `json:"created_at"`
}

type PurchaseItemResponse struct {
	ID           string          `json:"id"`
	RepairPartID string          `json:"repair_part_id"`
	DeviceModel  string          `json:"device_model"`
	PartName     string          `json:"part_name"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

type PurchaseResponse struct {
	ID             string                 `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	SupplierName   string                 `json:"supplier_name"`
	ShippingCost   decimal.Decimal        `json:"shipping_cost"`
	TotalValue     decimal.Decimal        `json:"total_value"`
	Notes          string                 `json:"notes"`
	CreatedAt      *time.Time             `json:"created_at"`
	Items          []PurchaseItemResponse `json:"items"`
}

type CreatePurchaseResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	ID             string `json:"id"`
	PurchaseNumber string `json:"purchase_number"`
}

// PartWithoutCost flags a consumed part whose cost basis was estimated
// (50% of sale price) because cost_price was never set.
type PartWithoutCost struct {
	ID    string          `json:"id"`
	Nome  string          `json:"nome"`
	Preco decimal.Decimal `json:"preco"`
}

// OrderProfitResponse is the read-time profit allocation for one completed
// order: purchase shipping is distributed proportionally to each order's
// share of total part cost.
type OrderProfitResponse struct {
	ID                 string                 `json:"id"`
	OrderNumber        string                 `json:"order_number"`
	ClientName         string                 `json:"client_name"`
	DeviceModel        string                 `json:"device_model"`
	ServiceDescription string                 `json:"service_description"`
	Status             string                 `json:"status"`
	TotalValue         decimal.Decimal        `json:"total_value"`
	CustoPecas         decimal.Decimal        `json:"custo_pecas"`
	CustoServicos      decimal.Decimal        `json:"custo_servicos"`
	FreteProporcional  decimal.Decimal        `json:"frete_proporcional"`
	CustoTotal         decimal.Decimal        `json:"custo_total"`
	Lucro              decimal.Decimal        `json:"lucro"`
	MargemLucro        decimal.Decimal        `json:"margem_lucro"`
	PecasSemCusto      []PartWithoutCost      `json:"pecas_sem_custo"`
	Services           []OrderServiceResponse `json:"services"`
	CreatedAt          *time.Time             `json:"created_at"`
	CompletedAt        *time.Time             `json:"completed_at"`
}

type ProfitReportResponse struct {
	Purchases     []PurchaseResponse    `json:"purchases"`
	ServiceOrders []OrderProfitResponse `json:"service_orders"`
}
