package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPartInput is one weighted part reference on a service order.
type OrderPartInput struct {
	RepairPartID string `json:"repair_part_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required"`
}

// OrderServiceInput is one weighted labor reference on a service order.
type OrderServiceInput struct {
	ServiceID string `json:"service_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
}

type CreateOrderRequest struct {
	ClientName         string              `json:"client_name" validate:"required"`
	ClientPhone        string              `json:"client_phone"`
	ClientEmail        string              `json:"client_email"`
	DeviceModel        string              `json:"device_model"`
	ServiceDescription string              `json:"service_description"`
	Notes              string              `json:"notes"`
	Parts              []OrderPartInput    `json:"parts" validate:"dive"`
	Services           []OrderServiceInput `json:"services" validate:"dive"`
	CreatedAt          *time.Time          `json:"created_at"`
	CompletedAt        *time.Time          `json:"completed_at"`
}

// UpdateOrderRequest patches only the fields present. A non-nil Parts or
// Services slice replaces the whole association set (delete-then-reinsert),
// even when empty.
type UpdateOrderRequest struct {
	ClientName         *string              `json:"client_name"`
	ClientPhone        *string              `json:"client_phone"`
	ClientEmail        *string              `json:"client_email"`
	DeviceModel        *string              `json:"device_model"`
	ServiceDescription *string              `json:"service_description"`
	Status             *string              `json:"status"`
	Notes              *string              `json:"notes"`
	Parts              *[]OrderPartInput    `json:"parts" validate:"omitempty,dive"`
	Services           *[]OrderServiceInput `json:"services" validate:"omitempty,dive"`
}

type OrderPartResponse struct {
	ID          string          `json:"id"`
	DeviceModel string          `json:"device_model"`
	PartName    string          `json:"part_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type OrderServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type OrderResponse struct {
	ID                 string                 `json:"id"`
	OrderNumber        string                 `json:"order_number"`
	ClientName         string                 `json:"client_name"`
	ClientPhone        string                 `json:"client_phone"`
	ClientEmail        string                 `json:"client_email"`
	DeviceModel        string                 `json:"device_model"`
	ServiceDescription string                 `json:"service_description"`
	Status             string                 `json:"status"`
	TotalValue         decimal.Decimal        `json:"total_value"`
	Notes              string                 `json:"notes"`
	CreatedAt          *time.Time             `json:"created_at"`
	CompletedAt        *time.Time             `json:"completed_at"`
	Parts              []OrderPartResponse    `json:"parts"`
	Services           []OrderServiceResponse `json:"services"`
}

type CreateOrderResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
}
