package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateServiceRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"min=0"`
	EstimatedTime *int            `json:"estimated_time"`
	Status        string          `json:"status"`
	CreatedAt     *time.Time      `json:"created_at"`
}

type UpdateServiceRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	EstimatedTime *int             `json:"estimated_time"`
	Status        *string          `json:"status"`
}

type ServiceResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	EstimatedTime *int            `json:"estimated_time"`
	Status        string          `json:"status"`
}
