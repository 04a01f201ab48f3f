package dto

import "time"

// CreateMovementRequest applies one stock movement to the variation
// identified by SKU. Quantity is always positive; the kind decides the sign.
type CreateMovementRequest struct {
	SKU          string `json:"sku" validate:"required"`
	MovementType string `json:"movement_type" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required"`
	Reason       string `json:"reason"`
}

type MovementResponse struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	ProductName   string    `json:"product_name"`
	ColorName     string    `json:"color_name"`
	MovementType  string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}

type ApplyMovementResponse struct {
	Status      string `json:"status"`
	NovoEstoque int    `json:"novo_estoque"`
}
