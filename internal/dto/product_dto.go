package dto

import (
	"github.com/shopspring/decimal"
)

// VariationInput carries one color variation on product create/update.
// The form historically sent price/cost/stock while the API documented
// variation_price/cost_price/available_stock; Resolve collapses the
// precedence (variation_price > price, cost_price > cost,
// available_stock > stock) into one canonical struct so no use site
// re-resolves it.
type VariationInput struct {
	ID             string           `json:"id"` // empty for new variations on update
	ColorName      string           `json:"color_name" validate:"required"`
	FullSKU        string           `json:"full_sku"` // generated when empty
	VariationPrice *decimal.Decimal `json:"variation_price"`
	Price          *decimal.Decimal `json:"price"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	Cost           *decimal.Decimal `json:"cost"`
	AvailableStock *int             `json:"available_stock"`
	Stock          *int             `json:"stock"`
	MinStockAlert  *int             `json:"min_stock_alert"`
}

// ResolvedVariation is the canonical command form of VariationInput.
type ResolvedVariation struct {
	ID            string
	ColorName     string
	FullSKU       string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	Stock         int
	MinStockAlert int
}

func (v VariationInput) Resolve() ResolvedVariation {
	out := ResolvedVariation{
		ID:            v.ID,
		ColorName:     v.ColorName,
		FullSKU:       v.FullSKU,
		MinStockAlert: 10,
	}
	switch {
	case v.VariationPrice != nil:
		out.Price = *v.VariationPrice
	case v.Price != nil:
		out.Price = *v.Price
	}
	switch {
	case v.CostPrice != nil:
		out.Cost = *v.CostPrice
	case v.Cost != nil:
		out.Cost = *v.Cost
	}
	switch {
	case v.AvailableStock != nil:
		out.Stock = *v.AvailableStock
	case v.Stock != nil:
		out.Stock = *v.Stock
	}
	if v.MinStockAlert != nil {
		out.MinStockAlert = *v.MinStockAlert
	}
	return out
}

type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required"`
	Manufacturer  string           `json:"manufacturer"`
	Compatibility string           `json:"compatibility"`
	Category      string           `json:"category"`
	Colors        []VariationInput `json:"colors" validate:"dive"`
}

type UpdateProductRequest struct {
	Name          string           `json:"name" validate:"required"`
	Manufacturer  string           `json:"manufacturer"`
	Compatibility string           `json:"compatibility"`
	Category      string           `json:"category"`
	Colors        []VariationInput `json:"colors" validate:"dive"`
}

type VariationResponse struct {
	ID             string          `json:"id"`
	ColorName      string          `json:"color_name"`
	FullSKU        string          `json:"full_sku"`
	VariationPrice decimal.Decimal `json:"variation_price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	AvailableStock int             `json:"available_stock"`
	MinStockAlert  int             `json:"min_stock_alert"`
}

type ProductResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Manufacturer  string              `json:"manufacturer"`
	Compatibility string              `json:"compatibility"`
	Category      string              `json:"category"`
	Variations    []VariationResponse `json:"variations"`
}

// CreatedVariation echoes the id/sku assigned to each new variation.
type CreatedVariation struct {
	ID        string `json:"id"`
	SKU       string `json:"sku"`
	ColorName string `json:"color_name"`
}

type CreateProductResponse struct {
	Status     string             `json:"status"`
	ID         string             `json:"id"`
	Variations []CreatedVariation `json:"variacoes"`
}
