package service

import (
	"context"
	"strings"

	"tecstock/internal/dto"
	"tecstock/internal/infra"
	"tecstock/internal/model"
	"tecstock/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DashboardService assembles the store-wide KPI snapshot. Each metric is
// computed independently; a failing query zeroes that metric instead of
// failing the whole page.
type DashboardService interface {
	Snapshot(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	ds        *infra.Datastore
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
}

func NewDashboardService(ds *infra.Datastore, products repository.ProductRepository, suppliers repository.SupplierRepository) DashboardService {
	return &dashboardService{ds: ds, products: products, suppliers: suppliers}
}

func emptyDashboard() *dto.DashboardResponse {
	return &dto.DashboardResponse{
		Dados: dto.DashboardCards{
			ValorEstoque:      "R$ 0,00",
			LucroPotencial:    "R$ 0,00",
			MargemMedia:       "0",
			PercentualEstoque: "0,0",
		},
		ProdutosCriticos: []dto.CriticalStockRow{},
		TodosProdutos:    []dto.ProductSummaryRow{},
		Fornecedores:     []dto.SupplierResponse{},
	}
}

// formatCurrency renders Brazilian short-form currency: exact cents below a
// thousand, "R$ 1,5k" style above.
func formatCurrency(v decimal.Decimal) string {
	if v.IsZero() {
		return "R$ 0,00"
	}
	thousand := decimal.NewFromInt(1000)
	if v.GreaterThanOrEqual(thousand) {
		short := v.Div(thousand).StringFixed(1)
		return "R$ " + strings.ReplaceAll(short, ".", ",") + "k"
	}
	return "R$ " + strings.ReplaceAll(v.StringFixed(2), ".", ",")
}

func (s *dashboardService) Snapshot(ctx context.Context) (*dto.DashboardResponse, error) {
	if !s.ds.Available() {
		return emptyDashboard(), nil
	}

	resp := emptyDashboard()

	variations, err := s.products.ListVariations(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: falha ao carregar variações")
		variations = nil
	}

	if count, err := s.products.CountVariations(ctx); err == nil {
		resp.Dados.TotalSKUs = int(count)
	} else {
		log.Error().Err(err).Msg("dashboard: falha ao contar SKUs")
	}

	stockValue := decimal.Zero
	potentialProfit := decimal.Zero
	marginSum := decimal.Zero
	marginCount := 0
	withStock := 0
	for _, v := range variations {
		qty := decimal.NewFromInt(int64(v.AvailableStock))
		stockValue = stockValue.Add(v.VariationPrice.Mul(qty))
		potentialProfit = potentialProfit.Add(v.VariationPrice.Sub(v.CostPrice).Mul(qty))
		if v.VariationPrice.GreaterThan(decimal.Zero) {
			margin := v.VariationPrice.Sub(v.CostPrice).Mul(oneHundred).Div(v.VariationPrice)
			marginSum = marginSum.Add(margin)
			marginCount++
		}
		if v.AvailableStock > 0 {
			withStock++
		}

		switch {
		case v.AvailableStock <= v.MinStockAlert:
			resp.Dados.QtdCriticos++
		case v.MinStockAlert > 0 && v.AvailableStock == v.MinStockAlert+1:
			resp.Dados.QtdBaixos++
		}
		if v.AvailableStock == 0 {
			resp.Dados.QtdZerados++
		}
	}

	resp.Dados.ValorEstoque = formatCurrency(stockValue)
	resp.Dados.LucroPotencial = formatCurrency(potentialProfit)
	resp.Dados.AlertasCriticos = resp.Dados.QtdCriticos
	resp.Dados.QtdReposicaoUrgent = resp.Dados.QtdCriticos
	if marginCount > 0 {
		avg := marginSum.Div(decimal.NewFromInt(int64(marginCount)))
		if avg.GreaterThan(decimal.Zero) {
			resp.Dados.MargemMedia = avg.StringFixed(0)
		}
	}
	if resp.Dados.TotalSKUs > 0 && withStock > 0 {
		pct := decimal.NewFromInt(int64(withStock)).Mul(oneHundred).
			Div(decimal.NewFromInt(int64(resp.Dados.TotalSKUs)))
		resp.Dados.PercentualEstoque = pct.StringFixed(1)
	}

	resp.ProdutosCriticos = criticalRows(variations)

	if products, err := s.products.List(ctx); err == nil {
		resp.TodosProdutos = summaryRows(products)
	} else {
		log.Error().Err(err).Msg("dashboard: falha ao listar produtos")
	}

	if suppliers, err := s.suppliers.List(ctx); err == nil {
		for i := range suppliers {
			resp.Fornecedores = append(resp.Fornecedores, supplierToResponse(&suppliers[i]))
		}
	} else {
		log.Error().Err(err).Msg("dashboard: falha ao listar fornecedores")
	}

	return resp, nil
}

func criticalRows(variations []model.ColorVariation) []dto.CriticalStockRow {
	rows := []dto.CriticalStockRow{}
	for _, v := range variations {
		critical := v.AvailableStock <= v.MinStockAlert
		low := v.AvailableStock == v.MinStockAlert+1
		if !critical && !low {
			continue
		}
		status := "Crítico"
		if low {
			status = "Baixo"
		}
		productName := "N/A"
		if v.Product != nil && v.Product.Name != "" {
			productName = v.Product.Name
		}
		sku := v.FullSKU
		if sku == "" {
			sku = "N/A"
		}
		rows = append(rows, dto.CriticalStockRow{
			SKU:     sku,
			Produto: productName,
			Cor:     v.ColorName,
			Estoque: v.AvailableStock,
			Minimo:  v.MinStockAlert,
			Status:  status,
		})
	}
	return rows
}

func summaryRows(products []model.Product) []dto.ProductSummaryRow {
	rows := make([]dto.ProductSummaryRow, 0, len(products))
	for _, p := range products {
		total := 0
		for _, v := range p.Variations {
			total += v.AvailableStock
		}
		base := decimal.Zero
		if len(p.Variations) > 0 {
			base = p.Variations[0].VariationPrice
		}
		rows = append(rows, dto.ProductSummaryRow{
			ID:             p.ID.String(),
			Nome:           p.Name,
			Fabricante:     p.Manufacturer,
			Categoria:      p.Category,
			TotalVariacoes: len(p.Variations),
			EstoqueTotal:   total,
			PrecoBase:      base,
		})
	}
	return rows
}
