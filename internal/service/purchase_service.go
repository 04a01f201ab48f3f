package service

import (
	"context"
	"fmt"

	"tecstock/internal/apierror"
	"tecstock/internal/dto"
	"tecstock/internal/infra"
	"tecstock/internal/model"
	"tecstock/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// estimatedCostFactor is applied to the sale price when a consumed part has
// no recorded cost basis.
var estimatedCostFactor = decimal.NewFromFloat(0.5)

var oneHundred = decimal.NewFromInt(100)

// PurchaseService registers supplier purchases and produces the profit
// report. Registering a purchase restocks each part and overwrites its cost
// basis with the latest unit cost.
type PurchaseService interface {
	Create(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.CreatePurchaseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	List(ctx context.Context) ([]dto.PurchaseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ProfitReport(ctx context.Context) (*dto.ProfitReportResponse, error)
}

type purchaseService struct {
	ds     *infra.Datastore
	repo   repository.PurchaseRepository
	parts  repository.RepairPartRepository
	orders repository.OrderRepository
}

func NewPurchaseService(
	ds *infra.Datastore,
	repo repository.PurchaseRepository,
	parts repository.RepairPartRepository,
	orders repository.OrderRepository,
) PurchaseService {
	return &purchaseService{ds: ds, repo: repo, parts: parts, orders: orders}
}

func (s *purchaseService) Create(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.CreatePurchaseResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("a compra deve ter pelo menos um item: %w", apierror.ErrInvalidInput)
	}
	if req.ShippingCost.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("frete não pode ser negativo: %w", apierror.ErrInvalidInput)
	}

	type resolvedItem struct {
		partID   uuid.UUID
		qty      int
		unitCost decimal.Decimal
	}
	resolved := make([]resolvedItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantidade deve ser maior que zero para o item %s: %w",
				item.RepairPartID, apierror.ErrInvalidInput)
		}
		if item.UnitCost.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("custo unitário não pode ser negativo para o item %s: %w",
				item.RepairPartID, apierror.ErrInvalidInput)
		}
		id, err := uuid.Parse(item.RepairPartID)
		if err != nil {
			return nil, fmt.Errorf("repair_part_id %q inválido: %w", item.RepairPartID, apierror.ErrInvalidInput)
		}
		if _, err := s.parts.FindByID(ctx, id); err != nil {
			return nil, fmt.Errorf("peça com ID %s não encontrada: %w", item.RepairPartID, apierror.ErrNotFound)
		}
		resolved = append(resolved, resolvedItem{partID: id, qty: item.Quantity, unitCost: item.UnitCost})
	}

	total := req.ShippingCost
	for _, item := range resolved {
		total = total.Add(item.unitCost.Mul(decimal.NewFromInt(int64(item.qty))))
	}

	purchase := model.Purchase{
		SupplierName: req.SupplierName,
		ShippingCost: req.ShippingCost,
		TotalValue:   total,
		Notes:        req.Notes,
	}
	if req.CreatedAt != nil {
		purchase.CreatedAt = *req.CreatedAt
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, err := s.repo.NextPurchaseNumber(tx)
		if err != nil {
			return err
		}
		purchase.PurchaseNumber = number

		if err := s.repo.CreateTx(tx, &purchase); err != nil {
			return err
		}
		for _, item := range resolved {
			line := model.PurchaseItem{
				PurchaseID:   purchase.ID,
				RepairPartID: item.partID,
				Quantity:     item.qty,
				UnitCost:     item.unitCost,
				TotalCost:    item.unitCost.Mul(decimal.NewFromInt(int64(item.qty))),
			}
			if err := s.repo.AddItemTx(tx, &line); err != nil {
				return err
			}
			// Latest purchase wins: cost basis follows the most recent buy.
			if err := s.parts.RestockTx(tx, item.partID, item.unitCost, item.qty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registrar compra: %w", err)
	}

	log.Info().Str("purchase_number", purchase.PurchaseNumber).
		Str("total", purchase.TotalValue.StringFixed(2)).
		Msg("compra registrada")

	return &dto.CreatePurchaseResponse{
		Status:         "sucesso",
		Message:        "Compra registrada com sucesso",
		ID:             purchase.ID.String(),
		PurchaseNumber: purchase.PurchaseNumber,
	}, nil
}

func (s *purchaseService) Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	purchase, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("compra não encontrada: %w", apierror.ErrNotFound)
	}
	resp := purchaseToResponse(purchase)
	return &resp, nil
}

func (s *purchaseService) List(ctx context.Context) ([]dto.PurchaseResponse, error) {
	if !s.ds.Available() {
		return []dto.PurchaseResponse{}, nil
	}
	purchases, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, purchaseToResponse(&purchases[i]))
	}
	return out, nil
}

// Delete removes the purchase record only. Stock and cost basis already
// absorbed by the parts are left as they are.
func (s *purchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.ds.Available() {
		return apierror.ErrDatastoreUnavailable
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("compra não encontrada: %w", apierror.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}

// ProfitReport allocates purchase shipping across completed orders in
// proportion to each order's share of total purchased part cost, then derives
// profit and margin per order. Parts with no cost basis are estimated at half
// the sale price and reported in pecas_sem_custo.
func (s *purchaseService) ProfitReport(ctx context.Context) (*dto.ProfitReportResponse, error) {
	if !s.ds.Available() {
		return &dto.ProfitReportResponse{
			Purchases:     []dto.PurchaseResponse{},
			ServiceOrders: []dto.OrderProfitResponse{},
		}, nil
	}

	purchases, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	orders, err := s.orders.List(ctx, model.OrderConcluido)
	if err != nil {
		return nil, fmt.Errorf("listar ordens concluídas: %w", err)
	}

	totalShipping := decimal.Zero
	totalPartCost := decimal.Zero
	for _, p := range purchases {
		totalShipping = totalShipping.Add(p.ShippingCost)
		for _, item := range p.Items {
			totalPartCost = totalPartCost.Add(item.TotalCost)
		}
	}

	purchaseResponses := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		purchaseResponses = append(purchaseResponses, purchaseToResponse(&purchases[i]))
	}

	orderResponses := make([]dto.OrderProfitResponse, 0, len(orders))
	for i := range orders {
		orderResponses = append(orderResponses, s.orderProfit(&orders[i], totalShipping, totalPartCost))
	}

	return &dto.ProfitReportResponse{
		Purchases:     purchaseResponses,
		ServiceOrders: orderResponses,
	}, nil
}

func (s *purchaseService) orderProfit(o *model.ServiceOrder, totalShipping, totalPartCost decimal.Decimal) dto.OrderProfitResponse {
	partCost := decimal.Zero
	var withoutCost []dto.PartWithoutCost
	for _, assoc := range o.Parts {
		part := assoc.RepairPart
		if part == nil {
			continue
		}
		qty := decimal.NewFromInt(int64(assoc.Quantity))
		if part.CostPrice.GreaterThan(decimal.Zero) {
			partCost = partCost.Add(part.CostPrice.Mul(qty))
		} else {
			partCost = partCost.Add(part.Price.Mul(estimatedCostFactor).Mul(qty))
			withoutCost = append(withoutCost, dto.PartWithoutCost{
				ID:    part.ID.String(),
				Nome:  fmt.Sprintf("%s - %s", part.DeviceModel, part.PartName),
				Preco: part.Price,
			})
		}
	}

	shipping := decimal.Zero
	if totalPartCost.GreaterThan(decimal.Zero) && partCost.GreaterThan(decimal.Zero) {
		// Multiply before dividing so exact ratios stay exact.
		shipping = partCost.Mul(totalShipping).Div(totalPartCost)
	}

	// Labor has no purchase cost; its margin is whatever the order charges.
	serviceCost := decimal.Zero

	revenue := o.TotalValue
	totalCost := partCost.Add(shipping).Add(serviceCost)
	profit := revenue.Sub(totalCost)
	margin := decimal.Zero
	if revenue.GreaterThan(decimal.Zero) {
		margin = profit.Mul(oneHundred).Div(revenue)
	}

	services := make([]dto.OrderServiceResponse, 0, len(o.Services))
	for _, assoc := range o.Services {
		sr := dto.OrderServiceResponse{Quantity: assoc.Quantity}
		if assoc.Service != nil {
			sr.ID = assoc.Service.ID.String()
			sr.Name = assoc.Service.Name
			sr.Price = assoc.Service.Price
		}
		services = append(services, sr)
	}

	createdAt := o.CreatedAt
	return dto.OrderProfitResponse{
		ID:                 o.ID.String(),
		OrderNumber:        o.OrderNumber,
		ClientName:         o.ClientName,
		DeviceModel:        o.DeviceModel,
		ServiceDescription: o.ServiceDescription,
		Status:             o.Status,
		TotalValue:         revenue,
		CustoPecas:         partCost,
		CustoServicos:      serviceCost,
		FreteProporcional:  shipping,
		CustoTotal:         totalCost,
		Lucro:              profit,
		MargemLucro:        margin,
		PecasSemCusto:      withoutCost,
		Services:           services,
		CreatedAt:          &createdAt,
		CompletedAt:        o.CompletedAt,
	}
}

func purchaseToResponse(p *model.Purchase) dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		ir := dto.PurchaseItemResponse{
			ID:           item.ID.String(),
			RepairPartID: item.RepairPartID.String(),
			Quantity:     item.Quantity,
			UnitCost:     item.UnitCost,
			TotalCost:    item.TotalCost,
		}
		if item.RepairPart != nil {
			ir.DeviceModel = item.RepairPart.DeviceModel
			ir.PartName = item.RepairPart.PartName
		} else {
			ir.DeviceModel = "N/A"
			ir.PartName = "N/A"
		}
		items = append(items, ir)
	}
	createdAt := p.CreatedAt
	return dto.PurchaseResponse{
		ID:             p.ID.String(),
		PurchaseNumber: p.PurchaseNumber,
		SupplierName:   p.SupplierName,
		ShippingCost:   p.ShippingCost,
		TotalValue:     p.TotalValue,
		Notes:          p.Notes,
		CreatedAt:      &createdAt,
		Items:          items,
	}
}
