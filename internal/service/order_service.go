package service

import (
	"context"
	"fmt"
	"time"

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

type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) error
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, status string) ([]dto.OrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	ds       *infra.Datastore
	repo     repository.OrderRepository
	parts    repository.RepairPartRepository
	services repository.ServiceRepository
}

func NewOrderService(
	ds *infra.Datastore,
	repo repository.OrderRepository,
	parts repository.RepairPartRepository,
	services repository.ServiceRepository,
) OrderService {
	return &orderService{ds: ds, repo: repo, parts: parts, services: services}
}

type resolvedPart struct {
	part *model.RepairPart
	qty  int
}

type resolvedService struct {
	svc *model.Service
	qty int
}

// resolveParts validates the part lines before any mutation: each part must
// exist, be available, and when checkStock is set its balance must cover the
// requested quantity.
func (s *orderService) resolveParts(ctx context.Context, inputs []dto.OrderPartInput, checkStock bool) ([]resolvedPart, error) {
	resolved := make([]resolvedPart, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("quantidade deve ser maior que zero para a peça %s: %w",
				in.RepairPartID, apierror.ErrInvalidInput)
		}
		id, err := uuid.Parse(in.RepairPartID)
		if err != nil {
			return nil, fmt.Errorf("repair_part_id %q inválido: %w", in.RepairPartID, apierror.ErrInvalidInput)
		}
		part, err := s.parts.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("peça com ID %s não encontrada: %w", in.RepairPartID, apierror.ErrNotFound)
		}
		if checkStock {
			if part.Status != "available" {
				return nil, fmt.Errorf("peça %s - %s não está disponível: %w",
					part.DeviceModel, part.PartName, apierror.ErrInvalidInput)
			}
			if part.AvailableStock < in.Quantity {
				return nil, fmt.Errorf("estoque insuficiente para a peça %s - %s. Disponível: %d, Solicitado: %d: %w",
					part.DeviceModel, part.PartName, part.AvailableStock, in.Quantity, apierror.ErrInsufficientStock)
			}
		}
		resolved = append(resolved, resolvedPart{part: part, qty: in.Quantity})
	}
	return resolved, nil
}

func (s *orderService) resolveServices(ctx context.Context, inputs []dto.OrderServiceInput, checkActive bool) ([]resolvedService, error) {
	resolved := make([]resolvedService, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("quantidade deve ser maior que zero para o serviço %s: %w",
				in.ServiceID, apierror.ErrInvalidInput)
		}
		id, err := uuid.Parse(in.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("service_id %q inválido: %w", in.ServiceID, apierror.ErrInvalidInput)
		}
		svc, err := s.services.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("serviço com ID %s não encontrado: %w", in.ServiceID, apierror.ErrNotFound)
		}
		if checkActive && svc.Status != "active" {
			return nil, fmt.Errorf("serviço %s não está ativo: %w", svc.Name, apierror.ErrInvalidInput)
		}
		resolved = append(resolved, resolvedService{svc: svc, qty: in.Quantity})
	}
	return resolved, nil
}

func lineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}

	// Pre-flight validation runs before the transaction so a rejected order
	// never touches stock.
	parts, err := s.resolveParts(ctx, req.Parts, true)
	if err != nil {
		return nil, err
	}
	services, err := s.resolveServices(ctx, req.Services, true)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, rp := range parts {
		total = total.Add(lineTotal(rp.part.Price, rp.qty))
	}
	for _, rs := range services {
		total = total.Add(lineTotal(rs.svc.Price, rs.qty))
	}

	order := model.ServiceOrder{
		ClientName:         req.ClientName,
		ClientPhone:        req.ClientPhone,
		ClientEmail:        req.ClientEmail,
		DeviceModel:        req.DeviceModel,
		ServiceDescription: req.ServiceDescription,
		Status:             model.OrderEmAndamento,
		TotalValue:         total,
		Notes:              req.Notes,
		CompletedAt:        req.CompletedAt,
	}
	if req.CreatedAt != nil {
		order.CreatedAt = *req.CreatedAt
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, err := s.repo.NextOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if err := s.repo.CreateTx(tx, &order); err != nil {
			return err
		}

		partAssocs := make([]model.ServiceOrderPart, 0, len(parts))
		for _, rp := range parts {
			partAssocs = append(partAssocs, model.ServiceOrderPart{
				ServiceOrderID: order.ID,
				RepairPartID:   rp.part.ID,
				Quantity:       rp.qty,
			})
		}
		if err := s.repo.ReplacePartsTx(tx, order.ID, partAssocs); err != nil {
			return err
		}
		for _, rp := range parts {
			if err := s.parts.ConsumeStockTx(tx, rp.part.ID, rp.qty); err != nil {
				return err
			}
		}
		serviceAssocs := make([]model.ServiceOrderService, 0, len(services))
		for _, rs := range services {
			serviceAssocs = append(serviceAssocs, model.ServiceOrderService{
				ServiceOrderID: order.ID,
				ServiceID:      rs.svc.ID,
				Quantity:       rs.qty,
			})
		}
		return s.repo.ReplaceServicesTx(tx, order.ID, serviceAssocs)
	})
	if err != nil {
		return nil, fmt.Errorf("criar ordem de serviço: %w", err)
	}

	log.Info().Str("order_number", order.OrderNumber).
		Str("total", order.TotalValue.StringFixed(2)).
		Msg("ordem de serviço criada")

	return &dto.CreateOrderResponse{
		Status:      "sucesso",
		Message:     "Ordem de serviço criada com sucesso",
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
	}, nil
}

// Update patches the order header and optionally replaces the part/service
// sets. Stock is not re-adjusted here; only order creation consumes stock.
// The total is re-derived whenever either association set changes, combining
// the incoming side with whatever is already persisted on the other side.
func (s *orderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) error {
	if !s.ds.Available() {
		return apierror.ErrDatastoreUnavailable
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ordem de serviço não encontrada: %w", apierror.ErrNotFound)
	}

	if req.ClientName != nil {
		order.ClientName = *req.ClientName
	}
	if req.ClientPhone != nil {
		order.ClientPhone = *req.ClientPhone
	}
	if req.ClientEmail != nil {
		order.ClientEmail = *req.ClientEmail
	}
	if req.DeviceModel != nil {
		order.DeviceModel = *req.DeviceModel
	}
	if req.ServiceDescription != nil {
		order.ServiceDescription = *req.ServiceDescription
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if req.Status != nil {
		order.Status = *req.Status
		// Completion timestamp is stamped once and never overwritten.
		if *req.Status == model.OrderConcluido && order.CompletedAt == nil {
			now := time.Now().UTC()
			order.CompletedAt = &now
		}
	}

	// Replacement sets only require existence, matching the looser contract
	// of order edition (availability and stock were checked at creation).
	var newParts []resolvedPart
	if req.Parts != nil {
		newParts, err = s.resolveParts(ctx, *req.Parts, false)
		if err != nil {
			return err
		}
	}
	var newServices []resolvedService
	if req.Services != nil {
		newServices, err = s.resolveServices(ctx, *req.Services, false)
		if err != nil {
			return err
		}
	}

	if req.Parts != nil || req.Services != nil {
		partsTotal := decimal.Zero
		if req.Parts != nil {
			for _, rp := range newParts {
				partsTotal = partsTotal.Add(lineTotal(rp.part.Price, rp.qty))
			}
		} else {
			for _, assoc := range order.Parts {
				if assoc.RepairPart != nil {
					partsTotal = partsTotal.Add(lineTotal(assoc.RepairPart.Price, assoc.Quantity))
				}
			}
		}
		servicesTotal := decimal.Zero
		if req.Services != nil {
			for _, rs := range newServices {
				servicesTotal = servicesTotal.Add(lineTotal(rs.svc.Price, rs.qty))
			}
		} else {
			for _, assoc := range order.Services {
				if assoc.Service != nil {
					servicesTotal = servicesTotal.Add(lineTotal(assoc.Service.Price, assoc.Quantity))
				}
			}
		}
		order.TotalValue = partsTotal.Add(servicesTotal)
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.Parts != nil {
			assocs := make([]model.ServiceOrderPart, 0, len(newParts))
			for _, rp := range newParts {
				assocs = append(assocs, model.ServiceOrderPart{
					ServiceOrderID: order.ID,
					RepairPartID:   rp.part.ID,
					Quantity:       rp.qty,
				})
			}
			if err := s.repo.ReplacePartsTx(tx, order.ID, assocs); err != nil {
				return err
			}
		}
		if req.Services != nil {
			assocs := make([]model.ServiceOrderService, 0, len(newServices))
			for _, rs := range newServices {
				assocs = append(assocs, model.ServiceOrderService{
					ServiceOrderID: order.ID,
					ServiceID:      rs.svc.ID,
					Quantity:       rs.qty,
				})
			}
			if err := s.repo.ReplaceServicesTx(tx, order.ID, assocs); err != nil {
				return err
			}
		}
		return s.repo.UpdateTx(tx, order)
	})
	if err != nil {
		return fmt.Errorf("atualizar ordem de serviço: %w", err)
	}
	return nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ordem de serviço não encontrada: %w", apierror.ErrNotFound)
	}
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, status string) ([]dto.OrderResponse, error) {
	if !s.ds.Available() {
		return []dto.OrderResponse{}, nil
	}
	orders, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listar ordens de serviço: %w", err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderToResponse(&orders[i]))
	}
	return out, nil
}

// Delete removes the order and its associations. Consumed stock is not
// restored; cancellation is an accounting decision, not a stock event.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.ds.Available() {
		return apierror.ErrDatastoreUnavailable
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("ordem de serviço não encontrada: %w", apierror.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}

func orderToResponse(o *model.ServiceOrder) dto.OrderResponse {
	parts := make([]dto.OrderPartResponse, 0, len(o.Parts))
	for _, assoc := range o.Parts {
		pr := dto.OrderPartResponse{Quantity: assoc.Quantity}
		if assoc.RepairPart != nil {
			pr.ID = assoc.RepairPart.ID.String()
			pr.DeviceModel = assoc.RepairPart.DeviceModel
			pr.PartName = assoc.RepairPart.PartName
			pr.Price = assoc.RepairPart.Price
		}
		parts = append(parts, pr)
	}
	services := make([]dto.OrderServiceResponse, 0, len(o.Services))
	for _, assoc := range o.Services {
		sr := dto.OrderServiceResponse{Quantity: assoc.Quantity}
		if assoc.Service != nil {
			sr.ID = assoc.Service.ID.String()
			sr.Name = assoc.Service.Name
			sr.Description = assoc.Service.Description
			sr.Price = assoc.Service.Price
		}
		services = append(services, sr)
	}
	createdAt := o.CreatedAt
	return dto.OrderResponse{
		ID:                 o.ID.String(),
		OrderNumber:        o.OrderNumber,
		ClientName:         o.ClientName,
		ClientPhone:        o.ClientPhone,
		ClientEmail:        o.ClientEmail,
		DeviceModel:        o.DeviceModel,
		ServiceDescription: o.ServiceDescription,
		Status:             o.Status,
		TotalValue:         o.TotalValue,
		Notes:              o.Notes,
		CreatedAt:          &createdAt,
		CompletedAt:        o.CompletedAt,
		Parts:              parts,
		Services:           services,
	}
}
