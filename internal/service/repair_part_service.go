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
	"github.com/shopspring/decimal"
)

type RepairPartService interface {
	Create(ctx context.Context, req dto.CreateRepairPartRequest) (*dto.RepairPartResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateRepairPartRequest) (*dto.RepairPartResponse, error)
	UpdateCost(ctx context.Context, id uuid.UUID, req dto.UpdatePartCostRequest) (*dto.RepairPartResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RepairPartResponse, error)
	List(ctx context.Context, status string) ([]dto.RepairPartResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repairPartService struct {
	ds   *infra.Datastore
	repo repository.RepairPartRepository
}

func NewRepairPartService(ds *infra.Datastore, repo repository.RepairPartRepository) RepairPartService {
	return &repairPartService{ds: ds, repo: repo}
}

func (s *repairPartService) Create(ctx context.Context, req dto.CreateRepairPartRequest) (*dto.RepairPartResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	part := model.RepairPart{
		DeviceModel:   req.DeviceModel,
		PartName:      req.PartName,
		Price:         req.Price,
		MinStockAlert: 5,
		Status:        "available",
	}
	if req.CostPrice != nil {
		part.CostPrice = *req.CostPrice
	}
	if req.AvailableStock != nil {
		part.AvailableStock = *req.AvailableStock
	}
	if req.MinStockAlert != nil {
		part.MinStockAlert = *req.MinStockAlert
	}
	if req.CreatedAt != nil {
		part.CreatedAt = *req.CreatedAt
	}
	if err := s.repo.Create(ctx, &part); err != nil {
		return nil, fmt.Errorf("criar peça: %w", err)
	}
	resp := repairPartToResponse(&part)
	return &resp, nil
}

func (s *repairPartService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRepairPartRequest) (*dto.RepairPartResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	part, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("peça não encontrada: %w", apierror.ErrNotFound)
	}
	if req.DeviceModel != nil {
		part.DeviceModel = *req.DeviceModel
	}
	if req.PartName != nil {
		part.PartName = *req.PartName
	}
	if req.Price != nil {
		part.Price = *req.Price
	}
	if req.CostPrice != nil {
		part.CostPrice = *req.CostPrice
	}
	if req.AvailableStock != nil {
		part.AvailableStock = *req.AvailableStock
	}
	if req.MinStockAlert != nil {
		part.MinStockAlert = *req.MinStockAlert
	}
	if req.Status != nil {
		part.Status = *req.Status
	}
	if err := s.repo.Update(ctx, part); err != nil {
		return nil, fmt.Errorf("atualizar peça: %w", err)
	}
	resp := repairPartToResponse(part)
	return &resp, nil
}

func (s *repairPartService) UpdateCost(ctx context.Context, id uuid.UUID, req dto.UpdatePartCostRequest) (*dto.RepairPartResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	if req.CostPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("custo não pode ser negativo: %w", apierror.ErrInvalidInput)
	}
	part, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("peça não encontrada: %w", apierror.ErrNotFound)
	}
	if err := s.repo.UpdateCost(ctx, id, req.CostPrice); err != nil {
		return nil, fmt.Errorf("atualizar custo: %w", err)
	}
	part.CostPrice = req.CostPrice
	resp := repairPartToResponse(part)
	return &resp, nil
}

func (s *repairPartService) Get(ctx context.Context, id uuid.UUID) (*dto.RepairPartResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	part, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("peça não encontrada: %w", apierror.ErrNotFound)
	}
	resp := repairPartToResponse(part)
	return &resp, nil
}

func (s *repairPartService) List(ctx context.Context, status string) ([]dto.RepairPartResponse, error) {
	if !s.ds.Available() {
		return []dto.RepairPartResponse{}, nil
	}
	parts, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listar peças: %w", err)
	}
	out := make([]dto.RepairPartResponse, 0, len(parts))
	for i := range parts {
		out = append(out, repairPartToResponse(&parts[i]))
	}
	return out, nil
}

func (s *repairPartService) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.ds.Available() {
		return apierror.ErrDatastoreUnavailable
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("peça não encontrada: %w", apierror.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}

func repairPartToResponse(p *model.RepairPart) dto.RepairPartResponse {
	return dto.RepairPartResponse{
		ID:             p.ID.String(),
		DeviceModel:    p.DeviceModel,
		PartName:       p.PartName,
		Price:          p.Price,
		CostPrice:      p.CostPrice,
		AvailableStock: p.AvailableStock,
		MinStockAlert:  p.MinStockAlert,
		Status:         p.Status,
	}
}
