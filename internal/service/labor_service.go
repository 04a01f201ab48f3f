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
)

// LaborService manages the catalog of offered services (labor, not parts).
type LaborService interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	List(ctx context.Context, status string) ([]dto.ServiceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type laborService struct {
	ds   *infra.Datastore
	repo repository.ServiceRepository
}

func NewLaborService(ds *infra.Datastore, repo repository.ServiceRepository) LaborService {
	return &laborService{ds: ds, repo: repo}
}

func (s *laborService) Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	svc := model.Service{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		EstimatedTime: req.EstimatedTime,
		Status:        req.Status,
	}
	if svc.Status == "" {
		svc.Status = "active"
	}
	if req.CreatedAt != nil {
		svc.CreatedAt = *req.CreatedAt
	}
	if err := s.repo.Create(ctx, &svc); err != nil {
		return nil, fmt.Errorf("criar serviço: %w", err)
	}
	resp := serviceToResponse(&svc)
	return &resp, nil
}

func (s *laborService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("serviço não encontrado: %w", apierror.ErrNotFound)
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.EstimatedTime != nil {
		svc.EstimatedTime = req.EstimatedTime
	}
	if req.Status != nil {
		svc.Status = *req.Status
	}
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("atualizar serviço: %w", err)
	}
	resp := serviceToResponse(svc)
	return &resp, nil
}

func (s *laborService) Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("serviço não encontrado: %w", apierror.ErrNotFound)
	}
	resp := serviceToResponse(svc)
	return &resp, nil
}

func (s *laborService) List(ctx context.Context, status string) ([]dto.ServiceResponse, error) {
	if !s.ds.Available() {
		return []dto.ServiceResponse{}, nil
	}
	services, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listar serviços: %w", err)
	}
	out := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, serviceToResponse(&services[i]))
	}
	return out, nil
}

func (s *laborService) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.ds.Available() {
		return apierror.ErrDatastoreUnavailable
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("serviço não encontrado: %w", apierror.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}

func serviceToResponse(s *model.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		Description:   s.Description,
		Price:         s.Price,
		EstimatedTime: s.EstimatedTime,
		Status:        s.Status,
	}
}
