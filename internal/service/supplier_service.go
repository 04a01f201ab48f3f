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

type SupplierService interface {
	Create(ctx context.Context, req dto.SupplierRequest) (*dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SupplierRequest) (*dto.SupplierResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	ds       *infra.Datastore
	repo     repository.SupplierRepository
	products repository.ProductRepository
}

func NewSupplierService(ds *infra.Datastore, repo repository.SupplierRepository, products repository.ProductRepository) SupplierService {
	return &supplierService{ds: ds, repo: repo, products: products}
}

func (s *supplierService) resolveProducts(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("product_id %q inválido: %w", raw, apierror.ErrInvalidInput)
		}
		parsed = append(parsed, id)
	}
	return s.products.FindByIDs(ctx, parsed)
}

func (s *supplierService) Create(ctx context.Context, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	products, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	supplier := model.Supplier{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		ContactPerson: req.ContactPerson,
		Observations:  req.Observations,
		Products:      products,
	}
	if err := s.repo.Create(ctx, &supplier); err != nil {
		return nil, fmt.Errorf("criar fornecedor: %w", err)
	}
	resp := supplierToResponse(&supplier)
	return &resp, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fornecedor não encontrado: %w", apierror.ErrNotFound)
	}
	supplier.Name = req.Name
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.ContactPerson = req.ContactPerson
	supplier.Observations = req.Observations

	products, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	if req.ProductIDs != nil {
		if err := s.repo.ReplaceProducts(ctx, supplier, products); err != nil {
			return nil, fmt.Errorf("vincular produtos: %w", err)
		}
		supplier.Products = products
	}

	// Save only the scalar columns; the association was handled above.
	toSave := *supplier
	toSave.Products = nil
	if err := s.repo.Update(ctx, &toSave); err != nil {
		return nil, fmt.Errorf("atualizar fornecedor: %w", err)
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fornecedor não encontrado: %w", apierror.ErrNotFound)
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	if !s.ds.Available() {
		return []dto.SupplierResponse{}, nil
	}
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar fornecedores: %w", err)
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, supplierToResponse(&suppliers[i]))
	}
	return out, nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.ds.Available() {
		return apierror.ErrDatastoreUnavailable
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("fornecedor não encontrado: %w", apierror.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func supplierToResponse(s *model.Supplier) dto.SupplierResponse {
	productIDs := make([]string, 0, len(s.Products))
	for _, p := range s.Products {
		productIDs = append(productIDs, p.ID.String())
	}
	return dto.SupplierResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		Email:         deref(s.Email),
		Phone:         deref(s.Phone),
		ContactPerson: deref(s.ContactPerson),
		Observations:  deref(s.Observations),
		ProductIDs:    productIDs,
	}
}
