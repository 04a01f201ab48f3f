package service

import (
	"context"
	"fmt"
	"strings"

	"tecstock/internal/apierror"
	"tecstock/internal/dto"
	"tecstock/internal/infra"
	"tecstock/internal/model"
	"tecstock/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.CreateProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.CreateProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	ds   *infra.Datastore
	repo repository.ProductRepository
}

func NewProductService(ds *infra.Datastore, repo repository.ProductRepository) ProductService {
	return &productService{ds: ds, repo: repo}
}

// abbrev takes up to the first three characters, uppercased. Rune-based so
// accented names do not get split mid-character.
func abbrev(s, fallback string) string {
	if s == "" {
		return fallback
	}
	r := []rune(s)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

// generateSKU builds CAT-PROD-COR from the category, product and color
// abbreviations, probing the catalog and appending -N until unique.
func (s *productService) generateSKU(ctx context.Context, category, productName, colorName string) (string, error) {
	base := fmt.Sprintf("%s-%s-%s", abbrev(category, "CAP"), abbrev(productName, ""), abbrev(colorName, ""))
	base = strings.ReplaceAll(base, " ", "-")

	candidate := base
	for counter := 1; ; counter++ {
		exists, err := s.repo.SKUExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

func productDefaults(name, manufacturer, compatibility, category string) model.Product {
	p := model.Product{
		Name:          name,
		Manufacturer:  manufacturer,
		Compatibility: compatibility,
		Category:      category,
	}
	if p.Manufacturer == "" {
		p.Manufacturer = "Genérico"
	}
	if p.Compatibility == "" {
		p.Compatibility = "Universal"
	}
	if p.Category == "" {
		p.Category = "Capas"
	}
	return p
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}

	product := productDefaults(req.Name, req.Manufacturer, req.Compatibility, req.Category)
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("criar produto: %w", err)
	}

	created := make([]dto.CreatedVariation, 0, len(req.Colors))
	for _, color := range req.Colors {
		rv := color.Resolve()
		sku := rv.FullSKU
		if sku == "" {
			var err error
			sku, err = s.generateSKU(ctx, product.Category, product.Name, rv.ColorName)
			if err != nil {
				return nil, fmt.Errorf("gerar sku: %w", err)
			}
		}

		variation := model.ColorVariation{
			ProductID:      product.ID,
			ColorName:      rv.ColorName,
			FullSKU:        sku,
			VariationPrice: rv.Price,
			CostPrice:      rv.Cost,
			AvailableStock: rv.Stock,
			MinStockAlert:  rv.MinStockAlert,
		}
		if err := s.repo.CreateVariation(ctx, &variation); err != nil {
			return nil, fmt.Errorf("criar variação %s: %w", rv.ColorName, err)
		}
		created = append(created, dto.CreatedVariation{
			ID:        variation.ID.String(),
			SKU:       sku,
			ColorName: rv.ColorName,
		})
	}

	log.Info().Str("product_id", product.ID.String()).Int("variations", len(created)).
		Msg("produto criado")

	return &dto.CreateProductResponse{
		Status:     "sucesso",
		ID:         product.ID.String(),
		Variations: created,
	}, nil
}

// Update replaces the product header and reconciles the variation set:
// variations absent from the request are deleted, those carrying a known id
// are updated in place, the rest are created.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.CreateProductResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("produto não encontrado: %w", apierror.ErrNotFound)
	}

	header := productDefaults(req.Name, req.Manufacturer, req.Compatibility, req.Category)
	existing.Name = header.Name
	existing.Manufacturer = header.Manufacturer
	existing.Compatibility = header.Compatibility
	existing.Category = header.Category

	byID := make(map[string]*model.ColorVariation, len(existing.Variations))
	for i := range existing.Variations {
		byID[existing.Variations[i].ID.String()] = &existing.Variations[i]
	}
	keep := make(map[string]bool, len(req.Colors))
	for _, color := range req.Colors {
		if color.ID != "" {
			keep[color.ID] = true
		}
	}

	for vid, variation := range byID {
		if !keep[vid] {
			if err := s.repo.DeleteVariation(ctx, variation.ID); err != nil {
				return nil, fmt.Errorf("remover variação: %w", err)
			}
		}
	}

	for _, color := range req.Colors {
		rv := color.Resolve()
		if existingVar, ok := byID[rv.ID]; ok && rv.ID != "" {
			existingVar.ColorName = rv.ColorName
			if rv.FullSKU != "" {
				existingVar.FullSKU = rv.FullSKU
			}
			existingVar.VariationPrice = rv.Price
			existingVar.CostPrice = rv.Cost
			existingVar.AvailableStock = rv.Stock
			existingVar.MinStockAlert = rv.MinStockAlert
			if err := s.repo.UpdateVariation(ctx, existingVar); err != nil {
				return nil, fmt.Errorf("atualizar variação: %w", err)
			}
			continue
		}

		sku := rv.FullSKU
		if sku == "" {
			sku, err = s.generateSKU(ctx, existing.Category, existing.Name, rv.ColorName)
			if err != nil {
				return nil, fmt.Errorf("gerar sku: %w", err)
			}
		}
		variation := model.ColorVariation{
			ProductID:      existing.ID,
			ColorName:      rv.ColorName,
			FullSKU:        sku,
			VariationPrice: rv.Price,
			CostPrice:      rv.Cost,
			AvailableStock: rv.Stock,
			MinStockAlert:  rv.MinStockAlert,
		}
		if err := s.repo.CreateVariation(ctx, &variation); err != nil {
			return nil, fmt.Errorf("criar variação: %w", err)
		}
	}

	existing.Variations = nil // header update only; variations already persisted
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("atualizar produto: %w", err)
	}

	return &dto.CreateProductResponse{Status: "sucesso", ID: existing.ID.String()}, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("produto não encontrado: %w", apierror.ErrNotFound)
	}
	resp := productToResponse(p)
	return &resp, nil
}

// List degrades to an empty catalog when the datastore is unavailable so the
// storefront pages still render.
func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	if !s.ds.Available() {
		return []dto.ProductResponse{}, nil
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar produtos: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.ds.Available() {
		return apierror.ErrDatastoreUnavailable
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("produto não encontrado: %w", apierror.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}

func productToResponse(p *model.Product) dto.ProductResponse {
	variations := make([]dto.VariationResponse, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, dto.VariationResponse{
			ID:             v.ID.String(),
			ColorName:      v.ColorName,
			FullSKU:        v.FullSKU,
			VariationPrice: v.VariationPrice,
			CostPrice:      v.CostPrice,
			AvailableStock: v.AvailableStock,
			MinStockAlert:  v.MinStockAlert,
		})
	}
	return dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Manufacturer:  p.Manufacturer,
		Compatibility: p.Compatibility,
		Category:      p.Category,
		Variations:    variations,
	}
}
