package service

import (
	"context"
	"fmt"

	"tecstock/internal/apierror"
	"tecstock/internal/dto"
	"tecstock/internal/infra"
	"tecstock/internal/model"
	"tecstock/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LedgerService applies stock movements to catalog variations and keeps the
// immutable movement trail. entrada adds; saida and ajuste subtract and both
// require the balance to cover the quantity, so stock never goes negative.
type LedgerService interface {
	ApplyMovement(ctx context.Context, req dto.CreateMovementRequest) (*dto.ApplyMovementResponse, error)
	ListMovements(ctx context.Context) ([]dto.MovementResponse, error)
}

type ledgerService struct {
	ds        *infra.Datastore
	products  repository.ProductRepository
	movements repository.MovementRepository
}

func NewLedgerService(ds *infra.Datastore, products repository.ProductRepository, movements repository.MovementRepository) LedgerService {
	return &ledgerService{ds: ds, products: products, movements: movements}
}

func validMovementType(t string) bool {
	return t == model.MovementEntrada || t == model.MovementSaida || t == model.MovementAjuste
}

func (s *ledgerService) ApplyMovement(ctx context.Context, req dto.CreateMovementRequest) (*dto.ApplyMovementResponse, error) {
	if !s.ds.Available() {
		return nil, apierror.ErrDatastoreUnavailable
	}
	if !validMovementType(req.MovementType) {
		return nil, fmt.Errorf("tipo de movimentação inválido %q: %w", req.MovementType, apierror.ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantidade deve ser positiva: %w", apierror.ErrInvalidInput)
	}

	variation, err := s.products.FindVariationBySKU(ctx, req.SKU)
	if err != nil {
		return nil, fmt.Errorf("SKU %s não encontrado: %w", req.SKU, apierror.ErrNotFound)
	}

	previous := variation.AvailableStock
	var next int
	switch req.MovementType {
	case model.MovementEntrada:
		next = previous + req.Quantity
	default: // saida, ajuste
		if previous < req.Quantity {
			return nil, fmt.Errorf("estoque atual %d não cobre a saída de %d: %w",
				previous, req.Quantity, apierror.ErrInsufficientStock)
		}
		next = previous - req.Quantity
	}

	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.UpdateVariationStockTx(tx, variation.ID, next); err != nil {
			return err
		}
		return s.movements.CreateTx(tx, &model.StockMovement{
			VariationID:   variation.ID,
			MovementType:  req.MovementType,
			Quantity:      req.Quantity,
			PreviousStock: previous,
			NewStock:      next,
			Reason:        req.Reason,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("registrar movimentação: %w", err)
	}

	log.Info().Str("sku", req.SKU).Str("tipo", req.MovementType).
		Int("anterior", previous).Int("novo", next).
		Msg("movimentação de estoque registrada")

	return &dto.ApplyMovementResponse{Status: "success", NovoEstoque: next}, nil
}

func (s *ledgerService) ListMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	if !s.ds.Available() {
		return []dto.MovementResponse{}, nil
	}
	movements, err := s.movements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar movimentações: %w", err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp := dto.MovementResponse{
			ID:            m.ID.String(),
			MovementType:  m.MovementType,
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			Reason:        m.Reason,
			CreatedAt:     m.CreatedAt,
		}
		if m.Variation != nil {
			resp.SKU = m.Variation.FullSKU
			resp.ColorName = m.Variation.ColorName
			if m.Variation.Product != nil {
				resp.ProductName = m.Variation.Product.Name
			}
		}
		out = append(out, resp)
	}
	return out, nil
}
