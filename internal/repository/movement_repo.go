package repository

import (
	"context"

	"tecstock/internal/model"

	"gorm.io/gorm"
)

// MovementRepository persists the stock ledger. Movement rows are append
// only; there is no update or delete.
type MovementRepository interface {
	// CreateTx inserts the row inside the caller's transaction so the
	// snapshot and the balance update commit atomically.
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	List(ctx context.Context) ([]model.StockMovement, error)
	ListByVariation(ctx context.Context, variationID string) ([]model.StockMovement, error)
	DB() *gorm.DB
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository { return &movementRepo{db: db} }

func (r *movementRepo) DB() *gorm.DB { return r.db }

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) List(ctx context.Context) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Preload("Variation").Preload("Variation.Product").
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}

func (r *movementRepo) ListByVariation(ctx context.Context, variationID string) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Preload("Variation").Preload("Variation.Product").
		Where("variation_id = ?", variationID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}
