package repository

import (
	"context"

	"tecstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RepairPartRepository interface {
	Create(ctx context.Context, p *model.RepairPart) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RepairPart, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.RepairPart, error)
	List(ctx context.Context, status string) ([]model.RepairPart, error)
	Update(ctx context.Context, p *model.RepairPart) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ConsumeStockTx decrements stock clamping at zero. Pre-flight checks
	// run before the transaction; the clamp is the in-tx safety net.
	ConsumeStockTx(tx *gorm.DB, id uuid.UUID, qty int) error
	// RestockTx applies a purchase line: overwrites cost_price with the
	// latest unit cost and adds the bought quantity.
	RestockTx(tx *gorm.DB, id uuid.UUID, unitCost decimal.Decimal, qty int) error
	UpdateCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error

	DB() *gorm.DB
}

type repairPartRepo struct{ db *gorm.DB }

func NewRepairPartRepository(db *gorm.DB) RepairPartRepository { return &repairPartRepo{db: db} }

func (r *repairPartRepo) DB() *gorm.DB { return r.db }

func (r *repairPartRepo) Create(ctx context.Context, p *model.RepairPart) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repairPartRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RepairPart, error) {
	var p model.RepairPart
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repairPartRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.RepairPart, error) {
	var p model.RepairPart
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repairPartRepo) List(ctx context.Context, status string) ([]model.RepairPart, error) {
	var parts []model.RepairPart
	q := r.db.WithContext(ctx).Order("device_model ASC, part_name ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&parts).Error
	return parts, err
}

func (r *repairPartRepo) Update(ctx context.Context, p *model.RepairPart) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repairPartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RepairPart{}, "id = ?", id).Error
}

func (r *repairPartRepo) ConsumeStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.RepairPart{}).Where("id = ?", id).
		Update("available_stock", gorm.Expr("GREATEST(available_stock - ?, 0)", qty)).Error
}

func (r *repairPartRepo) RestockTx(tx *gorm.DB, id uuid.UUID, unitCost decimal.Decimal, qty int) error {
	return tx.Model(&model.RepairPart{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"cost_price":      unitCost,
			"available_stock": gorm.Expr("available_stock + ?", qty),
		}).Error
}

func (r *repairPartRepo) UpdateCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.RepairPart{}).Where("id = ?", id).
		Update("cost_price", cost).Error
}
