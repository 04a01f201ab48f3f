package repository

import (
	"context"
	"time"

	"tecstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	AddItemTx(tx *gorm.DB, item *model.PurchaseItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context) ([]model.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// NextPurchaseNumber issues the next COMP-YYYY-NNN for the current
	// year. Same caveat as order numbering: the unique index is the
	// concurrency backstop.
	NextPurchaseNumber(tx *gorm.DB) (string, error)

	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) AddItemTx(tx *gorm.DB, item *model.PurchaseItem) error {
	return tx.Create(item).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.RepairPart").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.RepairPart").
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&model.PurchaseItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Purchase{}, "id = ?", id).Error
	})
}

func (r *purchaseRepo) NextPurchaseNumber(tx *gorm.DB) (string, error) {
	year := time.Now().Year()
	var last model.Purchase
	// Same reasoning as order numbering: created_at can be backdated, the
	// number itself is the only monotonic criterion.
	err := tx.Where("purchase_number LIKE ?", yearPattern("COMP", year)).
		Order("length(purchase_number) DESC, purchase_number DESC").
		First(&last).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nextDocumentNumber("COMP", year, ""), nil
		}
		return "", err
	}
	return nextDocumentNumber("COMP", year, last.PurchaseNumber), nil
}
