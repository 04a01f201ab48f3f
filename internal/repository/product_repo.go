package repository

import (
	"context"

	"tecstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products and their
// color variations. Services depend on this interface, not on the concrete
// GORM implementation, enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	// Delete removes the product and all its variations in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// Variations
	CreateVariation(ctx context.Context, v *model.ColorVariation) error
	UpdateVariation(ctx context.Context, v *model.ColorVariation) error
	DeleteVariation(ctx context.Context, id uuid.UUID) error
	FindVariationBySKU(ctx context.Context, sku string) (*model.ColorVariation, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
	ListVariations(ctx context.Context) ([]model.ColorVariation, error)
	CountVariations(ctx context.Context) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	UpdateVariationStockTx(tx *gorm.DB, id uuid.UUID, newStock int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Variations").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("Variations").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Variations first, so the FK never dangles.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ColorVariation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
}

func (r *productRepo) CreateVariation(ctx context.Context, v *model.ColorVariation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *productRepo) UpdateVariation(ctx context.Context, v *model.ColorVariation) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *productRepo) DeleteVariation(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ColorVariation{}, "id = ?", id).Error
}

func (r *productRepo) FindVariationBySKU(ctx context.Context, sku string) (*model.ColorVariation, error) {
	var v model.ColorVariation
	err := r.db.WithContext(ctx).Where("full_sku = ?", sku).First(&v).Error
	return &v, err
}

func (r *productRepo) SKUExists(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ColorVariation{}).
		Where("full_sku = ?", sku).Count(&count).Error
	return count > 0, err
}

func (r *productRepo) ListVariations(ctx context.Context) ([]model.ColorVariation, error) {
	var variations []model.ColorVariation
	err := r.db.WithContext(ctx).Preload("Product").Find(&variations).Error
	return variations, err
}

func (r *productRepo) CountVariations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ColorVariation{}).Count(&count).Error
	return count, err
}

func (r *productRepo) UpdateVariationStockTx(tx *gorm.DB, id uuid.UUID, newStock int) error {
	return tx.Model(&model.ColorVariation{}).Where("id = ?", id).
		Update("available_stock", newStock).Error
}
