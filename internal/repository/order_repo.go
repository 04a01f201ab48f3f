package repository

import (
	"context"
	"time"

	"tecstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.ServiceOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceOrder, error)
	List(ctx context.Context, status string) ([]model.ServiceOrder, error)
	UpdateTx(tx *gorm.DB, o *model.ServiceOrder) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ReplacePartsTx swaps the whole part set of an order. Empty slice
	// clears it. Same for ReplaceServicesTx.
	ReplacePartsTx(tx *gorm.DB, orderID uuid.UUID, parts []model.ServiceOrderPart) error
	ReplaceServicesTx(tx *gorm.DB, orderID uuid.UUID, services []model.ServiceOrderService) error

	// NextOrderNumber issues the next OS-YYYY-NNN for the current year.
	// Not safe under concurrent inserts; uniqueness is backstopped by the
	// order_number index.
	NextOrderNumber(tx *gorm.DB) (string, error)

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.ServiceOrder) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceOrder, error) {
	var o model.ServiceOrder
	err := r.db.WithContext(ctx).
		Preload("Parts").Preload("Parts.RepairPart").
		Preload("Services").Preload("Services.Service").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, status string) ([]model.ServiceOrder, error) {
	var orders []model.ServiceOrder
	q := r.db.WithContext(ctx).
		Preload("Parts").Preload("Parts.RepairPart").
		Preload("Services").Preload("Services.Service").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateTx(tx *gorm.DB, o *model.ServiceOrder) error {
	// Save would cascade the association slices; update columns only.
	return tx.Model(&model.ServiceOrder{}).Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"client_name":         o.ClientName,
			"client_phone":        o.ClientPhone,
			"client_email":        o.ClientEmail,
			"device_model":        o.DeviceModel,
			"service_description": o.ServiceDescription,
			"status":              o.Status,
			"total_value":         o.TotalValue,
			"notes":               o.Notes,
			"completed_at":        o.CompletedAt,
		}).Error
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_order_id = ?", id).Delete(&model.ServiceOrderPart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_order_id = ?", id).Delete(&model.ServiceOrderService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ServiceOrder{}, "id = ?", id).Error
	})
}

func (r *orderRepo) ReplacePartsTx(tx *gorm.DB, orderID uuid.UUID, parts []model.ServiceOrderPart) error {
	if err := tx.Where("service_order_id = ?", orderID).Delete(&model.ServiceOrderPart{}).Error; err != nil {
		return err
	}
	if len(parts) == 0 {
		return nil
	}
	return tx.Create(&parts).Error
}

func (r *orderRepo) ReplaceServicesTx(tx *gorm.DB, orderID uuid.UUID, services []model.ServiceOrderService) error {
	if err := tx.Where("service_order_id = ?", orderID).Delete(&model.ServiceOrderService{}).Error; err != nil {
		return err
	}
	if len(services) == 0 {
		return nil
	}
	return tx.Create(&services).Error
}

func (r *orderRepo) NextOrderNumber(tx *gorm.DB) (string, error) {
	year := time.Now().Year()
	var last model.ServiceOrder
	// created_at is client-suppliable (backdated orders), so the highest
	// issued number must come from the number itself. Length-first keeps
	// the ordering correct once suffixes outgrow the 3-digit padding.
	err := tx.Where("order_number LIKE ?", yearPattern("OS", year)).
		Order("length(order_number) DESC, order_number DESC").
		First(&last).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nextDocumentNumber("OS", year, ""), nil
		}
		return "", err
	}
	return nextDocumentNumber("OS", year, last.OrderNumber), nil
}
