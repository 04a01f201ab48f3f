package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"tecstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("invalid uuid %q: %v", s, err)
	}
	return id
}

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	products   map[uuid.UUID]*model.Product
	variations map[uuid.UUID]*model.ColorVariation
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products:   make(map[uuid.UUID]*model.Product),
		variations: make(map[uuid.UUID]*model.ColorVariation),
	}
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) variationsOf(productID uuid.UUID) []model.ColorVariation {
	var out []model.ColorVariation
	for _, v := range r.variations {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *p
	copied.Variations = r.variationsOf(id)
	return &copied, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for id, p := range r.products {
		copied := *p
		copied.Variations = r.variationsOf(id)
		out = append(out, copied)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	for vid, v := range r.variations {
		if v.ProductID == id {
			delete(r.variations, vid)
		}
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) CreateVariation(_ context.Context, v *model.ColorVariation) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.variations[v.ID] = v
	return nil
}

func (r *stubProductRepo) UpdateVariation(_ context.Context, v *model.ColorVariation) error {
	r.variations[v.ID] = v
	return nil
}

func (r *stubProductRepo) DeleteVariation(_ context.Context, id uuid.UUID) error {
	delete(r.variations, id)
	return nil
}

func (r *stubProductRepo) FindVariationBySKU(_ context.Context, sku string) (*model.ColorVariation, error) {
	for _, v := range r.variations {
		if v.FullSKU == sku {
			return v, nil
		}
	}
	return nil, errNotFound
}

func (r *stubProductRepo) SKUExists(_ context.Context, sku string) (bool, error) {
	for _, v := range r.variations {
		if v.FullSKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) ListVariations(_ context.Context) ([]model.ColorVariation, error) {
	var out []model.ColorVariation
	for _, v := range r.variations {
		copied := *v
		if p, ok := r.products[v.ProductID]; ok {
			copied.Product = p
		}
		out = append(out, copied)
	}
	return out, nil
}

func (r *stubProductRepo) CountVariations(_ context.Context) (int64, error) {
	return int64(len(r.variations)), nil
}

func (r *stubProductRepo) UpdateVariationStockTx(_ *gorm.DB, id uuid.UUID, newStock int) error {
	v, ok := r.variations[id]
	if !ok {
		return errNotFound
	}
	v.AvailableStock = newStock
	return nil
}

// ── In-memory MovementRepository stub ────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) DB() *gorm.DB { return nil }

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context) ([]model.StockMovement, error) {
	out := make([]model.StockMovement, len(r.movements))
	for i := range r.movements {
		out[len(r.movements)-1-i] = r.movements[i]
	}
	return out, nil
}

func (r *stubMovementRepo) ListByVariation(_ context.Context, variationID string) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.VariationID.String() == variationID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ── In-memory SupplierRepository stub ────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) DB() *gorm.DB { return nil }

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	existing, ok := r.suppliers[s.ID]
	if !ok {
		return errNotFound
	}
	products := existing.Products
	r.suppliers[s.ID] = s
	if s.Products == nil {
		s.Products = products
	}
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

func (r *stubSupplierRepo) ReplaceProducts(_ context.Context, s *model.Supplier, products []model.Product) error {
	stored, ok := r.suppliers[s.ID]
	if !ok {
		return errNotFound
	}
	stored.Products = products
	return nil
}

// ── In-memory RepairPartRepository stub ──────────────────────────────────────

type stubRepairPartRepo struct {
	parts map[uuid.UUID]*model.RepairPart
}

func newStubRepairPartRepo() *stubRepairPartRepo {
	return &stubRepairPartRepo{parts: make(map[uuid.UUID]*model.RepairPart)}
}

func (r *stubRepairPartRepo) DB() *gorm.DB { return nil }

func (r *stubRepairPartRepo) Create(_ context.Context, p *model.RepairPart) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.parts[p.ID] = p
	return nil
}

func (r *stubRepairPartRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RepairPart, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *stubRepairPartRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.RepairPart, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubRepairPartRepo) List(_ context.Context, status string) ([]model.RepairPart, error) {
	var out []model.RepairPart
	for _, p := range r.parts {
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubRepairPartRepo) Update(_ context.Context, p *model.RepairPart) error {
	r.parts[p.ID] = p
	return nil
}

func (r *stubRepairPartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.parts, id)
	return nil
}

func (r *stubRepairPartRepo) ConsumeStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	p, ok := r.parts[id]
	if !ok {
		return errNotFound
	}
	p.AvailableStock -= qty
	if p.AvailableStock < 0 {
		p.AvailableStock = 0
	}
	return nil
}

func (r *stubRepairPartRepo) RestockTx(_ *gorm.DB, id uuid.UUID, unitCost decimal.Decimal, qty int) error {
	p, ok := r.parts[id]
	if !ok {
		return errNotFound
	}
	p.CostPrice = unitCost
	p.AvailableStock += qty
	return nil
}

func (r *stubRepairPartRepo) UpdateCost(_ context.Context, id uuid.UUID, cost decimal.Decimal) error {
	p, ok := r.parts[id]
	if !ok {
		return errNotFound
	}
	p.CostPrice = cost
	return nil
}

// ── In-memory ServiceRepository stub ─────────────────────────────────────────

type stubServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (r *stubServiceRepo) DB() *gorm.DB { return nil }

func (r *stubServiceRepo) Create(_ context.Context, s *model.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = s
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *stubServiceRepo) List(_ context.Context, status string) ([]model.Service, error) {
	var out []model.Service
	for _, s := range r.services {
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *model.Service) error {
	r.services[s.ID] = s
	return nil
}

func (r *stubServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.services, id)
	return nil
}

// ── In-memory OrderRepository stub ───────────────────────────────────────────

type stubOrderRepo struct {
	orders   map[uuid.UUID]*model.ServiceOrder
	parts    map[uuid.UUID][]model.ServiceOrderPart
	services map[uuid.UUID][]model.ServiceOrderService

	partsRepo   *stubRepairPartRepo
	serviceRepo *stubServiceRepo
}

func newStubOrderRepo(parts *stubRepairPartRepo, services *stubServiceRepo) *stubOrderRepo {
	return &stubOrderRepo{
		orders:      make(map[uuid.UUID]*model.ServiceOrder),
		parts:       make(map[uuid.UUID][]model.ServiceOrderPart),
		services:    make(map[uuid.UUID][]model.ServiceOrderService),
		partsRepo:   parts,
		serviceRepo: services,
	}
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.ServiceOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	copied := *o
	r.orders[o.ID] = &copied
	return nil
}

func (r *stubOrderRepo) hydrate(o *model.ServiceOrder) *model.ServiceOrder {
	copied := *o
	copied.Parts = nil
	copied.Services = nil
	for _, assoc := range r.parts[o.ID] {
		if r.partsRepo != nil {
			if p, ok := r.partsRepo.parts[assoc.RepairPartID]; ok {
				pc := *p
				assoc.RepairPart = &pc
			}
		}
		copied.Parts = append(copied.Parts, assoc)
	}
	for _, assoc := range r.services[o.ID] {
		if r.serviceRepo != nil {
			if s, ok := r.serviceRepo.services[assoc.ServiceID]; ok {
				sc := *s
				assoc.Service = &sc
			}
		}
		copied.Services = append(copied.Services, assoc)
	}
	return &copied
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ServiceOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errNotFound
	}
	return r.hydrate(o), nil
}

func (r *stubOrderRepo) List(_ context.Context, status string) ([]model.ServiceOrder, error) {
	var out []model.ServiceOrder
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *r.hydrate(o))
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateTx(_ *gorm.DB, o *model.ServiceOrder) error {
	stored, ok := r.orders[o.ID]
	if !ok {
		return errNotFound
	}
	stored.ClientName = o.ClientName
	stored.ClientPhone = o.ClientPhone
	stored.ClientEmail = o.ClientEmail
	stored.DeviceModel = o.DeviceModel
	stored.ServiceDescription = o.ServiceDescription
	stored.Status = o.Status
	stored.TotalValue = o.TotalValue
	stored.Notes = o.Notes
	stored.CompletedAt = o.CompletedAt
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	delete(r.parts, id)
	delete(r.services, id)
	return nil
}

func (r *stubOrderRepo) ReplacePartsTx(_ *gorm.DB, orderID uuid.UUID, parts []model.ServiceOrderPart) error {
	r.parts[orderID] = parts
	return nil
}

func (r *stubOrderRepo) ReplaceServicesTx(_ *gorm.DB, orderID uuid.UUID, services []model.ServiceOrderService) error {
	r.services[orderID] = services
	return nil
}

// NextOrderNumber mirrors the repository contract: the next number follows
// the highest issued suffix for the year, regardless of created_at.
func (r *stubOrderRepo) NextOrderNumber(_ *gorm.DB) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("OS-%d-", year)
	max := 0
	for _, o := range r.orders {
		if !strings.HasPrefix(o.OrderNumber, prefix) {
			continue
		}
		if n, err := strconv.Atoi(o.OrderNumber[len(prefix):]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("OS-%d-%03d", year, max+1), nil
}

// ── In-memory PurchaseRepository stub ────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases map[uuid.UUID]*model.Purchase
	items     map[uuid.UUID][]model.PurchaseItem

	partsRepo *stubRepairPartRepo
}

func newStubPurchaseRepo(parts *stubRepairPartRepo) *stubPurchaseRepo {
	return &stubPurchaseRepo{
		purchases: make(map[uuid.UUID]*model.Purchase),
		items:     make(map[uuid.UUID][]model.PurchaseItem),
		partsRepo: parts,
	}
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	copied := *p
	r.purchases[p.ID] = &copied
	return nil
}

func (r *stubPurchaseRepo) AddItemTx(_ *gorm.DB, item *model.PurchaseItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.PurchaseID] = append(r.items[item.PurchaseID], *item)
	return nil
}

func (r *stubPurchaseRepo) hydrate(p *model.Purchase) *model.Purchase {
	copied := *p
	copied.Items = nil
	for _, item := range r.items[p.ID] {
		if r.partsRepo != nil {
			if part, ok := r.partsRepo.parts[item.RepairPartID]; ok {
				pc := *part
				item.RepairPart = &pc
			}
		}
		copied.Items = append(copied.Items, item)
	}
	return &copied
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, errNotFound
	}
	return r.hydrate(p), nil
}

func (r *stubPurchaseRepo) List(_ context.Context) ([]model.Purchase, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		out = append(out, *r.hydrate(p))
	}
	return out, nil
}

func (r *stubPurchaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.purchases, id)
	delete(r.items, id)
	return nil
}

func (r *stubPurchaseRepo) NextPurchaseNumber(_ *gorm.DB) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("COMP-%d-", year)
	max := 0
	for _, p := range r.purchases {
		if !strings.HasPrefix(p.PurchaseNumber, prefix) {
			continue
		}
		if n, err := strconv.Atoi(p.PurchaseNumber[len(prefix):]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("COMP-%d-%03d", year, max+1), nil
}
