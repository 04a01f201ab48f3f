package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tecstock/internal/apierror"
	"tecstock/internal/dto"
	"tecstock/internal/infra"
	"tecstock/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc      OrderService
	orders   *stubOrderRepo
	parts    *stubRepairPartRepo
	services *stubServiceRepo
}

func newOrderFixture() *orderFixture {
	parts := newStubRepairPartRepo()
	services := newStubServiceRepo()
	orders := newStubOrderRepo(parts, services)
	return &orderFixture{
		svc:      NewOrderService(infra.Connected(nil), orders, parts, services),
		orders:   orders,
		parts:    parts,
		services: services,
	}
}

func (f *orderFixture) seedPart(price float64, stock int) *model.RepairPart {
	p := &model.RepairPart{
		DeviceModel:    "iPhone 12",
		PartName:       "Tela OLED",
		Price:          decimal.NewFromFloat(price),
		AvailableStock: stock,
		MinStockAlert:  5,
		Status:         "available",
	}
	_ = f.parts.Create(context.Background(), p)
	return p
}

func (f *orderFixture) seedService(price float64) *model.Service {
	s := &model.Service{
		Name:   "Troca de tela",
		Price:  decimal.NewFromFloat(price),
		Status: "active",
	}
	_ = f.services.Create(context.Background(), s)
	return s
}

func TestCreateOrderComputesTotalAndConsumesStock(t *testing.T) {
	f := newOrderFixture()
	part := f.seedPart(150, 10)
	svc := f.seedService(300)

	resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		ClientName: "Maria Souza",
		Parts:      []dto.OrderPartInput{{RepairPartID: part.ID.String(), Quantity: 2}},
		Services:   []dto.OrderServiceInput{{ServiceID: svc.ID.String(), Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, "sucesso", resp.Status)
	assert.Equal(t, fmt.Sprintf("OS-%d-001", time.Now().Year()), resp.OrderNumber)

	// 2×150 parts + 1×300 labor
	stored, err := f.svc.Get(context.Background(), mustUUID(t, resp.ID))
	require.NoError(t, err)
	assert.True(t, stored.TotalValue.Equal(decimal.NewFromInt(600)), "total %s", stored.TotalValue)
	assert.Equal(t, model.OrderEmAndamento, stored.Status)

	assert.Equal(t, 8, f.parts.parts[part.ID].AvailableStock)
}

func TestCreateOrderInsufficientStockRejectsBeforeMutation(t *testing.T) {
	f := newOrderFixture()
	part := f.seedPart(150, 5)

	_, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		ClientName: "Maria Souza",
		Parts:      []dto.OrderPartInput{{RepairPartID: part.ID.String(), Quantity: 6}},
	})

	require.ErrorIs(t, err, apierror.ErrInsufficientStock)
	assert.Equal(t, 5, f.parts.parts[part.ID].AvailableStock)
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderUnavailablePartRejected(t *testing.T) {
	f := newOrderFixture()
	part := f.seedPart(150, 10)
	part.Status = "unavailable"

	_, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		ClientName: "Maria Souza",
		Parts:      []dto.OrderPartInput{{RepairPartID: part.ID.String(), Quantity: 1}},
	})
	require.ErrorIs(t, err, apierror.ErrInvalidInput)
}

func TestCreateOrderInactiveServiceRejected(t *testing.T) {
	f := newOrderFixture()
	svc := f.seedService(100)
	svc.Status = "inactive"

	_, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		ClientName: "Maria Souza",
		Services:   []dto.OrderServiceInput{{ServiceID: svc.ID.String(), Quantity: 1}},
	})
	require.ErrorIs(t, err, apierror.ErrInvalidInput)
}

func TestCreateOrderSequentialNumbering(t *testing.T) {
	f := newOrderFixture()
	year := time.Now().Year()
	for i := 1; i <= 3; i++ {
		resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{ClientName: "Cliente"})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("OS-%d-%03d", year, i), resp.OrderNumber)
	}
}

func TestCreateOrderNumberingIgnoresBackdatedCreatedAt(t *testing.T) {
	f := newOrderFixture()
	year := time.Now().Year()

	_, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{ClientName: "Cliente"})
	require.NoError(t, err)

	// Backdated order: created_at in January must not demote it below the
	// number already issued.
	backdated := time.Date(year, time.January, 5, 10, 0, 0, 0, time.UTC)
	resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		ClientName: "Cliente",
		CreatedAt:  &backdated,
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("OS-%d-002", year), resp.OrderNumber)

	third, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{ClientName: "Cliente"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("OS-%d-003", year), third.OrderNumber)
}

func TestUpdateOrderStampsCompletedAtOnce(t *testing.T) {
	f := newOrderFixture()
	resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{ClientName: "Cliente"})
	require.NoError(t, err)
	id := mustUUID(t, resp.ID)

	status := model.OrderConcluido
	require.NoError(t, f.svc.Update(context.Background(), id, dto.UpdateOrderRequest{Status: &status}))

	first, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)

	// A second transition to the same status must not move the timestamp.
	require.NoError(t, f.svc.Update(context.Background(), id, dto.UpdateOrderRequest{Status: &status}))
	second, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))
}

func TestUpdateOrderReplacePartsRederivesTotal(t *testing.T) {
	f := newOrderFixture()
	partA := f.seedPart(100, 10)
	partB := f.seedPart(40, 10)
	svc := f.seedService(200)

	resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		ClientName: "Cliente",
		Parts:      []dto.OrderPartInput{{RepairPartID: partA.ID.String(), Quantity: 1}},
		Services:   []dto.OrderServiceInput{{ServiceID: svc.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	id := mustUUID(t, resp.ID)

	// Replace the part set; labor side stays persisted and still counts.
	newParts := []dto.OrderPartInput{{RepairPartID: partB.ID.String(), Quantity: 3}}
	require.NoError(t, f.svc.Update(context.Background(), id, dto.UpdateOrderRequest{Parts: &newParts}))

	updated, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	// 3×40 + 1×200
	assert.True(t, updated.TotalValue.Equal(decimal.NewFromInt(320)), "total %s", updated.TotalValue)
	require.Len(t, updated.Parts, 1)
	assert.Equal(t, 3, updated.Parts[0].Quantity)
}

func TestUpdateOrderClearPartsWithEmptySlice(t *testing.T) {
	f := newOrderFixture()
	part := f.seedPart(100, 10)
	svc := f.seedService(250)

	resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		ClientName: "Cliente",
		Parts:      []dto.OrderPartInput{{RepairPartID: part.ID.String(), Quantity: 2}},
		Services:   []dto.OrderServiceInput{{ServiceID: svc.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	id := mustUUID(t, resp.ID)

	empty := []dto.OrderPartInput{}
	require.NoError(t, f.svc.Update(context.Background(), id, dto.UpdateOrderRequest{Parts: &empty}))

	updated, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, updated.Parts)
	assert.True(t, updated.TotalValue.Equal(decimal.NewFromInt(250)), "total %s", updated.TotalValue)
}

func TestUpdateOrderDoesNotTouchStock(t *testing.T) {
	f := newOrderFixture()
	part := f.seedPart(100, 10)

	resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		ClientName: "Cliente",
		Parts:      []dto.OrderPartInput{{RepairPartID: part.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 8, f.parts.parts[part.ID].AvailableStock)

	newParts := []dto.OrderPartInput{{RepairPartID: part.ID.String(), Quantity: 5}}
	require.NoError(t, f.svc.Update(context.Background(), mustUUID(t, resp.ID), dto.UpdateOrderRequest{Parts: &newParts}))

	// Only creation consumes stock.
	assert.Equal(t, 8, f.parts.parts[part.ID].AvailableStock)
}

func TestDeleteOrderKeepsStockConsumed(t *testing.T) {
	f := newOrderFixture()
	part := f.seedPart(100, 10)

	resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		ClientName: "Cliente",
		Parts:      []dto.OrderPartInput{{RepairPartID: part.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)
	id := mustUUID(t, resp.ID)

	require.NoError(t, f.svc.Delete(context.Background(), id))

	_, err = f.svc.Get(context.Background(), id)
	require.ErrorIs(t, err, apierror.ErrNotFound)
	assert.Equal(t, 8, f.parts.parts[part.ID].AvailableStock)
}

func TestCreateOrderDatastoreUnavailable(t *testing.T) {
	parts := newStubRepairPartRepo()
	services := newStubServiceRepo()
	orders := newStubOrderRepo(parts, services)
	svc := NewOrderService(infra.Unavailable(), orders, parts, services)

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{ClientName: "Cliente"})
	require.ErrorIs(t, err, apierror.ErrDatastoreUnavailable)
}
