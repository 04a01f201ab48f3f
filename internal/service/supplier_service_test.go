package service

import (
	"context"
	"testing"

	"tecstock/internal/apierror"
	"tecstock/internal/dto"
	"tecstock/internal/infra"
	"tecstock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func seedCatalogProduct(t *testing.T, repo *stubProductRepo, name string) *model.Product {
	t.Helper()
	p := &model.Product{Name: name, Manufacturer: "Genérico", Category: "Capas"}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCreateSupplierLinksProducts(t *testing.T) {
	products := newStubProductRepo()
	suppliers := newStubSupplierRepo()
	svc := NewSupplierService(infra.Connected(nil), suppliers, products)

	p1 := seedCatalogProduct(t, products, "Capinha Premium")
	p2 := seedCatalogProduct(t, products, "Película 3D")

	resp, err := svc.Create(context.Background(), dto.SupplierRequest{
		Name:       "Fornecedor XYZ",
		Email:      strPtr("contato@xyz.com"),
		ProductIDs: []string{p1.ID.String(), p2.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fornecedor XYZ", resp.Name)
	assert.Equal(t, "contato@xyz.com", resp.Email)
	assert.ElementsMatch(t, []string{p1.ID.String(), p2.ID.String()}, resp.ProductIDs)
}

func TestCreateSupplierRejectsMalformedProductID(t *testing.T) {
	svc := NewSupplierService(infra.Connected(nil), newStubSupplierRepo(), newStubProductRepo())

	_, err := svc.Create(context.Background(), dto.SupplierRequest{
		Name:       "Fornecedor XYZ",
		ProductIDs: []string{"não-é-uuid"},
	})
	require.ErrorIs(t, err, apierror.ErrInvalidInput)
}

func TestUpdateSupplierReplacesProductLinks(t *testing.T) {
	products := newStubProductRepo()
	suppliers := newStubSupplierRepo()
	svc := NewSupplierService(infra.Connected(nil), suppliers, products)

	p1 := seedCatalogProduct(t, products, "Capinha Premium")
	p2 := seedCatalogProduct(t, products, "Película 3D")

	created, err := svc.Create(context.Background(), dto.SupplierRequest{
		Name:       "Fornecedor XYZ",
		ProductIDs: []string{p1.ID.String()},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), mustUUID(t, created.ID), dto.SupplierRequest{
		Name:       "Fornecedor XYZ Ltda",
		ProductIDs: []string{p2.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fornecedor XYZ Ltda", updated.Name)
	assert.Equal(t, []string{p2.ID.String()}, updated.ProductIDs)
}

func TestUpdateSupplierKeepsLinksWhenOmitted(t *testing.T) {
	products := newStubProductRepo()
	suppliers := newStubSupplierRepo()
	svc := NewSupplierService(infra.Connected(nil), suppliers, products)

	p1 := seedCatalogProduct(t, products, "Capinha Premium")
	created, err := svc.Create(context.Background(), dto.SupplierRequest{
		Name:       "Fornecedor XYZ",
		ProductIDs: []string{p1.ID.String()},
	})
	require.NoError(t, err)

	// nil ProductIDs means "leave the association alone".
	_, err = svc.Update(context.Background(), mustUUID(t, created.ID), dto.SupplierRequest{
		Name: "Fornecedor XYZ Ltda",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), mustUUID(t, created.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{p1.ID.String()}, got.ProductIDs)
}

func TestSupplierNotFound(t *testing.T) {
	svc := NewSupplierService(infra.Connected(nil), newStubSupplierRepo(), newStubProductRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, apierror.ErrNotFound)

	err = svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestSupplierListDegradesWhenUnavailable(t *testing.T) {
	svc := NewSupplierService(infra.Unavailable(), newStubSupplierRepo(), newStubProductRepo())

	out, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = svc.Create(context.Background(), dto.SupplierRequest{Name: "Fornecedor XYZ"})
	require.ErrorIs(t, err, apierror.ErrDatastoreUnavailable)
}
