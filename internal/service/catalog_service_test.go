package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/pkg/errors"
)

func TestCreateProduct_Defaults(t *testing.T) {
	products := newMockProductRepo()
	svc := NewCatalogService(testRepos(products, nil, nil, nil), zap.NewNop())

	product, err := svc.CreateProduct(context.Background(), ProductUpsertRequest{
		SKU:      "TAC-010",
		NameEN:   "Tactical Gloves",
		Price:    45,
		Currency: "GEL",
		Stock:    20,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, product.MinOrderQty)
	assert.True(t, product.IsActive)
	assert.NotEqual(t, uuid.Nil, product.ID)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewCatalogService(testRepos(nil, nil, nil, nil), zap.NewNop())
	ctx := context.Background()

	var verr *errors.ErrValidation

	_, err := svc.CreateProduct(ctx, ProductUpsertRequest{
		SKU: "TAC-010", NameEN: "Gloves", Price: 45, Currency: "GBP", Stock: 20,
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "currency", verr.Field)

	_, err = svc.CreateProduct(ctx, ProductUpsertRequest{
		SKU: "TAC-010", NameEN: "Gloves", Price: 45, Currency: "GEL", Stock: 5, MinOrderQty: 10,
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "min_order_qty", verr.Field)

	badID := "not-a-uuid"
	_, err = svc.CreateProduct(ctx, ProductUpsertRequest{
		SKU: "TAC-010", NameEN: "Gloves", Price: 45, Currency: "GEL", Stock: 20, CategoryID: &badID,
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category_id", verr.Field)
}

func TestUpdateProduct_PreservesIdentity(t *testing.T) {
	existing := testProduct(10)
	products := newMockProductRepo(existing)
	svc := NewCatalogService(testRepos(products, nil, nil, nil), zap.NewNop())

	inactive := false
	updated, err := svc.UpdateProduct(context.Background(), existing.ID, ProductUpsertRequest{
		SKU:      existing.SKU,
		NameEN:   "Renamed Carrier",
		Price:    150,
		Currency: "GEL",
		Stock:    8,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Renamed Carrier", updated.Name.EN)
	assert.False(t, updated.IsActive)
}

func TestUpdateProduct_UnknownID(t *testing.T) {
	svc := NewCatalogService(testRepos(nil, nil, nil, nil), zap.NewNop())

	var nferr *errors.ErrNotFound
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), ProductUpsertRequest{
		SKU: "TAC-010", NameEN: "Gloves", Price: 45, Currency: "GEL",
	})
	require.ErrorAs(t, err, &nferr)
}

func TestReorderImages_IDValidation(t *testing.T) {
	svc := NewCatalogService(testRepos(nil, nil, nil, nil), zap.NewNop())
	ctx := context.Background()

	var verr *errors.ErrValidation

	err := svc.ReorderImages(ctx, uuid.New(), []string{"not-a-uuid"})
	require.ErrorAs(t, err, &verr)

	dup := uuid.New().String()
	err = svc.ReorderImages(ctx, uuid.New(), []string{dup, dup})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "duplicate")

	err = svc.ReorderImages(ctx, uuid.New(), []string{uuid.New().String(), uuid.New().String()})
	require.NoError(t, err)
}
