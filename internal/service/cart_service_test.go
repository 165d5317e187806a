package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/cartstore"
	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

func newTestCartService(products ...*domain.Product) (*CartService, *mockProductRepo) {
	repo := newMockProductRepo(products...)
	svc := NewCartService(cartstore.NewMemoryStore(), testRepos(repo, nil, nil, nil), 200, zap.NewNop())
	return svc, repo
}

func testProduct(stock int, sizes ...string) *domain.Product {
	return &domain.Product{
		ID:          uuid.New(),
		SKU:         "TAC-001",
		Name:        domain.LocalizedText{EN: "Plate Carrier", KA: "პლეიტკერიერი"},
		Price:       120,
		Currency:    "GEL",
		Stock:       stock,
		MinOrderQty: 1,
		Sizes:       sizes,
		IsActive:    true,
	}
}

func TestCartService_GetCart_MissingSnapshotIsEmptyCart(t *testing.T) {
	svc, _ := newTestCartService()

	cart, err := svc.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "session-1", cart.SessionID)
}

func TestCartService_AddItem_SnapshotsProductAndPersists(t *testing.T) {
	product := testProduct(10, "M", "L")
	svc, _ := newTestCartService(product)

	summary, result, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID:    product.ID.String(),
		SelectedSize: "M",
		Quantity:     2,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Applied)
	assert.False(t, result.Clamped)
	assert.True(t, result.NewLine)

	require.Len(t, summary.Cart.Lines, 1)
	line := summary.Cart.Lines[0]
	assert.Equal(t, product.ID, line.ProductID)
	assert.Equal(t, product.Price, line.UnitPrice)
	assert.Equal(t, product.Stock, line.StockAtAddTime)
	assert.Equal(t, "M", line.SelectedSize)

	// A fresh read sees the persisted snapshot.
	cart, err := svc.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestCartService_AddItem_ClampsToStock(t *testing.T) {
	product := testProduct(3)
	svc, _ := newTestCartService(product)

	summary, result, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Applied)
	assert.True(t, result.Clamped)
	assert.Equal(t, 3, summary.TotalItems)
}

func TestCartService_AddItem_InvalidProductID(t *testing.T) {
	svc, _ := newTestCartService()

	_, _, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: "not-a-uuid",
		Quantity:  1,
	})
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "product_id", verr.Field)
}

func TestCartService_AddItem_InactiveProductReadsAsNotFound(t *testing.T) {
	product := testProduct(10)
	product.IsActive = false
	svc, _ := newTestCartService(product)

	_, _, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  1,
	})
	var nferr *errors.ErrNotFound
	require.ErrorAs(t, err, &nferr)
}

func TestCartService_AddItem_SizeValidation(t *testing.T) {
	product := testProduct(10, "M", "L")
	svc, _ := newTestCartService(product)

	_, _, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID:    product.ID.String(),
		SelectedSize: "XXL",
		Quantity:     1,
	})
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "selected_size", verr.Field)

	// Sized products require a size.
	_, _, err = svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  1,
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "selected_size", verr.Field)
}

func TestCartService_AddItem_ZeroStockProduct(t *testing.T) {
	product := testProduct(0)
	svc, _ := newTestCartService(product)

	_, _, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  3,
	})
	var serr *errors.ErrOutOfStock
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 3, serr.Requested)
	assert.Equal(t, 0, serr.Available)

	cart, err := svc.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_AddItem_StockBelowMinimum(t *testing.T) {
	product := testProduct(2)
	product.MinOrderQty = 5
	svc, _ := newTestCartService(product)

	_, _, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
	})
	var serr *errors.ErrOutOfStock
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 5, serr.Requested)
	assert.Equal(t, 2, serr.Available)
}

func TestCartService_UpdateQuantity_BelowMinimumRemovesLine(t *testing.T) {
	product := testProduct(10)
	product.MinOrderQty = 2
	svc, _ := newTestCartService(product)

	_, result, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  4,
	})
	require.NoError(t, err)

	summary, err := svc.UpdateQuantity(context.Background(), "session-1", result.LineID, 1)
	require.NoError(t, err)
	assert.Empty(t, summary.Cart.Lines)
}

func TestCartService_UpdateQuantity_NegativeRemovesLine(t *testing.T) {
	product := testProduct(10)
	svc, _ := newTestCartService(product)

	_, result, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  4,
	})
	require.NoError(t, err)

	summary, err := svc.UpdateQuantity(context.Background(), "session-1", result.LineID, -1)
	require.NoError(t, err)
	assert.Empty(t, summary.Cart.Lines)
}

func TestCartService_RemoveItem_PersistsRemoval(t *testing.T) {
	product := testProduct(10)
	svc, _ := newTestCartService(product)

	_, result, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	_, err = svc.RemoveItem(context.Background(), "session-1", result.LineID)
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_ClearCart_DropsSnapshot(t *testing.T) {
	product := testProduct(10)
	svc, _ := newTestCartService(product)

	_, _, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(context.Background(), "session-1"))

	cart, err := svc.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_Summary_MinimumGate(t *testing.T) {
	product := testProduct(10) // 120 GEL each, minimum 200
	svc, _ := newTestCartService(product)

	_, _, err := svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), "session-1")
	require.NoError(t, err)
	assert.False(t, summary.MinimumMet)
	assert.InDelta(t, 80, summary.MinimumRemaining, 0.001)

	_, _, err = svc.AddItem(context.Background(), "session-1", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)

	summary, err = svc.Summary(context.Background(), "session-1")
	require.NoError(t, err)
	assert.True(t, summary.MinimumMet)
	assert.Zero(t, summary.MinimumRemaining)
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	product := testProduct(10)
	svc, _ := newTestCartService(product)

	_, _, err := svc.AddItem(context.Background(), "session-a", AddItemRequest{
		ProductID: product.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), "session-b")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
