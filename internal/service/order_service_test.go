package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

func TestOrderService_FullLifecycle(t *testing.T) {
	orders := &mockOrderRepo{}
	order := seedOrder(orders, uuid.New(), domain.OrderStatusPending, 300, time.Now())

	svc := NewOrderService(testRepos(nil, orders, nil, nil), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.ConfirmOrder(ctx, order.ID))
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)

	require.NoError(t, svc.ShipOrder(ctx, order.ID))
	assert.Equal(t, domain.OrderStatusShipped, order.Status)

	require.NoError(t, svc.DeliverOrder(ctx, order.ID))
	assert.Equal(t, domain.OrderStatusDelivered, order.Status)
}

func TestOrderService_CancelBeforeShipping(t *testing.T) {
	orders := &mockOrderRepo{}
	pending := seedOrder(orders, uuid.New(), domain.OrderStatusPending, 300, time.Now())
	confirmed := seedOrder(orders, uuid.New(), domain.OrderStatusConfirmed, 300, time.Now())

	svc := NewOrderService(testRepos(nil, orders, nil, nil), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.CancelOrder(ctx, pending.ID))
	require.NoError(t, svc.CancelOrder(ctx, confirmed.ID))
}

func TestOrderService_IllegalTransitions(t *testing.T) {
	orders := &mockOrderRepo{}
	shipped := seedOrder(orders, uuid.New(), domain.OrderStatusShipped, 300, time.Now())
	delivered := seedOrder(orders, uuid.New(), domain.OrderStatusDelivered, 300, time.Now())
	cancelled := seedOrder(orders, uuid.New(), domain.OrderStatusCancelled, 300, time.Now())

	svc := NewOrderService(testRepos(nil, orders, nil, nil), zap.NewNop())
	ctx := context.Background()

	var terr *errors.ErrInvalidStateTransition

	// Shipped orders can no longer be cancelled.
	require.ErrorAs(t, svc.CancelOrder(ctx, shipped.ID), &terr)
	assert.Equal(t, domain.OrderStatusShipped, shipped.Status)

	// Terminal states reject everything.
	require.ErrorAs(t, svc.ConfirmOrder(ctx, delivered.ID), &terr)
	require.ErrorAs(t, svc.ConfirmOrder(ctx, cancelled.ID), &terr)

	// Skipping a step is rejected too.
	pending := seedOrder(orders, uuid.New(), domain.OrderStatusPending, 300, time.Now())
	require.ErrorAs(t, svc.ShipOrder(ctx, pending.ID), &terr)
	assert.Equal(t, domain.OrderStatusPending, pending.Status)
}

func TestOrderService_UnknownOrder(t *testing.T) {
	svc := NewOrderService(testRepos(nil, &mockOrderRepo{}, nil, nil), zap.NewNop())

	var nferr *errors.ErrNotFound
	require.ErrorAs(t, svc.ConfirmOrder(context.Background(), uuid.New()), &nferr)
}
