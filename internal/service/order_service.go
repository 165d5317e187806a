package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// ConfirmOrder confirms a pending order
func (s *orderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusConfirmed)
}

// ShipOrder marks a confirmed order as shipped
func (s *orderService) ShipOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusShipped)
}

// DeliverOrder marks a shipped order as delivered
func (s *orderService) DeliverOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusDelivered)
}

// CancelOrder cancels an order that has not shipped yet
func (s *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusCancelled)
}

func (s *orderService) transition(ctx context.Context, orderID uuid.UUID, to domain.OrderStatus) error {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Validate state transition
	if !order.Status.CanTransitionTo(to) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   to,
		}
	}

	if err := s.repos.Order.UpdateStatus(ctx, orderID, to); err != nil {
		return err
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(to)),
	)

	return nil
}
