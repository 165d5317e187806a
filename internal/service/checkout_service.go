package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

// CheckoutService turns a session cart into an order. The cart's stock
// snapshots are advisory; live stock is re-checked inside the order
// transaction.
type CheckoutService struct {
	carts   *CartService
	repos   *repository.Repositories
	logger  *zap.Logger
	minimum float64
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(carts *CartService, repos *repository.Repositories, minimum float64, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		carts:   carts,
		repos:   repos,
		logger:  logger,
		minimum: minimum,
	}
}

// Checkout creates an order from the session cart and clears the cart on
// success. The cart is left untouched on any failure so the user can retry.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, userID uuid.UUID, req CheckoutRequest) (*domain.Order, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, &errors.ErrValidation{Field: "cart", Message: "cart is empty"}
	}

	if !cart.MeetsMinimum(s.minimum) {
		return nil, &errors.ErrMinimumNotMet{
			Minimum:   s.minimum,
			Total:     cart.TotalPrice(),
			Remaining: cart.MinimumRemaining(s.minimum),
		}
	}

	order := &domain.Order{
		UserID:        userID,
		Status:        domain.OrderStatusPending,
		Total:         cart.TotalPrice(),
		Currency:      cart.Lines[0].Currency,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}

	order.ShippingAddress = map[string]interface{}{
		"street":      req.Shipping.Street,
		"city":        req.Shipping.City,
		"postal_code": req.Shipping.PostalCode,
		"country":     req.Shipping.Country,
	}
	if req.Shipping.Region != nil {
		order.ShippingAddress["region"] = *req.Shipping.Region
	}

	items := make([]*domain.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, &domain.OrderItem{
			ProductID:    line.ProductID,
			Name:         line.Name,
			UnitPrice:    line.UnitPrice,
			Quantity:     line.Quantity,
			SelectedSize: line.SelectedSize,
		})
	}

	if err := s.repos.Order.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		// The order exists; a stale snapshot only lingers until its TTL.
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.Float64("total", order.Total),
		zap.Int("lines", len(items)),
	)

	return order, nil
}
