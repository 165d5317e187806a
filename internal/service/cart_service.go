package service

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tacticalshop/storeapi/internal/cartstore"
	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

// CartService orchestrates the per-session cart: load snapshot, apply one
// engine operation, save snapshot. Writes are last-writer-wins across
// concurrent sessions/tabs.
type CartService struct {
	store   cartstore.Store
	repos   *repository.Repositories
	logger  *zap.Logger
	minimum float64
	sfg     singleflight.Group // collapses concurrent loads of the same session
}

// NewCartService creates a new cart service
func NewCartService(store cartstore.Store, repos *repository.Repositories, minimum float64, logger *zap.Logger) *CartService {
	return &CartService{
		store:   store,
		repos:   repos,
		logger:  logger,
		minimum: minimum,
	}
}

// GetCart loads the session cart; a missing snapshot reads as an empty cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		cart, err := s.store.Get(ctx, sessionID)
		if stderrors.Is(err, cartstore.ErrNotFound) {
			return domain.NewCart(sessionID), nil
		}
		if err != nil {
			return nil, err
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// Summary returns the cart with derived totals and the minimum-order gate.
func (s *CartService) Summary(ctx context.Context, sessionID string) (*CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// AddItem snapshots the product from the catalog and merges it into the
// session cart. Quantities are clamped by the engine; the result reports
// what was applied. Products whose stock cannot cover the minimum order
// quantity fail with ErrOutOfStock, same as the checkout path.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartSummary, *domain.AddResult, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, nil, &errors.ErrValidation{Field: "product_id", Message: "must be a valid UUID"}
	}

	product, err := s.repos.Product.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if !product.IsActive {
		return nil, nil, &errors.ErrNotFound{Resource: "product", ID: productID.String()}
	}

	if req.SelectedSize != "" && !hasSize(product.Sizes, req.SelectedSize) {
		return nil, nil, &errors.ErrValidation{Field: "selected_size", Message: "size not offered for this product"}
	}
	if len(product.Sizes) > 0 && req.SelectedSize == "" {
		return nil, nil, &errors.ErrValidation{Field: "selected_size", Message: "size is required for this product"}
	}

	minQty := product.MinOrderQty
	if minQty < 1 {
		minQty = 1
	}
	if product.Stock < minQty {
		requested := req.Quantity
		if requested < minQty {
			requested = minQty
		}
		return nil, nil, &errors.ErrOutOfStock{
			ProductID: productID.String(),
			Requested: requested,
			Available: product.Stock,
		}
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0].URL
	}

	result := cart.AddItem(domain.AddItemInput{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPrice:      product.Price,
		Currency:       product.Currency,
		Image:          image,
		SelectedSize:   req.SelectedSize,
		StockAtAddTime: product.Stock,
		MinOrderQty:    product.MinOrderQty,
		Quantity:       req.Quantity,
	})

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, nil, err
	}

	if result.Clamped {
		s.logger.Info("Cart quantity clamped",
			zap.String("session_id", sessionID),
			zap.String("line_id", result.LineID),
			zap.Int("applied", result.Applied),
		)
	}

	return s.summarize(cart), &result, nil
}

// UpdateQuantity sets a line's quantity. Below the line's minimum removes
// the line; unknown line IDs are a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.UpdateQuantity(lineID, quantity)

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// RemoveItem deletes a line from the session cart.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, lineID string) (*CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(lineID)

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// ClearCart empties the session cart and drops the persisted snapshot.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *CartService) summarize(cart *domain.Cart) *CartSummary {
	return &CartSummary{
		Cart:             cart,
		TotalItems:       cart.TotalItems(),
		TotalPrice:       cart.TotalPrice(),
		MinimumValue:     s.minimum,
		MinimumMet:       cart.MeetsMinimum(s.minimum),
		MinimumRemaining: cart.MinimumRemaining(s.minimum),
	}
}

func hasSize(sizes []string, size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}
