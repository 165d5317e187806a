package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

var supportedCurrencies = map[string]bool{
	"GEL": true,
	"USD": true,
	"EUR": true,
}

type catalogService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos *repository.Repositories, logger *zap.Logger) *catalogService {
	return &catalogService{
		repos:  repos,
		logger: logger,
	}
}

// ListProducts returns a filtered, sorted, paginated product page plus the
// total match count.
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int, error) {
	return s.repos.Product.List(ctx, filter)
}

// GetProduct fetches one product with its images
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repos.Product.GetByID(ctx, id)
}

// CreateProduct validates and inserts a product
func (s *catalogService) CreateProduct(ctx context.Context, req ProductUpsertRequest) (*domain.Product, error) {
	product, err := s.productFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct validates and updates an existing product
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req ProductUpsertRequest) (*domain.Product, error) {
	existing, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := s.productFromRequest(req)
	if err != nil {
		return nil, err
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	if err := s.repos.Product.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repos.Product.Delete(ctx, id)
}

// ReorderImages rewrites a product's image order. The IDs must be a
// permutation of the product's current images.
func (s *catalogService) ReorderImages(ctx context.Context, productID uuid.UUID, imageIDs []string) error {
	ids := make([]uuid.UUID, 0, len(imageIDs))
	seen := make(map[uuid.UUID]bool, len(imageIDs))
	for _, raw := range imageIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return &errors.ErrValidation{Field: "image_ids", Message: "must all be valid UUIDs"}
		}
		if seen[id] {
			return &errors.ErrValidation{Field: "image_ids", Message: "duplicate image ID"}
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return s.repos.Product.ReorderImages(ctx, productID, ids)
}

// ListCategories returns all categories
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repos.Category.List(ctx)
}

// ListBrands returns all brands
func (s *catalogService) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	return s.repos.Brand.List(ctx)
}

func (s *catalogService) productFromRequest(req ProductUpsertRequest) (*domain.Product, error) {
	if !supportedCurrencies[req.Currency] {
		return nil, &errors.ErrValidation{Field: "currency", Message: "unsupported currency code"}
	}

	minQty := req.MinOrderQty
	if minQty < 1 {
		minQty = 1
	}
	if minQty > req.Stock && req.Stock > 0 {
		return nil, &errors.ErrValidation{Field: "min_order_qty", Message: "cannot exceed stock"}
	}

	product := &domain.Product{
		SKU:         req.SKU,
		Name:        domain.LocalizedText{EN: req.NameEN, KA: req.NameKA},
		Description: domain.LocalizedText{EN: req.DescriptionEN, KA: req.DescriptionKA},
		Price:       req.Price,
		Currency:    req.Currency,
		Stock:       req.Stock,
		MinOrderQty: minQty,
		Sizes:       req.Sizes,
		IsActive:    true,
	}

	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, &errors.ErrValidation{Field: "category_id", Message: "must be a valid UUID"}
		}
		product.CategoryID = &id
	}
	if req.BrandID != nil {
		id, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, &errors.ErrValidation{Field: "brand_id", Message: "must be a valid UUID"}
		}
		product.BrandID = &id
	}

	return product, nil
}
