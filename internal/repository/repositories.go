package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tacticalshop/storeapi/internal/domain"
)

// ProductSort enumerates the supported catalog sort orders
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortName      ProductSort = "name"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	Size        string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	Search      string // matched against both localized name columns
	Sort        ProductSort
	Limit       int
	Offset      int
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int, error)
	AddImage(ctx context.Context, image *domain.ProductImage) error
	ReorderImages(ctx context.Context, productID uuid.UUID, orderedIDs []uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	List(ctx context.Context) ([]*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	List(ctx context.Context) ([]*domain.Brand, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type OrderRepository interface {
	// CreateWithItems inserts the order and its items and decrements live
	// stock in a single transaction. Fails with ErrOutOfStock when any
	// line exceeds available stock.
	CreateWithItems(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	ListSince(ctx context.Context, since time.Time) ([]*domain.Order, error)
	ListItemsSince(ctx context.Context, since time.Time) ([]*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

// Repositories bundles all repository implementations
type Repositories struct {
	Product  ProductRepository
	Category CategoryRepository
	Brand    BrandRepository
	User     UserRepository
	Order    OrderRepository
}
