package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

type mockProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
	err      error
}

func newMockProductRepo(products ...*domain.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.String()}
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	product, ok := m.products[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	return product, nil
}

func (m *mockProductRepo) GetBySKU(_ context.Context, sku string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, product := range m.products {
		if product.SKU == sku {
			return product, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: sku}
}

func (m *mockProductRepo) List(context.Context, repository.ProductFilter) ([]*domain.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		products = append(products, product)
	}
	return products, len(products), nil
}

func (m *mockProductRepo) AddImage(context.Context, *domain.ProductImage) error { return nil }

func (m *mockProductRepo) ReorderImages(context.Context, uuid.UUID, []uuid.UUID) error { return nil }

type mockCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
}

func newMockCategoryRepo(categories ...*domain.Category) *mockCategoryRepo {
	m := &mockCategoryRepo{categories: make(map[string]*domain.Category)}
	for _, c := range categories {
		m.categories[c.Slug] = c
	}
	return m
}

func (m *mockCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.Slug] = category
	return nil
}

func (m *mockCategoryRepo) List(context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := make([]*domain.Category, 0, len(m.categories))
	for _, category := range m.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

func (m *mockCategoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.categories[slug]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "category", ID: slug}
	}
	return category, nil
}

type mockBrandRepo struct{}

func (m *mockBrandRepo) Create(context.Context, *domain.Brand) error { return nil }

func (m *mockBrandRepo) List(context.Context) ([]*domain.Brand, error) { return nil, nil }

type mockUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "user", ID: email}
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "user", ID: id.String()}
	}
	return user, nil
}

type mockOrderRepo struct {
	mu        sync.Mutex
	orders    []*domain.Order
	items     []*domain.OrderItem
	createErr error
}

func (m *mockOrderRepo) CreateWithItems(_ context.Context, order *domain.Order, items []*domain.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	m.orders = append(m.orders, order)
	for _, item := range items {
		item.OrderID = order.ID
		m.items = append(m.items, item)
	}
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (m *mockOrderRepo) GetItems(_ context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []*domain.OrderItem{}
	for _, item := range m.items {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := []*domain.Order{}
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) ListByStatus(_ context.Context, status domain.OrderStatus, _, _ int) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := []*domain.Order{}
	for _, order := range m.orders {
		if order.Status == status {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) ListSince(_ context.Context, since time.Time) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := []*domain.Order{}
	for _, order := range m.orders {
		if !order.CreatedAt.Before(since) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) ListItemsSince(_ context.Context, since time.Time) ([]*domain.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byOrder := make(map[uuid.UUID]bool)
	for _, order := range m.orders {
		if !order.CreatedAt.Before(since) {
			byOrder[order.ID] = true
		}
	}
	items := []*domain.OrderItem{}
	for _, item := range m.items {
		if byOrder[item.OrderID] {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.ID == id {
			order.Status = status
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func testRepos(products *mockProductRepo, orders *mockOrderRepo, categories *mockCategoryRepo, users *mockUserRepo) *repository.Repositories {
	if products == nil {
		products = newMockProductRepo()
	}
	if orders == nil {
		orders = &mockOrderRepo{}
	}
	if categories == nil {
		categories = newMockCategoryRepo()
	}
	if users == nil {
		users = newMockUserRepo()
	}
	return &repository.Repositories{
		Product:  products,
		Category: categories,
		Brand:    &mockBrandRepo{},
		User:     users,
		Order:    orders,
	}
}
