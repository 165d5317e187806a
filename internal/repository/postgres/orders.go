package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `id, user_id, status, total, currency, customer_name,
	customer_phone, shipping_address, created_at, updated_at`

// CreateWithItems inserts the order, its items and decrements stock in one
// transaction. Stock decrement is conditional so two concurrent checkouts
// cannot oversell; the loser fails with ErrOutOfStock.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, status, total, currency, customer_name,
			customer_phone, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		order.ID,
		order.UserID,
		order.Status,
		order.Total,
		order.Currency,
		order.CustomerName,
		order.CustomerPhone,
		addressJSON,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	for _, item := range items {
		result, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
			item.Quantity, item.ProductID,
		)
		if err != nil {
			r.logger.Error("Failed to decrement stock", zap.Error(err))
			return err
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			var available int
			if err := tx.QueryRowContext(ctx,
				`SELECT stock FROM products WHERE id = $1`, item.ProductID,
			).Scan(&available); err != nil {
				available = 0
			}
			return &errors.ErrOutOfStock{
				ProductID: item.ProductID.String(),
				Requested: item.Quantity,
				Available: available,
			}
		}

		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		item.CreatedAt = now

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name_en, name_ka,
				unit_price, quantity, selected_size, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Name.EN,
			item.Name.KA,
			item.UnitPrice,
			item.Quantity,
			item.SelectedSize,
			item.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to create order item", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name_en, name_ka, unit_price, quantity, selected_size, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at
	`, orderID)
	if err != nil {
		r.logger.Error("Failed to get order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list orders by user", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return r.scanOrders(rows)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list orders by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return r.scanOrders(rows)
}

func (r *orderRepository) ListSince(ctx context.Context, since time.Time) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE created_at >= $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		r.logger.Error("Failed to list orders since", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return r.scanOrders(rows)
}

func (r *orderRepository) ListItemsSince(ctx context.Context, since time.Time) ([]*domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.order_id, i.product_id, i.name_en, i.name_ka,
			i.unit_price, i.quantity, i.selected_size, i.created_at
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.created_at >= $1
	`, since)
	if err != nil {
		r.logger.Error("Failed to list order items since", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var addressJSON []byte

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.Total,
		&order.Currency,
		&order.CustomerName,
		&order.CustomerPhone,
		&addressJSON,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(addressJSON) > 0 {
		if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
			return nil, err
		}
	}

	return &order, nil
}

func (r *orderRepository) scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	orders := []*domain.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func scanOrderItems(rows *sql.Rows) ([]*domain.OrderItem, error) {
	items := []*domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name.EN,
			&item.Name.KA,
			&item.UnitPrice,
			&item.Quantity,
			&item.SelectedSize,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
