package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `id, sku, name_en, name_ka, description_en, description_ka,
	category_id, brand_id, price, currency, stock, min_order_qty, sizes,
	is_active, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, sku, name_en, name_ka, description_en, description_ka,
			category_id, brand_id, price, currency, stock, min_order_qty, sizes,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.SKU,
		product.Name.EN,
		product.Name.KA,
		product.Description.EN,
		product.Description.KA,
		product.CategoryID,
		product.BrandID,
		product.Price,
		product.Currency,
		product.Stock,
		product.MinOrderQty,
		pq.Array(product.Sizes),
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name_en = $3, name_ka = $4, description_en = $5, description_ka = $6,
			category_id = $7, brand_id = $8, price = $9, currency = $10, stock = $11,
			min_order_qty = $12, sizes = $13, is_active = $14, updated_at = $15
		WHERE id = $1
	`

	product.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.SKU,
		product.Name.EN,
		product.Name.KA,
		product.Description.EN,
		product.Description.KA,
		product.CategoryID,
		product.BrandID,
		product.Price,
		product.Currency,
		product.Stock,
		product.MinOrderQty,
		pq.Array(product.Sizes),
		product.IsActive,
		product.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update product", zap.Error(err))
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.String()}
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Error(err))
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}

	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := r.scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Error(err))
		return nil, err
	}

	if err := r.loadImages(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE sku = $1`, productColumns)

	product, err := r.scanProduct(r.db.QueryRowContext(ctx, query, sku))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: sku}
	}
	if err != nil {
		r.logger.Error("Failed to get product by SKU", zap.Error(err))
		return nil, err
	}

	if err := r.loadImages(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int, error) {
	conditions := []string{"is_active = true"}
	args := []interface{}{}

	addArg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = %s", addArg(*filter.CategoryID)))
	}
	if filter.BrandID != nil {
		conditions = append(conditions, fmt.Sprintf("brand_id = %s", addArg(*filter.BrandID)))
	}
	if filter.Size != "" {
		conditions = append(conditions, fmt.Sprintf("%s = ANY(sizes)", addArg(filter.Size)))
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= %s", addArg(*filter.MinPrice)))
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= %s", addArg(*filter.MaxPrice)))
	}
	if filter.InStockOnly {
		conditions = append(conditions, "stock > 0")
	}
	if filter.Search != "" {
		arg := addArg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(name_en ILIKE %s OR name_ka ILIKE %s)", arg, arg))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products WHERE %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count products", zap.Error(err))
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	switch filter.Sort {
	case repository.SortPriceAsc:
		orderBy = "price ASC"
	case repository.SortPriceDesc:
		orderBy = "price DESC"
	case repository.SortName:
		orderBy = "name_en ASC"
	}

	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT %s OFFSET %s`,
		productColumns, where, orderBy, addArg(limit), addArg(offset))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			r.logger.Error("Failed to scan product row", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, product := range products {
		if err := r.loadImages(ctx, product); err != nil {
			return nil, 0, err
		}
	}

	return products, total, nil
}

func (r *productRepository) AddImage(ctx context.Context, image *domain.ProductImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO product_images (id, product_id, url, position, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		image.ID,
		image.ProductID,
		image.URL,
		image.Position,
		image.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to add product image", zap.Error(err))
		return err
	}

	return nil
}

// ReorderImages rewrites image positions to match orderedIDs. The list must
// be a permutation of the product's current image IDs.
func (r *productRepository) ReorderImages(ctx context.Context, productID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM product_images WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count != len(orderedIDs) {
		return &errors.ErrValidation{
			Field:   "image_ids",
			Message: fmt.Sprintf("expected %d image IDs, got %d", count, len(orderedIDs)),
		}
	}

	for position, imageID := range orderedIDs {
		result, err := tx.ExecContext(ctx,
			`UPDATE product_images SET position = $1 WHERE id = $2 AND product_id = $3`,
			position, imageID, productID,
		)
		if err != nil {
			r.logger.Error("Failed to reorder product images", zap.Error(err))
			return err
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return &errors.ErrValidation{
				Field:   "image_ids",
				Message: fmt.Sprintf("image %s does not belong to product", imageID),
			}
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *productRepository) scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var categoryID, brandID uuid.NullUUID
	var sizes pq.StringArray

	err := row.Scan(
		&product.ID,
		&product.SKU,
		&product.Name.EN,
		&product.Name.KA,
		&product.Description.EN,
		&product.Description.KA,
		&categoryID,
		&brandID,
		&product.Price,
		&product.Currency,
		&product.Stock,
		&product.MinOrderQty,
		&sizes,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}
	if brandID.Valid {
		product.BrandID = &brandID.UUID
	}
	product.Sizes = sizes

	return &product, nil
}

func (r *productRepository) loadImages(ctx context.Context, product *domain.Product) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, url, position, created_at
		 FROM product_images WHERE product_id = $1 ORDER BY position`,
		product.ID,
	)
	if err != nil {
		r.logger.Error("Failed to load product images", zap.Error(err))
		return err
	}
	defer rows.Close()

	images := []domain.ProductImage{}
	for rows.Next() {
		var image domain.ProductImage
		if err := rows.Scan(&image.ID, &image.ProductID, &image.URL, &image.Position, &image.CreatedAt); err != nil {
			return err
		}
		images = append(images, image)
	}
	product.Images = images

	return rows.Err()
}
