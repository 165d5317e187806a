package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

type categoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *categoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO categories (id, name_en, name_ka, slug, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name.EN,
		category.Name.KA,
		category.Slug,
		category.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create category", zap.Error(err))
		return err
	}

	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name_en, name_ka, slug, created_at FROM categories ORDER BY name_en`,
	)
	if err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name.EN,
			&category.Name.KA,
			&category.Slug,
			&category.CreatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name_en, name_ka, slug, created_at FROM categories WHERE slug = $1`, slug,
	).Scan(
		&category.ID,
		&category.Name.EN,
		&category.Name.KA,
		&category.Slug,
		&category.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "category", ID: slug}
	}
	if err != nil {
		r.logger.Error("Failed to get category by slug", zap.Error(err))
		return nil, err
	}

	return &category, nil
}

type brandRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository(db *sql.DB, logger *zap.Logger) *brandRepository {
	return &brandRepository{
		db:     db,
		logger: logger,
	}
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	if brand.CreatedAt.IsZero() {
		brand.CreatedAt = time.Now()
	}

	query := `INSERT INTO brands (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, brand.ID, brand.Name, brand.Slug, brand.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create brand", zap.Error(err))
		return err
	}

	return nil
}

func (r *brandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at FROM brands ORDER BY name`,
	)
	if err != nil {
		r.logger.Error("Failed to list brands", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	brands := []*domain.Brand{}
	for rows.Next() {
		var brand domain.Brand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Slug, &brand.CreatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, &brand)
	}

	return brands, rows.Err()
}
