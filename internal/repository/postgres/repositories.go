package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/repository"
)

// NewRepositories wires all Postgres repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:  NewProductRepository(db, logger),
		Category: NewCategoryRepository(db, logger),
		Brand:    NewBrandRepository(db, logger),
		User:     NewUserRepository(db, logger),
		Order:    NewOrderRepository(db, logger),
	}
}
