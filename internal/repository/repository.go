package repository

import (
	"context"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

// StockUpdate is a single quantity write produced by a reconciliation run.
type StockUpdate struct {
	ProductID string
	Quantity  int
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// ListAll returns the full product collection. Query evaluation happens
	// in memory, so this is the only read path the engine needs.
	ListAll(ctx context.Context) ([]*domain.Product, error)

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// UpdateStock writes the given quantities in a single transaction.
	UpdateStock(ctx context.Context, updates []StockUpdate) error
}
