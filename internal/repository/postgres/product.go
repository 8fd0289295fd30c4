// Package postgres implements the product repository on PostgreSQL.
// Localized name and description are stored as JSONB columns keyed by
// locale code; tags use a native text array.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/ibrahimsohofi/droguerie/pkg/errors"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
	"github.com/ibrahimsohofi/droguerie/internal/repository"
	"github.com/ibrahimsohofi/droguerie/pkg/database"
)

const productColumns = `id, sku, name, description, brand, category_id, tags,
	price, stock_quantity, low_stock_threshold, average_rating, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListAll returns every product in the catalog ordered by id.
func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id`, productColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, err
	}

	return p, nil
}

// UpdateStock writes every quantity in a single transaction. All updates
// commit together or not at all; a missing product id aborts the batch.
func (r *ProductRepository) UpdateStock(ctx context.Context, updates []repository.StockUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin stock update: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	query := `UPDATE products SET stock_quantity = $1, updated_at = $2 WHERE id = $3`
	now := time.Now().UTC()

	for _, u := range updates {
		ct, err := tx.Exec(ctx, query, u.Quantity, now, u.ProductID)
		if err != nil {
			return fmt.Errorf("update stock for %s: %w", u.ProductID, err)
		}
		if ct.RowsAffected() == 0 {
			return apperrors.NotFound("product", u.ProductID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit stock update: %w", err)
	}

	return nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p               domain.Product
		nameJSON        []byte
		descriptionJSON []byte
	)

	err := row.Scan(
		&p.ID,
		&p.SKU,
		&nameJSON,
		&descriptionJSON,
		&p.Brand,
		&p.CategoryID,
		&p.Tags,
		&p.Price,
		&p.StockQuantity,
		&p.LowStockThreshold,
		&p.AverageRating,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan product row: %w", err)
	}

	if nameJSON != nil {
		if err := json.Unmarshal(nameJSON, &p.Name); err != nil {
			return nil, fmt.Errorf("unmarshal name: %w", err)
		}
	}
	if descriptionJSON != nil {
		if err := json.Unmarshal(descriptionJSON, &p.Description); err != nil {
			return nil, fmt.Errorf("unmarshal description: %w", err)
		}
	}

	return &p, nil
}
