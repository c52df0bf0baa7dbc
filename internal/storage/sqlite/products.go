package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ibraservices/ibrapro/internal/metrics"
	"github.com/ibraservices/ibrapro/internal/models"
)

// AddProduct inserts a new catalog product. The ID field is populated
// when empty. Fails with storage.ErrDuplicateKey if the ID is already
// taken.
func (s *SQLiteStore) AddProduct(ctx context.Context, product *models.Product) (err error) {
	defer func() { metrics.ObserveStoreOp("products", "add", err) }()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	if err := insertProduct(ctx, s.db, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", mapKeyError(err))
	}
	return nil
}

// GetProduct retrieves a product by ID. Absence returns (nil, nil).
func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (product *models.Product, err error) {
	defer func() { metrics.ObserveStoreOp("products", "get", err) }()

	product = &models.Product{}
	err = s.db.QueryRowContext(ctx,
		"SELECT id, name, description, base_price, tax_rate FROM products WHERE id = ?",
		id,
	).Scan(&product.ID, &product.Name, &product.Description, &product.BasePrice, &product.TaxRate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// PutProduct inserts or fully replaces a product by ID.
func (s *SQLiteStore) PutProduct(ctx context.Context, product *models.Product) (err error) {
	defer func() { metrics.ObserveStoreOp("products", "put", err) }()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, base_price, tax_rate)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, description = excluded.description,
		   base_price = excluded.base_price, tax_rate = excluded.tax_rate`,
		product.ID, product.Name, product.Description, product.BasePrice, product.TaxRate,
	)
	if err != nil {
		return fmt.Errorf("failed to put product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product by ID. Deleting an absent ID is a
// no-op. Invoice items referencing the product are left untouched.
func (s *SQLiteStore) DeleteProduct(ctx context.Context, id string) (err error) {
	defer func() { metrics.ObserveStoreOp("products", "delete", err) }()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// ListProducts returns all products in insertion order.
func (s *SQLiteStore) ListProducts(ctx context.Context) (products []models.Product, err error) {
	defer func() { metrics.ObserveStoreOp("products", "list", err) }()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, base_price, tax_rate FROM products ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products = []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.BasePrice, &p.TaxRate); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// insertProduct writes one product row through db or an open transaction.
func insertProduct(ctx context.Context, e execer, p *models.Product) error {
	_, err := e.ExecContext(ctx,
		"INSERT INTO products (id, name, description, base_price, tax_rate) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.Name, p.Description, p.BasePrice, p.TaxRate,
	)
	return err
}
