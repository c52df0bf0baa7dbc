package sqlite

import (
	"context"
	"fmt"

	"github.com/ibraservices/ibrapro/internal/metrics"
	"github.com/ibraservices/ibrapro/internal/storage"
)

// ImportSnapshot applies a backup snapshot in one transaction spanning
// all collections. Each present section is cleared and bulk-inserted;
// the company section is upserted under its fixed key; absent (nil)
// sections are left untouched. Any failure rolls the whole transaction
// back, so no collection ever ends up partially replaced.
func (s *SQLiteStore) ImportSnapshot(ctx context.Context, snap *storage.Snapshot) (err error) {
	defer func() { metrics.ObserveStoreOp("snapshot", "import", err) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if snap.Invoices != nil {
		// Clearing invoices cascades to their items.
		if _, err := tx.ExecContext(ctx, "DELETE FROM invoices"); err != nil {
			return fmt.Errorf("failed to clear invoices: %w", err)
		}
		for i := range *snap.Invoices {
			if err := insertInvoice(ctx, tx, &(*snap.Invoices)[i]); err != nil {
				return fmt.Errorf("failed to insert invoice %d: %w", i, mapKeyError(err))
			}
		}
	}

	if snap.Clients != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM clients"); err != nil {
			return fmt.Errorf("failed to clear clients: %w", err)
		}
		for i := range *snap.Clients {
			if err := insertClient(ctx, tx, &(*snap.Clients)[i]); err != nil {
				return fmt.Errorf("failed to insert client %d: %w", i, mapKeyError(err))
			}
		}
	}

	if snap.Products != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		for i := range *snap.Products {
			if err := insertProduct(ctx, tx, &(*snap.Products)[i]); err != nil {
				return fmt.Errorf("failed to insert product %d: %w", i, mapKeyError(err))
			}
		}
	}

	if snap.Company != nil {
		if err := upsertCompanyInfo(ctx, tx, snap.Company); err != nil {
			return fmt.Errorf("failed to upsert company info: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
