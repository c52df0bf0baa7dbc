package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ibraservices/ibrapro/internal/metrics"
	"github.com/ibraservices/ibrapro/internal/models"
)

// AddInvoice persists a new invoice with its line items in one
// transaction. The invoice ID and any missing item IDs are populated.
// Fails with storage.ErrDuplicateKey if the invoice ID is already taken.
func (s *SQLiteStore) AddInvoice(ctx context.Context, invoice *models.Invoice) (err error) {
	defer func() { metrics.ObserveStoreOp("invoices", "add", err) }()

	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}
	for i := range invoice.Items {
		if invoice.Items[i].ID == "" {
			invoice.Items[i].ID = uuid.NewString()
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertInvoice(ctx, tx, invoice); err != nil {
		return fmt.Errorf("failed to insert invoice: %w", mapKeyError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetInvoice retrieves an invoice by ID, including all line items.
// Absence returns (nil, nil).
func (s *SQLiteStore) GetInvoice(ctx context.Context, id string) (invoice *models.Invoice, err error) {
	defer func() { metrics.ObserveStoreOp("invoices", "get", err) }()

	invoice = &models.Invoice{}
	var vehicle vehicleColumns
	err = s.db.QueryRowContext(ctx,
		`SELECT id, number, client_id, date, due_date, status, notes,
		        vehicle_year, vehicle_model, vehicle_vin, vehicle_mileage,
		        sub_total, tps, tvq, total
		 FROM invoices WHERE id = ?`,
		id,
	).Scan(
		&invoice.ID, &invoice.Number, &invoice.ClientID, &invoice.Date, &invoice.DueDate,
		&invoice.Status, &invoice.Notes,
		&vehicle.year, &vehicle.model, &vehicle.vin, &vehicle.mileage,
		&invoice.SubTotal, &invoice.TPS, &invoice.TVQ, &invoice.Total,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	invoice.Vehicle = vehicle.toModel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, description, quantity, unit_price
		 FROM invoice_items WHERE invoice_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice items: %w", err)
	}
	defer rows.Close()

	invoice.Items = []models.InvoiceItem{}
	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		invoice.Items = append(invoice.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice items: %w", err)
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice by ID; its line items go with it via
// the ownership cascade. Deleting an absent ID is a no-op.
func (s *SQLiteStore) DeleteInvoice(ctx context.Context, id string) (err error) {
	defer func() { metrics.ObserveStoreOp("invoices", "delete", err) }()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

// ListInvoices returns all invoices with their line items in insertion
// order. Date ordering is the caller's concern.
func (s *SQLiteStore) ListInvoices(ctx context.Context) (invoices []models.Invoice, err error) {
	defer func() { metrics.ObserveStoreOp("invoices", "list", err) }()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, number, client_id, date, due_date, status, notes,
		        vehicle_year, vehicle_model, vehicle_vin, vehicle_mileage,
		        sub_total, tps, tvq, total
		 FROM invoices ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices = []models.Invoice{}
	for rows.Next() {
		var inv models.Invoice
		var vehicle vehicleColumns
		if err := rows.Scan(
			&inv.ID, &inv.Number, &inv.ClientID, &inv.Date, &inv.DueDate,
			&inv.Status, &inv.Notes,
			&vehicle.year, &vehicle.model, &vehicle.vin, &vehicle.mileage,
			&inv.SubTotal, &inv.TPS, &inv.TVQ, &inv.Total,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		inv.Vehicle = vehicle.toModel()
		inv.Items = []models.InvoiceItem{}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	// One pass over all items instead of a query per invoice.
	itemRows, err := s.db.QueryContext(ctx,
		`SELECT invoice_id, id, product_id, description, quantity, unit_price
		 FROM invoice_items ORDER BY invoice_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	defer itemRows.Close()

	itemsByInvoice := make(map[string][]models.InvoiceItem)
	for itemRows.Next() {
		var invoiceID string
		var item models.InvoiceItem
		if err := itemRows.Scan(&invoiceID, &item.ID, &item.ProductID, &item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		itemsByInvoice[invoiceID] = append(itemsByInvoice[invoiceID], item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice items: %w", err)
	}

	for i := range invoices {
		if items, ok := itemsByInvoice[invoices[i].ID]; ok {
			invoices[i].Items = items
		}
	}
	return invoices, nil
}

// insertInvoice writes an invoice row and its item rows through an open
// transaction (or db, for callers that manage their own atomicity).
func insertInvoice(ctx context.Context, e execer, inv *models.Invoice) error {
	var year, model, vin, mileage any
	if inv.Vehicle != nil {
		year, model, vin, mileage = inv.Vehicle.Year, inv.Vehicle.Model, inv.Vehicle.VIN, inv.Vehicle.Mileage
	}

	_, err := e.ExecContext(ctx,
		`INSERT INTO invoices (id, number, client_id, date, due_date, status, notes,
		                       vehicle_year, vehicle_model, vehicle_vin, vehicle_mileage,
		                       sub_total, tps, tvq, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Number, inv.ClientID, inv.Date, inv.DueDate, inv.Status, inv.Notes,
		year, model, vin, mileage,
		inv.SubTotal, inv.TPS, inv.TVQ, inv.Total,
	)
	if err != nil {
		return err
	}

	for i, item := range inv.Items {
		_, err := e.ExecContext(ctx,
			`INSERT INTO invoice_items (id, invoice_id, product_id, description, quantity, unit_price, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, inv.ID, item.ProductID, item.Description, item.Quantity, item.UnitPrice, i,
		)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// vehicleColumns holds the nullable vehicle columns of an invoice row.
type vehicleColumns struct {
	year, model, vin, mileage sql.NullString
}

func (v vehicleColumns) toModel() *models.VehicleInfo {
	if !v.year.Valid && !v.model.Valid && !v.vin.Valid && !v.mileage.Valid {
		return nil
	}
	return &models.VehicleInfo{
		Year:    v.year.String,
		Model:   v.model.String,
		VIN:     v.vin.String,
		Mileage: v.mileage.String,
	}
}
