package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ibraservices/ibrapro/internal/metrics"
	"github.com/ibraservices/ibrapro/internal/models"
)

// AddClient inserts a new client. The ID and CreatedAt fields are
// populated when empty. Fails with storage.ErrDuplicateKey if the ID is
// already taken.
func (s *SQLiteStore) AddClient(ctx context.Context, client *models.Client) (err error) {
	defer func() { metrics.ObserveStoreOp("clients", "add", err) }()

	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	if client.CreatedAt == "" {
		client.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := insertClient(ctx, s.db, client); err != nil {
		return fmt.Errorf("failed to insert client: %w", mapKeyError(err))
	}
	return nil
}

// GetClient retrieves a client by ID. Absence returns (nil, nil).
func (s *SQLiteStore) GetClient(ctx context.Context, id string) (client *models.Client, err error) {
	defer func() { metrics.ObserveStoreOp("clients", "get", err) }()

	client = &models.Client{}
	err = s.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone, address, tax_id, created_at FROM clients WHERE id = ?",
		id,
	).Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Address, &client.TaxID, &client.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// PutClient inserts or fully replaces a client by ID.
func (s *SQLiteStore) PutClient(ctx context.Context, client *models.Client) (err error) {
	defer func() { metrics.ObserveStoreOp("clients", "put", err) }()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO clients (id, name, email, phone, address, tax_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, email = excluded.email, phone = excluded.phone,
		   address = excluded.address, tax_id = excluded.tax_id, created_at = excluded.created_at`,
		client.ID, client.Name, client.Email, client.Phone, client.Address, client.TaxID, client.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put client: %w", err)
	}
	return nil
}

// DeleteClient removes a client by ID. Deleting an absent ID is a no-op.
// Invoices referencing the client are left untouched.
func (s *SQLiteStore) DeleteClient(ctx context.Context, id string) (err error) {
	defer func() { metrics.ObserveStoreOp("clients", "delete", err) }()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// ListClients returns all clients in insertion order.
func (s *SQLiteStore) ListClients(ctx context.Context) (clients []models.Client, err error) {
	defer func() { metrics.ObserveStoreOp("clients", "list", err) }()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, phone, address, tax_id, created_at FROM clients ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients = []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.TaxID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}

// insertClient writes one client row through db or an open transaction.
func insertClient(ctx context.Context, e execer, c *models.Client) error {
	_, err := e.ExecContext(ctx,
		"INSERT INTO clients (id, name, email, phone, address, tax_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.TaxID, c.CreatedAt,
	)
	return err
}
