// Package backup produces and consumes whole-store snapshot documents
// for disaster recovery and migration between machines.
//
// The document is a single JSON object with four optional sections
// (invoices, clients, products, company). How the bytes travel — file
// dialog, HTTP, pipe — is the embedding application's concern; this
// package only encodes and decodes.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ibraservices/ibrapro/internal/storage"
)

// ErrMalformed is returned by Import when the document cannot be
// parsed. The store has not been touched when this is returned.
var ErrMalformed = errors.New("malformed backup document")

// Codec exports and imports whole-store snapshots through a Store.
type Codec struct {
	store storage.Store
}

// New creates a Codec over the given store.
func New(store storage.Store) *Codec {
	return &Codec{store: store}
}

// Filename returns the conventional name for a backup exported at t,
// with the export date embedded.
func Filename(t time.Time) string {
	return fmt.Sprintf("sauvegarde_ibrapro_%s.json", t.Format("2006-01-02"))
}

// Export reads all four collections and serializes them into one
// indented JSON document. Empty collections encode as empty arrays; the
// company section is omitted entirely until company info has been set.
//
// The read is not isolated from concurrent writers; the application is
// single-user and serializes its own mutations.
func (c *Codec) Export(ctx context.Context) ([]byte, error) {
	invoices, err := c.store.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoices: %w", err)
	}
	clients, err := c.store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}
	products, err := c.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	company, err := c.store.GetCompanyInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read company info: %w", err)
	}

	snap := storage.Snapshot{
		Invoices: &invoices,
		Clients:  &clients,
		Products: &products,
		Company:  company,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize backup: %w", err)
	}

	slog.Info("Backup exported",
		"invoices", len(invoices),
		"clients", len(clients),
		"products", len(products),
		"has_company", company != nil,
		"bytes", len(data),
	)
	return data, nil
}

// Import parses a backup document and applies it to the store as one
// all-or-nothing transaction: each present section replaces its
// collection, the company section is upserted, absent sections are left
// untouched. A parse failure returns ErrMalformed before the store is
// touched; a failure during application rolls everything back. Either
// way the prior state is fully preserved on error.
//
// Referential integrity between sections is not validated: an imported
// invoice may reference a client that is not part of the document.
func (c *Codec) Import(ctx context.Context, data []byte) error {
	var snap storage.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := c.store.ImportSnapshot(ctx, &snap); err != nil {
		slog.Error("Backup import failed, prior state preserved", "error", err)
		return fmt.Errorf("failed to apply backup: %w", err)
	}

	slog.Info("Backup imported",
		"has_invoices", snap.Invoices != nil,
		"has_clients", snap.Clients != nil,
		"has_products", snap.Products != nil,
		"has_company", snap.Company != nil,
	)
	return nil
}
