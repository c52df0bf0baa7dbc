// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/ibraservices/ibrapro/internal/models"
)

// ErrDuplicateKey is returned by Add operations when a record with the
// same ID already exists. The store is left unchanged.
var ErrDuplicateKey = errors.New("duplicate key")

// Snapshot is a whole-store state capture used by backup export/import.
//
// Pointer fields distinguish "section absent" (nil: leave the collection
// untouched on import) from "section present but empty" (clear the
// collection and insert nothing). The JSON tags define the backup file
// format and must not change.
type Snapshot struct {
	Invoices *[]models.Invoice   `json:"invoices,omitempty"`
	Clients  *[]models.Client    `json:"clients,omitempty"`
	Products *[]models.Product   `json:"products,omitempty"`
	Company  *models.CompanyInfo `json:"company,omitempty"`
}

// Store defines the interface for invoicing data storage.
// This abstraction allows swapping storage backends without changing the
// service layer.
//
// Contracts shared by every implementation:
//
//   - Writes are durably committed before the call returns. A crash
//     right after a successful Add/Put/Delete must not lose that write.
//   - Add fails with ErrDuplicateKey if the ID is already taken.
//   - Get returns (nil, nil) for an absent record; absence is never an
//     error.
//   - Delete of an absent ID is a no-op, not an error.
//   - List returns the full collection in insertion order. Callers that
//     need a different order re-sort.
type Store interface {
	// Clients.
	AddClient(ctx context.Context, client *models.Client) error
	GetClient(ctx context.Context, id string) (*models.Client, error)
	PutClient(ctx context.Context, client *models.Client) error
	DeleteClient(ctx context.Context, id string) error
	ListClients(ctx context.Context) ([]models.Client, error)

	// Products.
	AddProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	PutProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]models.Product, error)

	// Invoices. Line items are stored and deleted with their invoice.
	AddInvoice(ctx context.Context, invoice *models.Invoice) error
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context) ([]models.Invoice, error)

	// Company info is a singleton: Put inserts or fully replaces it,
	// Get returns (nil, nil) until it has been set.
	GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
	PutCompanyInfo(ctx context.Context, info *models.CompanyInfo) error

	// ImportSnapshot applies a backup snapshot in a single transaction
	// spanning all collections: each present section is cleared and
	// bulk-inserted (company is upserted), absent sections are left
	// untouched. On any failure the whole transaction rolls back and
	// every collection keeps its prior state.
	ImportSnapshot(ctx context.Context, snap *Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
