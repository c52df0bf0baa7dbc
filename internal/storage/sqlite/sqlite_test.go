package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ibraservices/ibrapro/internal/models"
	"github.com/ibraservices/ibrapro/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestClients(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("AddClient generates ID and CreatedAt", func(t *testing.T) {
		client := &models.Client{Name: "Garage Tremblay", Email: "info@tremblay.ca"}

		if err := store.AddClient(ctx, client); err != nil {
			t.Fatalf("AddClient failed: %v", err)
		}
		if client.ID == "" {
			t.Error("Expected client ID to be generated")
		}
		if client.CreatedAt == "" {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetClient retrieves full record", func(t *testing.T) {
		original := &models.Client{
			Name:    "Transport Gagnon",
			Email:   "compta@gagnon.ca",
			Phone:   "+1 819 555 01 02",
			Address: "18 rue Principale\nShawinigan, QC",
			TaxID:   "123456789RT0001",
		}
		if err := store.AddClient(ctx, original); err != nil {
			t.Fatalf("AddClient failed: %v", err)
		}

		retrieved, err := store.GetClient(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetClient failed: %v", err)
		}
		if retrieved == nil {
			t.Fatal("GetClient returned nil for existing client")
		}
		if *retrieved != *original {
			t.Errorf("GetClient = %+v, want %+v", retrieved, original)
		}
	})

	t.Run("GetClient returns nil, nil for absent ID", func(t *testing.T) {
		client, err := store.GetClient(ctx, "nonexistent-id")
		if err != nil {
			t.Fatalf("GetClient returned error for absence: %v", err)
		}
		if client != nil {
			t.Errorf("GetClient = %+v, want nil", client)
		}
	})

	t.Run("AddClient rejects duplicate ID and keeps one record", func(t *testing.T) {
		client := &models.Client{ID: "client-dup", Name: "A", CreatedAt: "2026-01-01T00:00:00Z"}
		if err := store.AddClient(ctx, client); err != nil {
			t.Fatalf("first AddClient failed: %v", err)
		}

		dup := &models.Client{ID: "client-dup", Name: "B", CreatedAt: "2026-01-02T00:00:00Z"}
		err := store.AddClient(ctx, dup)
		if !errors.Is(err, storage.ErrDuplicateKey) {
			t.Fatalf("second AddClient error = %v, want ErrDuplicateKey", err)
		}

		retrieved, err := store.GetClient(ctx, "client-dup")
		if err != nil {
			t.Fatalf("GetClient failed: %v", err)
		}
		if retrieved.Name != "A" {
			t.Errorf("record after duplicate add = %q, want original %q", retrieved.Name, "A")
		}
	})

	t.Run("PutClient upserts", func(t *testing.T) {
		client := &models.Client{ID: "client-up", Name: "Before", CreatedAt: "2026-01-01T00:00:00Z"}
		if err := store.PutClient(ctx, client); err != nil {
			t.Fatalf("PutClient insert failed: %v", err)
		}

		client.Name = "After"
		if err := store.PutClient(ctx, client); err != nil {
			t.Fatalf("PutClient replace failed: %v", err)
		}

		retrieved, _ := store.GetClient(ctx, "client-up")
		if retrieved.Name != "After" {
			t.Errorf("Name = %q, want After", retrieved.Name)
		}
	})

	t.Run("DeleteClient is idempotent", func(t *testing.T) {
		client := &models.Client{Name: "Ephemeral"}
		if err := store.AddClient(ctx, client); err != nil {
			t.Fatalf("AddClient failed: %v", err)
		}

		if err := store.DeleteClient(ctx, client.ID); err != nil {
			t.Fatalf("first DeleteClient failed: %v", err)
		}
		if err := store.DeleteClient(ctx, client.ID); err != nil {
			t.Fatalf("second DeleteClient failed: %v", err)
		}

		retrieved, err := store.GetClient(ctx, client.ID)
		if err != nil || retrieved != nil {
			t.Errorf("GetClient after delete = (%+v, %v), want (nil, nil)", retrieved, err)
		}
	})
}

func TestProducts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	product := &models.Product{
		Name:        "Changement d'huile",
		Description: "Huile synthétique et filtre",
		BasePrice:   89.95,
		TaxRate:     14.975,
	}
	if err := store.AddProduct(ctx, product); err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}
	if product.ID == "" {
		t.Error("Expected product ID to be generated")
	}

	retrieved, err := store.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if *retrieved != *product {
		t.Errorf("GetProduct = %+v, want %+v", retrieved, product)
	}

	if err := store.AddProduct(ctx, &models.Product{ID: product.ID, Name: "dup"}); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("duplicate AddProduct error = %v, want ErrDuplicateKey", err)
	}

	product.BasePrice = 99.95
	if err := store.PutProduct(ctx, product); err != nil {
		t.Fatalf("PutProduct failed: %v", err)
	}
	retrieved, _ = store.GetProduct(ctx, product.ID)
	if retrieved.BasePrice != 99.95 {
		t.Errorf("BasePrice after put = %v, want 99.95", retrieved.BasePrice)
	}

	if err := store.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if err := store.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("repeated DeleteProduct failed: %v", err)
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("ListProducts after delete = %d products, want 0", len(products))
	}
}

func TestInvoices(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("AddInvoice round-trips items and vehicle", func(t *testing.T) {
		original := &models.Invoice{
			Number:   "11000100",
			ClientID: "client-1",
			Date:     "2026-03-01",
			DueDate:  "2026-03-31",
			Status:   models.StatusSent,
			Notes:    "Garantie 90 jours",
			Vehicle:  &models.VehicleInfo{Year: "2019", Model: "Civic", VIN: "2HGFC2F59KH000001", Mileage: "98000"},
			Items: []models.InvoiceItem{
				{Description: "Freins avant", Quantity: 2, UnitPrice: 50},
				{ProductID: "prod-1", Description: "Main d'oeuvre", Quantity: 1, UnitPrice: 100},
			},
			SubTotal: 200,
			TPS:      10,
			TVQ:      19.95,
			Total:    229.95,
		}

		if err := store.AddInvoice(ctx, original); err != nil {
			t.Fatalf("AddInvoice failed: %v", err)
		}
		if original.ID == "" {
			t.Error("Expected invoice ID to be generated")
		}
		for i, item := range original.Items {
			if item.ID == "" {
				t.Errorf("Expected item %d ID to be generated", i)
			}
		}

		retrieved, err := store.GetInvoice(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetInvoice failed: %v", err)
		}
		if retrieved == nil {
			t.Fatal("GetInvoice returned nil for existing invoice")
		}
		if retrieved.Number != original.Number || retrieved.Status != original.Status ||
			retrieved.Total != original.Total || retrieved.Notes != original.Notes {
			t.Errorf("GetInvoice = %+v, want %+v", retrieved, original)
		}
		if retrieved.Vehicle == nil || *retrieved.Vehicle != *original.Vehicle {
			t.Errorf("Vehicle = %+v, want %+v", retrieved.Vehicle, original.Vehicle)
		}
		if len(retrieved.Items) != 2 {
			t.Fatalf("Items count = %d, want 2", len(retrieved.Items))
		}
		// Item order must be preserved.
		if retrieved.Items[0].Description != "Freins avant" || retrieved.Items[1].ProductID != "prod-1" {
			t.Errorf("Items out of order: %+v", retrieved.Items)
		}
	})

	t.Run("invoice without vehicle stays without vehicle", func(t *testing.T) {
		inv := &models.Invoice{Number: "11000101", ClientID: "client-1", Date: "2026-03-02", DueDate: "2026-04-01", Status: models.StatusDraft}
		if err := store.AddInvoice(ctx, inv); err != nil {
			t.Fatalf("AddInvoice failed: %v", err)
		}

		retrieved, err := store.GetInvoice(ctx, inv.ID)
		if err != nil {
			t.Fatalf("GetInvoice failed: %v", err)
		}
		if retrieved.Vehicle != nil {
			t.Errorf("Vehicle = %+v, want nil", retrieved.Vehicle)
		}
		if retrieved.Items == nil || len(retrieved.Items) != 0 {
			t.Errorf("Items = %v, want empty non-nil slice", retrieved.Items)
		}
	})

	t.Run("DeleteInvoice cascades to items and is idempotent", func(t *testing.T) {
		inv := &models.Invoice{
			Number: "11000102", ClientID: "client-2", Date: "2026-03-03", DueDate: "2026-04-02",
			Status: models.StatusPaid,
			Items:  []models.InvoiceItem{{Description: "Pneus", Quantity: 4, UnitPrice: 120}},
		}
		if err := store.AddInvoice(ctx, inv); err != nil {
			t.Fatalf("AddInvoice failed: %v", err)
		}

		if err := store.DeleteInvoice(ctx, inv.ID); err != nil {
			t.Fatalf("DeleteInvoice failed: %v", err)
		}
		if err := store.DeleteInvoice(ctx, inv.ID); err != nil {
			t.Fatalf("repeated DeleteInvoice failed: %v", err)
		}

		var n int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM invoice_items WHERE invoice_id = ?", inv.ID).Scan(&n); err != nil {
			t.Fatalf("counting items failed: %v", err)
		}
		if n != 0 {
			t.Errorf("orphaned items = %d, want 0", n)
		}
	})

	t.Run("ListInvoices attaches items per invoice", func(t *testing.T) {
		invoices, err := store.ListInvoices(ctx)
		if err != nil {
			t.Fatalf("ListInvoices failed: %v", err)
		}
		if len(invoices) != 2 {
			t.Fatalf("ListInvoices count = %d, want 2", len(invoices))
		}
		for _, inv := range invoices {
			switch inv.Number {
			case "11000100":
				if len(inv.Items) != 2 {
					t.Errorf("invoice %s items = %d, want 2", inv.Number, len(inv.Items))
				}
			case "11000101":
				if len(inv.Items) != 0 {
					t.Errorf("invoice %s items = %d, want 0", inv.Number, len(inv.Items))
				}
			default:
				t.Errorf("unexpected invoice %s", inv.Number)
			}
		}
	})
}

func TestCompanyInfo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	info, err := store.GetCompanyInfo(ctx)
	if err != nil {
		t.Fatalf("GetCompanyInfo failed: %v", err)
	}
	if info != nil {
		t.Errorf("GetCompanyInfo before put = %+v, want nil", info)
	}

	first := &models.CompanyInfo{
		Name:    "IBRA SERVICES INC.",
		Address: "2374 RUE ROYALE\nTrois-Rivières, QC, G9A 4L5",
		Phone:   "+1 819 979 10 17",
		Email:   "INFO@IBRASERVICES.CA",
		TPS:     "787396746RT0001",
		TVQ:     "4031303082TQ0001",
	}
	if err := store.PutCompanyInfo(ctx, first); err != nil {
		t.Fatalf("PutCompanyInfo failed: %v", err)
	}

	second := &models.CompanyInfo{Name: "IBRA SERVICES INC.", Phone: "+1 819 979 10 18", TPS: first.TPS, TVQ: first.TVQ}
	if err := store.PutCompanyInfo(ctx, second); err != nil {
		t.Fatalf("second PutCompanyInfo failed: %v", err)
	}

	retrieved, err := store.GetCompanyInfo(ctx)
	if err != nil {
		t.Fatalf("GetCompanyInfo failed: %v", err)
	}
	if *retrieved != *second {
		t.Errorf("GetCompanyInfo = %+v, want full replacement %+v", retrieved, second)
	}
}
