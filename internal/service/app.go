// Package service exposes the application-facing API over the store:
// an in-memory view of every collection kept consistent with durable
// storage, plus validation, invoice numbering and totals derivation.
//
// Presentation layers render from this package's read methods and never
// talk to the store directly. Every mutation writes through to the
// store first and updates the in-memory view only after the write
// succeeded, so the view never runs ahead of durable state.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ibraservices/ibrapro/internal/backup"
	"github.com/ibraservices/ibrapro/internal/calculator"
	"github.com/ibraservices/ibrapro/internal/format"
	"github.com/ibraservices/ibrapro/internal/models"
	"github.com/ibraservices/ibrapro/internal/storage"
)

// State is the lifecycle state of an AppService.
type State int

const (
	// StateUninitialized is the state before Load has been called.
	StateUninitialized State = iota
	// StateLoading is the state while the initial load is in flight.
	StateLoading
	// StateReady is the only state in which mutations are accepted.
	StateReady
)

var (
	// ErrNotReady is returned when a mutation is attempted before Load
	// has completed. This is a caller bug, not a recoverable condition.
	ErrNotReady = errors.New("service not ready")

	// ErrClientRequired is returned when an invoice is saved without a
	// client that exists at save time.
	ErrClientRequired = errors.New("invoice requires an existing client")

	// ErrNoItems is returned when a non-draft invoice is saved with an
	// empty item list.
	ErrNoItems = errors.New("invoice requires at least one item")

	// ErrNameRequired is returned when a client or product is saved
	// without a name.
	ErrNameRequired = errors.New("name is required")

	// ErrNegativePrice is returned when a product is saved with a
	// negative base price.
	ErrNegativePrice = errors.New("base price cannot be negative")
)

// DefaultCompanyInfo is the company record presented until settings
// have been saved for the first time.
func DefaultCompanyInfo() models.CompanyInfo {
	return models.CompanyInfo{
		Name:    "IBRA SERVICES INC.",
		Address: "2374 RUE ROYALE\nTrois-Rivières, QC, G9A 4L5",
		Phone:   "+1 819 979 10 17",
		Email:   "INFO@IBRASERVICES.CA",
		TPS:     "787396746RT0001",
		TVQ:     "4031303082TQ0001",
	}
}

// AppService is the application façade over a storage.Store.
//
// Reads are served from an in-memory copy of each collection so the
// presentation layer can filter and join on every keystroke without
// hitting storage. The copy is refreshed on Load and after a successful
// backup import, and incrementally maintained by each mutation.
type AppService struct {
	store     storage.Store
	codec     *backup.Codec
	suggester Suggester

	mu        sync.RWMutex
	state     State
	invoices  []models.Invoice // sorted by date descending
	clients   []models.Client
	products  []models.Product
	company   models.CompanyInfo
	listeners []func()
}

// Option configures an AppService.
type Option func(*AppService)

// WithSuggester attaches an optional text-suggestion backend. See the
// Suggester docs for the degradation contract.
func WithSuggester(sg Suggester) Option {
	return func(s *AppService) { s.suggester = sg }
}

// NewAppService creates an AppService over the given store. The service
// starts Uninitialized; call Load before anything else.
func NewAppService(store storage.Store, opts ...Option) *AppService {
	s := &AppService{
		store: store,
		codec: backup.New(store),
		state: StateUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reports the current lifecycle state.
func (s *AppService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// AddListener registers a callback invoked after every applied
// mutation. Listeners run on the mutating goroutine, outside the
// service lock.
func (s *AppService) AddListener(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load reads all four collections and transitions the service to
// Ready. It may only be called once, from Uninitialized; on failure the
// service returns to Uninitialized and Load may be retried.
func (s *AppService) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("load from state %d: service already initialized", state)
	}
	s.state = StateLoading
	s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		s.mu.Lock()
		s.state = StateUninitialized
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.state = StateReady
	counts := fmt.Sprintf("%d invoices, %d clients, %d products", len(s.invoices), len(s.clients), len(s.products))
	s.mu.Unlock()

	slog.Info("Service ready", "collections", counts)
	return nil
}

// refresh replaces the whole in-memory view from storage. The four
// collections are read in parallel.
func (s *AppService) refresh(ctx context.Context) error {
	var (
		invoices []models.Invoice
		clients  []models.Client
		products []models.Product
		company  *models.CompanyInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		invoices, err = s.store.ListInvoices(gctx)
		return err
	})
	g.Go(func() (err error) {
		clients, err = s.store.ListClients(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.store.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		company, err = s.store.GetCompanyInfo(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load collections: %w", err)
	}

	sortInvoices(invoices)

	s.mu.Lock()
	s.invoices = invoices
	s.clients = clients
	s.products = products
	if company != nil {
		s.company = *company
	} else {
		s.company = DefaultCompanyInfo()
	}
	s.mu.Unlock()
	return nil
}

// sortInvoices orders invoices by date descending, newest first.
func sortInvoices(invoices []models.Invoice) {
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].Date > invoices[j].Date
	})
}

// requireReady returns ErrNotReady unless the service is Ready.
// Callers must not hold the lock.
func (s *AppService) requireReady() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	return nil
}

// notify runs every registered listener. Call without holding the lock.
func (s *AppService) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// ListClients returns a copy of the cached client collection.
func (s *AppService) ListClients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Client(nil), s.clients...)
}

// ListProducts returns a copy of the cached product collection.
func (s *AppService) ListProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// ListInvoices returns a copy of the cached invoices, newest first.
func (s *AppService) ListInvoices() []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Invoice(nil), s.invoices...)
}

// CompanyInfo returns the cached company record (defaults until
// settings are saved).
func (s *AppService) CompanyInfo() models.CompanyInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

// InvoiceFilter selects invoices for FilterInvoices. Zero values match
// everything.
type InvoiceFilter struct {
	// Search matches, case-insensitively, against the invoice number
	// and the client name.
	Search string

	// Status limits results to one status; empty means all statuses.
	Status models.InvoiceStatus

	// DateStart and DateEnd bound the issue date, inclusive, as ISO
	// dates. Empty bounds are open.
	DateStart string
	DateEnd   string
}

// InvoiceSummary is an invoice joined with its client's display name.
type InvoiceSummary struct {
	models.Invoice

	// ClientName is the referenced client's name, or a fallback label
	// when the client has since been deleted.
	ClientName string
}

// FilterInvoices returns the cached invoices matching the filter,
// newest first, each joined with its client name. Pure projection: the
// cache is never mutated.
func (s *AppService) FilterInvoices(f InvoiceFilter) []InvoiceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	namesByID := make(map[string]string, len(s.clients))
	for _, c := range s.clients {
		namesByID[c.ID] = c.Name
	}

	search := strings.ToLower(f.Search)
	results := []InvoiceSummary{}
	for _, inv := range s.invoices {
		name, ok := namesByID[inv.ClientID]
		if !ok {
			name = format.UnknownClientLabel
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(inv.Number), search) &&
			!strings.Contains(strings.ToLower(name), search) {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.DateStart != "" && inv.Date < f.DateStart {
			continue
		}
		if f.DateEnd != "" && inv.Date > f.DateEnd {
			continue
		}

		results = append(results, InvoiceSummary{Invoice: inv, ClientName: name})
	}
	return results
}

// SaveInvoice validates, numbers and persists a new invoice, then
// returns it with its assigned ID, number and derived totals.
//
// The referenced client must exist at save time (the reference is not
// enforced afterwards), and a non-draft invoice needs at least one
// item. Totals are always recomputed from the items; whatever the
// caller put in SubTotal/TPS/TVQ/Total is overwritten.
func (s *AppService) SaveInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error) {
	if err := s.requireReady(); err != nil {
		return models.Invoice{}, err
	}

	s.mu.RLock()
	clientExists := false
	for _, c := range s.clients {
		if c.ID == invoice.ClientID {
			clientExists = true
			break
		}
	}
	invoiceCount := len(s.invoices)
	s.mu.RUnlock()

	if invoice.ClientID == "" || !clientExists {
		return models.Invoice{}, ErrClientRequired
	}
	if len(invoice.Items) == 0 && invoice.Status != models.StatusDraft {
		return models.Invoice{}, ErrNoItems
	}

	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}
	if invoice.Number == "" {
		invoice.Number = format.InvoiceNumber(invoiceCount)
	}

	lines := make([]calculator.LineItem, len(invoice.Items))
	for i, item := range invoice.Items {
		lines[i] = calculator.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}
	totals := calculator.ComputeTotals(lines)
	invoice.SubTotal = totals.SubTotal
	invoice.TPS = totals.TPS
	invoice.TVQ = totals.TVQ
	invoice.Total = totals.Total

	if err := s.store.AddInvoice(ctx, &invoice); err != nil {
		slog.Error("SaveInvoice failed", "number", invoice.Number, "error", err)
		return models.Invoice{}, err
	}

	s.mu.Lock()
	s.invoices = append(s.invoices, invoice)
	sortInvoices(s.invoices)
	s.mu.Unlock()
	s.notify()

	slog.Info("Invoice saved",
		"invoice_id", invoice.ID,
		"number", invoice.Number,
		"client_id", invoice.ClientID,
		"total", invoice.Total,
	)
	return invoice, nil
}

// DeleteInvoice removes an invoice and its items. Deleting an absent ID
// is a no-op.
func (s *AppService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.requireReady(); err != nil {
		return err
	}

	if err := s.store.DeleteInvoice(ctx, id); err != nil {
		slog.Error("DeleteInvoice failed", "invoice_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	s.invoices = removeByID(s.invoices, id, func(inv models.Invoice) string { return inv.ID })
	s.mu.Unlock()
	s.notify()

	slog.Info("Invoice deleted", "invoice_id", id)
	return nil
}

// UpsertClient creates the client when its ID is empty, otherwise fully
// replaces the stored record. Returns the client with its assigned ID
// and creation timestamp.
func (s *AppService) UpsertClient(ctx context.Context, client models.Client) (models.Client, error) {
	if err := s.requireReady(); err != nil {
		return models.Client{}, err
	}
	if strings.TrimSpace(client.Name) == "" {
		return models.Client{}, ErrNameRequired
	}

	creating := client.ID == ""
	var err error
	if creating {
		err = s.store.AddClient(ctx, &client)
	} else {
		err = s.store.PutClient(ctx, &client)
	}
	if err != nil {
		slog.Error("UpsertClient failed", "client_id", client.ID, "error", err)
		return models.Client{}, err
	}

	s.mu.Lock()
	if creating {
		s.clients = append(s.clients, client)
	} else {
		s.clients = replaceByID(s.clients, client, func(c models.Client) string { return c.ID })
	}
	s.mu.Unlock()
	s.notify()

	slog.Info("Client saved", "client_id", client.ID, "name", client.Name, "created", creating)
	return client, nil
}

// QuickAddClient creates a client from just a name, for inline creation
// while drafting an invoice.
func (s *AppService) QuickAddClient(ctx context.Context, name string) (models.Client, error) {
	return s.UpsertClient(ctx, models.Client{Name: name})
}

// DeleteClient removes a client. Invoices referencing it are left as
// they are and render with a fallback client label from then on.
func (s *AppService) DeleteClient(ctx context.Context, id string) error {
	if err := s.requireReady(); err != nil {
		return err
	}

	if err := s.store.DeleteClient(ctx, id); err != nil {
		slog.Error("DeleteClient failed", "client_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	s.clients = removeByID(s.clients, id, func(c models.Client) string { return c.ID })
	s.mu.Unlock()
	s.notify()

	slog.Info("Client deleted", "client_id", id)
	return nil
}

// UpsertProduct creates the product when its ID is empty, otherwise
// fully replaces the stored record.
func (s *AppService) UpsertProduct(ctx context.Context, product models.Product) (models.Product, error) {
	if err := s.requireReady(); err != nil {
		return models.Product{}, err
	}
	if strings.TrimSpace(product.Name) == "" {
		return models.Product{}, ErrNameRequired
	}
	if product.BasePrice < 0 {
		return models.Product{}, ErrNegativePrice
	}

	creating := product.ID == ""
	var err error
	if creating {
		err = s.store.AddProduct(ctx, &product)
	} else {
		err = s.store.PutProduct(ctx, &product)
	}
	if err != nil {
		slog.Error("UpsertProduct failed", "product_id", product.ID, "error", err)
		return models.Product{}, err
	}

	s.mu.Lock()
	if creating {
		s.products = append(s.products, product)
	} else {
		s.products = replaceByID(s.products, product, func(p models.Product) string { return p.ID })
	}
	s.mu.Unlock()
	s.notify()

	slog.Info("Product saved", "product_id", product.ID, "name", product.Name, "created", creating)
	return product, nil
}

// DeleteProduct removes a catalog product. Invoice items referencing it
// keep their copied description and price.
func (s *AppService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.requireReady(); err != nil {
		return err
	}

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		slog.Error("DeleteProduct failed", "product_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	s.products = removeByID(s.products, id, func(p models.Product) string { return p.ID })
	s.mu.Unlock()
	s.notify()

	slog.Info("Product deleted", "product_id", id)
	return nil
}

// SaveSettings replaces the company record.
func (s *AppService) SaveSettings(ctx context.Context, info models.CompanyInfo) error {
	if err := s.requireReady(); err != nil {
		return err
	}

	if err := s.store.PutCompanyInfo(ctx, &info); err != nil {
		slog.Error("SaveSettings failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.company = info
	s.mu.Unlock()
	s.notify()

	slog.Info("Settings saved", "company", info.Name)
	return nil
}

// DashboardStats summarizes the cached invoices for the dashboard.
type DashboardStats struct {
	// TotalRevenue is the sum of paid invoice totals.
	TotalRevenue float64

	// PendingRevenue is the sum of sent and overdue invoice totals.
	PendingRevenue float64

	// OverdueRevenue is the overdue share of PendingRevenue.
	OverdueRevenue float64

	// OverdueCount is the number of overdue invoices.
	OverdueCount int
}

// Stats computes dashboard figures from the cache. Pure projection.
func (s *AppService) Stats() DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats DashboardStats
	for _, inv := range s.invoices {
		switch inv.Status {
		case models.StatusPaid:
			stats.TotalRevenue += inv.Total
		case models.StatusSent:
			stats.PendingRevenue += inv.Total
		case models.StatusOverdue:
			stats.PendingRevenue += inv.Total
			stats.OverdueRevenue += inv.Total
			stats.OverdueCount++
		}
	}
	return stats
}

// ExportBackup serializes the whole store into a backup document and
// returns it with its conventional date-stamped filename.
func (s *AppService) ExportBackup(ctx context.Context, exportedAt time.Time) ([]byte, string, error) {
	if err := s.requireReady(); err != nil {
		return nil, "", err
	}

	data, err := s.codec.Export(ctx)
	if err != nil {
		return nil, "", err
	}
	return data, backup.Filename(exportedAt), nil
}

// ImportBackup restores the store from a backup document and, on
// success, replaces the whole in-memory view with the restored state.
// On failure the store and the view both keep their prior state; the
// caller is expected to surface the error to the user.
func (s *AppService) ImportBackup(ctx context.Context, data []byte) error {
	if err := s.requireReady(); err != nil {
		return err
	}

	if err := s.codec.Import(ctx, data); err != nil {
		return err
	}

	if err := s.refresh(ctx); err != nil {
		return fmt.Errorf("backup applied but reloading the view failed: %w", err)
	}
	s.notify()
	return nil
}

// removeByID filters out the element with the given ID, preserving
// order.
func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	result := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			result = append(result, item)
		}
	}
	return result
}

// replaceByID swaps the element with a matching ID for its new value.
func replaceByID[T any](items []T, replacement T, idOf func(T) string) []T {
	for i, item := range items {
		if idOf(item) == idOf(replacement) {
			items[i] = replacement
			return items
		}
	}
	return append(items, replacement)
}
