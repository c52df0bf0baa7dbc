package models

// InvoiceStatus is the lifecycle state of an invoice.
//
// There are no automatic transitions: callers set whichever status they
// want and the store persists it unchanged. Unknown values round-trip
// as-is (older backups may carry localized status strings).
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "Draft"
	StatusSent      InvoiceStatus = "Sent"
	StatusPaid      InvoiceStatus = "Paid"
	StatusOverdue   InvoiceStatus = "Overdue"
	StatusCancelled InvoiceStatus = "Cancelled"
)

// InvoiceItem represents a single line item on an invoice.
// Items are owned by their invoice: they are embedded in it, stored with
// it, and deleted with it.
type InvoiceItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// ProductID references the catalog product this item was created
	// from, if any. The reference is loose: the product may have been
	// deleted since.
	ProductID string `json:"productId,omitempty"`

	// Description is the line's free-text description.
	Description string `json:"description"`

	// Quantity is the number of units billed.
	Quantity float64 `json:"quantity"`

	// UnitPrice is the pre-tax price per unit.
	UnitPrice float64 `json:"unitPrice"`
}

// VehicleInfo describes the vehicle an invoice relates to.
// IbraPro is used by a garage, so invoices can carry the serviced
// vehicle's details for the printed document.
type VehicleInfo struct {
	Year    string `json:"year"`
	Model   string `json:"model"`
	VIN     string `json:"vin"`
	Mileage string `json:"mileage"`
}

// Invoice represents a numbered invoice with embedded line items and
// derived totals.
//
// SubTotal, TPS, TVQ and Total are derived from Items by the calculator
// package and are persisted at full floating precision: rounding to two
// decimals happens only at presentation time, so re-computation is exact.
type Invoice struct {
	// ID is the unique identifier for the invoice (UUID format).
	ID string `json:"id"`

	// Number is the human-facing invoice number, a strictly increasing
	// decimal string assigned at save time.
	Number string `json:"number"`

	// ClientID references the billed client. The reference is loose:
	// the client may have been deleted since the invoice was created.
	ClientID string `json:"clientId"`

	// Date is the issue date (ISO YYYY-MM-DD).
	Date string `json:"date"`

	// DueDate is the payment due date (ISO YYYY-MM-DD).
	DueDate string `json:"dueDate"`

	// Items are the invoice's line items, in display order.
	Items []InvoiceItem `json:"items"`

	// Status is the caller-driven lifecycle state.
	Status InvoiceStatus `json:"status"`

	// Notes is optional free text printed on the invoice.
	Notes string `json:"notes,omitempty"`

	// Vehicle is the serviced vehicle, when relevant.
	Vehicle *VehicleInfo `json:"vehicle,omitempty"`

	// SubTotal is the pre-tax sum of all line totals.
	SubTotal float64 `json:"subTotal"`

	// TPS is the federal sales tax amount (5% of SubTotal).
	TPS float64 `json:"tps"`

	// TVQ is the Quebec sales tax amount (9.975% of SubTotal).
	TVQ float64 `json:"tvq"`

	// Total is SubTotal + TPS + TVQ.
	Total float64 `json:"total"`
}
