package models

// Client represents a customer that invoices are billed to.
type Client struct {
	// ID is the unique identifier for the client (UUID format).
	ID string `json:"id"`

	// Name is the client's display name. Must be non-empty.
	Name string `json:"name"`

	// Email is the client's contact email address.
	Email string `json:"email"`

	// Phone is the client's contact phone number.
	Phone string `json:"phone"`

	// Address is the client's postal address, possibly multi-line.
	Address string `json:"address"`

	// TaxID is the client's own tax registration number, if they have one.
	TaxID string `json:"taxId,omitempty"`

	// CreatedAt is the RFC 3339 timestamp when the client was created.
	CreatedAt string `json:"createdAt"`
}
