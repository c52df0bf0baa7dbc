package models

// CompanyInfo holds the issuing company's details printed on every
// invoice. It is a singleton record: the store keeps exactly one copy
// under a fixed key and writes always replace the whole record.
type CompanyInfo struct {
	// Name is the company's legal name.
	Name string `json:"name"`

	// Address is the company's postal address, possibly multi-line.
	Address string `json:"address"`

	// Phone is the company's contact phone number.
	Phone string `json:"phone"`

	// Email is the company's contact email address.
	Email string `json:"email"`

	// TPS is the company's federal tax registration number.
	TPS string `json:"tps"`

	// TVQ is the company's Quebec tax registration number.
	TVQ string `json:"tvq"`

	// Logo is an optional base64 data string shown on printed invoices.
	Logo string `json:"logo,omitempty"`
}
