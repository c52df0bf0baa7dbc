// Package models defines the core domain models for IbraPro.
//
// # Entities
//
//   - Client: a customer that invoices are billed to
//   - Product: an entry in the product/service catalog
//   - Invoice: a numbered invoice with embedded line items and derived totals
//   - CompanyInfo: the issuing company's details (singleton record)
//
// # Design Principles
//
//  1. **Opaque string identifiers**: every entity carries a unique string ID
//     assigned at creation (UUID format). Relationships use ID strings, never
//     pointers, to avoid circular references.
//  2. **Embedded ownership**: an Invoice owns its InvoiceItem list. Items are
//     stored and restored with their invoice and are never shared.
//  3. **Loose references**: Invoice.ClientID and InvoiceItem.ProductID are
//     not enforced referentially. Deleting a client or product leaves
//     existing invoices untouched; display layers show a fallback label.
//  4. **Stable wire format**: JSON tags match the backup documents produced
//     by earlier releases, so old backups keep importing cleanly.
//
// Dates are ISO-8601 strings (YYYY-MM-DD for invoice dates, RFC 3339 for
// creation timestamps). ISO strings compare lexicographically, which is what
// invoice sorting and date-range filtering rely on.
package models
