// Package format renders amounts, dates, invoice numbers and status
// labels for the application's fixed fr-CA locale.
//
// Formatting is presentation-only. Stored amounts keep full floating
// precision; rounding to two decimals happens here and nowhere else.
// Every function is pure and deterministic.
package format

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ibraservices/ibrapro/internal/models"
)

// invoiceNumberBase is the seed of the invoice number sequence. Numbers
// continue the 7-digit series used on the company's paper invoices.
const invoiceNumberBase = 11000100

// UnknownClientLabel is shown when an invoice references a client that
// has since been deleted.
const UnknownClientLabel = "Inconnu"

var printer = message.NewPrinter(language.CanadianFrench)

// statusLabels maps stored status values to their French display labels.
var statusLabels = map[models.InvoiceStatus]string{
	models.StatusDraft:     "Brouillon",
	models.StatusSent:      "Envoyée",
	models.StatusPaid:      "Payée",
	models.StatusOverdue:   "En retard",
	models.StatusCancelled: "Annulée",
}

// Currency renders an amount as a fr-CA currency string with two
// decimals and a trailing dollar sign, e.g. "1 234,56 $".
func Currency(amount float64) string {
	return printer.Sprintf("%v $", number.Decimal(amount, number.Scale(2)))
}

// Date converts an ISO date (YYYY-MM-DD) to the YYYY/MM/DD display form.
// Empty or non-ISO input is returned unchanged.
func Date(isoDate string) string {
	if strings.Count(isoDate, "-") != 2 {
		return isoDate
	}
	return strings.ReplaceAll(isoDate, "-", "/")
}

// InvoiceNumber derives the invoice number for the next invoice given
// the number of invoices already created. The sequence is strictly
// increasing: count n maps to the decimal string of invoiceNumberBase+n.
func InvoiceNumber(count int) string {
	return strconv.Itoa(invoiceNumberBase + count)
}

// StatusLabel returns the French display label for a status. Unknown
// values (e.g. statuses restored from a foreign backup) are returned
// unchanged.
func StatusLabel(status models.InvoiceStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}
