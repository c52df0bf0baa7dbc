package format

import (
	"strings"
	"testing"

	"github.com/ibraservices/ibrapro/internal/models"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0,00 $"},
		{229.95, "229,95 $"},
		{229.9, "229,90 $"},
		{45.987, "45,99 $"}, // rounded at presentation only
	}

	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}

	// fr-CA groups thousands with spaces, never commas or periods.
	got := Currency(12345.67)
	if strings.ContainsAny(got, ".") || !strings.HasSuffix(got, "45,67 $") {
		t.Errorf("Currency(12345.67) = %q, want fr-CA grouping with ',67 $' suffix", got)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-01-15", "2026/01/15"},
		{"", ""},
		{"not a date", "not a date"},
	}

	for _, tt := range tests {
		if got := Date(tt.in); got != tt.want {
			t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInvoiceNumber(t *testing.T) {
	if got := InvoiceNumber(0); got != "11000100" {
		t.Errorf("InvoiceNumber(0) = %q, want 11000100", got)
	}
	if got := InvoiceNumber(3); got != "11000103" {
		t.Errorf("InvoiceNumber(3) = %q, want 11000103", got)
	}

	// The sequence must be strictly increasing as decimal strings.
	prev := InvoiceNumber(0)
	for count := 1; count < 50; count++ {
		next := InvoiceNumber(count)
		if next <= prev {
			t.Fatalf("InvoiceNumber(%d) = %q not greater than %q", count, next, prev)
		}
		prev = next
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status models.InvoiceStatus
		want   string
	}{
		{models.StatusDraft, "Brouillon"},
		{models.StatusSent, "Envoyée"},
		{models.StatusPaid, "Payée"},
		{models.StatusOverdue, "En retard"},
		{models.StatusCancelled, "Annulée"},
		{models.InvoiceStatus("Archivée"), "Archivée"}, // unknown passes through
	}

	for _, tt := range tests {
		if got := StatusLabel(tt.status); got != tt.want {
			t.Errorf("StatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
