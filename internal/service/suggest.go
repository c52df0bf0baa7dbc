package service

import (
	"context"
	"log/slog"
	"strings"
)

// Suggester generates short marketing/advisory texts. It is a soft,
// best-effort dependency provided by the embedding application (the
// production app backs it with a hosted model); its failure or absence
// must never affect invoices, totals or persistence, so every caller
// degrades to a fixed French fallback string instead of propagating an
// error.
type Suggester interface {
	// ProductDescription proposes a short description for a catalog
	// product with the given name.
	ProductDescription(ctx context.Context, productName string) (string, error)

	// FinancialAdvice proposes one sentence of advice given the paid
	// revenue to date and the number of overdue invoices.
	FinancialAdvice(ctx context.Context, revenue float64, overdueCount int) (string, error)
}

// Fallback texts shown when no suggester is configured, the call
// fails, or it returns nothing.
const (
	fallbackDescription            = "Description non disponible."
	fallbackDescriptionUnavailable = "Service de description indisponible."
	fallbackAdvice                 = "Continuez votre excellent travail."
	fallbackAdviceUnavailable      = "Gardez un œil sur votre trésorerie."
)

// SuggestProductDescription returns a proposed description for a
// product name. Never fails: degraded results come back as fixed
// fallback text.
func (s *AppService) SuggestProductDescription(ctx context.Context, productName string) string {
	if s.suggester == nil {
		return fallbackDescriptionUnavailable
	}

	description, err := s.suggester.ProductDescription(ctx, productName)
	if err != nil {
		slog.Warn("Product description suggestion failed", "product", productName, "error", err)
		return fallbackDescriptionUnavailable
	}
	if strings.TrimSpace(description) == "" {
		return fallbackDescription
	}
	return strings.TrimSpace(description)
}

// SuggestFinancialAdvice returns one sentence of financial advice based
// on the current dashboard stats. Never fails: degraded results come
// back as fixed fallback text.
func (s *AppService) SuggestFinancialAdvice(ctx context.Context) string {
	if s.suggester == nil {
		return fallbackAdviceUnavailable
	}

	stats := s.Stats()
	advice, err := s.suggester.FinancialAdvice(ctx, stats.TotalRevenue, stats.OverdueCount)
	if err != nil {
		slog.Warn("Financial advice suggestion failed", "error", err)
		return fallbackAdviceUnavailable
	}
	if strings.TrimSpace(advice) == "" {
		return fallbackAdvice
	}
	return strings.TrimSpace(advice)
}
