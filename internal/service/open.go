package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ibraservices/ibrapro/internal/config"
	"github.com/ibraservices/ibrapro/internal/storage/sqlite"
)

// Open builds the standard production wiring from configuration: a
// SQLite store at the configured path and a loaded, Ready AppService
// over it. Closing the returned service closes the store.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*AppService, error) {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	slog.Info("Storage initialized", "database", cfg.DBPath)

	svc := NewAppService(store, opts...)
	if err := svc.Load(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return svc, nil
}

// Close releases the underlying store.
func (s *AppService) Close() error {
	return s.store.Close()
}
