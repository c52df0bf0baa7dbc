// Command ibrapro is a maintenance CLI for an IbraPro database:
// inspect dashboard figures and move backups in and out without going
// through the desktop application.
//
// Usage:
//
//	ibrapro stats
//	ibrapro export [directory]
//	ibrapro import <file>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ibraservices/ibrapro/internal/config"
	"github.com/ibraservices/ibrapro/internal/format"
	"github.com/ibraservices/ibrapro/internal/service"
	"github.com/ibraservices/ibrapro/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	svc, err := service.Open(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open application", "error", err)
		os.Exit(1)
	}
	defer svc.Close()

	switch os.Args[1] {
	case "stats":
		err = runStats(svc)
	case "export":
		dir := "."
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		err = runExport(ctx, svc, dir)
	case "import":
		if len(os.Args) < 3 {
			usage()
			os.Exit(2)
		}
		err = runImport(ctx, svc, os.Args[2])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ibrapro stats | export [directory] | import <file>")
}

func runStats(svc *service.AppService) error {
	stats := svc.Stats()
	fmt.Printf("Revenus encaissés : %s\n", format.Currency(stats.TotalRevenue))
	fmt.Printf("Revenus en attente : %s\n", format.Currency(stats.PendingRevenue))
	fmt.Printf("Factures en retard : %d (%s)\n", stats.OverdueCount, format.Currency(stats.OverdueRevenue))
	return nil
}

func runExport(ctx context.Context, svc *service.AppService, dir string) error {
	data, filename, err := svc.ExportBackup(ctx, time.Now())
	if err != nil {
		return err
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	fmt.Printf("Sauvegarde écrite : %s\n", path)
	return nil
}

func runImport(ctx context.Context, svc *service.AppService, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if err := svc.ImportBackup(ctx, data); err != nil {
		return err
	}
	fmt.Printf("Sauvegarde restaurée : %s\n", path)
	return nil
}
