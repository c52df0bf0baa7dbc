package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ibraservices/ibrapro/internal/metrics"
	"github.com/ibraservices/ibrapro/internal/models"
)

// GetCompanyInfo retrieves the singleton company record. Returns
// (nil, nil) until it has been set.
func (s *SQLiteStore) GetCompanyInfo(ctx context.Context) (info *models.CompanyInfo, err error) {
	defer func() { metrics.ObserveStoreOp("company", "get", err) }()

	info = &models.CompanyInfo{}
	err = s.db.QueryRowContext(ctx,
		"SELECT name, address, phone, email, tps, tvq, logo FROM company WHERE id = ?",
		companyKey,
	).Scan(&info.Name, &info.Address, &info.Phone, &info.Email, &info.TPS, &info.TVQ, &info.Logo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company info: %w", err)
	}
	return info, nil
}

// PutCompanyInfo inserts or fully replaces the singleton company record.
func (s *SQLiteStore) PutCompanyInfo(ctx context.Context, info *models.CompanyInfo) (err error) {
	defer func() { metrics.ObserveStoreOp("company", "put", err) }()

	if err := upsertCompanyInfo(ctx, s.db, info); err != nil {
		return fmt.Errorf("failed to put company info: %w", err)
	}
	return nil
}

// upsertCompanyInfo writes the singleton row through db or an open
// transaction.
func upsertCompanyInfo(ctx context.Context, e execer, info *models.CompanyInfo) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO company (id, name, address, phone, email, tps, tvq, logo)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, address = excluded.address, phone = excluded.phone,
		   email = excluded.email, tps = excluded.tps, tvq = excluded.tvq, logo = excluded.logo`,
		companyKey, info.Name, info.Address, info.Phone, info.Email, info.TPS, info.TVQ, info.Logo,
	)
	return err
}
