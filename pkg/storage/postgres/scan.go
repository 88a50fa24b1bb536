package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"sitecheck/pkg/domain"
	"sitecheck/pkg/storage"
)

const (
	scanRecordsTable = "scan_records"
)

// StoreScan inserts a completed scan and returns the stored row.
func (p *PgSQL) StoreScan(ctx context.Context, scan domain.Scan) (*domain.Scan, error) {
	var row PgScan
	if err := row.FromDomain(scan); err != nil {
		return nil, err
	}

	var stored PgScan
	if _, err := p.Builder.Insert(scanRecordsTable).
		Rows(row).
		Returning(&PgScan{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, fmt.Errorf("could not store scan into pg: %w", err)
	}

	return stored.ToDomain()
}

// CountCompletedScans counts completed scans created within [from, to].
func (p *PgSQL) CountCompletedScans(ctx context.Context, userID domain.UserID, from, to time.Time) (int, error) {
	count, err := p.Builder.From(scanRecordsTable).
		Where(
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("not_enough_data").IsFalse(),
			goqu.I("created_at").Gte(from),
			goqu.I("created_at").Lte(to),
		).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count completed scans in pg: %w", err)
	}

	return int(count), nil
}

// LockUserScans takes a transaction scoped advisory lock keyed by the user ID.
// Concurrent persisters of the same user queue behind it until commit or rollback.
func (p *PgSQL) LockUserScans(ctx context.Context, userID domain.UserID) error {
	if _, ok := p.DB.(*sql.Tx); !ok {
		return storage.ErrNotInTx
	}

	if _, err := p.DB.ExecContext(ctx,
		"SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", userID.String()); err != nil {
		return fmt.Errorf("could not acquire user scan lock: %w", err)
	}

	return nil
}

// ScanByID returns the user's scan by its ID, or nil.
func (p *PgSQL) ScanByID(ctx context.Context, userID domain.UserID, id domain.ScanID) (*domain.Scan, error) {
	var row PgScan
	found, err := p.Builder.From(scanRecordsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch scan by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// SetShareID assigns shareID only when the scan has none yet.
func (p *PgSQL) SetShareID(ctx context.Context, userID domain.UserID, id domain.ScanID, shareID string) (bool, error) {
	res, err := p.Builder.Update(scanRecordsTable).
		Set(goqu.Record{"share_id": shareID}).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("share_id").IsNull(),
		).Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not set share id in pg: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return affected == 1, nil
}

// ScanByShareID returns the completed scan carrying shareID, or nil.
func (p *PgSQL) ScanByShareID(ctx context.Context, shareID string) (*domain.Scan, error) {
	var row PgScan
	found, err := p.Builder.From(scanRecordsTable).
		Where(
			goqu.I("share_id").Eq(shareID),
			goqu.I("not_enough_data").IsFalse(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch scan by share id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserScans lists the user's completed scans ordered by created_at DESC, id DESC.
func (p *PgSQL) UserScans(ctx context.Context, userID domain.UserID, limit, offset uint) ([]domain.Scan, error) {
	var rows []PgScan
	if err := p.Builder.From(scanRecordsTable).
		Where(
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("not_enough_data").IsFalse(),
		).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit).
		Offset(offset).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch user scans from pg: %w", err)
	}

	return pgScansToDomain(rows)
}
