package storage

import (
	"context"
	"time"

	"sitecheck/pkg/domain"
)

// ScanStorage persists completed scans. Only records of completed analyses
// are ever stored, so every row counts against the owner's quota.
type ScanStorage interface {
	// StoreScan inserts a record and returns it with its generated ID and creation time.
	StoreScan(ctx context.Context, scan domain.Scan) (*domain.Scan, error)
	// CountCompletedScans counts the user's completed scans created within
	// [from, to], both bounds inclusive.
	CountCompletedScans(ctx context.Context, userID domain.UserID, from, to time.Time) (int, error)
	// LockUserScans serializes scan persistence for a user until the
	// surrounding transaction ends. Returns ErrNotInTx outside a transaction.
	LockUserScans(ctx context.Context, userID domain.UserID) error
	// ScanByID returns the user's scan with the given ID, or nil when it does
	// not exist or belongs to someone else.
	ScanByID(ctx context.Context, userID domain.UserID, id domain.ScanID) (*domain.Scan, error)
	// SetShareID stores shareID on the user's scan unless one is already set.
	// It reports whether the row was updated.
	SetShareID(ctx context.Context, userID domain.UserID, id domain.ScanID, shareID string) (bool, error)
	// ScanByShareID returns the completed scan carrying shareID, or nil.
	ScanByShareID(ctx context.Context, shareID string) (*domain.Scan, error)
	// UserScans lists the user's completed scans newest first.
	UserScans(ctx context.Context, userID domain.UserID, limit, offset uint) ([]domain.Scan, error)
}
