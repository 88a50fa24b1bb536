package scanner

import (
	"context"

	"sitecheck/pkg/domain"
)

// QuotaGate decides whether a user may start another scan.
type QuotaGate interface {
	// Admit checks the user's subscription and usage of the current billing
	// window. It fails with domain.ErrNoActiveSubscription,
	// domain.ErrSubscriptionExpired or domain.ErrQuotaExceeded.
	Admit(ctx context.Context, userID domain.UserID) (*Admission, error)
}

// Scanner is the entry point of the scan pipeline.
//
//go:generate mockgen -package mockscanner -source=interface.go -destination=mock/mockscanner.go *
type Scanner interface {
	QuotaGate

	// Scan runs quota check, normalization, fetch and analysis for rawURL and
	// persists the result unless the analysis lacked data.
	Scan(ctx context.Context, userID domain.UserID, rawURL string) (*Outcome, error)
	// Share returns the share link of the user's scan, minting it on first use.
	Share(ctx context.Context, userID domain.UserID, scanID domain.ScanID) (*ShareLink, error)
	// SharedScan resolves a share token to the public view of its scan.
	SharedScan(ctx context.Context, shareID string) (*domain.PublicScan, error)
	// History lists the user's completed scans, newest first.
	History(ctx context.Context, userID domain.UserID, limit, offset int) ([]domain.Scan, error)
}

// Admission is the result of a successful quota check.
type Admission struct {
	Subscription domain.Subscription
	Window       domain.BillingWindow
	// Used is the number of completed scans in the window at check time.
	Used int
}

// Remaining returns the scans left in the window.
func (a *Admission) Remaining() int {
	return max(a.Window.ScanLimit-a.Used, 0)
}

// Outcome is the result of one scan request.
type Outcome struct {
	// ScanID is nil when nothing was persisted.
	ScanID         *domain.ScanID
	Target         domain.Target
	Verdict        domain.Verdict
	PageTitle      *string
	RemainingScans int
	TotalScans     int
}

// ShareLink is the public address of a shared scan.
type ShareLink struct {
	ShareID  string
	ShareURL string
}
