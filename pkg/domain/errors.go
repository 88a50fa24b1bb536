package domain

import (
	"fmt"

	"sitecheck/pkg/serrors"
)

// Semantic error kinds raised by the scan pipeline. The API layer maps each
// of them to a status code and a user-facing message.
var (
	// ErrInvalidURL indicates the submitted string could not be turned into an absolute http(s) URL.
	ErrInvalidURL = serrors.NewKind("INVALID_URL")
	// ErrNoActiveSubscription indicates the user has no subscription in the active state.
	ErrNoActiveSubscription = serrors.NewKind("NO_ACTIVE_SUBSCRIPTION")
	// ErrSubscriptionExpired indicates the active subscription's period has already ended.
	ErrSubscriptionExpired = serrors.NewKind("SUBSCRIPTION_EXPIRED")
	// ErrQuotaExceeded indicates all scans of the current billing window are used up.
	ErrQuotaExceeded = serrors.NewKind("QUOTA_EXCEEDED")
	// ErrFetchFailed indicates the target site was unreachable or answered with a non-2xx status.
	ErrFetchFailed = serrors.NewKind("FETCH_FAILED")
	// ErrFetchTimeout indicates the target site did not answer within the fetch deadline.
	ErrFetchTimeout = serrors.NewKind("FETCH_TIMEOUT")
	// ErrAnalysisFailed indicates the analysis service failed or violated its response contract.
	ErrAnalysisFailed = serrors.NewKind("ANALYSIS_FAILED")
)

// QuotaExceededError carries the usage numbers of a rejected scan request.
// It is wrapped together with ErrQuotaExceeded so callers can extract it with errors.As.
type QuotaExceededError struct {
	Used  int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%d of %d scans used", e.Used, e.Limit)
}
