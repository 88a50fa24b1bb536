package scanner

import (
	"context"
	"fmt"

	"sitecheck/pkg/domain"
	"sitecheck/pkg/serrors"
)

// Admit implements QuotaGate.
func (s *scanner) Admit(ctx context.Context, userID domain.UserID) (*Admission, error) {
	sub, err := s.storage.ActiveSubscription(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load subscription: %w", err)
	}
	if sub == nil {
		return nil, serrors.With(domain.ErrNoActiveSubscription, "an active subscription is required to scan websites")
	}
	if sub.Expired(s.options.Now()) {
		return nil, serrors.With(domain.ErrSubscriptionExpired, "your subscription period has ended")
	}

	plan, ok := domain.PlanByID(sub.PlanID)
	if !ok {
		return nil, serrors.With(serrors.ErrInternal, "subscription references unknown plan %q", sub.PlanID)
	}
	window := sub.Window(plan)

	used, err := s.storage.CountCompletedScans(ctx, userID, window.PeriodStart, window.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("could not count completed scans: %w", err)
	}
	if used >= window.ScanLimit {
		return nil, quotaExceeded(used, window.ScanLimit)
	}

	return &Admission{
		Subscription: *sub,
		Window:       window,
		Used:         used,
	}, nil
}

func quotaExceeded(used, limit int) error {
	return serrors.Wrap(domain.ErrQuotaExceeded,
		&domain.QuotaExceededError{Used: used, Limit: limit},
		"you have used all scans of the current billing period")
}
