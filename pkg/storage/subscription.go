package storage

import (
	"context"

	"sitecheck/pkg/domain"
)

// SubscriptionStorage reads the subscription rows maintained by billing.
type SubscriptionStorage interface {
	// ActiveSubscription returns the user's most recent subscription in the
	// active state, or nil when there is none.
	ActiveSubscription(ctx context.Context, userID domain.UserID) (*domain.Subscription, error)
	// StoreSubscription inserts a subscription row. It is used by operator
	// tooling; the billing integration owns the table in production.
	StoreSubscription(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error)
}
