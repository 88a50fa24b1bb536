package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"sitecheck/pkg/domain"
)

const (
	subscriptionsTable = "subscriptions"
)

// ActiveSubscription returns the active subscription with the latest period
// end for the user, or nil.
func (p *PgSQL) ActiveSubscription(ctx context.Context, userID domain.UserID) (*domain.Subscription, error) {
	var row PgSubscription
	found, err := p.Builder.From(subscriptionsTable).
		Where(
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("status").Eq(string(domain.SubscriptionActive)),
		).
		Order(goqu.I("current_period_end").Desc()).
		Limit(1).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch active subscription: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// StoreSubscription inserts sub and returns it as stored, with its generated ID.
func (p *PgSQL) StoreSubscription(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error) {
	var row PgSubscription
	row.FromDomain(sub)

	var stored PgSubscription
	if _, err := p.Builder.Insert(subscriptionsTable).
		Rows(row).
		Returning(&PgSubscription{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, fmt.Errorf("could not store subscription into pg: %w", err)
	}

	return stored.ToDomain(), nil
}
