package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus mirrors the billing provider's subscription state.
type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionTrialing   SubscriptionStatus = "trialing"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
)

// BillingInterval is the renewal cadence of a subscription.
type BillingInterval string

const (
	BillingMonthly BillingInterval = "month"
	BillingYearly  BillingInterval = "year"
)

// Subscription is a user's paid entitlement. Rows are maintained by the
// billing integration; the scan pipeline only reads them.
type Subscription struct {
	ID              uuid.UUID
	UserID          UserID
	PlanID          PlanID
	Status          SubscriptionStatus
	BillingInterval BillingInterval

	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
}

// Expired reports whether the current period has already ended at now.
// A row can still be marked active when the billing webhook lags behind.
func (s Subscription) Expired(now time.Time) bool {
	return s.CurrentPeriodEnd.Before(now)
}

// BillingWindow bounds quota accounting to the active period of a subscription.
type BillingWindow struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	ScanLimit   int
}

// Window combines the subscription period with the plan's scan limit.
func (s Subscription) Window(plan Plan) BillingWindow {
	return BillingWindow{
		PeriodStart: s.CurrentPeriodStart,
		PeriodEnd:   s.CurrentPeriodEnd,
		ScanLimit:   plan.ScanLimit,
	}
}
