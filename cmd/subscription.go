package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitecheck/internal/config"
	"sitecheck/pkg/domain"
	"sitecheck/pkg/logger"
)

// subscriptionCommand groups operator tooling for subscription rows. Billing
// owns the table in production; grant is meant for local setups and support.
func subscriptionCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Manages user subscriptions",
	}
	cmd.AddCommand(subscriptionGrantCommand(cfg))

	return cmd
}

func subscriptionGrantCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Grants an active subscription to a user for one billing period",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			rawUser, _ := cmd.Flags().GetString("user")
			rawPlan, _ := cmd.Flags().GetString("plan")
			rawInterval, _ := cmd.Flags().GetString("interval")

			userID, err := uuid.Parse(rawUser)
			if err != nil {
				logger.Fatal(ctx, "user must be a UUID", zap.Error(err))
			}
			plan, ok := domain.PlanByID(domain.PlanID(rawPlan))
			if !ok {
				logger.Fatal(ctx, "unknown plan", zap.String("plan", rawPlan))
			}

			start := time.Now().UTC()
			var end time.Time
			switch domain.BillingInterval(rawInterval) {
			case domain.BillingMonthly:
				end = start.AddDate(0, 1, 0)
			case domain.BillingYearly:
				end = start.AddDate(1, 0, 0)
			default:
				logger.Fatal(ctx, "interval must be month or year", zap.String("interval", rawInterval))
			}

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			sub, err := strg.StoreSubscription(ctx, domain.Subscription{
				UserID:             domain.UserID(userID),
				PlanID:             plan.ID,
				Status:             domain.SubscriptionActive,
				BillingInterval:    domain.BillingInterval(rawInterval),
				CurrentPeriodStart: start,
				CurrentPeriodEnd:   end,
			})
			if err != nil {
				logger.Fatal(ctx, "could not store subscription", zap.Error(err))
			}

			fmt.Printf("granted %s (%d scans) until %s\n", //nolint: forbidigo
				plan.Name, plan.ScanLimit, sub.CurrentPeriodEnd.Format(time.RFC3339))
		},
	}

	cmd.Flags().String("user", "", "User UUID")
	cmd.Flags().String("plan", string(domain.PlanEssential), "Plan ID (essential, plus, pro)")
	cmd.Flags().String("interval", string(domain.BillingMonthly), "Billing interval (month, year)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
