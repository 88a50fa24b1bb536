package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sitecheck/pkg/domain"
)

type PgScan struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	URL               string `db:"url"`
	NormalizedURL     string `db:"normalized_url"`
	Domain            string `db:"domain"`
	RegistrableDomain string `db:"registrable_domain"`

	OverallVerdict   string `db:"overall_verdict"`
	ScamRiskScore    int    `db:"scam_risk_score"`
	MalwareRiskScore int    `db:"malware_risk_score"`
	ReviewTrustScore int    `db:"review_trust_score"`
	NotEnoughData    bool   `db:"not_enough_data"`
	SummaryReasons   []byte `db:"summary_reasons"`
	RawAIResult      []byte `db:"raw_ai_result"`

	ShareID         sql.NullString `db:"share_id"`
	PageTitle       sql.NullString `db:"page_title"`
	MetaDescription sql.NullString `db:"meta_description"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgScan) ToDomain() (*domain.Scan, error) {
	var reasons []string
	if err := json.Unmarshal(p.SummaryReasons, &reasons); err != nil {
		return nil, fmt.Errorf("could not unmarshal summary reasons: %w", err)
	}
	var verdict domain.Verdict
	if err := json.Unmarshal(p.RawAIResult, &verdict); err != nil {
		return nil, fmt.Errorf("could not unmarshal raw ai result: %w", err)
	}

	return &domain.Scan{
		ID:                domain.ScanID(p.ID),
		UserID:            domain.UserID(p.UserID),
		URL:               p.URL,
		NormalizedURL:     p.NormalizedURL,
		Domain:            p.Domain,
		RegistrableDomain: p.RegistrableDomain,
		OverallVerdict:    domain.OverallVerdict(p.OverallVerdict),
		ScamRiskScore:     p.ScamRiskScore,
		MalwareRiskScore:  p.MalwareRiskScore,
		ReviewTrustScore:  p.ReviewTrustScore,
		NotEnoughData:     p.NotEnoughData,
		Reasons:           reasons,
		Verdict:           verdict,
		ShareID:           nullableString(p.ShareID),
		PageTitle:         nullableString(p.PageTitle),
		MetaDescription:   nullableString(p.MetaDescription),
		CreatedAt:         p.CreatedAt,
	}, nil
}

func (p *PgScan) FromDomain(scan domain.Scan) error {
	reasons := scan.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	summary, err := json.Marshal(reasons)
	if err != nil {
		return fmt.Errorf("could not marshal summary reasons: %w", err)
	}
	raw, err := json.Marshal(scan.Verdict)
	if err != nil {
		return fmt.Errorf("could not marshal raw ai result: %w", err)
	}

	*p = PgScan{
		ID:                uuid.UUID(scan.ID),
		UserID:            uuid.UUID(scan.UserID),
		URL:               scan.URL,
		NormalizedURL:     scan.NormalizedURL,
		Domain:            scan.Domain,
		RegistrableDomain: scan.RegistrableDomain,
		OverallVerdict:    string(scan.OverallVerdict),
		ScamRiskScore:     scan.ScamRiskScore,
		MalwareRiskScore:  scan.MalwareRiskScore,
		ReviewTrustScore:  scan.ReviewTrustScore,
		NotEnoughData:     scan.NotEnoughData,
		SummaryReasons:    summary,
		RawAIResult:       raw,
		ShareID:           nullString(scan.ShareID),
		PageTitle:         nullString(scan.PageTitle),
		MetaDescription:   nullString(scan.MetaDescription),
		CreatedAt:         scan.CreatedAt,
	}

	return nil
}

func pgScansToDomain(scans []PgScan) ([]domain.Scan, error) {
	out := make([]domain.Scan, 0, len(scans))
	for _, scan := range scans {
		d, err := scan.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}

type PgSubscription struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	PlanID          string `db:"plan_id"`
	Status          string `db:"status"`
	BillingInterval string `db:"billing_interval"`

	CurrentPeriodStart time.Time `db:"current_period_start"`
	CurrentPeriodEnd   time.Time `db:"current_period_end"`
}

func (p *PgSubscription) ToDomain() *domain.Subscription {
	return &domain.Subscription{
		ID:                 p.ID,
		UserID:             domain.UserID(p.UserID),
		PlanID:             domain.PlanID(p.PlanID),
		Status:             domain.SubscriptionStatus(p.Status),
		BillingInterval:    domain.BillingInterval(p.BillingInterval),
		CurrentPeriodStart: p.CurrentPeriodStart,
		CurrentPeriodEnd:   p.CurrentPeriodEnd,
	}
}

func (p *PgSubscription) FromDomain(sub domain.Subscription) {
	interval := sub.BillingInterval
	if interval == "" {
		interval = domain.BillingMonthly
	}

	*p = PgSubscription{
		ID:                 sub.ID,
		UserID:             uuid.UUID(sub.UserID),
		PlanID:             string(sub.PlanID),
		Status:             string(sub.Status),
		BillingInterval:    string(interval),
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}

	return &s.String
}
