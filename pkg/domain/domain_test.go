package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"sitecheck/pkg/domain"
)

func TestPlanCatalog(t *testing.T) {
	for id, limit := range map[domain.PlanID]int{
		domain.PlanEssential: 5,
		domain.PlanPlus:      10,
		domain.PlanPro:       50,
	} {
		p, ok := domain.PlanByID(id)
		require.True(t, ok, id)
		require.Equal(t, limit, p.ScanLimit, id)
	}

	_, ok := domain.PlanByID("enterprise")
	require.False(t, ok)
}

func TestSubscriptionExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := domain.Subscription{
		CurrentPeriodStart: now.AddDate(0, -1, 0),
		CurrentPeriodEnd:   now,
	}
	require.False(t, sub.Expired(now), "period ending exactly now is still usable")
	require.True(t, sub.Expired(now.Add(time.Second)))

	plan, _ := domain.PlanByID(domain.PlanPlus)
	w := sub.Window(plan)
	require.Equal(t, 10, w.ScanLimit)
	require.Equal(t, sub.CurrentPeriodStart, w.PeriodStart)
	require.Equal(t, sub.CurrentPeriodEnd, w.PeriodEnd)
}

func TestVerdictValid(t *testing.T) {
	for _, v := range []domain.OverallVerdict{domain.VerdictSafe, domain.VerdictCaution, domain.VerdictRisky, domain.VerdictUnknown} {
		require.True(t, v.Valid(), v)
	}
	require.False(t, domain.OverallVerdict("dangerous").Valid())
	require.False(t, domain.OverallVerdict("").Valid())
}

func TestNewScanFromTarget(t *testing.T) {
	userID := domain.UserID(uuid.New())
	verdict := &domain.Verdict{
		OverallVerdict: domain.VerdictCaution,
		ScamRiskScore:  40,
		KeyReasons:     []string{"New domain"},
	}

	s := domain.NewScan(userID, domain.Target{
		URL:               "https://shop.example/",
		NormalizedURL:     "https://shop.example/",
		Domain:            "shop.example",
		RegistrableDomain: "shop.example",
	}, verdict, nil, nil)

	require.Equal(t, "https://shop.example/", s.URL)
	require.Equal(t, s.URL, s.NormalizedURL)
	require.Equal(t, userID, s.UserID)
	require.Equal(t, []string{"New domain"}, s.Reasons)
	require.Equal(t, *verdict, s.Verdict)
}

func TestPublicProjectionHidesOwner(t *testing.T) {
	title := "Shop"
	desc := "Cheap watches"
	share := "0123456789abcdef0123456789abcdef"
	s := &domain.Scan{
		ID:              domain.ScanID(uuid.New()),
		UserID:          domain.UserID(uuid.New()),
		URL:             "https://shop.example/",
		NormalizedURL:   "https://shop.example/",
		Domain:          "shop.example",
		OverallVerdict:  domain.VerdictRisky,
		ScamRiskScore:   80,
		ShareID:         &share,
		PageTitle:       &title,
		MetaDescription: &desc,
	}

	b, err := json.Marshal(s.Public())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))
	require.NotContains(t, fields, "userId")
	require.NotContains(t, fields, "metaDescription")
	require.NotContains(t, fields, "shareId")
	require.Equal(t, s.ID.String(), fields["id"])
	require.Equal(t, "risky", fields["overallVerdict"])
	require.Equal(t, "Shop", fields["pageTitle"])
}

func TestScanIDText(t *testing.T) {
	id := domain.ScanID(uuid.New())
	b, err := json.Marshal(id)
	require.NoError(t, err)
	require.Equal(t, `"`+id.String()+`"`, string(b))

	parsed, err := domain.ParseScanID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = domain.ParseScanID("nope")
	require.Error(t, err)
}
