package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScanID uniquely identifies a persisted scan record.
type ScanID uuid.UUID

func (id ScanID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes the ID in its canonical UUID form.
func (id ScanID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *ScanID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseScanID parses s as a scan identifier.
func ParseScanID(s string) (ScanID, error) {
	id, err := uuid.Parse(s)

	return ScanID(id), err
}

// OverallVerdict is the headline rating of a scanned site.
type OverallVerdict string

const (
	VerdictSafe    OverallVerdict = "safe"
	VerdictCaution OverallVerdict = "caution"
	VerdictRisky   OverallVerdict = "risky"
	VerdictUnknown OverallVerdict = "unknown"
)

// Valid reports whether v is one of the known ratings.
func (v OverallVerdict) Valid() bool {
	switch v {
	case VerdictSafe, VerdictCaution, VerdictRisky, VerdictUnknown:
		return true
	default:
		return false
	}
}

// MinScore and MaxScore bound every risk and trust score.
const (
	MinScore = 0
	MaxScore = 100
)

// Target is the canonical form of a user supplied URL.
type Target struct {
	// URL is the address stored in the url column. It equals NormalizedURL.
	URL string
	// NormalizedURL is the canonical absolute URL that is fetched and stored.
	NormalizedURL string
	// Domain is the host name without port.
	Domain string
	// RegistrableDomain is the eTLD+1 of Domain, or Domain itself when it has none.
	RegistrableDomain string
}

// Verdict is the structured assessment returned by the analysis service.
type Verdict struct {
	OverallVerdict           OverallVerdict `json:"overallVerdict"`
	NotEnoughData            bool           `json:"notEnoughData"`
	ScamRiskScore            int            `json:"scamRiskScore"`
	MalwareRiskScore         int            `json:"malwareRiskScore"`
	ReviewTrustScore         int            `json:"reviewTrustScore"`
	KeyReasons               []string       `json:"keyReasons"`
	ContentNotes             []string       `json:"contentNotes"`
	ReviewAndReputationNotes []string       `json:"reviewAndReputationNotes"`
}

// Scan is a persisted, completed scan. Records are created once and only
// ever gain a share token afterwards.
type Scan struct {
	ID                ScanID         `json:"id"`
	UserID            UserID         `json:"-"`
	URL               string         `json:"url"`
	NormalizedURL     string         `json:"normalizedUrl"`
	Domain            string         `json:"domain"`
	RegistrableDomain string         `json:"registrableDomain"`
	OverallVerdict    OverallVerdict `json:"overallVerdict"`
	ScamRiskScore     int            `json:"scamRiskScore"`
	MalwareRiskScore  int            `json:"malwareRiskScore"`
	ReviewTrustScore  int            `json:"reviewTrustScore"`
	NotEnoughData     bool           `json:"notEnoughData"`
	Reasons           []string       `json:"summaryReasons"`
	Verdict           Verdict        `json:"rawAiResult"`
	ShareID           *string        `json:"shareId,omitempty"`
	PageTitle         *string        `json:"pageTitle"`
	MetaDescription   *string        `json:"metaDescription"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// PublicScan is what anyone holding a share link may see. It never carries
// the owner or the share token itself.
type PublicScan struct {
	ID                ScanID         `json:"id"`
	URL               string         `json:"url"`
	NormalizedURL     string         `json:"normalizedUrl"`
	Domain            string         `json:"domain"`
	RegistrableDomain string         `json:"registrableDomain"`
	OverallVerdict    OverallVerdict `json:"overallVerdict"`
	ScamRiskScore     int            `json:"scamRiskScore"`
	MalwareRiskScore  int            `json:"malwareRiskScore"`
	ReviewTrustScore  int            `json:"reviewTrustScore"`
	Reasons           []string       `json:"summaryReasons"`
	Verdict           Verdict        `json:"rawAiResult"`
	PageTitle         *string        `json:"pageTitle"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// Public projects s onto the fields safe to expose through a share link.
func (s *Scan) Public() *PublicScan {
	return &PublicScan{
		ID:                s.ID,
		URL:               s.URL,
		NormalizedURL:     s.NormalizedURL,
		Domain:            s.Domain,
		RegistrableDomain: s.RegistrableDomain,
		OverallVerdict:    s.OverallVerdict,
		ScamRiskScore:     s.ScamRiskScore,
		MalwareRiskScore:  s.MalwareRiskScore,
		ReviewTrustScore:  s.ReviewTrustScore,
		Reasons:           s.Reasons,
		Verdict:           s.Verdict,
		PageTitle:         s.PageTitle,
		CreatedAt:         s.CreatedAt,
	}
}

// NewScan builds the record persisted for a completed analysis.
func NewScan(userID UserID, target Target, verdict *Verdict, title, description *string) *Scan {
	return &Scan{
		UserID:            userID,
		URL:               target.URL,
		NormalizedURL:     target.NormalizedURL,
		Domain:            target.Domain,
		RegistrableDomain: target.RegistrableDomain,
		OverallVerdict:    verdict.OverallVerdict,
		ScamRiskScore:     verdict.ScamRiskScore,
		MalwareRiskScore:  verdict.MalwareRiskScore,
		ReviewTrustScore:  verdict.ReviewTrustScore,
		NotEnoughData:     verdict.NotEnoughData,
		Reasons:           verdict.KeyReasons,
		Verdict:           *verdict,
		PageTitle:         title,
		MetaDescription:   description,
	}
}
