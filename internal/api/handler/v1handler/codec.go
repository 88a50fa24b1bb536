package v1handler

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"sitecheck/pkg/domain"
)

// encoder is implemented by every response body.
type encoder interface {
	Encode(e *jx.Encoder)
}

// decoder is implemented by every request body.
type decoder interface {
	Decode(d *jx.Decoder) error
}

func encodeStrings(e *jx.Encoder, ss []string) {
	e.ArrStart()
	for _, s := range ss {
		e.Str(s)
	}
	e.ArrEnd()
}

func encodeNilString(e *jx.Encoder, s *string) {
	if s == nil {
		e.Null()

		return
	}
	e.Str(*s)
}

func encodeTime(e *jx.Encoder, t time.Time) {
	e.Str(t.Format(time.RFC3339Nano))
}

func encodeVerdict(e *jx.Encoder, v *domain.Verdict) {
	e.ObjStart()
	e.FieldStart("overallVerdict")
	e.Str(string(v.OverallVerdict))
	e.FieldStart("notEnoughData")
	e.Bool(v.NotEnoughData)
	e.FieldStart("scamRiskScore")
	e.Int(v.ScamRiskScore)
	e.FieldStart("malwareRiskScore")
	e.Int(v.MalwareRiskScore)
	e.FieldStart("reviewTrustScore")
	e.Int(v.ReviewTrustScore)
	e.FieldStart("keyReasons")
	encodeStrings(e, v.KeyReasons)
	e.FieldStart("contentNotes")
	encodeStrings(e, v.ContentNotes)
	e.FieldStart("reviewAndReputationNotes")
	encodeStrings(e, v.ReviewAndReputationNotes)
	e.ObjEnd()
}

// encodePublicFields writes the fields shared by the owner and the public view.
func encodePublicFields(e *jx.Encoder, s *domain.PublicScan) {
	e.FieldStart("id")
	e.Str(s.ID.String())
	e.FieldStart("url")
	e.Str(s.URL)
	e.FieldStart("normalizedUrl")
	e.Str(s.NormalizedURL)
	e.FieldStart("domain")
	e.Str(s.Domain)
	e.FieldStart("registrableDomain")
	e.Str(s.RegistrableDomain)
	e.FieldStart("overallVerdict")
	e.Str(string(s.OverallVerdict))
	e.FieldStart("scamRiskScore")
	e.Int(s.ScamRiskScore)
	e.FieldStart("malwareRiskScore")
	e.Int(s.MalwareRiskScore)
	e.FieldStart("reviewTrustScore")
	e.Int(s.ReviewTrustScore)
	e.FieldStart("summaryReasons")
	encodeStrings(e, s.Reasons)
	e.FieldStart("rawAiResult")
	encodeVerdict(e, &s.Verdict)
	e.FieldStart("pageTitle")
	encodeNilString(e, s.PageTitle)
	e.FieldStart("createdAt")
	encodeTime(e, s.CreatedAt)
}

func encodePublicScan(e *jx.Encoder, s *domain.PublicScan) {
	if s == nil {
		e.Null()

		return
	}
	e.ObjStart()
	encodePublicFields(e, s)
	e.ObjEnd()
}

// encodeScan writes the owner's view of a scan. The owner ID is never written.
func encodeScan(e *jx.Encoder, s *domain.Scan) {
	e.ObjStart()
	encodePublicFields(e, s.Public())
	e.FieldStart("notEnoughData")
	e.Bool(s.NotEnoughData)
	e.FieldStart("metaDescription")
	encodeNilString(e, s.MetaDescription)
	if s.ShareID != nil {
		e.FieldStart("shareId")
		e.Str(*s.ShareID)
	}
	e.ObjEnd()
}

// decodeStringField reads a string value, rejecting every other type.
func decodeStringField(d *jx.Decoder, name string) (string, error) {
	if tt := d.Next(); tt != jx.String {
		return "", errors.Errorf("%s must be a string, got %s", name, tt)
	}

	s, err := d.Str()
	if err != nil {
		return "", errors.Wrap(err, name)
	}

	return s, nil
}
