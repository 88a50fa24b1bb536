package openai

import (
	"math"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"sitecheck/pkg/domain"
)

const (
	fieldOverallVerdict   = "overallVerdict"
	fieldNotEnoughData    = "notEnoughData"
	fieldScamRiskScore    = "scamRiskScore"
	fieldMalwareRiskScore = "malwareRiskScore"
	fieldReviewTrustScore = "reviewTrustScore"
	fieldKeyReasons       = "keyReasons"
	fieldContentNotes     = "contentNotes"
	fieldReviewNotes      = "reviewAndReputationNotes"
)

//nolint: gochecknoglobals
var requiredFields = []string{
	fieldOverallVerdict,
	fieldNotEnoughData,
	fieldScamRiskScore,
	fieldMalwareRiskScore,
	fieldReviewTrustScore,
	fieldKeyReasons,
	fieldContentNotes,
	fieldReviewNotes,
}

// DecodeVerdict parses a verdict document. It accepts exactly one JSON
// object holding every required field once with the declared type, and
// rejects anything else instead of filling in zero values.
func DecodeVerdict(data []byte) (*domain.Verdict, error) {
	d := jx.DecodeBytes(data)
	if tt := d.Next(); tt != jx.Object {
		return nil, errors.Errorf("verdict must be an object, got %s", tt)
	}

	var v domain.Verdict
	seen := make(map[string]bool, len(requiredFields))
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		name := string(key)
		if seen[name] {
			return errors.Errorf("duplicate field %q", name)
		}
		seen[name] = true

		var err error
		switch name {
		case fieldOverallVerdict:
			var s string
			if s, err = decodeString(d); err == nil {
				v.OverallVerdict = domain.OverallVerdict(s)
				if !v.OverallVerdict.Valid() {
					err = errors.Errorf("unknown verdict %q", s)
				}
			}
		case fieldNotEnoughData:
			v.NotEnoughData, err = decodeBool(d)
		case fieldScamRiskScore:
			v.ScamRiskScore, err = decodeScore(d)
		case fieldMalwareRiskScore:
			v.MalwareRiskScore, err = decodeScore(d)
		case fieldReviewTrustScore:
			v.ReviewTrustScore, err = decodeScore(d)
		case fieldKeyReasons:
			v.KeyReasons, err = decodeStrings(d)
		case fieldContentNotes:
			v.ContentNotes, err = decodeStrings(d)
		case fieldReviewNotes:
			v.ReviewAndReputationNotes, err = decodeStrings(d)
		default:
			return errors.Errorf("unknown field %q", name)
		}
		if err != nil {
			return errors.Wrap(err, name)
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode verdict")
	}

	for _, f := range requiredFields {
		if !seen[f] {
			return nil, errors.Errorf("missing field %q", f)
		}
	}
	if tt := d.Next(); tt != jx.Invalid {
		return nil, errors.Errorf("unexpected %s after verdict", tt)
	}

	return &v, nil
}

func expect(d *jx.Decoder, want jx.Type) error {
	if got := d.Next(); got != want {
		return errors.Errorf("expected %s, got %s", want, got)
	}

	return nil
}

func decodeString(d *jx.Decoder) (string, error) {
	if err := expect(d, jx.String); err != nil {
		return "", err
	}

	return d.Str()
}

func decodeBool(d *jx.Decoder) (bool, error) {
	if err := expect(d, jx.Bool); err != nil {
		return false, err
	}

	return d.Bool()
}

// decodeScore accepts integral numbers within [domain.MinScore, domain.MaxScore].
// Integral floats such as 40.0 are accepted.
func decodeScore(d *jx.Decoder) (int, error) {
	if err := expect(d, jx.Number); err != nil {
		return 0, err
	}

	f, err := d.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, errors.Errorf("score %v is not an integer", f)
	}
	if f < domain.MinScore || f > domain.MaxScore {
		return 0, errors.Errorf("score %v out of range [%d, %d]", f, domain.MinScore, domain.MaxScore)
	}

	return int(f), nil
}

func decodeStrings(d *jx.Decoder) ([]string, error) {
	if err := expect(d, jx.Array); err != nil {
		return nil, err
	}

	out := []string{}
	if err := d.Arr(func(d *jx.Decoder) error {
		s, err := decodeString(d)
		if err != nil {
			return err
		}
		out = append(out, s)

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}
