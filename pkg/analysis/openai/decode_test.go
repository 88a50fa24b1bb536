package openai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sitecheck/pkg/analysis/openai"
	"sitecheck/pkg/domain"
)

const validVerdict = `{
  "overallVerdict": "risky",
  "notEnoughData": false,
  "scamRiskScore": 85,
  "malwareRiskScore": 20.0,
  "reviewTrustScore": 10,
  "keyReasons": ["Too good to be true prices", "Domain registered last week"],
  "contentNotes": ["Copied product descriptions"],
  "reviewAndReputationNotes": []
}`

func TestDecodeVerdict_valid(t *testing.T) {
	v, err := openai.DecodeVerdict([]byte(validVerdict))
	require.NoError(t, err)
	require.Equal(t, &domain.Verdict{
		OverallVerdict:           domain.VerdictRisky,
		ScamRiskScore:            85,
		MalwareRiskScore:         20,
		ReviewTrustScore:         10,
		KeyReasons:               []string{"Too good to be true prices", "Domain registered last week"},
		ContentNotes:             []string{"Copied product descriptions"},
		ReviewAndReputationNotes: []string{},
	}, v)
}

func TestDecodeVerdict_rejects(t *testing.T) {
	const rest = `"notEnoughData":false,"scamRiskScore":1,"malwareRiskScore":2,"reviewTrustScore":3,` +
		`"keyReasons":[],"contentNotes":[],"reviewAndReputationNotes":[]`

	tests := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"not an object", `["safe"]`},
		{"string document", `"safe"`},
		{"unknown field", `{"overallVerdict":"safe",` + rest + `,"confidence":0.9}`},
		{"duplicate field", `{"overallVerdict":"safe","overallVerdict":"risky",` + rest + `}`},
		{"missing field", `{"overallVerdict":"safe","notEnoughData":false,"scamRiskScore":1,"malwareRiskScore":2,` +
			`"keyReasons":[],"contentNotes":[],"reviewAndReputationNotes":[]}`},
		{"verdict outside enum", `{"overallVerdict":"dangerous",` + rest + `}`},
		{"verdict wrong case", `{"overallVerdict":"Safe",` + rest + `}`},
		{"verdict wrong type", `{"overallVerdict":1,` + rest + `}`},
		{"bool as string", `{"overallVerdict":"safe","notEnoughData":"false","scamRiskScore":1,"malwareRiskScore":2,` +
			`"reviewTrustScore":3,"keyReasons":[],"contentNotes":[],"reviewAndReputationNotes":[]}`},
		{"score as string", `{"overallVerdict":"safe","notEnoughData":false,"scamRiskScore":"1","malwareRiskScore":2,` +
			`"reviewTrustScore":3,"keyReasons":[],"contentNotes":[],"reviewAndReputationNotes":[]}`},
		{"fractional score", `{"overallVerdict":"safe","notEnoughData":false,"scamRiskScore":1.5,"malwareRiskScore":2,` +
			`"reviewTrustScore":3,"keyReasons":[],"contentNotes":[],"reviewAndReputationNotes":[]}`},
		{"score above range", `{"overallVerdict":"safe","notEnoughData":false,"scamRiskScore":101,"malwareRiskScore":2,` +
			`"reviewTrustScore":3,"keyReasons":[],"contentNotes":[],"reviewAndReputationNotes":[]}`},
		{"negative score", `{"overallVerdict":"safe","notEnoughData":false,"scamRiskScore":-1,"malwareRiskScore":2,` +
			`"reviewTrustScore":3,"keyReasons":[],"contentNotes":[],"reviewAndReputationNotes":[]}`},
		{"null list", `{"overallVerdict":"safe","notEnoughData":false,"scamRiskScore":1,"malwareRiskScore":2,` +
			`"reviewTrustScore":3,"keyReasons":null,"contentNotes":[],"reviewAndReputationNotes":[]}`},
		{"non-string list item", `{"overallVerdict":"safe","notEnoughData":false,"scamRiskScore":1,"malwareRiskScore":2,` +
			`"reviewTrustScore":3,"keyReasons":["ok",2],"contentNotes":[],"reviewAndReputationNotes":[]}`},
		{"trailing data", `{"overallVerdict":"safe",` + rest + `} {}`},
		{"truncated", `{"overallVerdict":"safe",` + rest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := openai.DecodeVerdict([]byte(tt.body))
			require.Error(t, err)
			require.Nil(t, v)
		})
	}
}

func TestDecodeVerdict_boundaries(t *testing.T) {
	v, err := openai.DecodeVerdict([]byte(`{"overallVerdict":"unknown","notEnoughData":true,"scamRiskScore":0,` +
		`"malwareRiskScore":100,"reviewTrustScore":0,"keyReasons":["Page is empty"],"contentNotes":[],` +
		`"reviewAndReputationNotes":[]}`))
	require.NoError(t, err)
	require.True(t, v.NotEnoughData)
	require.Equal(t, domain.VerdictUnknown, v.OverallVerdict)
	require.Equal(t, 100, v.MalwareRiskScore)
}

func TestDecodeVerdict_anyFieldOrder(t *testing.T) {
	v, err := openai.DecodeVerdict([]byte(`{"reviewAndReputationNotes":["No reviews found"],` +
		`"keyReasons":["Page is empty"],"contentNotes":[],"reviewTrustScore":0,"malwareRiskScore":0,` +
		`"scamRiskScore":0,"notEnoughData":true,"overallVerdict":"unknown"}`))
	require.NoError(t, err)
	require.True(t, v.NotEnoughData)
	require.Equal(t, domain.VerdictUnknown, v.OverallVerdict)
	require.Equal(t, []string{"Page is empty"}, v.KeyReasons)
	require.Equal(t, []string{"No reviews found"}, v.ReviewAndReputationNotes)
}

func TestDecodeVerdict_errorNamesField(t *testing.T) {
	_, err := openai.DecodeVerdict([]byte(`{"overallVerdict":"safe","notEnoughData":false,"scamRiskScore":101,` +
		`"malwareRiskScore":2,"reviewTrustScore":3,"keyReasons":[],"contentNotes":[],"reviewAndReputationNotes":[]}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "scamRiskScore")
	require.NotContains(t, err.Error(), "overallVerdict")
}
