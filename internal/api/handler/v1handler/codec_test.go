package v1handler

import (
	"strings"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"sitecheck/pkg/domain"
)

func encode(v encoder) string {
	var e jx.Encoder
	v.Encode(&e)

	return e.String()
}

func TestCreateScanResponse_Encode(t *testing.T) {
	t.Run("unsaved scan writes nulls and empty lists", func(t *testing.T) {
		res := &CreateScanResponse{
			Result: domain.Verdict{
				OverallVerdict: domain.VerdictSafe,
				ScamRiskScore:  3,
				KeyReasons:     []string{"ok"},
			},
			NormalizedURL:  "https://example.com/",
			RemainingScans: 4,
			TotalScans:     5,
		}

		require.Equal(t, `{"scanId":null,"result":{"overallVerdict":"safe","notEnoughData":false,`+
			`"scamRiskScore":3,"malwareRiskScore":0,"reviewTrustScore":0,"keyReasons":["ok"],`+
			`"contentNotes":[],"reviewAndReputationNotes":[]},"normalizedUrl":"https://example.com/",`+
			`"pageTitle":null,"remainingScans":4,"totalScans":5,"notEnoughData":false}`, encode(res))
	})

	t.Run("saved scan", func(t *testing.T) {
		id := domain.ScanID(uuid.MustParse("5f0c2a3e-7a43-4d4f-9b8c-1a2b3c4d5e6f"))
		title := `Say "hi"`
		res := &CreateScanResponse{ScanID: &id, PageTitle: &title}

		out := encode(res)
		require.Contains(t, out, `"scanId":"5f0c2a3e-7a43-4d4f-9b8c-1a2b3c4d5e6f"`)
		require.Contains(t, out, `"pageTitle":"Say \"hi\""`)
	})
}

func TestHistoryResponse_Encode(t *testing.T) {
	require.Equal(t, `{"scans":[]}`, encode(&HistoryResponse{}))

	shareID := "0123456789abcdef0123456789abcdef"
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	out := encode(&HistoryResponse{Scans: []domain.Scan{
		{ID: domain.ScanID(uuid.New()), UserID: domain.UserID(uuid.New()), CreatedAt: created},
		{ID: domain.ScanID(uuid.New()), ShareID: &shareID},
	}})

	require.NotContains(t, out, "userId")
	require.Contains(t, out, `"createdAt":"2026-01-02T03:04:05Z"`)
	require.Contains(t, out, `"metaDescription":null`)
	require.Contains(t, out, `"shareId":"`+shareID+`"`)
	require.Equal(t, 1, strings.Count(out, `"shareId"`))
}

func TestSharedScanResponse_Encode(t *testing.T) {
	out := encode(&SharedScanResponse{Scan: &domain.PublicScan{
		OverallVerdict: domain.VerdictCaution,
		Reasons:        []string{"New domain"},
	}})

	require.Contains(t, out, `"summaryReasons":["New domain"]`)
	require.NotContains(t, out, "shareId")
	require.NotContains(t, out, "metaDescription")

	require.Equal(t, `{"scan":null}`, encode(&SharedScanResponse{}))
}

func TestErrorResponse_Encode(t *testing.T) {
	require.Equal(t, `{"error":"Unauthorized","code":"UNAUTHORIZED"}`,
		encode(&ErrorResponse{Error: "Unauthorized", Code: "UNAUTHORIZED"}))

	used, total := 5, 5
	require.Equal(t, `{"error":"quota","code":"QUOTA_EXCEEDED","scansUsed":5,"scansTotal":5,"requestId":"r1"}`,
		encode(&ErrorResponse{
			Error: "quota", Code: "QUOTA_EXCEEDED",
			ScansUsed: &used, ScansTotal: &total, RequestID: "r1",
		}))
}

func TestCreateScanRequest_Decode(t *testing.T) {
	var req CreateScanRequest
	require.NoError(t, req.Decode(jx.DecodeStr(`{"extra":[1,{"a":null}],"url":"example.com"}`)))
	require.Equal(t, "example.com", req.URL)

	for _, body := range []string{`{"url":42}`, `{"url":null}`, `{"url":["a"]}`, `{"url":"a"`} {
		req = CreateScanRequest{}
		require.Error(t, req.Decode(jx.DecodeStr(body)), body)
	}
}

func TestCreateShareRequest_Decode(t *testing.T) {
	var req CreateShareRequest
	require.NoError(t, req.Decode(jx.DecodeStr(`{"scanId":null}`)))
	require.Empty(t, req.ScanID)

	require.NoError(t, req.Decode(jx.DecodeStr(`{"scanId":"abc"}`)))
	require.Equal(t, "abc", req.ScanID)

	require.Error(t, req.Decode(jx.DecodeStr(`{"scanId":7}`)))
}
