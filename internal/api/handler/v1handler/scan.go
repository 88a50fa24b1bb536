package v1handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"sitecheck/pkg/domain"
)

type CreateScanRequest struct {
	URL string `json:"url"`
}

// Decode implements json decoding of CreateScanRequest.
func (r *CreateScanRequest) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "url":
			v, err := decodeStringField(d, "url")
			r.URL = v

			return err
		default:
			return d.Skip()
		}
	})
}

type CreateScanResponse struct {
	// ScanID is null when the result was not persisted.
	ScanID         *domain.ScanID `json:"scanId"`
	Result         domain.Verdict `json:"result"`
	NormalizedURL  string         `json:"normalizedUrl"`
	PageTitle      *string        `json:"pageTitle"`
	RemainingScans int            `json:"remainingScans"`
	TotalScans     int            `json:"totalScans"`
	NotEnoughData  bool           `json:"notEnoughData"`
}

// Encode implements json encoding of CreateScanResponse.
func (r *CreateScanResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("scanId")
	if r.ScanID != nil {
		e.Str(r.ScanID.String())
	} else {
		e.Null()
	}
	e.FieldStart("result")
	encodeVerdict(e, &r.Result)
	e.FieldStart("normalizedUrl")
	e.Str(r.NormalizedURL)
	e.FieldStart("pageTitle")
	encodeNilString(e, r.PageTitle)
	e.FieldStart("remainingScans")
	e.Int(r.RemainingScans)
	e.FieldStart("totalScans")
	e.Int(r.TotalScans)
	e.FieldStart("notEnoughData")
	e.Bool(r.NotEnoughData)
	e.ObjEnd()
}

// CreateScan runs a scan for the submitted URL and returns its verdict.
func (h *Handler) CreateScan(w http.ResponseWriter, r *http.Request) {
	var req CreateScanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	out, err := h.deps.Scanner.Scan(r.Context(), GetUserIDFromContext(r.Context()), req.URL)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, &CreateScanResponse{
		ScanID:         out.ScanID,
		Result:         out.Verdict,
		NormalizedURL:  out.Target.NormalizedURL,
		PageTitle:      out.PageTitle,
		RemainingScans: out.RemainingScans,
		TotalScans:     out.TotalScans,
		NotEnoughData:  out.Verdict.NotEnoughData,
	})
}
