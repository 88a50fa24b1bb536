package v1handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"sitecheck/pkg/domain"
	"sitecheck/pkg/serrors"
)

type CreateShareRequest struct {
	ScanID string `json:"scanId"`
}

// Decode implements json decoding of CreateShareRequest.
func (r *CreateShareRequest) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "scanId":
			if d.Next() == jx.Null {
				return d.Null()
			}
			v, err := decodeStringField(d, "scanId")
			r.ScanID = v

			return err
		default:
			return d.Skip()
		}
	})
}

type CreateShareResponse struct {
	ShareURL string `json:"shareUrl"`
	ShareID  string `json:"shareId"`
}

// Encode implements json encoding of CreateShareResponse.
func (r *CreateShareResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("shareUrl")
	e.Str(r.ShareURL)
	e.FieldStart("shareId")
	e.Str(r.ShareID)
	e.ObjEnd()
}

type SharedScanResponse struct {
	Scan *domain.PublicScan `json:"scan"`
}

// Encode implements json encoding of SharedScanResponse.
func (r *SharedScanResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("scan")
	encodePublicScan(e, r.Scan)
	e.ObjEnd()
}

// CreateShare returns the share link of one of the caller's scans.
func (h *Handler) CreateShare(w http.ResponseWriter, r *http.Request) {
	var req CreateShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}
	if req.ScanID == "" {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "Missing scanId"))

		return
	}

	scanID, err := domain.ParseScanID(req.ScanID)
	if err != nil {
		// not a scan anyone could own
		h.writeError(w, r, serrors.Wrap(serrors.ErrNotFound, err, "Scan not found"))

		return
	}

	link, err := h.deps.Scanner.Share(r.Context(), GetUserIDFromContext(r.Context()), scanID)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, &CreateShareResponse{
		ShareURL: link.ShareURL,
		ShareID:  link.ShareID,
	})
}

// GetSharedScan returns the public view of a shared scan. It needs no authentication.
func (h *Handler) GetSharedScan(w http.ResponseWriter, r *http.Request) {
	scan, err := h.deps.Scanner.SharedScan(r.Context(), chi.URLParam(r, "shareId"))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, &SharedScanResponse{Scan: scan})
}
