package v1handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/jx"

	"sitecheck/internal/scanner"
	"sitecheck/pkg/domain"
	"sitecheck/pkg/serrors"
)

type HistoryResponse struct {
	Scans []domain.Scan `json:"scans"`
}

// Encode implements json encoding of HistoryResponse.
func (r *HistoryResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("scans")
	e.ArrStart()
	for i := range r.Scans {
		encodeScan(e, &r.Scans[i])
	}
	e.ArrEnd()
	e.ObjEnd()
}

// ListHistory lists the caller's completed scans, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", scanner.DefaultHistoryLimit)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	offset, err := intQuery(r, "offset", 0)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	scans, err := h.deps.Scanner.History(r.Context(), GetUserIDFromContext(r.Context()), limit, offset)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	writeJSON(r.Context(), w, http.StatusOK, &HistoryResponse{Scans: scans})
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrBadRequest, err, "%s must be an integer", name)
	}

	return v, nil
}
