// Package v1handler implements the v1 HTTP API of the scan service.
package v1handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"
	"go.uber.org/zap"

	"sitecheck/internal/scanner"
	"sitecheck/pkg/controller"
	"sitecheck/pkg/domain"
	"sitecheck/pkg/logger"
	"sitecheck/pkg/serrors"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

type Deps struct {
	Scanner scanner.Scanner
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes returns the v1 router. Everything except reading a shared scan
// requires a bearer token verified by sec.
func (h *Handler) Routes(sec *SecHandler) chi.Router {
	r := chi.NewRouter()

	r.Get("/share/{shareId}", h.GetSharedScan)

	r.Group(func(r chi.Router) {
		r.Use(sec.Middleware(h.writeError))

		r.Post("/scan", h.CreateScan)
		r.Post("/share", h.CreateShare)
		r.Get("/history", h.ListHistory)
	})

	return r
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// ScansUsed and ScansTotal are only set when the quota is used up.
	ScansUsed  *int   `json:"scansUsed,omitempty"`
	ScansTotal *int   `json:"scansTotal,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
}

// Encode implements json encoding of ErrorResponse.
func (r *ErrorResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("error")
	e.Str(r.Error)
	e.FieldStart("code")
	e.Str(r.Code)
	if r.ScansUsed != nil {
		e.FieldStart("scansUsed")
		e.Int(*r.ScansUsed)
	}
	if r.ScansTotal != nil {
		e.FieldStart("scansTotal")
		e.Int(*r.ScansTotal)
	}
	if r.RequestID != "" {
		e.FieldStart("requestId")
		e.Str(r.RequestID)
	}
	e.ObjEnd()
}

// ErrorStatusCode pairs an ErrorResponse with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

type errorMapping struct {
	kind    serrors.Kind
	status  int
	message string
	// exposeMessage lets the semantic error message through to the client.
	exposeMessage bool
}

//nolint: gochecknoglobals
var errorMappings = []errorMapping{
	{domain.ErrInvalidURL, http.StatusBadRequest, "Invalid URL", true},
	{serrors.ErrBadRequest, http.StatusBadRequest, "bad request", true},
	{domain.ErrFetchFailed, http.StatusBadRequest,
		"We couldn't load this website. Please check the URL and try again.", false},
	{domain.ErrFetchTimeout, http.StatusBadRequest,
		"The website took too long to respond. Please try again later.", false},
	{serrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized", false},
	{domain.ErrNoActiveSubscription, http.StatusForbidden, "No active subscription", false},
	{domain.ErrSubscriptionExpired, http.StatusForbidden, "Subscription expired", false},
	{domain.ErrQuotaExceeded, http.StatusForbidden, "You've used all scans for this billing period", false},
	{serrors.ErrForbidden, http.StatusForbidden, "forbidden", true},
	{serrors.ErrNotFound, http.StatusNotFound, "resource not found", true},
	{serrors.ErrConflict, http.StatusConflict, "conflict", true},
	{domain.ErrAnalysisFailed, http.StatusInternalServerError,
		"We couldn't analyze this site right now. Please try again later.", false},
}

// NewError maps err to a status code and a client safe body. Unknown errors
// become internal errors; their details are only logged.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	res := &ErrorStatusCode{
		StatusCode: http.StatusInternalServerError,
		Response: ErrorResponse{
			Error:     "internal error",
			Code:      serrors.ErrInternal.Error(),
			RequestID: controller.GetRequestID(ctx),
		},
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.kind) {
			continue
		}

		res.StatusCode = m.status
		res.Response.Code = m.kind.Error()
		res.Response.Error = m.message
		if msg := serrors.MessageOf(err); m.exposeMessage && msg != "" {
			res.Response.Error = msg
		}

		break
	}

	var quota *domain.QuotaExceededError
	if errors.As(err, &quota) {
		res.Response.ScansUsed = &quota.Used
		res.Response.ScansTotal = &quota.Limit
	}

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info(ctx, "request canceled", zap.Error(err))
	case res.StatusCode >= http.StatusInternalServerError:
		logger.Error(ctx, "request failed", zap.Error(err))
	default:
		logger.Debug(ctx, "request rejected", zap.Error(err), zap.Int("status_code", res.StatusCode))
	}

	return res
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(r.Context(), w, res.StatusCode, &res.Response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v encoder) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	v.Encode(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := e.WriteTo(w); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

// decodeJSON reads a bounded JSON object body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v decoder) error {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	d := jx.DecodeBytes(b)
	if tt := d.Next(); tt != jx.Object {
		return serrors.With(serrors.ErrBadRequest, "invalid request body: expected object, got %s", tt)
	}
	if err := v.Decode(d); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}
