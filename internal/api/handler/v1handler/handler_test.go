package v1handler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"sitecheck/internal/api/handler/v1handler"
	"sitecheck/pkg/controller"
	"sitecheck/pkg/domain"
	"sitecheck/pkg/logger"
	"sitecheck/pkg/pagefetch"
	"sitecheck/pkg/serrors"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.WithValue(context.Background(), controller.RequestIDKey, "req-1")

	res := h.NewError(ctx, errors.New("pq: connection refused"))
	require.NotNil(t, res)
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Error)
	require.Equal(t, "req-1", res.Response.RequestID)
}

func TestNewError_KindSentinelDirect_NotFound(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	res := h.NewError(context.Background(), serrors.ErrNotFound)
	require.Equal(t, 404, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), res.Response.Code)
	require.Equal(t, "resource not found", res.Response.Error)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	err := serrors.With(serrors.ErrBadRequest, "limit must be between 1 and 100")
	res := h.NewError(context.Background(), err)
	require.Equal(t, 400, res.StatusCode)
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Response.Code)
	require.Equal(t, "limit must be between 1 and 100", res.Response.Error)
}

func TestNewError_SemanticWrap_Unauthorized(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	cause := errors.New("token is expired")
	err := serrors.Wrap(serrors.ErrUnauthorized, cause, "invalid token")
	res := h.NewError(context.Background(), err)
	require.Equal(t, 401, res.StatusCode)
	require.Equal(t, serrors.ErrUnauthorized.Error(), res.Response.Code)
	require.Equal(t, "Unauthorized", res.Response.Error)
}

func TestNewError_DomainKinds(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "invalid url keeps its message",
			err:     serrors.With(domain.ErrInvalidURL, "URL has no host"),
			status:  400,
			code:    "INVALID_URL",
			message: "URL has no host",
		},
		{
			name: "fetch failure hides the cause",
			err: serrors.Wrap(domain.ErrFetchFailed, &pagefetch.HTTPStatusError{StatusCode: 502},
				"site answered with status 502"),
			status:  400,
			code:    "FETCH_FAILED",
			message: "We couldn't load this website. Please check the URL and try again.",
		},
		{
			name:   "fetch timeout",
			err:    serrors.KindOnly(domain.ErrFetchTimeout),
			status: 400,
			code:   "FETCH_TIMEOUT",
		},
		{
			name:    "no subscription",
			err:     serrors.With(domain.ErrNoActiveSubscription, "an active subscription is required"),
			status:  403,
			code:    "NO_ACTIVE_SUBSCRIPTION",
			message: "No active subscription",
		},
		{
			name:    "expired subscription",
			err:     serrors.KindOnly(domain.ErrSubscriptionExpired),
			status:  403,
			code:    "SUBSCRIPTION_EXPIRED",
			message: "Subscription expired",
		},
		{
			name:    "analysis failure",
			err:     serrors.With(domain.ErrAnalysisFailed, "finish reason length"),
			status:  500,
			code:    "ANALYSIS_FAILED",
			message: "We couldn't analyze this site right now. Please try again later.",
		},
		{
			name:    "internal kind",
			err:     serrors.With(serrors.ErrInternal, "subscription references unknown plan"),
			status:  500,
			code:    "INTERNAL",
			message: "internal error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.NewError(context.Background(), tt.err)
			require.Equal(t, tt.status, res.StatusCode)
			require.Equal(t, tt.code, res.Response.Code)
			if tt.message != "" {
				require.Equal(t, tt.message, res.Response.Error)
			}
			require.Nil(t, res.Response.ScansUsed)
		})
	}
}

func TestNewError_QuotaExceededCarriesUsage(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	err := serrors.Wrap(domain.ErrQuotaExceeded, &domain.QuotaExceededError{Used: 5, Limit: 5}, "quota used")
	res := h.NewError(context.Background(), err)
	require.Equal(t, 403, res.StatusCode)
	require.Equal(t, "QUOTA_EXCEEDED", res.Response.Code)
	require.NotNil(t, res.Response.ScansUsed)
	require.Equal(t, 5, *res.Response.ScansUsed)
	require.Equal(t, 5, *res.Response.ScansTotal)
}
