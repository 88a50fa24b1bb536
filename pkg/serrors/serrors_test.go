package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"sitecheck/pkg/serrors"
)

type causeError struct{ msg string }

func (e causeError) Error() string { return e.msg }

func TestKindsAreDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrForbidden,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for _, k := range kinds {
		require.False(t, seen[k], "duplicate kind %v", k)
		seen[k] = true
	}

	require.Equal(t, serrors.NewKind("NOT_FOUND"), serrors.ErrNotFound)
}

func TestErrorString(t *testing.T) {
	cause := errors.New("connection refused")

	require.Equal(t, "scan 7 not found", serrors.With(serrors.ErrNotFound, "scan %d not found", 7).Error())
	require.Equal(t, "loading scan: connection refused", serrors.Wrap(serrors.ErrInternal, cause, "loading scan").Error())
	require.Equal(t, "connection refused", serrors.Wrap(serrors.ErrInternal, cause, "").Error())
	require.Equal(t, "FORBIDDEN", serrors.KindOnly(serrors.ErrForbidden).Error())
}

func TestIsAndAs(t *testing.T) {
	cause := &causeError{"row missing"}
	err := fmt.Errorf("outer: %w", serrors.Wrap(serrors.ErrNotFound, cause, "reading"))

	require.ErrorIs(t, err, serrors.ErrNotFound)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, serrors.ErrForbidden)

	var k serrors.Kind
	require.ErrorAs(t, err, &k)
	require.Equal(t, serrors.ErrNotFound, k)

	var ce *causeError
	require.ErrorAs(t, err, &ce)
	require.Same(t, cause, ce)
}

func TestKindOf(t *testing.T) {
	custom := serrors.NewKind("QUOTA_EXCEEDED")

	require.Nil(t, serrors.KindOf(errors.New("plain")))
	require.Nil(t, serrors.KindOf(nil))
	require.Equal(t, custom, serrors.KindOf(fmt.Errorf("wrapped: %w", serrors.KindOnly(custom))))

	// the outermost kind wins
	inner := serrors.KindOnly(serrors.ErrNotFound)
	outer := serrors.Wrap(serrors.ErrInternal, inner, "lookup")
	require.Equal(t, serrors.ErrInternal, serrors.KindOf(outer))
	require.Equal(t, "lookup", serrors.MessageOf(outer))
}

func TestAccessors(t *testing.T) {
	cause := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUnauthorized, cause, "no token")

	require.Equal(t, serrors.ErrUnauthorized, e.Kind())
	require.Equal(t, "no token", e.Message())
	require.Equal(t, cause, e.Cause())
}
