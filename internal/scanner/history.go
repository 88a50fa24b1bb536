package scanner

import (
	"context"
	"fmt"

	"sitecheck/pkg/domain"
	"sitecheck/pkg/serrors"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

// History implements Scanner.
func (s *scanner) History(ctx context.Context, userID domain.UserID, limit, offset int) ([]domain.Scan, error) {
	if limit < 1 || limit > MaxHistoryLimit {
		return nil, serrors.With(serrors.ErrBadRequest, "limit must be between 1 and %d", MaxHistoryLimit)
	}
	if offset < 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "offset must not be negative")
	}

	scans, err := s.storage.UserScans(ctx, userID, uint(limit), uint(offset))
	if err != nil {
		return nil, fmt.Errorf("could not list scans: %w", err)
	}

	return scans, nil
}
