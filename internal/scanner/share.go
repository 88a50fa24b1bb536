package scanner

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"sitecheck/pkg/domain"
	"sitecheck/pkg/logger"
	"sitecheck/pkg/serrors"
)

const shareIDBytes = 16

var shareIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Share implements Scanner. Repeated calls return the same link.
func (s *scanner) Share(ctx context.Context, userID domain.UserID, scanID domain.ScanID) (*ShareLink, error) {
	scan, err := s.storage.ScanByID(ctx, userID, scanID)
	if err != nil {
		return nil, fmt.Errorf("could not get scan: %w", err)
	}
	if scan == nil {
		return nil, serrors.With(serrors.ErrNotFound, "scan not found")
	}
	if scan.ShareID != nil {
		return s.shareLink(*scan.ShareID), nil
	}

	shareID, err := newShareID()
	if err != nil {
		return nil, err
	}

	updated, err := s.storage.SetShareID(ctx, userID, scanID, shareID)
	if err != nil {
		return nil, fmt.Errorf("could not store share id: %w", err)
	}
	if !updated {
		// a concurrent request shared the scan first
		scan, err = s.storage.ScanByID(ctx, userID, scanID)
		if err != nil {
			return nil, fmt.Errorf("could not get scan: %w", err)
		}
		if scan == nil || scan.ShareID == nil {
			return nil, serrors.With(serrors.ErrInternal, "share id missing after concurrent update")
		}
		shareID = *scan.ShareID
	} else {
		logger.Info(ctx, "scan shared", zap.Stringer("scan_id", scanID))
	}

	return s.shareLink(shareID), nil
}

// SharedScan implements Scanner.
func (s *scanner) SharedScan(ctx context.Context, shareID string) (*domain.PublicScan, error) {
	if !shareIDPattern.MatchString(shareID) {
		return nil, serrors.With(serrors.ErrNotFound, "shared scan not found")
	}

	scan, err := s.storage.ScanByShareID(ctx, shareID)
	if err != nil {
		return nil, fmt.Errorf("could not get shared scan: %w", err)
	}
	if scan == nil {
		return nil, serrors.With(serrors.ErrNotFound, "shared scan not found")
	}

	return scan.Public(), nil
}

func (s *scanner) shareLink(shareID string) *ShareLink {
	return &ShareLink{
		ShareID:  shareID,
		ShareURL: strings.TrimRight(s.options.AppBaseURL, "/") + "/scan?shareId=" + url.QueryEscape(shareID),
	}
}

func newShareID() (string, error) {
	b := make([]byte, shareIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("could not generate share id: %w", err)
	}

	return hex.EncodeToString(b), nil
}
