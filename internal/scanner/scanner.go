// Package scanner implements the scan pipeline: quota enforcement, URL
// normalization, page retrieval, analysis and persistence, plus sharing and
// history of persisted results.
package scanner

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sitecheck/internal/config"
	"sitecheck/pkg/analysis"
	"sitecheck/pkg/domain"
	"sitecheck/pkg/logger"
	"sitecheck/pkg/pagefetch"
	"sitecheck/pkg/storage"
)

// Options configure the pipeline.
type Options struct {
	// AppBaseURL is the public origin share links point to.
	AppBaseURL string
	// Now overrides the clock used for subscription expiry. Defaults to time.Now.
	Now func() time.Time
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		AppBaseURL: cfg.Share.AppBaseURL,
	}
}

// Deps are the collaborators of the pipeline. Nil providers fall back to
// no-op metrics and the global tracer provider.
type Deps struct {
	Storage        storage.Storage
	Fetcher        pagefetch.Fetcher
	Analyzer       analysis.Analyzer
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

type scanner struct {
	options     Options
	storage     storage.Storage
	fetcher     pagefetch.Fetcher
	analyzer    analysis.Analyzer
	instruments *instruments
}

// New wires a Scanner.
func New(deps Deps, opts Options) (Scanner, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	mp := deps.MeterProvider
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	tp := deps.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	inst, err := newInstruments(mp, tp)
	if err != nil {
		return nil, fmt.Errorf("could not create scanner instruments: %w", err)
	}

	return &scanner{
		options:     opts,
		storage:     deps.Storage,
		fetcher:     deps.Fetcher,
		analyzer:    deps.Analyzer,
		instruments: inst,
	}, nil
}

// Scan runs the pipeline. Every stage must succeed before the next one
// starts, so a rejected or failed request never reaches the analysis service
// or the database.
func (s *scanner) Scan(ctx context.Context, userID domain.UserID, rawURL string) (*Outcome, error) {
	ctx, span := s.instruments.tracer.Start(ctx, "scan")
	defer span.End()
	ctx = logger.WithFields(ctx,
		zap.Stringer("user_id", userID),
		zap.Stringer("trace_id", span.SpanContext().TraceID()))

	outcome, err := s.scan(ctx, userID, rawURL)
	switch {
	case err != nil:
		s.instruments.outcome(ctx, resultOf(err))
	case outcome.ScanID == nil:
		s.instruments.outcome(ctx, "not_enough_data")
	default:
		s.instruments.outcome(ctx, "completed")
	}

	return outcome, err
}

func (s *scanner) scan(ctx context.Context, userID domain.UserID, rawURL string) (*Outcome, error) {
	var admission *Admission
	if err := s.instruments.stage(ctx, stageQuota, func(ctx context.Context) (err error) {
		admission, err = s.Admit(ctx, userID)

		return err
	}); err != nil {
		return nil, err
	}

	var target domain.Target
	if err := s.instruments.stage(ctx, stageNormalize, func(context.Context) (err error) {
		target, err = NormalizeURL(rawURL)

		return err
	}); err != nil {
		return nil, err
	}
	ctx = logger.WithFields(ctx, zap.String("url", target.NormalizedURL))

	var page *pagefetch.Page
	if err := s.instruments.stage(ctx, stageFetch, func(ctx context.Context) (err error) {
		page, err = s.fetcher.Fetch(ctx, target.NormalizedURL)

		return err
	}); err != nil {
		logger.Info(ctx, "could not fetch site", zap.Error(err))

		return nil, err
	}

	var verdict *domain.Verdict
	if err := s.instruments.stage(ctx, stageAnalyze, func(ctx context.Context) (err error) {
		verdict, err = s.analyzer.Analyze(ctx, analysis.Input{
			URL:             target.NormalizedURL,
			Domain:          target.Domain,
			PageTitle:       page.Title,
			MetaDescription: page.Description,
			PageTextSample:  page.TextSample,
			FetchedAt:       page.FetchedAt,
		})

		return err
	}); err != nil {
		logger.Error(ctx, "could not analyze site", zap.Error(err))

		return nil, err
	}

	outcome := &Outcome{
		Target:     target,
		Verdict:    *verdict,
		PageTitle:  page.Title,
		TotalScans: admission.Window.ScanLimit,
	}

	if verdict.NotEnoughData {
		outcome.RemainingScans = admission.Remaining()
		logger.Info(ctx, "not enough data to assess site, nothing persisted")

		return outcome, nil
	}

	var stored *domain.Scan
	var usedAtInsert int
	if err := s.instruments.stage(ctx, stagePersist, func(ctx context.Context) (err error) {
		stored, usedAtInsert, err = s.persist(ctx, userID, admission.Window,
			domain.NewScan(userID, target, verdict, page.Title, page.Description))

		return err
	}); err != nil {
		return nil, err
	}

	outcome.ScanID = &stored.ID
	outcome.RemainingScans = max(admission.Window.ScanLimit-(usedAtInsert+1), 0)

	logger.Info(ctx, "scan completed",
		zap.Stringer("scan_id", stored.ID),
		zap.String("verdict", string(verdict.OverallVerdict)),
		zap.Int("remaining_scans", outcome.RemainingScans))

	return outcome, nil
}

// persist stores scan while holding the user's scan lock. Usage is counted
// again under the lock so concurrent requests admitted against the same last
// slot cannot both be stored.
func (s *scanner) persist(ctx context.Context,
	userID domain.UserID,
	window domain.BillingWindow,
	scan *domain.Scan) (*domain.Scan, int, error) {
	var stored *domain.Scan
	var used int
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if err := tx.LockUserScans(ctx, userID); err != nil {
			return fmt.Errorf("could not lock user scans: %w", err)
		}

		var err error
		used, err = tx.CountCompletedScans(ctx, userID, window.PeriodStart, window.PeriodEnd)
		if err != nil {
			return fmt.Errorf("could not count completed scans: %w", err)
		}
		if used >= window.ScanLimit {
			return quotaExceeded(used, window.ScanLimit)
		}

		stored, err = tx.StoreScan(ctx, *scan)
		if err != nil {
			return fmt.Errorf("could not store scan: %w", err)
		}

		return nil
	}); err != nil {
		return nil, 0, err
	}

	return stored, used, nil
}
