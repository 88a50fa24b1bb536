// Package analysis defines the contract of the external service that turns
// extracted page signals into a safety verdict.
package analysis

import (
	"context"
	"time"

	"sitecheck/pkg/domain"
)

// Input is the data submitted for one assessment.
type Input struct {
	URL             string    `json:"url"`
	Domain          string    `json:"domain"`
	PageTitle       *string   `json:"pageTitle"`
	MetaDescription *string   `json:"metaDescription"`
	PageTextSample  string    `json:"pageTextSample"`
	FetchedAt       time.Time `json:"fetchedAt"`
}

// Analyzer produces a verdict for a page. A returned verdict always satisfies
// the full response contract; any deviation fails with domain.ErrAnalysisFailed.
// Cancellation of ctx is returned as the context error.
//
//go:generate mockgen -package mockanalysis -source=interface.go -destination=mock/mockanalysis.go *
type Analyzer interface {
	Analyze(ctx context.Context, input Input) (*domain.Verdict, error)
}
