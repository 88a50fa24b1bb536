// Package pagefetch defines how the scan pipeline retrieves a remote page and
// reduces it to the handful of signals handed to the analysis service.
package pagefetch

import (
	"context"
	"fmt"
	"time"
)

// MaxTextSample is the number of characters of visible body text kept per page.
const MaxTextSample = 15000

// Page is the content extracted from one fetched document.
type Page struct {
	// Title is the trimmed text of the first <title>, nil when absent or blank.
	Title *string
	// Description is the trimmed meta description, nil when absent or blank.
	Description *string
	// TextSample is the whitespace collapsed visible body text, at most MaxTextSample characters.
	TextSample string
	// FinalURL is the URL of the document after redirects.
	FinalURL  string
	FetchedAt time.Time
}

// HTTPStatusError is wrapped into fetch failures caused by a non-2xx answer.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.StatusCode)
}

// Fetcher retrieves and extracts a page.
//
// Implementations fail with domain.ErrFetchFailed when the site is unreachable
// or answers with a non-2xx status, and with domain.ErrFetchTimeout when their
// own deadline elapses. Cancellation of ctx is returned as the context error.
//
//go:generate mockgen -package mockpagefetch -source=interface.go -destination=mock/mockpagefetch.go *
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}
