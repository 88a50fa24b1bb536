// Package httpfetch implements pagefetch.Fetcher with net/http and goquery.
package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"sitecheck/pkg/domain"
	"sitecheck/pkg/logger"
	"sitecheck/pkg/pagefetch"
	"sitecheck/pkg/serrors"
)

// DefaultUserAgent mimics a desktop Chrome so that sites serve their regular markup.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const (
	DefaultTimeout      = 15 * time.Second
	DefaultMaxBodyBytes = 5 << 20
	DefaultMaxRedirects = 10
)

// Options configures a Client. Zero values select the defaults above.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
	MaxRedirects int
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if o.MaxRedirects <= 0 {
		o.MaxRedirects = DefaultMaxRedirects
	}

	return o
}

// Client fetches pages over HTTP. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	opts       Options
	now        func() time.Time
}

var _ pagefetch.Fetcher = (*Client)(nil)

// New creates a Client. A nil httpClient selects a fresh one; the redirect
// policy is always replaced with one capped at Options.MaxRedirects.
func New(httpClient *http.Client, opts Options) *Client {
	opts = opts.withDefaults()

	hc := &http.Client{}
	if httpClient != nil {
		copied := *httpClient
		hc = &copied
	}
	hc.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
		if len(via) >= opts.MaxRedirects {
			return fmt.Errorf("stopped after %d redirects", opts.MaxRedirects)
		}

		return nil
	}

	return &Client{httpClient: hc, opts: opts, now: time.Now}
}

// Fetch issues a single GET for url and extracts its content. There is no retry.
func (c *Client) Fetch(ctx context.Context, url string) (*pagefetch.Page, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, serrors.Wrap(domain.ErrFetchFailed, err, "could not create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, fetchCtx, err, "could not reach site")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.Wrap(domain.ErrFetchFailed,
			&pagefetch.HTTPStatusError{StatusCode: resp.StatusCode},
			"site responded with status %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, c.opts.MaxBodyBytes)
	contentType := resp.Header.Get("Content-Type")
	utf8Body, err := charset.NewReader(body, contentType)
	if err != nil {
		logger.Debug(ctx, "unknown page charset, reading raw bytes", zap.String("content_type", contentType))
		utf8Body = body
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, c.transportError(ctx, fetchCtx, err, "could not read page")
	}

	ex := extract(doc)
	page := &pagefetch.Page{
		Title:       ex.title,
		Description: ex.description,
		TextSample:  ex.text,
		FinalURL:    resp.Request.URL.String(),
		FetchedAt:   c.now().UTC(),
	}

	logger.Debug(ctx, "page fetched",
		zap.String("final_url", page.FinalURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("text_chars", len([]rune(page.TextSample))))

	return page, nil
}

// transportError classifies a failed round trip or body read. The caller's
// own cancellation wins over the fetch deadline.
func (c *Client) transportError(parent, fetchCtx context.Context, err error, msg string) error {
	if parent.Err() != nil {
		return fmt.Errorf("fetch aborted: %w", parent.Err())
	}

	var netErr net.Error
	if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return serrors.Wrap(domain.ErrFetchTimeout, err, "site did not respond within %s", c.opts.Timeout)
	}

	return serrors.Wrap(domain.ErrFetchFailed, err, "%s", msg)
}
