// Package openai implements analysis.Analyzer on top of an OpenAI compatible
// chat completions endpoint using structured outputs.
package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/jx"
	"go.uber.org/zap"

	"sitecheck/pkg/analysis"
	"sitecheck/pkg/domain"
	"sitecheck/pkg/logger"
	"sitecheck/pkg/serrors"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o"
	DefaultTimeout = 60 * time.Second

	schemaName       = "website_analysis"
	maxResponseBytes = 1 << 20
)

// Options configures a Client. Zero values select the defaults above.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	opts       Options
}

var _ analysis.Analyzer = (*Client)(nil)

// New constructs a Client that sends requests through httpClient.
func New(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Client{httpClient: httpClient, opts: opts}
}

func (c *Client) newRequest(ctx context.Context, input analysis.Input) (*http.Request, error) {
	body := &chatRequest{
		Model: c.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPromptPrefix + encodeInput(&input)},
		},
		Schema: verdictSchema,
	}

	var e jx.Encoder
	body.Encode(&e)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(e.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	return req, nil
}

// Analyze sends one completion request and strictly decodes the verdict.
// No retry is attempted, rate limiting included.
func (c *Client) Analyze(ctx context.Context, input analysis.Input) (*domain.Verdict, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := c.newRequest(callCtx, input)
	if err != nil {
		return nil, serrors.Wrap(domain.ErrAnalysisFailed, err, "could not build analysis request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.callError(ctx, err, "could not send analysis request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.callError(ctx, err, "could not read analysis response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.With(domain.ErrAnalysisFailed,
			"analysis service responded with status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var cr chatResponse
	if err := cr.Decode(jx.DecodeBytes(b)); err != nil {
		return nil, serrors.Wrap(domain.ErrAnalysisFailed, err, "could not decode completion")
	}
	if len(cr.Choices) == 0 {
		return nil, serrors.With(domain.ErrAnalysisFailed, "completion has no choices")
	}

	choice := cr.Choices[0]
	switch {
	case choice.Refusal != nil && *choice.Refusal != "":
		return nil, serrors.With(domain.ErrAnalysisFailed, "analysis refused: %s", *choice.Refusal)
	case choice.FinishReason != "stop":
		return nil, serrors.With(domain.ErrAnalysisFailed, "completion finished with reason %q", choice.FinishReason)
	case choice.Content == nil || strings.TrimSpace(*choice.Content) == "":
		return nil, serrors.With(domain.ErrAnalysisFailed, "completion has no content")
	}

	verdict, err := DecodeVerdict([]byte(*choice.Content))
	if err != nil {
		return nil, serrors.Wrap(domain.ErrAnalysisFailed, err, "analysis violated response contract")
	}

	logger.Debug(ctx, "analysis completed",
		zap.String("model", c.opts.Model),
		zap.Int("prompt_tokens", cr.PromptTokens),
		zap.Int("completion_tokens", cr.CompletionTokens),
		zap.String("verdict", string(verdict.OverallVerdict)))

	return verdict, nil
}

func (c *Client) callError(parent context.Context, err error, msg string) error {
	if parent.Err() != nil {
		return fmt.Errorf("analysis aborted: %w", parent.Err())
	}

	return serrors.Wrap(domain.ErrAnalysisFailed, err, "%s", msg)
}
