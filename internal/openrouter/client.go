// Package openrouter is the resilient client for the OpenRouter
// chat-completions API. A single call carries a per-attempt timeout and an
// exponential-backoff retry budget; failures are classified so callers can
// distinguish "try again later" from "this request will never work".
//
// Two calling modes exist by contract: Complete returns a typed *APIError
// and is used where a failure must be visible (synthesis); TryComplete
// returns nil on any failure and is used for the fan-out stages where one
// bad backend must not take down the run.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	// DefaultBaseURL is the production chat-completions endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout bounds one attempt, not the whole retry budget.
	DefaultTimeout = 120 * time.Second

	// DefaultMaxRetries is the number of additional attempts after the first.
	DefaultMaxRetries = 2

	maxResponseBytes = 10 * 1024 * 1024
)

// Message is a single role-tagged turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// System and User build the two message roles the pipeline uses.
func System(content string) Message { return Message{Role: "system", Content: content} }
func User(content string) Message   { return Message{Role: "user", Content: content} }

// Result is a successful completion.
type Result struct {
	Content   string          `json:"content"`
	Reasoning json.RawMessage `json:"reasoning_details,omitempty"`
}

// CallOptions tune a single logical call.
type CallOptions struct {
	// Timeout bounds each attempt. Zero means DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the retry budget for transient failures. Zero means
	// DefaultMaxRetries; negative disables retries.
	MaxRetries int
}

func (o CallOptions) withDefaults() CallOptions {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = DefaultMaxRetries
	} else if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	return o
}

// Config holds client construction parameters.
type Config struct {
	APIKey   string
	BaseURL  string
	SiteURL  string
	SiteName string
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client issues chat-completion requests. It holds no per-call state and is
// safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	siteURL    string
	siteName   string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client. The http.Client carries no overall timeout; each
// attempt is bounded by a per-call context deadline instead.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		siteURL:    cfg.SiteURL,
		siteName:   cfg.SiteName,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string          `json:"content"`
			Reasoning json.RawMessage `json:"reasoning_details,omitempty"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Complete sends one chat request in hard mode: on failure the returned
// error is always an *APIError carrying a user-facing message.
func (c *Client) Complete(ctx context.Context, model string, msgs []Message, opts CallOptions) (*Result, error) {
	opts = opts.withDefaults()

	if len(msgs) == 0 {
		return nil, &APIError{Kind: KindInvalidRequest, Message: "at least one message is required"}
	}
	if c.apiKey == "" {
		return nil, &APIError{Kind: KindAuthFailure, Message: "API key not configured"}
	}

	payload, err := json.Marshal(chatRequest{Model: model, Messages: msgs})
	if err != nil {
		return nil, &APIError{Kind: KindInvalidRequest, Message: fmt.Sprintf("encoding request: %v", err)}
	}

	backoff := retry.WithMaxRetries(uint64(opts.MaxRetries), retry.NewExponential(time.Second))

	attempt := 0
	var result *Result
	retryErr := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		res, apiErr := c.attempt(ctx, model, payload, opts.Timeout)
		if apiErr == nil {
			if attempt > 1 {
				c.logger.Debug("call succeeded after retry", "model", model, "attempt", attempt)
			}
			result = res
			return nil
		}

		c.logger.Debug("call attempt failed",
			"model", model, "attempt", attempt, "kind", apiErr.Kind, "code", apiErr.Code)

		if retryable(apiErr) {
			return retry.RetryableError(apiErr)
		}
		return apiErr
	})

	if retryErr != nil {
		var apiErr *APIError
		if errors.As(retryErr, &apiErr) {
			return nil, apiErr
		}
		// Context cancelled while waiting out a backoff delay.
		return nil, &APIError{Kind: KindTimeout, Message: fmt.Sprintf("call abandoned: %v", retryErr)}
	}
	return result, nil
}

// TryComplete sends one chat request in soft mode: any failure is logged
// and reported as a nil result, never as an error.
func (c *Client) TryComplete(ctx context.Context, model string, msgs []Message, opts CallOptions) *Result {
	res, err := c.Complete(ctx, model, msgs, opts)
	if err != nil {
		c.logger.Warn("soft-mode call failed", "model", model, "error", err)
		return nil
	}
	return res
}

// attempt performs exactly one HTTP round trip bounded by timeout.
func (c *Client) attempt(ctx context.Context, model string, payload []byte, timeout time.Duration) (*Result, *APIError) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Kind: KindInvalidRequest, Message: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.siteURL != "" {
		req.Header.Set("HTTP-Referer", c.siteURL)
	}
	if c.siteName != "" {
		req.Header.Set("X-Title", c.siteName)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &APIError{
				Kind:    KindTimeout,
				Message: fmt.Sprintf("Timed out waiting for model %s.", model),
			}
		}
		return nil, &APIError{
			Kind:    KindTransportError,
			Message: fmt.Sprintf("Connection error talking to model %s: %v", model, err),
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &APIError{
			Kind:    KindTransportError,
			Message: fmt.Sprintf("Reading response from model %s: %v", model, err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(model, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &APIError{Kind: KindUnknown, Message: fmt.Sprintf("Malformed response from model %s.", model)}
	}
	if parsed.Error != nil {
		return nil, &APIError{Kind: KindUnknown, Code: parsed.Error.Code, Message: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return nil, &APIError{Kind: KindUnknown, Message: fmt.Sprintf("No completion returned by model %s.", model)}
	}

	msg := parsed.Choices[0].Message
	return &Result{Content: msg.Content, Reasoning: msg.Reasoning}, nil
}
