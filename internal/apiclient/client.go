// Package apiclient talks to the external transport booking API. Every call is
// a single attempt: nothing is retried here.
package apiclient

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

	"github.com/dharmasatrya/travelbooking/internal/ratelimit"
)

const (
	DefaultTimeout = 30 * time.Second

	HeaderIdempotencyKey = "Idempotency-Key"

	maxErrorBody = 64 << 10
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Limiter    *ratelimit.OperationLimiter
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.OperationLimiter
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    cfg.Limiter,
	}
}

type call struct {
	op        string
	limit     string
	method    string
	path      string
	token     string
	body      any
	headers   map[string]string
	failure   error
	loginCall bool
}

// do performs one request and decodes a 2xx body into out. Non-2xx answers are
// turned into *APIError; a cancelled ctx is returned as ctx.Err() so callers
// can tell a dropped request from a failed one.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	if err := c.limiter.Wait(ctx, cl.limit); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return NewAPIError(cl.op, 0, "", fmt.Errorf("%w: %v", ErrNetwork, err))
	}

	var reader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	for k, v := range cl.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			slog.InfoContext(ctx, "upstream request abandoned", "op", cl.op, "error", ctxErr)
			return ctxErr
		}
		slog.WarnContext(ctx, "upstream request failed",
			"op", cl.op, "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return NewAPIError(cl.op, 0, "", fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	slog.InfoContext(ctx, "upstream request",
		"op", cl.op,
		"method", cl.method,
		"path", cl.path,
		"status", resp.StatusCode,
		"authenticated", cl.token != "",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := extractDetail(body)
		// A 401 on login means bad credentials, not an expired session.
		if resp.StatusCode == http.StatusUnauthorized && !cl.loginCall {
			return NewAPIError(cl.op, resp.StatusCode, detail, ErrUnauthorized)
		}
		return NewAPIError(cl.op, resp.StatusCode, detail, cl.failure)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return NewAPIError(cl.op, resp.StatusCode, "", fmt.Errorf("%w: decode response: %v", cl.failure, err))
	}
	return nil
}

// IsCanceled reports whether err came from the caller giving up rather than
// from the API.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
