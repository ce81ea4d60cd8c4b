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
	"net/url"
	"time"

	"github.com/aussiebroadwan/ideadesk/pkg/slogx"
)

// url builds a complete URL by appending the path and query to the base URL.
func (c *Client) url(path string, query url.Values) string {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// logger prefers the operation logger carried by ctx.
func (c *Client) logger(ctx context.Context) *slog.Logger {
	if c.Logger != nil {
		return slogx.FromContextOr(ctx, c.Logger)
	}
	return slogx.FromContext(ctx)
}

// Request performs one API call and returns the raw JSON body of a 2xx
// response. A 204 or empty body yields a nil RawMessage.
func (c *Client) Request(
	ctx context.Context,
	method, path string,
	body any,
	query url.Values,
) (json.RawMessage, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, transportError(ctx, err)
		}
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	var token string
	if c.Tokens != nil {
		token = c.Tokens.AccessToken()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.logger(ctx).Debug("api_request_failed",
			"method", method, "path", path, "err", err)
		return nil, transportError(ctx, err)
	}

	raw, err := decodeBody(resp)
	c.logger(ctx).Debug("api_request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if err != nil {
		return nil, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseErrorResponse(resp.StatusCode, raw)
		apiErr.Token = token
		return nil, apiErr
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	return raw, nil
}

// Fetch performs Request and decodes the body into T.
func Fetch[T any](
	ctx context.Context,
	c *Client,
	method, path string,
	body any,
	query url.Values,
) (T, error) {
	var out T
	raw, err := c.Request(ctx, method, path, body, query)
	if err != nil {
		return out, err
	}
	if raw == nil {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// decodeBody reads and closes the response body.
func decodeBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// transportError classifies a failure where no usable response exists.
func transportError(ctx context.Context, err error) *Error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Message: MsgCanceled, Err: err}
	}
	return &Error{Kind: KindTransport, Message: MsgTransport, Err: err}
}
