// Package rest is the small JSON-over-HTTP layer shared by the backend and
// weather clients.
package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const maxErrorBody = 4096

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error: %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: %d - %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

var ErrEmptyBody = errors.New("empty response body")

type Client struct {
	http *resty.Client
}

// New builds a client rooted at baseURL. Every call is logged through zap;
// response bodies are logged at debug level when logBodies is set.
func New(baseURL string, timeout time.Duration, logBodies bool) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse -> %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(zap.S()).
		OnAfterResponse(logResponse(logBodies)).
		OnError(logError)

	return &Client{http: r}, nil
}

// Do sends in (if non-nil) as JSON and decodes the response into out (if
// non-nil). path is resolved against the base URL.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if in != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(in)
	}

	resp, err := req.Execute(method, "/"+strings.TrimPrefix(path, "/"))
	if err != nil {
		return fmt.Errorf("req.Execute -> %w", err)
	}

	if !resp.IsSuccess() {
		body := resp.Body()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &APIError{StatusCode: resp.StatusCode(), Body: string(bytes.TrimSpace(body))}
	}

	if out == nil {
		return nil
	}
	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return ErrEmptyBody
	}
	if err = c.http.JSONUnmarshal(body, out); err != nil {
		return fmt.Errorf("JSONUnmarshal -> %w", err)
	}

	return nil
}

func logResponse(logBodies bool) resty.ResponseMiddleware {
	return func(_ *resty.Client, resp *resty.Response) error {
		target := requestURL(resp.Request)
		zap.L().Info("outbound request",
			zap.String("method", resp.Request.Method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", resp.Time()),
		)
		if logBodies {
			zap.L().Debug("outbound response body", zap.String("url", target), zap.ByteString("body", resp.Body()))
		}
		return nil
	}
}

func logError(req *resty.Request, err error) {
	zap.L().Warn("outbound request failed",
		zap.String("method", req.Method),
		zap.String("url", requestURL(req)),
		zap.Error(err),
	)
}

func requestURL(req *resty.Request) string {
	if req.RawRequest != nil {
		return redactedURL(req.RawRequest.URL)
	}
	return req.URL
}

// redactedURL hides the weather API key from logs.
func redactedURL(u *url.URL) string {
	c := *u
	q := c.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		c.RawQuery = q.Encode()
	}
	return c.String()
}
