// Package backend is the HTTP adapter for the remote restaurant REST backend.
// Every operation this application performs ends up here as one authorized
// request; the package owns URL construction, bearer-token attachment, error
// envelope decoding, and the 401 contract (callers see domain.ErrSessionExpired
// and tear the session down at the edge).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/api/metrics"
	"github.com/tableside/restaurant-console/internal/core/domain"
)

type ctxKey int

const tokenKey ctxKey = iota

// WithToken returns a context carrying the session's backend access token.
// The session middleware attaches it once per request; every outgoing call
// picks it up from there.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the access token stored by WithToken, if any.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

// Client issues requests against a fixed base URL. All collection paths are
// trailing-slash terminated, matching the backend's routing.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// requestOptions tunes a single call.
type requestOptions struct {
	idempotencyKey string
}

type RequestOption func(*requestOptions)

// WithIdempotencyKey stamps the request so the backend can de-duplicate a
// retried write within a composite transaction.
func WithIdempotencyKey(key string) RequestOption {
	return func(o *requestOptions) { o.idempotencyKey = key }
}

func (c *Client) collectionPath(resource string) string {
	return c.base + "/" + resource + "/"
}

func (c *Client) itemPath(resource string, id int) string {
	return c.base + "/" + resource + "/" + strconv.Itoa(id) + "/"
}

// Ping reports whether the backend answers HTTP at all. Any response counts;
// readiness is about reachability, not authorization.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// do performs one round trip. tag labels metrics with a stable resource name
// even when the path carries ids or query parameters.
func (c *Client) do(ctx context.Context, method, tag, url string, body, out any, opts ...RequestOption) error {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, tag, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("backend: build %s %s: %w", method, tag, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := TokenFromContext(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if o.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", o.idempotencyKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(tag, method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(tag, method, "error").Inc()
		c.log.Error().Err(err).Str("method", method).Str("resource", tag).Msg("backend unreachable")
		return fmt.Errorf("backend: %s %s: %w", method, tag, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(tag, method, codeClass(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read %s %s: %w", method, tag, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, tag, domain.ErrSessionExpired)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractMessage(raw)
		c.log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("resource", tag).Str("detail", msg).Msg("backend rejected request")
		return &domain.RequestError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("backend: decode %s %s: %w", method, tag, err)
		}
	}
	return nil
}

// extractMessage pulls the human-readable detail out of a backend error body.
// The backend is inconsistent: some views return {"error": ...}, DRF returns
// {"detail": ...}, validation errors return field maps. Fall back to the raw
// body, then to a generic message.
func extractMessage(raw []byte) string {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for _, key := range []string{"error", "detail"} {
			if v, ok := envelope[key]; ok {
				var s string
				if json.Unmarshal(v, &s) == nil {
					return s
				}
				var list []string
				if json.Unmarshal(v, &list) == nil && len(list) > 0 {
					return strings.Join(list, " ")
				}
				return string(v)
			}
		}
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return "request failed"
}

func codeClass(status int) string {
	switch {
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
