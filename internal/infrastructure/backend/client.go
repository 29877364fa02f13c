// Package backend talks to the hosted backend's PostgREST interface and
// implements the repository ports on top of it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/avatarctic/storefront-admin/configs"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

const restPath = "/rest/v1/"

// HTTPError captures an unexpected status code and the response body.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend: unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// Is maps status codes onto the repository sentinels.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ports.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ports.ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// apiKeyRoundTripper adds the project API key every backend request must carry.
type apiKeyRoundTripper struct {
	Wrapped http.RoundTripper
	APIKey  string
}

func (rt *apiKeyRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone request to avoid mutating the original
	clone := req.Clone(req.Context())
	clone.Header.Set("apikey", rt.APIKey)
	return rt.Wrapped.RoundTrip(clone)
}

// Client is a minimal PostgREST client authenticated with the service key.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// NewClient builds a client whose transport injects the apikey header and a
// bearer service key through an oauth2 static token source.
func NewClient(cfg *configs.BackendConfig, logger *logrus.Logger) *Client {
	apiKey := cfg.AnonKey
	if apiKey == "" {
		apiKey = cfg.ServiceKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.ServiceKey, TokenType: "Bearer"}),
		Base:   &apiKeyRoundTripper{Wrapped: http.DefaultTransport, APIKey: apiKey},
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    &http.Client{Transport: transport, Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) tableURL(table string, query url.Values) string {
	u := c.baseURL + restPath + table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do performs one request and returns the body and headers on a 2xx status.
func (c *Client) do(ctx context.Context, method, table string, query url.Values, body interface{}, prefer string) ([]byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("backend: failed to encode %s body: %w", table, err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.tableURL(table, query), reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"method": method, "table": table}).WithError(err).Error("backend: request failed")
		}
		return nil, nil, fmt.Errorf("backend: %s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("backend: failed to read response: %w", err)
	}
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"method":      method,
			"table":       table,
			"status_code": resp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("backend request")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, &HTTPError{StatusCode: resp.StatusCode, Body: data}
	}
	return data, resp.Header, nil
}

// list decodes every row matching query into out (a pointer to a slice).
func (c *Client) list(ctx context.Context, table string, query url.Values, out interface{}) error {
	if query.Get("select") == "" {
		query.Set("select", "*")
	}
	data, _, err := c.do(ctx, http.MethodGet, table, query, nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend: failed to decode %s: %w", table, err)
	}
	return nil
}

// one returns the first row matching query, or ports.ErrNotFound.
func one[T any](ctx context.Context, c *Client, table string, query url.Values) (*T, error) {
	query.Set("limit", "1")
	var rows []*T
	if err := c.list(ctx, table, query, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s not found: %w", table, ports.ErrNotFound)
	}
	return rows[0], nil
}

func (c *Client) insert(ctx context.Context, table string, row interface{}) error {
	_, _, err := c.do(ctx, http.MethodPost, table, nil, row, "return=minimal")
	return err
}

// update patches the rows matching query. Zero rows touched is ErrNotFound.
func (c *Client) update(ctx context.Context, table string, query url.Values, patch interface{}) error {
	query.Set("select", "id")
	data, _, err := c.do(ctx, http.MethodPatch, table, query, patch, "return=representation")
	if err != nil {
		return err
	}
	return requireRows(table, data)
}

// remove deletes the rows matching query. Zero rows touched is ErrNotFound.
func (c *Client) remove(ctx context.Context, table string, query url.Values) error {
	data, _, err := c.do(ctx, http.MethodDelete, table, query, nil, "return=representation")
	if err != nil {
		return err
	}
	return requireRows(table, data)
}

func requireRows(table string, data []byte) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("backend: failed to decode %s: %w", table, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s not found: %w", table, ports.ErrNotFound)
	}
	return nil
}

// count asks PostgREST for an exact count through the Content-Range header.
func (c *Client) count(ctx context.Context, table string, query url.Values) (int, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("select", "id")
	query.Set("limit", "1")
	_, header, err := c.do(ctx, http.MethodGet, table, query, nil, "count=exact")
	if err != nil {
		return 0, err
	}
	return parseContentRange(header.Get("Content-Range"))
}

// parseContentRange reads the total from values like "0-24/3573" or "*/0".
func parseContentRange(v string) (int, error) {
	i := strings.LastIndexByte(v, '/')
	if i < 0 || i == len(v)-1 {
		return 0, fmt.Errorf("backend: malformed Content-Range %q", v)
	}
	total := v[i+1:]
	if total == "*" {
		return 0, errors.New("backend: count not provided")
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("backend: malformed Content-Range %q: %w", v, err)
	}
	return n, nil
}

// Ping checks the REST interface answers with the configured keys.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodGet, "categories", url.Values{"select": {"id"}, "limit": {"1"}}, nil, "")
	return err
}

func isNotFound(err error) bool { return errors.Is(err, ports.ErrNotFound) }

func eq(v interface{}) string { return fmt.Sprintf("eq.%v", v) }
