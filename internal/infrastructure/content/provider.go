// Package content calls the external scraping and copywriting service.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/avatarctic/storefront-admin/configs"
	domain "github.com/avatarctic/storefront-admin/internal/core/domain/content"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 1 << 20

// Provider is an HTTP ContentProvider.
type Provider struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

var _ ports.ContentProvider = (*Provider)(nil)

func NewProvider(cfg *configs.ContentConfig, logger *logrus.Logger) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	var transport http.RoundTripper = http.DefaultTransport
	if cfg.APIKey != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey, TokenType: "Bearer"}),
			Base:   http.DefaultTransport,
		}
	}
	return &Provider{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    &http.Client{Transport: transport, Timeout: timeout},
		logger:  logger,
	}
}

type scrapeBody struct {
	URL string `json:"url"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Scrape asks the provider to extract product data from url.
func (p *Provider) Scrape(ctx context.Context, url string) (*domain.ScrapeResult, error) {
	var out domain.ScrapeResult
	if err := p.post(ctx, "/scrape", scrapeBody{URL: url}, &out); err != nil {
		return nil, err
	}
	if out.URL == "" {
		out.URL = url
	}
	if out.ImageURLs == nil {
		out.ImageURLs = []string{}
	}
	return &out, nil
}

// Generate returns marketing copy for a product.
func (p *Provider) Generate(ctx context.Context, req *domain.GenerateRequest) (string, error) {
	var out generateResponse
	if err := p.post(ctx, "/generate", req, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Text), nil
}

// Ping checks that the provider answers at all.
func (p *Provider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("content provider unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

func (p *Provider) post(ctx context.Context, path string, in, out interface{}) error {
	if p.baseURL == "" {
		return fmt.Errorf("content provider is not configured")
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.http.Do(req)
	if err != nil {
		if p.logger != nil {
			p.logger.WithFields(logrus.Fields{"path": path}).WithError(err).Warn("content provider request failed")
		}
		return fmt.Errorf("content provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if p.logger != nil {
		p.logger.WithFields(logrus.Fields{
			"path":     path,
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
		}).Debug("content provider responded")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("content provider: unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
