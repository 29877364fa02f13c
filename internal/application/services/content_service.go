package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/content"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
)

// fallbackCopy is served when the content provider cannot generate a description.
const fallbackCopy = "%s is a customer favourite, crafted with care and built to last. Add it to your wishlist today."

type ContentService struct {
	provider ports.ContentProvider
	loader   *Loader
	logger   *logrus.Logger
}

func NewContentService(provider ports.ContentProvider, l *Loader, logger *logrus.Logger) *ContentService {
	return &ContentService{provider: provider, loader: l, logger: logger}
}

// Scrape extracts product data from a page. Results are cached per URL and
// transient provider failures are retried.
func (s *ContentService) Scrape(ctx context.Context, req *content.ScrapeRequest) (*content.ScrapeResult, error) {
	url := strings.TrimSpace(req.URL)
	res, err := load(ctx, s.loader, prefixScrape+url, func(ctx context.Context) (*content.ScrapeResult, error) {
		return s.provider.Scrape(ctx, url)
	}, loader.CacheTime(ScrapeTTL), loader.RetryOnError(true), loader.MinLoadingTime(0))
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"url": url}).WithError(err).Warn("content: scrape failed")
		}
		return nil, fmt.Errorf("failed to scrape %s: %w", url, err)
	}
	return res, nil
}

// Generate returns marketing copy. Provider errors are logged and replaced by canned text.
func (s *ContentService) Generate(ctx context.Context, req *content.GenerateRequest) (*content.Generated, error) {
	text, err := s.provider.Generate(ctx, req)
	if err == nil && strings.TrimSpace(text) != "" {
		return &content.Generated{Text: text}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.logger != nil {
		entry := s.logger.WithFields(logrus.Fields{"product_name": req.ProductName})
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Warn("content: generation failed, serving fallback copy")
	}
	return &content.Generated{Text: fmt.Sprintf(fallbackCopy, strings.TrimSpace(req.ProductName)), Fallback: true}, nil
}
