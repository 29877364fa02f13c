package ports

import (
	"context"

	"github.com/avatarctic/storefront-admin/internal/core/domain/content"
)

// ContentProvider is the external scraping / copy generation service.
type ContentProvider interface {
	Scrape(ctx context.Context, url string) (*content.ScrapeResult, error)
	Generate(ctx context.Context, req *content.GenerateRequest) (string, error)
}

type ContentService interface {
	Scrape(ctx context.Context, req *content.ScrapeRequest) (*content.ScrapeResult, error)
	Generate(ctx context.Context, req *content.GenerateRequest) (*content.Generated, error)
}
