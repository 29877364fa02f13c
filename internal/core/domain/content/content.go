package content

import (
	"errors"
	"net/url"
	"strings"
)

// ScrapeRequest asks the content provider to extract product data from a page.
type ScrapeRequest struct {
	URL string `json:"url"`
}

func (r *ScrapeRequest) Validate() error {
	u, err := url.Parse(strings.TrimSpace(r.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("url must be an absolute http(s) URL")
	}
	return nil
}

// ScrapeResult is what the provider extracted from a product page.
type ScrapeResult struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Currency    string   `json:"currency"`
	ImageURLs   []string `json:"image_urls"`
}

// GenerateRequest asks for marketing copy for a product.
type GenerateRequest struct {
	ProductName string   `json:"product_name"`
	Keywords    []string `json:"keywords,omitempty"`
	Tone        string   `json:"tone,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.ProductName) == "" {
		return errors.New("product_name is required")
	}
	return nil
}

// Generated is generated copy. Fallback is set when the provider failed and
// canned text was substituted.
type Generated struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}
