package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Banner struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	LinkURL   string    `json:"link_url" db:"link_url"`
	Position  int       `json:"position" db:"position"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBannerRequest represents the request to create a banner
type CreateBannerRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (r *CreateBannerRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.ImageURL) == "" {
		return errors.New("image_url is required")
	}
	if r.Position < 0 {
		return errors.New("position must not be negative")
	}
	return nil
}

// UpdateBannerRequest represents the request to update a banner
type UpdateBannerRequest struct {
	Title    *string `json:"title,omitempty"`
	Subtitle *string `json:"subtitle,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	LinkURL  *string `json:"link_url,omitempty"`
	Position *int    `json:"position,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateBannerRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}
	if r.ImageURL != nil && strings.TrimSpace(*r.ImageURL) == "" {
		return errors.New("image_url must not be empty")
	}
	if r.Position != nil && *r.Position < 0 {
		return errors.New("position must not be negative")
	}
	return nil
}

// Apply copies the non-nil fields onto b.
func (r *UpdateBannerRequest) Apply(b *Banner) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Subtitle != nil {
		b.Subtitle = *r.Subtitle
	}
	if r.ImageURL != nil {
		b.ImageURL = *r.ImageURL
	}
	if r.LinkURL != nil {
		b.LinkURL = *r.LinkURL
	}
	if r.Position != nil {
		b.Position = *r.Position
	}
	if r.IsActive != nil {
		b.IsActive = *r.IsActive
	}
}
