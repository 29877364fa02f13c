package catalog

// Home is the storefront landing page aggregate.
type Home struct {
	Banners          []*Banner   `json:"banners"`
	Categories       []*Category `json:"categories"`
	FeaturedProducts []*Product  `json:"featured_products"`
}

// Dashboard summarises catalog and user counts for the admin overview.
type Dashboard struct {
	Banners    int `json:"banners"`
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Users      int `json:"users"`
}
