package models

// Categories is the closed set of furniture categories the catalog uses.
var Categories = []string{"seating", "tables", "lighting", "storage", "decor", "beds", "kitchen"}

// Dimensions is a model's bounding box in meters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// CatalogEntry is a reusable furniture descriptor available for placement.
// Entries are seeded once at startup; only UsageCount changes afterwards.
type CatalogEntry struct {
	ModelID      string     `json:"model_id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	AssetURL     string     `json:"asset_url"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Description  string     `json:"description,omitempty"`
	Dimensions   Dimensions `json:"dimensions"`
	UsageCount   int        `json:"usage_count"`
}
