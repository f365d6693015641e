package types

import "time"

// Part is an immutable electronic part record as returned by a catalog
// provider. PartNumber is unique within a single provider's catalog.
// Manufacturer, Description and Category are free text and may be empty.
type Part struct {
	PartNumber     string            `json:"part_number"`
	Manufacturer   string            `json:"manufacturer"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Price          *float64          `json:"price,omitempty"`
	Stock          *int              `json:"stock,omitempty"`
	DatasheetURL   string            `json:"datasheet_url,omitempty"`
	ImageURL       string            `json:"image_url,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// Validate checks structural invariants of a part record.
func (p *Part) Validate() error {
	if p.PartNumber == "" {
		return ErrEmptyPartNumber
	}
	if p.Price != nil && *p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock != nil && *p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// SearchRecord captures one search as the user issued it. Records are
// appended to a per-user sequence in arrival order and never mutated.
type SearchRecord struct {
	Query     string    `json:"query"`
	Context   string    `json:"context,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// UserProfile is derived on demand from a user's search history. Both
// slices are ranked most frequent first and hold at most five entries.
// It has no lifecycle of its own; it is the output of a pure function
// over the history sequence.
type UserProfile struct {
	FavoriteCategories     []string `json:"favorite_categories"`
	PreferredManufacturers []string `json:"preferred_manufacturers"`
}
