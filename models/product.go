package models

import "encoding/json"

// PlaceholderImageURL is used when the gateway sends no image for a
// product.
const PlaceholderImageURL = "/static/img/placeholder.jpg"

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Brand       string      `json:"brand"`
	Price       float64     `json:"price"`
	Quantity    int         `json:"quantity"`
	Category    CategoryRef `json:"category"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
}

// UnmarshalJSON normalizes the two image field spellings seen across
// backend variants and falls back to the placeholder when neither is
// present.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	var raw struct {
		alias
		Image string `json:"image"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Product(raw.alias)
	if p.ImageURL == "" {
		p.ImageURL = raw.Image
	}
	if p.ImageURL == "" {
		p.ImageURL = PlaceholderImageURL
	}
	return nil
}
