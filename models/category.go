package models

import "encoding/json"

// AllProducts is the pseudo-category meaning no filter is applied.
const AllProducts = "All Products"

type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// AllProductsCategory returns the sentinel entry prepended to the
// category list so the selector can offer an unfiltered view.
func AllProductsCategory() Category {
	return Category{ID: "all", Title: AllProducts}
}

// CategoryRef is a product's category reference, canonically the
// category title. The backend variants disagree on the wire shape: the
// flat views embed a bare title string, the serializer emits a list of
// titles, and the SPA typed it as a nested object. All three decode
// into the title.
type CategoryRef string

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*r = CategoryRef(title)
		return nil
	}

	var titles []string
	if err := json.Unmarshal(data, &titles); err == nil {
		if len(titles) > 0 {
			*r = CategoryRef(titles[0])
		} else {
			*r = ""
		}
		return nil
	}

	var nested struct {
		Title string `json:"title"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}
	if nested.Title != "" {
		*r = CategoryRef(nested.Title)
	} else {
		*r = CategoryRef(nested.Name)
	}
	return nil
}

func (r CategoryRef) String() string { return string(r) }
