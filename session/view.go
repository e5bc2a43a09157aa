package session

import (
	"storefront/models"
)

// View holds the category filter and pager state.
type View struct {
	pageSize         int
	selectedCategory string
	currentPage      int
}

// Slice is one page of the filtered catalog.
type Slice struct {
	Items         []models.Product
	Page          int
	TotalPages    int
	FilteredCount int
}

func NewView(pageSize int) *View {
	if pageSize < 1 {
		pageSize = 1
	}
	return &View{
		pageSize:         pageSize,
		selectedCategory: models.AllProducts,
		currentPage:      1,
	}
}

func (v *View) PageSize() int    { return v.pageSize }
func (v *View) Category() string { return v.selectedCategory }
func (v *View) Page() int        { return v.currentPage }

// SetCategory selects a category filter and resets the pager to the
// first page. Without the reset a filter change could leave the page
// out of range for the smaller filtered set.
func (v *View) SetCategory(title string) {
	if title == "" {
		title = models.AllProducts
	}
	v.selectedCategory = title
	v.currentPage = 1
}

// SetPage requests a page. The value is clamped against the filtered
// count on the next VisibleSlice call.
func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.currentPage = page
}

// VisibleSlice filters products by the selected category, clamps the
// current page into range, and returns the visible window. Filtering
// preserves fetch order; the sentinel category passes everything
// through.
func (v *View) VisibleSlice(products []models.Product) Slice {
	filtered := products
	if v.selectedCategory != models.AllProducts {
		filtered = make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.Category.String() == v.selectedCategory {
				filtered = append(filtered, p)
			}
		}
	}

	totalPages := (len(filtered) + v.pageSize - 1) / v.pageSize

	// The page can fall out of range when the filtered set shrinks,
	// e.g. after a delete. Clamp and persist so the invariant holds.
	page := v.currentPage
	if maxPage := max(1, totalPages); page > maxPage {
		page = maxPage
	}
	if page < 1 {
		page = 1
	}
	v.currentPage = page

	start := (page - 1) * v.pageSize
	end := min(start+v.pageSize, len(filtered))
	if start > len(filtered) {
		start = len(filtered)
	}

	return Slice{
		Items:         filtered[start:end],
		Page:          page,
		TotalPages:    totalPages,
		FilteredCount: len(filtered),
	}
}
