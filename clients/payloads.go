package clients

// ProductPayload is the write shape for product create and update
// requests. The category is referenced by title; the server resolves
// it and owns the generated fields (id, timestamps).
type ProductPayload struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Brand         string  `json:"brand"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	CategoryTitle string  `json:"category_title"`
}

// CategoryPayload is the write shape for category create requests.
type CategoryPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
