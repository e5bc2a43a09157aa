package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	apperrors "storefront/common/errors"
	"storefront/models"
)

// updateSuccessMessage is the exact acknowledgement the gateway sends
// for a successful product update.
const updateSuccessMessage = "Product updated successfully"

// CatalogClient consumes the remote catalog API.
type CatalogClient struct {
	baseURL string
	client  *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// ListCategories fetches all categories.
func (c *CatalogClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ResolveCategory looks a category up by exact title. A missing title
// resolves to ok=false, not an error; callers decide how to degrade.
func (c *CatalogClient) ResolveCategory(ctx context.Context, title string) (models.Category, bool, error) {
	query := url.Values{"title": {title}}
	var categories []models.Category
	if err := c.getJSON(ctx, "/categories/", query, &categories); err != nil {
		return models.Category{}, false, err
	}
	if len(categories) == 0 {
		return models.Category{}, false, nil
	}
	return categories[0], true, nil
}

// ListProducts fetches the full product catalog.
func (c *CatalogClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/products/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductsByCategory fetches the products of the category with the
// given title. An unresolvable title falls back to the full catalog,
// matching the reference frontend's behavior.
func (c *CatalogClient) ProductsByCategory(ctx context.Context, title string) ([]models.Product, error) {
	category, ok, err := c.ResolveCategory(ctx, title)
	if err != nil {
		return nil, err
	}
	if !ok {
		zap.L().Warn("Category title did not resolve, fetching all products",
			zap.String("title", title))
		return c.ListProducts(ctx)
	}

	var products []models.Product
	path := fmt.Sprintf("/categories/%s/products/", url.PathEscape(category.ID))
	if err := c.getJSON(ctx, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct asks the gateway to persist a new product. The created
// record is not returned; callers refetch the catalog so the server
// stays the source of truth for generated fields.
func (c *CatalogClient) CreateProduct(ctx context.Context, payload ProductPayload) error {
	return c.sendJSON(ctx, http.MethodPost, "/products/create/", payload, nil)
}

// CreateCategory asks the gateway to persist a new category.
func (c *CatalogClient) CreateCategory(ctx context.Context, payload CategoryPayload) error {
	return c.sendJSON(ctx, http.MethodPost, "/categories/create/", payload, nil)
}

// UpdateProduct replaces the product with the given id.
func (c *CatalogClient) UpdateProduct(ctx context.Context, id string, payload ProductPayload) error {
	var ack struct {
		Message string `json:"message"`
	}
	path := fmt.Sprintf("/products/%s/", url.PathEscape(id))
	if err := c.sendJSON(ctx, http.MethodPut, path, payload, &ack); err != nil {
		return err
	}
	if ack.Message != updateSuccessMessage {
		return apperrors.Server("Update failed")
	}
	return nil
}

// DeleteProduct removes the product with the given id.
func (c *CatalogClient) DeleteProduct(ctx context.Context, id string) error {
	path := fmt.Sprintf("/products/%s/", url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return rejectionError(resp)
	}
	return nil
}

func (c *CatalogClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return rejectionError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *CatalogClient) sendJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return rejectionError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// rejectionError turns an error response into a ServerRejection,
// preferring the gateway's own message.
func rejectionError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return apperrors.Server(payload.Error)
	}

	zap.L().Warn("Gateway rejection without error payload",
		zap.Int("status", resp.StatusCode))
	return apperrors.Server(resp.Status)
}
