package clients_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/clients"
	apperrors "storefront/common/errors"
	"storefront/mockapi"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestClient(t *testing.T) *clients.CatalogClient {
	t.Helper()
	store := mockapi.NewStore()
	store.Seed()
	srv := httptest.NewServer(mockapi.NewRouter(store))
	t.Cleanup(srv.Close)
	return clients.NewCatalogClient(srv.URL, 5*time.Second)
}

func TestListCategories(t *testing.T) {
	client := newTestClient(t)

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Fruits", categories[0].Title)
	assert.NotEmpty(t, categories[0].ID)
}

func TestResolveCategory(t *testing.T) {
	client := newTestClient(t)

	category, ok, err := client.ResolveCategory(context.Background(), "Vegetables")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Vegetables", category.Title)

	_, ok, err = client.ResolveCategory(context.Background(), "Electronics")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListProducts(t *testing.T) {
	client := newTestClient(t)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 7)
	assert.Equal(t, "Apple", products[0].Name)
	assert.Equal(t, "Fruits", products[0].Category.String())
}

func TestProductsByCategory(t *testing.T) {
	client := newTestClient(t)

	products, err := client.ProductsByCategory(context.Background(), "Fruits")
	require.NoError(t, err)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.Equal(t, "Fruits", p.Category.String())
	}
}

func TestProductsByCategoryUnknownTitleFallsBack(t *testing.T) {
	client := newTestClient(t)

	products, err := client.ProductsByCategory(context.Background(), "Electronics")
	require.NoError(t, err)
	// An unresolvable title degrades to the unfiltered catalog.
	assert.Len(t, products, 7)
}

func TestCreateProduct(t *testing.T) {
	client := newTestClient(t)

	err := client.CreateProduct(context.Background(), clients.ProductPayload{
		Name:          "Pear",
		Brand:         "Orchard Co",
		Price:         1.35,
		Quantity:      90,
		CategoryTitle: "Fruits",
	})
	require.NoError(t, err)

	products, err := client.ProductsByCategory(context.Background(), "Fruits")
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestCreateProductUnknownCategoryRejected(t *testing.T) {
	client := newTestClient(t)

	err := client.CreateProduct(context.Background(), clients.ProductPayload{
		Name:          "Pear",
		Brand:         "Orchard Co",
		Price:         1.35,
		CategoryTitle: "Electronics",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsServer(err))
	assert.Equal(t, "Category not found.", apperrors.UserMessage(err))
}

func TestCreateCategoryDuplicateRejected(t *testing.T) {
	client := newTestClient(t)

	err := client.CreateCategory(context.Background(), clients.CategoryPayload{Title: "Dairy"})
	require.NoError(t, err)

	err = client.CreateCategory(context.Background(), clients.CategoryPayload{Title: "Dairy"})
	require.Error(t, err)
	assert.True(t, apperrors.IsServer(err))
	assert.Equal(t, "Category with this title already exists.", apperrors.UserMessage(err))
}

func TestUpdateProduct(t *testing.T) {
	client := newTestClient(t)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	target := products[0]

	err = client.UpdateProduct(context.Background(), target.ID, clients.ProductPayload{
		Name:          "Green Apple",
		Brand:         target.Brand,
		Price:         1.45,
		Quantity:      target.Quantity,
		CategoryTitle: "Fruits",
	})
	require.NoError(t, err)

	products, err = client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Green Apple", products[0].Name)
	assert.Equal(t, 1.45, products[0].Price)
}

func TestUpdateProductUnknownIDRejected(t *testing.T) {
	client := newTestClient(t)

	err := client.UpdateProduct(context.Background(), "nope", clients.ProductPayload{
		Name:          "Ghost",
		Brand:         "n/a",
		Price:         1,
		CategoryTitle: "Fruits",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsServer(err))
	assert.Equal(t, "Product not found.", apperrors.UserMessage(err))
}

func TestDeleteProduct(t *testing.T) {
	client := newTestClient(t)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)

	err = client.DeleteProduct(context.Background(), products[0].ID)
	require.NoError(t, err)

	remaining, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, remaining, len(products)-1)

	err = client.DeleteProduct(context.Background(), products[0].ID)
	require.Error(t, err)
	assert.Equal(t, "Product not found.", apperrors.UserMessage(err))
}

func TestNetworkFailure(t *testing.T) {
	store := mockapi.NewStore()
	srv := httptest.NewServer(mockapi.NewRouter(store))
	srv.Close()
	client := clients.NewCatalogClient(srv.URL, time.Second)

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
	assert.Equal(t, "No response from server. Please check your connection.", apperrors.UserMessage(err))
}
