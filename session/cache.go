package session

import (
	"go.uber.org/zap"

	"storefront/models"
)

// Cache is the in-memory catalog owned by the view layer for the
// lifetime of the session. It performs no I/O; loads replace the whole
// collection because the server is the source of truth.
type Cache struct {
	products   []models.Product
	categories []models.Category
}

func NewCache() *Cache {
	return &Cache{}
}

// Load replaces the entire product collection, preserving the fetch
// order.
func (c *Cache) Load(products []models.Product) {
	c.products = append(c.products[:0:0], products...)
}

// LoadCategories replaces the category collection, prepending the
// "All Products" sentinel entry.
func (c *Cache) LoadCategories(categories []models.Category) {
	c.categories = make([]models.Category, 0, len(categories)+1)
	c.categories = append(c.categories, models.AllProductsCategory())
	c.categories = append(c.categories, categories...)
}

// Products returns the cached products in fetch order.
func (c *Cache) Products() []models.Product {
	return c.products
}

// Categories returns the cached categories, sentinel first.
func (c *Cache) Categories() []models.Category {
	return c.categories
}

// ReplaceOne swaps the entry with matching id for updated. A missing
// id means the write raced a removal; it is logged as a stale write
// and dropped.
func (c *Cache) ReplaceOne(id string, updated models.Product) bool {
	for i := range c.products {
		if c.products[i].ID == id {
			updated.ID = id
			c.products[i] = updated
			return true
		}
	}
	zap.L().Warn("Stale write: product no longer in cache", zap.String("id", id))
	return false
}

// RemoveOne deletes the entry with matching id, if present.
func (c *Cache) RemoveOne(id string) bool {
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return true
		}
	}
	return false
}
