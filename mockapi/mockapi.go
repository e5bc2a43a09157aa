// Package mockapi is an in-memory stand-in for the external catalog
// API, for developing and testing the client without the real backend.
// Endpoint paths, payload shapes, and error strings follow the
// upstream service's contract.
package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errCategoryNotFound = errors.New("Category not found.")
	errCategoryExists   = errors.New("Category with this title already exists.")
	errProductNotFound  = errors.New("Product not found.")
)

type createProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Brand         string   `json:"brand"`
	Price         *float64 `json:"price"`
	Quantity      int      `json:"quantity"`
	CategoryTitle string   `json:"category_title"`
}

type updateProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Brand         string   `json:"brand"`
	Price         *float64 `json:"price"`
	Quantity      *int     `json:"quantity"`
	CategoryTitle string   `json:"category_title"`
}

type createCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewRouter builds a gin engine serving the gateway contract on top
// of store. Used directly by tests; the binary adds its middleware
// before registering routes.
func NewRouter(store *Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, store)
	return r
}

// RegisterRoutes attaches the gateway contract's endpoints to r.
func RegisterRoutes(r *gin.Engine, store *Store) {
	r.GET("/products/", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Products())
	})

	r.POST("/products/create/", func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Name == "" || req.CategoryTitle == "" || req.Price == nil || req.Brand == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		product, err := store.CreateProduct(req.Name, req.Description, req.Brand, req.CategoryTitle, *req.Price, req.Quantity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Info("Product created", zap.String("id", product.ID), zap.String("name", product.Name))
		c.JSON(http.StatusCreated, gin.H{
			"message": "Product created successfully",
			"data":    gin.H{"id": product.ID, "name": product.Name},
		})
	})

	r.PUT("/products/:id/", func(c *gin.Context) {
		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		product, err := store.UpdateProduct(c.Param("id"), req.Name, req.Description, req.Brand, req.CategoryTitle, req.Price, req.Quantity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product.Name})
	})

	r.DELETE("/products/:id/", func(c *gin.Context) {
		if err := store.DeleteProduct(c.Param("id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.GET("/categories/", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Categories(c.Query("title")))
	})

	r.POST("/categories/create/", func(c *gin.Context) {
		var req createCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		category, err := store.CreateCategory(req.Title, req.Description)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Info("Category created", zap.String("id", category.ID), zap.String("title", category.Title))
		c.JSON(http.StatusCreated, gin.H{
			"message": "Category created successfully",
			"data":    gin.H{"id": category.ID, "title": category.Title},
		})
	})

	r.GET("/categories/:id/products/", func(c *gin.Context) {
		products, err := store.ProductsByCategoryID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, products)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
}
