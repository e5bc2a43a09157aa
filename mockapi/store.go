package mockapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/models"
)

// Store is the in-memory catalog behind the mock gateway. Collections
// keep insertion order, matching what a real backend returns for
// unsorted list endpoints.
type Store struct {
	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Categories(title string) []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		return append([]models.Category(nil), s.categories...)
	}
	out := []models.Category{}
	for _, c := range s.categories {
		if c.Title == title {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) CategoryByID(id string) (models.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryByIDLocked(id)
}

func (s *Store) categoryByIDLocked(id string) (models.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

func (s *Store) categoryByTitleLocked(title string) (models.Category, bool) {
	for _, c := range s.categories {
		if c.Title == title {
			return c, true
		}
	}
	return models.Category{}, false
}

func (s *Store) CreateCategory(title, description string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categoryByTitleLocked(title); ok {
		return models.Category{}, errCategoryExists
	}
	category := models.Category{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
	}
	s.categories = append(s.categories, category)
	return category, nil
}

func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Product(nil), s.products...)
}

func (s *Store) ProductsByCategoryID(id string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categoryByIDLocked(id)
	if !ok {
		return nil, errCategoryNotFound
	}
	out := []models.Product{}
	for _, p := range s.products {
		if p.Category.String() == category.Title {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) CreateProduct(name, description, brand, categoryTitle string, price float64, quantity int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categoryByTitleLocked(categoryTitle)
	if !ok {
		return models.Product{}, errCategoryNotFound
	}

	now := time.Now().UTC().Format(time.RFC3339)
	product := models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Brand:       brand,
		Price:       price,
		Quantity:    quantity,
		Category:    models.CategoryRef(category.Title),
		ImageURL:    models.PlaceholderImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products = append(s.products, product)
	return product, nil
}

func (s *Store) UpdateProduct(id, name, description, brand, categoryTitle string, price *float64, quantity *int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		if name != "" {
			p.Name = name
		}
		if description != "" {
			p.Description = description
		}
		if brand != "" {
			p.Brand = brand
		}
		if categoryTitle != "" {
			category, ok := s.categoryByTitleLocked(categoryTitle)
			if !ok {
				return models.Product{}, errCategoryNotFound
			}
			p.Category = models.CategoryRef(category.Title)
		}
		if price != nil {
			p.Price = *price
		}
		if quantity != nil {
			p.Quantity = *quantity
		}
		p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		return *p, nil
	}
	return models.Product{}, errProductNotFound
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return errProductNotFound
}

// Seed loads a small demo catalog.
func (s *Store) Seed() {
	for _, c := range []struct{ title, description string }{
		{"Fruits", "Fresh fruit"},
		{"Vegetables", "Seasonal vegetables"},
		{"Beverages", "Hot and cold drinks"},
	} {
		_, _ = s.CreateCategory(c.title, c.description)
	}

	for _, p := range []struct {
		name, brand, category string
		price                 float64
		quantity              int
	}{
		{"Apple", "Orchard Co", "Fruits", 1.20, 140},
		{"Banana", "Tropico", "Fruits", 0.60, 220},
		{"Mango", "Tropico", "Fruits", 2.10, 45},
		{"Carrot", "GreenField", "Vegetables", 0.40, 310},
		{"Spinach", "GreenField", "Vegetables", 1.10, 80},
		{"Orange Juice", "SunPress", "Beverages", 3.50, 60},
		{"Cold Brew", "RoastHouse", "Beverages", 4.20, 35},
	} {
		_, _ = s.CreateProduct(p.name, "", p.brand, p.category, p.price, p.quantity)
	}
}
