package session

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/clients"
	apperrors "storefront/common/errors"
	"storefront/models"
)

var validate = validator.New()

// ProductDraft is an editable, not-yet-persisted product held by an
// overlay. Numeric fields stay raw strings until validation so a
// half-typed value never corrupts the draft.
type ProductDraft struct {
	Name          string `validate:"required"`
	Description   string
	Brand         string
	Price         string `validate:"required"`
	Quantity      string
	CategoryTitle string `validate:"required"`
}

// CategoryDraft is an editable, not-yet-persisted category.
type CategoryDraft struct {
	Title       string `validate:"required"`
	Description string
}

// draftFromProduct seeds an editable copy of a cached product.
func draftFromProduct(p models.Product) ProductDraft {
	return ProductDraft{
		Name:          p.Name,
		Description:   p.Description,
		Brand:         p.Brand,
		Price:         strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:      strconv.Itoa(p.Quantity),
		CategoryTitle: p.Category.String(),
	}
}

// Validate checks the draft and converts it to the gateway write
// shape. A failure blocks submission entirely; no request is sent.
func (d ProductDraft) Validate() (clients.ProductPayload, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.CategoryTitle = strings.TrimSpace(d.CategoryTitle)

	if err := validate.Struct(d); err != nil {
		switch {
		case d.Name == "":
			return clients.ProductPayload{}, apperrors.Validation("Product name is required")
		case d.CategoryTitle == "":
			return clients.ProductPayload{}, apperrors.Validation("Category is required")
		default:
			return clients.ProductPayload{}, apperrors.Validation("Please enter a valid price")
		}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil || price <= 0 {
		return clients.ProductPayload{}, apperrors.Validation("Please enter a valid price")
	}

	q := strings.TrimSpace(d.Quantity)
	if q == "" {
		return clients.ProductPayload{}, apperrors.Validation("Quantity is required")
	}
	quantity, err := strconv.Atoi(q)
	if err != nil || quantity < 0 {
		return clients.ProductPayload{}, apperrors.Validation("Quantity must be a non-negative integer")
	}

	return clients.ProductPayload{
		Name:          d.Name,
		Description:   d.Description,
		Brand:         d.Brand,
		Price:         price,
		Quantity:      quantity,
		CategoryTitle: d.CategoryTitle,
	}, nil
}

// Validate checks the draft and converts it to the gateway write shape.
func (d CategoryDraft) Validate() (clients.CategoryPayload, error) {
	d.Title = strings.TrimSpace(d.Title)
	if err := validate.Struct(d); err != nil {
		return clients.CategoryPayload{}, apperrors.Validation("Category title is required")
	}
	return clients.CategoryPayload{
		Title:       d.Title,
		Description: d.Description,
	}, nil
}

// applyPayload merges a validated payload into a product, preserving
// identity and the server-owned fields. Used after a successful save:
// the gateway only acknowledges the update, so the cache entry is
// rebuilt locally from the submitted values.
func applyPayload(p models.Product, payload clients.ProductPayload) models.Product {
	p.Name = payload.Name
	p.Description = payload.Description
	p.Brand = payload.Brand
	p.Price = payload.Price
	p.Quantity = payload.Quantity
	p.Category = models.CategoryRef(payload.CategoryTitle)
	return p
}
