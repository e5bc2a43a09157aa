package session

import (
	"storefront/clients"
	apperrors "storefront/common/errors"
)

// CreateState enumerates the create overlay's states.
type CreateState int

const (
	CreateClosed CreateState = iota
	CreateDrafting
	CreateSubmitting
)

// CreateKind selects which record type the overlay is drafting.
type CreateKind int

const (
	KindProduct CreateKind = iota
	KindCategory
)

// Submission identifies an in-flight create call and carries the
// validated payload for it.
type Submission struct {
	Gen      uint64
	Kind     CreateKind
	Product  clients.ProductPayload
	Category clients.CategoryPayload
}

// CreateOverlay is the create-product / create-category modal's state
// machine. On success the overlay closes and the caller is expected to
// refresh the whole session: the server owns generated fields, so no
// incremental cache insert is attempted.
type CreateOverlay struct {
	state    CreateState
	kind     CreateKind
	product  ProductDraft
	category CategoryDraft
	gen      uint64
}

func NewCreateOverlay() *CreateOverlay {
	return &CreateOverlay{}
}

func (o *CreateOverlay) State() CreateState       { return o.state }
func (o *CreateOverlay) Kind() CreateKind         { return o.kind }
func (o *CreateOverlay) Product() *ProductDraft   { return &o.product }
func (o *CreateOverlay) Category() *CategoryDraft { return &o.category }

// Open shows the overlay drafting a product.
func (o *CreateOverlay) Open() {
	o.state = CreateDrafting
	o.kind = KindProduct
	o.product = ProductDraft{}
	o.category = CategoryDraft{}
}

// Close dismisses the overlay and destroys both drafts.
func (o *CreateOverlay) Close() {
	o.state = CreateClosed
	o.product = ProductDraft{}
	o.category = CategoryDraft{}
}

// SetKind switches the drafted record type. The other kind's fields
// are discarded; there is no cross-kind merge.
func (o *CreateOverlay) SetKind(kind CreateKind) error {
	if o.state != CreateDrafting {
		return apperrors.Validation("Not drafting")
	}
	if kind == o.kind {
		return nil
	}
	o.kind = kind
	o.product = ProductDraft{}
	o.category = CategoryDraft{}
	return nil
}

// BeginSubmit validates the active draft and suspends the overlay for
// the create call. Re-entry while submitting is rejected.
func (o *CreateOverlay) BeginSubmit() (Submission, error) {
	if o.state == CreateSubmitting {
		return Submission{}, apperrors.Validation("A submission is already in progress")
	}
	if o.state != CreateDrafting {
		return Submission{}, apperrors.Validation("Nothing to submit")
	}

	submission := Submission{Kind: o.kind}
	switch o.kind {
	case KindProduct:
		payload, err := o.product.Validate()
		if err != nil {
			return Submission{}, err
		}
		submission.Product = payload
	case KindCategory:
		payload, err := o.category.Validate()
		if err != nil {
			return Submission{}, err
		}
		submission.Category = payload
	}

	o.state = CreateSubmitting
	o.gen++
	submission.Gen = o.gen
	return submission, nil
}

// FinishSubmit applies the outcome of a create call. Returns true when
// the result was stale and dropped. On success the overlay closes; the
// caller must refetch products and categories. On failure the overlay
// returns to drafting with the fields intact so the user can retry.
func (o *CreateOverlay) FinishSubmit(s Submission, callErr error) (stale bool) {
	if o.state != CreateSubmitting || s.Gen != o.gen {
		return true
	}
	if callErr != nil {
		o.state = CreateDrafting
		return false
	}
	o.Close()
	return false
}
