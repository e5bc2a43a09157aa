package session

import (
	"storefront/clients"
	apperrors "storefront/common/errors"
	"storefront/models"
)

// DetailState enumerates the detail overlay's states.
type DetailState int

const (
	DetailClosed DetailState = iota
	DetailViewing
	DetailEditing
	DetailSaving
	DetailConfirmingDelete
	DetailDeleting
)

// Mutation identifies an in-flight gateway call. A finish call whose
// mutation no longer matches the overlay (closed, refocused, or
// superseded) is discarded instead of being applied to stale state.
type Mutation struct {
	Gen       uint64
	ProductID string
}

// DetailOverlay is the product detail / edit modal's state machine.
// Gateway I/O happens outside: Begin* validates and suspends the
// overlay, the caller performs the call, and Finish* applies the
// result back into the cache.
type DetailOverlay struct {
	cache *Cache

	state   DetailState
	focused models.Product
	draft   ProductDraft

	gen     uint64
	pending models.Product // cache entry to install when the save lands
}

func NewDetailOverlay(cache *Cache) *DetailOverlay {
	return &DetailOverlay{cache: cache}
}

func (o *DetailOverlay) State() DetailState      { return o.state }
func (o *DetailOverlay) Focused() models.Product { return o.focused }
func (o *DetailOverlay) Draft() *ProductDraft    { return &o.draft }

// Open focuses a product and shows the overlay. The draft is seeded as
// an editable copy.
func (o *DetailOverlay) Open(p models.Product) {
	o.state = DetailViewing
	o.focused = p
	o.draft = draftFromProduct(p)
}

// Close dismisses the overlay and clears the focused product and
// draft. An in-flight request is not cancelled; its late result will
// fail the mutation match and be dropped.
func (o *DetailOverlay) Close() {
	o.state = DetailClosed
	o.focused = models.Product{}
	o.draft = ProductDraft{}
	o.pending = models.Product{}
}

// BeginEdit switches from viewing to editing.
func (o *DetailOverlay) BeginEdit() error {
	if o.state != DetailViewing {
		return apperrors.Validation("Nothing to edit")
	}
	o.state = DetailEditing
	return nil
}

// CancelEdit discards draft changes and returns to viewing.
func (o *DetailOverlay) CancelEdit() error {
	if o.state != DetailEditing {
		return apperrors.Validation("Not editing")
	}
	o.state = DetailViewing
	o.draft = draftFromProduct(o.focused)
	return nil
}

// BeginSave validates the draft and suspends the overlay for an update
// call. The returned payload is what the caller must send. A second
// save while one is in flight is rejected; the caller is expected to
// disable the control either way.
func (o *DetailOverlay) BeginSave() (Mutation, clients.ProductPayload, error) {
	if o.state == DetailSaving {
		return Mutation{}, clients.ProductPayload{}, apperrors.Validation("A save is already in progress")
	}
	if o.state != DetailEditing {
		return Mutation{}, clients.ProductPayload{}, apperrors.Validation("Not editing")
	}

	payload, err := o.draft.Validate()
	if err != nil {
		return Mutation{}, clients.ProductPayload{}, err
	}

	o.state = DetailSaving
	o.gen++
	o.pending = applyPayload(o.focused, payload)
	return Mutation{Gen: o.gen, ProductID: o.focused.ID}, payload, nil
}

// FinishSave applies the outcome of an update call. Returns true when
// the result was stale and dropped. On success the cache entry is
// replaced wholesale and the overlay closes; on failure the overlay
// returns to editing so the user can retry or cancel.
func (o *DetailOverlay) FinishSave(m Mutation, callErr error) (stale bool) {
	if o.state != DetailSaving || m.Gen != o.gen || m.ProductID != o.focused.ID {
		return true
	}
	if callErr != nil {
		o.state = DetailEditing
		return false
	}

	o.cache.ReplaceOne(m.ProductID, o.pending)
	o.Close()
	return false
}

// RequestDelete opens the confirmation gate.
func (o *DetailOverlay) RequestDelete() error {
	if o.state != DetailViewing {
		return apperrors.Validation("Nothing to delete")
	}
	o.state = DetailConfirmingDelete
	return nil
}

// CancelDelete dismisses the confirmation gate.
func (o *DetailOverlay) CancelDelete() error {
	if o.state != DetailConfirmingDelete {
		return apperrors.Validation("No delete pending")
	}
	o.state = DetailViewing
	return nil
}

// BeginDelete suspends the overlay for a delete call. Requires the
// confirmation gate to have been passed.
func (o *DetailOverlay) BeginDelete() (Mutation, error) {
	if o.state != DetailConfirmingDelete {
		return Mutation{}, apperrors.Validation("Delete requires confirmation")
	}
	o.state = DetailDeleting
	o.gen++
	return Mutation{Gen: o.gen, ProductID: o.focused.ID}, nil
}

// FinishDelete applies the outcome of a delete call. On success the
// entry leaves the cache and the overlay closes; on failure the
// overlay returns to viewing and the rest of the session is untouched.
func (o *DetailOverlay) FinishDelete(m Mutation, callErr error) (stale bool) {
	if o.state != DetailDeleting || m.Gen != o.gen || m.ProductID != o.focused.ID {
		return true
	}
	if callErr != nil {
		o.state = DetailViewing
		return false
	}

	o.cache.RemoveOne(m.ProductID)
	o.Close()
	return false
}
