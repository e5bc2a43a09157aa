package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront/common/errors"
)

func validProductDraft() ProductDraft {
	return ProductDraft{
		Name:          "Banana",
		Brand:         "Tropico",
		Price:         "0.8",
		Quantity:      "40",
		CategoryTitle: "Fruits",
	}
}

func TestCreateOpenDefaultsToProduct(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()

	assert.Equal(t, CreateDrafting, overlay.State())
	assert.Equal(t, KindProduct, overlay.Kind())
}

func TestCreateSetKindDiscardsDrafts(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()
	*overlay.Product() = validProductDraft()

	require.NoError(t, overlay.SetKind(KindCategory))
	assert.Equal(t, ProductDraft{}, *overlay.Product())

	overlay.Category().Title = "Dairy"
	require.NoError(t, overlay.SetKind(KindProduct))
	assert.Equal(t, CategoryDraft{}, *overlay.Category())
}

func TestCreateSetKindSameKindKeepsDraft(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()
	*overlay.Product() = validProductDraft()

	require.NoError(t, overlay.SetKind(KindProduct))
	assert.Equal(t, "Banana", overlay.Product().Name)
}

func TestCreateSubmitValidatesBeforeRequest(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()

	draft := validProductDraft()
	draft.Price = "free"
	*overlay.Product() = draft

	_, err := overlay.BeginSubmit()
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Please enter a valid price", apperrors.UserMessage(err))
	// Rejected locally: still drafting, fields intact.
	assert.Equal(t, CreateDrafting, overlay.State())
	assert.Equal(t, "Banana", overlay.Product().Name)
}

func TestCreateSubmitRequiresQuantity(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()

	draft := validProductDraft()
	draft.Quantity = ""
	*overlay.Product() = draft

	_, err := overlay.BeginSubmit()
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Quantity is required", apperrors.UserMessage(err))
	assert.Equal(t, CreateDrafting, overlay.State())
}

func TestCreateSubmitCategoryRequiresTitle(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()
	require.NoError(t, overlay.SetKind(KindCategory))

	_, err := overlay.BeginSubmit()
	assert.True(t, apperrors.IsValidation(err))

	overlay.Category().Title = "Dairy"
	submission, err := overlay.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, KindCategory, submission.Kind)
	assert.Equal(t, "Dairy", submission.Category.Title)
}

func TestCreateSubmitSuccessCloses(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()
	*overlay.Product() = validProductDraft()

	submission, err := overlay.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, CreateSubmitting, overlay.State())
	assert.Equal(t, 0.8, submission.Product.Price)

	stale := overlay.FinishSubmit(submission, nil)
	assert.False(t, stale)
	assert.Equal(t, CreateClosed, overlay.State())
	assert.Equal(t, ProductDraft{}, *overlay.Product())
}

func TestCreateSubmitFailureStaysDrafting(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()
	require.NoError(t, overlay.SetKind(KindCategory))
	overlay.Category().Title = "Fruits"

	submission, err := overlay.BeginSubmit()
	require.NoError(t, err)

	stale := overlay.FinishSubmit(submission, apperrors.Server("Category with this title already exists."))
	assert.False(t, stale)
	assert.Equal(t, CreateDrafting, overlay.State())
	// Fields survive the failure so the user can correct and retry.
	assert.Equal(t, "Fruits", overlay.Category().Title)
}

func TestCreateSubmitReentryRejected(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()
	*overlay.Product() = validProductDraft()

	_, err := overlay.BeginSubmit()
	require.NoError(t, err)

	_, err = overlay.BeginSubmit()
	assert.Error(t, err)
	assert.Equal(t, CreateSubmitting, overlay.State())
}

func TestCreateLateResultDiscardedAfterClose(t *testing.T) {
	overlay := NewCreateOverlay()
	overlay.Open()
	*overlay.Product() = validProductDraft()

	submission, err := overlay.BeginSubmit()
	require.NoError(t, err)

	overlay.Close()

	stale := overlay.FinishSubmit(submission, nil)
	assert.True(t, stale)
	assert.Equal(t, CreateClosed, overlay.State())
}
