package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/clients"
	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/session"
)

// fakeGateway records calls and serves canned data, so Update logic can
// be exercised without a server.
type fakeGateway struct {
	products   []models.Product
	categories []models.Category
	err        error

	listCalls   int
	byCategory  []string
	updateCalls int
	deleteCalls int
}

func (f *fakeGateway) ListProducts(context.Context) ([]models.Product, error) {
	f.listCalls++
	return f.products, f.err
}

func (f *fakeGateway) ProductsByCategory(_ context.Context, title string) ([]models.Product, error) {
	f.byCategory = append(f.byCategory, title)
	out := []models.Product{}
	for _, p := range f.products {
		if p.Category.String() == title {
			out = append(out, p)
		}
	}
	return out, f.err
}

func (f *fakeGateway) ListCategories(context.Context) ([]models.Category, error) {
	return f.categories, f.err
}

func (f *fakeGateway) CreateProduct(context.Context, clients.ProductPayload) error { return f.err }
func (f *fakeGateway) CreateCategory(context.Context, clients.CategoryPayload) error {
	return f.err
}

func (f *fakeGateway) UpdateProduct(context.Context, string, clients.ProductPayload) error {
	f.updateCalls++
	return f.err
}

func (f *fakeGateway) DeleteProduct(context.Context, string) error {
	f.deleteCalls++
	return f.err
}

func testFixtures() ([]models.Product, []models.Category) {
	products := []models.Product{
		{ID: "p1", Name: "Apple", Category: "Fruits", Price: 1.2},
		{ID: "p2", Name: "Carrot", Category: "Vegetables", Price: 0.4},
		{ID: "p3", Name: "Mango", Category: "Fruits", Price: 2.1},
	}
	categories := []models.Category{
		{ID: "c1", Title: "Fruits"},
		{ID: "c2", Title: "Vegetables"},
	}
	return products, categories
}

func newTestModel(t *testing.T) (Model, *fakeGateway) {
	t.Helper()
	products, categories := testFixtures()
	gateway := &fakeGateway{products: products, categories: categories}
	return NewModel(gateway, session.New(2)), gateway
}

// loaded delivers the initial fetch results, as Init's commands would.
func loaded(t *testing.T, m Model, gateway *fakeGateway) Model {
	t.Helper()
	next, _ := m.Update(productsLoadedMsg{category: models.AllProducts, products: gateway.products})
	m = next.(Model)
	next, _ = m.Update(categoriesLoadedMsg{categories: gateway.categories})
	return next.(Model)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInitialLoadPopulatesCache(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	assert.False(t, m.loading)
	assert.Len(t, m.session.Cache.Products(), 3)
	// Sentinel plus the two real categories.
	assert.Len(t, m.session.Cache.Categories(), 3)
}

func TestStaleProductsLoadDiscarded(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	// Move to the Fruits filter; a late result for the old filter must
	// not overwrite the cache.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	require.Equal(t, "Fruits", m.session.View.Category())

	next, _ = m.Update(productsLoadedMsg{
		category: models.AllProducts,
		products: []models.Product{{ID: "zz", Name: "Stale"}},
	})
	m = next.(Model)
	assert.Equal(t, "Apple", m.session.Cache.Products()[0].Name)
}

func TestFetchErrorDegradesToEmptyCatalog(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	next, _ := m.Update(productsLoadedMsg{
		category: models.AllProducts,
		err:      apperrors.Network(assert.AnError),
	})
	m = next.(Model)

	assert.Empty(t, m.session.Cache.Products())
	assert.True(t, m.isError)
	assert.Equal(t, "No response from server. Please check your connection.", m.notice)
}

func TestCategoryCycleResetsPageAndRefetches(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)
	m.session.View.SetPage(2)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	require.NotNil(t, cmd)

	assert.Equal(t, "Fruits", m.session.View.Category())
	assert.Equal(t, 1, m.session.View.Page())
	assert.Equal(t, 0, m.cursor)

	cmd() // run the fetch command
	assert.Equal(t, []string{"Fruits"}, gateway.byCategory)
}

func TestEnterOpensDetailForSelection(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	next, _ := m.Update(keyPress('j'))
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	assert.Equal(t, session.DetailViewing, m.session.Detail.State())
	assert.Equal(t, "Carrot", m.session.Detail.Focused().Name)
}

func TestSaveFailureShowsServerMessage(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	overlay := m.session.Detail
	overlay.Open(gateway.products[0])
	require.NoError(t, overlay.BeginEdit())
	mutation, _, err := overlay.BeginSave()
	require.NoError(t, err)

	next, _ := m.Update(saveResultMsg{
		mutation: mutation,
		err:      apperrors.Server("name already exists"),
	})
	m = next.(Model)

	assert.Equal(t, session.DetailEditing, overlay.State())
	assert.True(t, m.isError)
	assert.Equal(t, "name already exists", m.notice)
}

func TestLateSaveResultAfterCloseIgnored(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	overlay := m.session.Detail
	overlay.Open(gateway.products[0])
	require.NoError(t, overlay.BeginEdit())
	mutation, _, err := overlay.BeginSave()
	require.NoError(t, err)
	overlay.Close()

	next, _ := m.Update(saveResultMsg{mutation: mutation})
	m = next.(Model)

	assert.Empty(t, m.notice)
	assert.Equal(t, "Apple", m.session.Cache.Products()[0].Name)
}

func TestDeleteSuccessClampsCursor(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	// Select the last visible product, then delete it.
	next, _ := m.Update(keyPress('j'))
	m = next.(Model)

	overlay := m.session.Detail
	overlay.Open(gateway.products[1])
	require.NoError(t, overlay.RequestDelete())
	mutation, err := overlay.BeginDelete()
	require.NoError(t, err)

	next, _ = m.Update(deleteResultMsg{mutation: mutation})
	m = next.(Model)

	assert.Len(t, m.session.Cache.Products(), 2)
	assert.Less(t, m.cursor, 2)
	assert.Equal(t, "Product deleted successfully", m.notice)
}

func TestCreateSuccessClosesAndRefetches(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	overlay := m.session.Create
	overlay.Open()
	*overlay.Product() = session.ProductDraft{
		Name: "Pear", Brand: "Orchard Co", Price: "1.35", Quantity: "15", CategoryTitle: "Fruits",
	}
	submission, err := overlay.BeginSubmit()
	require.NoError(t, err)

	next, cmd := m.Update(submitResultMsg{submission: submission})
	m = next.(Model)
	require.NotNil(t, cmd)

	assert.Equal(t, session.CreateClosed, overlay.State())
	assert.True(t, m.loading)
	assert.Equal(t, "Created successfully", m.notice)
}

func TestKindSwitchFocusesTitleField(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	next, _ := m.Update(keyPress('n'))
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = next.(Model)
	require.Equal(t, session.KindCategory, m.session.Create.Kind())

	// Typing right after the switch must land in the Title field.
	next, _ = m.Update(keyPress('x'))
	m = next.(Model)
	assert.Equal(t, "x", m.create.titleInput.Value())

	// And switching back must land in the product name field.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = next.(Model)
	next, _ = m.Update(keyPress('y'))
	m = next.(Model)
	assert.Equal(t, "y", m.create.productInputs[0].Value())
}

func TestNoticeExpiresOnlyForMatchingID(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = m.showNotice("first")
	m, _ = m.showNotice("second")

	next, _ := m.Update(noticeExpireMsg{id: m.noticeID - 1})
	m = next.(Model)
	assert.Equal(t, "second", m.notice)

	next, _ = m.Update(noticeExpireMsg{id: m.noticeID})
	m = next.(Model)
	assert.Empty(t, m.notice)
}

func TestQuitFromBrowse(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	_, cmd := m.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQWhileEditingTypesInsteadOfQuitting(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	overlay := m.session.Detail
	overlay.Open(gateway.products[0])
	require.NoError(t, overlay.BeginEdit())
	m.detail.seed(overlay.Draft(), m.session.Cache.Categories())

	_, cmd := m.Update(keyPress('q'))
	if cmd != nil {
		assert.NotEqual(t, tea.QuitMsg{}, cmd())
	}
	assert.Equal(t, session.DetailEditing, overlay.State())
}

func TestCtrlCAlwaysQuits(t *testing.T) {
	m, gateway := newTestModel(t)
	m = loaded(t, m, gateway)

	overlay := m.session.Detail
	overlay.Open(gateway.products[0])
	require.NoError(t, overlay.BeginEdit())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
