// Package ui renders the City Mart storefront as a bubbletea program.
// All session state mutations happen inside Update; gateway calls run
// as commands and deliver results back as messages tagged with the
// originating mutation, so responses that outlive their overlay are
// dropped instead of applied to stale state.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"storefront/clients"
	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/session"
)

// Gateway is the remote catalog surface the UI depends on.
// *clients.CatalogClient satisfies it.
type Gateway interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ProductsByCategory(ctx context.Context, title string) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, payload clients.ProductPayload) error
	CreateCategory(ctx context.Context, payload clients.CategoryPayload) error
	UpdateProduct(ctx context.Context, id string, payload clients.ProductPayload) error
	DeleteProduct(ctx context.Context, id string) error
}

const (
	requestTimeout = 15 * time.Second
	noticeLifetime = 4 * time.Second
)

type productsLoadedMsg struct {
	category string // filter the fetch was issued for
	products []models.Product
	err      error
}

type categoriesLoadedMsg struct {
	categories []models.Category
	err        error
}

type saveResultMsg struct {
	mutation session.Mutation
	err      error
}

type deleteResultMsg struct {
	mutation session.Mutation
	err      error
}

type submitResultMsg struct {
	submission session.Submission
	err        error
}

type noticeExpireMsg struct {
	id int
}

// Model is the top-level bubbletea model.
type Model struct {
	gateway Gateway
	session *session.Session

	keys  keyMap
	theme Theme
	pager paginator.Model

	detail detailForm
	create createForm

	cursor   int // selection within the visible slice
	catIndex int // selection within the category bar

	notice   string
	noticeID int
	isError  bool
	loading  bool

	width  int
	height int
}

func NewModel(gateway Gateway, sess *session.Session) Model {
	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.ActiveDot = "●"
	pager.InactiveDot = "○"

	return Model{
		gateway: gateway,
		session: sess,
		keys:    defaultKeyMap(),
		theme:   DefaultTheme,
		pager:   pager,
		detail:  newDetailForm(),
		create:  newCreateForm(),
		loading: true,
	}
}

// Init starts the two independent catalog fetches. They race; neither
// render path assumes the other has finished.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchProducts(m.session.View.Category()),
		m.fetchCategories(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case productsLoadedMsg:
		return m.applyProductsLoaded(msg)

	case categoriesLoadedMsg:
		return m.applyCategoriesLoaded(msg)

	case saveResultMsg:
		stale := m.session.Detail.FinishSave(msg.mutation, msg.err)
		if stale {
			return m, nil
		}
		if msg.err != nil {
			return m.showError(apperrors.UserMessage(msg.err))
		}
		return m.showNotice("Product updated successfully")

	case deleteResultMsg:
		stale := m.session.Detail.FinishDelete(msg.mutation, msg.err)
		if stale {
			return m, nil
		}
		if msg.err != nil {
			return m.showError(apperrors.UserMessage(msg.err))
		}
		m.clampCursor()
		return m.showNotice("Product deleted successfully")

	case submitResultMsg:
		stale := m.session.Create.FinishSubmit(msg.submission, msg.err)
		if stale {
			return m, nil
		}
		if msg.err != nil {
			return m.showError(apperrors.UserMessage(msg.err))
		}
		// Server owns generated fields: refetch rather than insert.
		next, cmd := m.showNotice("Created successfully")
		next.loading = true
		return next, tea.Batch(cmd,
			next.fetchProducts(next.session.View.Category()),
			next.fetchCategories(),
		)

	case noticeExpireMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Quit) && m.typingInactive() {
		return m, tea.Quit
	}

	switch {
	case m.session.Create.State() != session.CreateClosed:
		return m.handleCreateKey(msg)
	case m.session.Detail.State() != session.DetailClosed:
		return m.handleDetailKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// typingInactive reports whether no text field currently owns the
// keyboard, i.e. "q" should quit instead of typing a letter.
func (m Model) typingInactive() bool {
	return m.session.Create.State() == session.CreateClosed &&
		m.session.Detail.State() != session.DetailEditing
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	slice := m.session.Visible()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(slice.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.NextPage):
		m.session.View.SetPage(slice.Page + 1)
		m.cursor = 0
	case key.Matches(msg, m.keys.PrevPage):
		m.session.View.SetPage(slice.Page - 1)
		m.cursor = 0
	case key.Matches(msg, m.keys.NextCategory):
		return m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		return m.cycleCategory(-1)
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(slice.Items) {
			m.session.Detail.Open(slice.Items[m.cursor])
		}
	case key.Matches(msg, m.keys.New):
		m.session.Create.Open()
		return m, m.create.reset(m.session.Create.Kind(), m.session.Cache.Categories())
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, tea.Batch(
			m.fetchProducts(m.session.View.Category()),
			m.fetchCategories(),
		)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	overlay := m.session.Detail

	switch overlay.State() {
	case session.DetailViewing:
		switch {
		case key.Matches(msg, m.keys.Back):
			overlay.Close()
		case key.Matches(msg, m.keys.Edit):
			if err := overlay.BeginEdit(); err == nil {
				m.detail.seed(overlay.Draft(), m.session.Cache.Categories())
			}
		case key.Matches(msg, m.keys.Delete):
			_ = overlay.RequestDelete()
		}
		return m, nil

	case session.DetailConfirmingDelete:
		switch msg.String() {
		case "y", "Y":
			mutation, err := overlay.BeginDelete()
			if err != nil {
				return m.showError(apperrors.UserMessage(err))
			}
			return m, m.deleteProduct(mutation)
		case "n", "N", "esc":
			_ = overlay.CancelDelete()
		}
		return m, nil

	case session.DetailEditing:
		switch {
		case key.Matches(msg, m.keys.Back):
			_ = overlay.CancelEdit()
			return m, nil
		case key.Matches(msg, m.keys.Save):
			m.detail.syncDraft(overlay.Draft())
			mutation, payload, err := overlay.BeginSave()
			if err != nil {
				return m.showError(apperrors.UserMessage(err))
			}
			return m, m.updateProduct(mutation, payload)
		case key.Matches(msg, m.keys.NextField) && msg.String() == "tab":
			return m, m.detail.nextField()
		case key.Matches(msg, m.keys.PrevField) && msg.String() == "shift+tab":
			return m, m.detail.prevField()
		}
		return m, m.detail.update(msg)

	case session.DetailSaving, session.DetailDeleting:
		// Controls are disabled while a request is in flight.
		return m, nil
	}
	return m, nil
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	overlay := m.session.Create

	if overlay.State() == session.CreateSubmitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		overlay.Close()
		return m, nil
	case msg.String() == "ctrl+t":
		kind := session.KindProduct
		if overlay.Kind() == session.KindProduct {
			kind = session.KindCategory
		}
		if err := overlay.SetKind(kind); err == nil {
			return m, m.create.reset(kind, m.session.Cache.Categories())
		}
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.create.syncOverlay(overlay)
		submission, err := overlay.BeginSubmit()
		if err != nil {
			return m.showError(apperrors.UserMessage(err))
		}
		return m, m.submitCreate(submission)
	case msg.String() == "tab":
		return m, m.create.nextField(overlay.Kind())
	case msg.String() == "shift+tab":
		return m, m.create.prevField(overlay.Kind())
	}
	return m, m.create.update(overlay.Kind(), msg)
}

func (m Model) routeToForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Non-key messages (cursor blink ticks) still need to reach the
	// active form.
	switch {
	case m.session.Create.State() == session.CreateDrafting:
		return m, m.create.update(m.session.Create.Kind(), msg)
	case m.session.Detail.State() == session.DetailEditing:
		return m, m.detail.update(msg)
	}
	return m, nil
}

func (m Model) cycleCategory(direction int) (tea.Model, tea.Cmd) {
	categories := m.session.Cache.Categories()
	if len(categories) == 0 {
		return m, nil
	}
	m.catIndex = (m.catIndex + direction + len(categories)) % len(categories)
	title := categories[m.catIndex].Title

	// Filter change refetches and resets the pager to page one.
	m.session.View.SetCategory(title)
	m.cursor = 0
	m.loading = true
	return m, m.fetchProducts(title)
}

func (m Model) applyProductsLoaded(msg productsLoadedMsg) (tea.Model, tea.Cmd) {
	// A slow fetch for a filter the user has already left is stale.
	if msg.category != m.session.View.Category() {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		// Degrade to an empty catalog rather than blocking the view.
		m.session.Cache.Load(nil)
		return m.showError(apperrors.UserMessage(msg.err))
	}
	m.session.Cache.Load(msg.products)
	m.clampCursor()
	return m, nil
}

func (m Model) applyCategoriesLoaded(msg categoriesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.session.Cache.LoadCategories(nil)
		return m.showError(apperrors.UserMessage(msg.err))
	}
	m.session.Cache.LoadCategories(msg.categories)

	// Re-point the category cursor at the current selection; the list
	// may have been reordered or extended by the refetch.
	m.catIndex = 0
	for i, c := range m.session.Cache.Categories() {
		if c.Title == m.session.View.Category() {
			m.catIndex = i
			break
		}
	}
	return m, nil
}

func (m *Model) clampCursor() {
	slice := m.session.Visible()
	if m.cursor >= len(slice.Items) {
		m.cursor = max(0, len(slice.Items)-1)
	}
}

func (m Model) showNotice(text string) (Model, tea.Cmd) {
	m.notice = text
	m.isError = false
	m.noticeID++
	id := m.noticeID
	return m, tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return noticeExpireMsg{id: id}
	})
}

func (m Model) showError(text string) (Model, tea.Cmd) {
	next, cmd := m.showNotice(text)
	next.isError = true
	return next, cmd
}

// --- gateway commands ---

func (m Model) fetchProducts(category string) tea.Cmd {
	gateway := m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			products []models.Product
			err      error
		)
		if category == models.AllProducts {
			products, err = gateway.ListProducts(ctx)
		} else {
			products, err = gateway.ProductsByCategory(ctx, category)
		}
		if err != nil {
			zap.L().Error("Failed to fetch products", zap.String("category", category), zap.Error(err))
		}
		return productsLoadedMsg{category: category, products: products, err: err}
	}
}

func (m Model) fetchCategories() tea.Cmd {
	gateway := m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		categories, err := gateway.ListCategories(ctx)
		if err != nil {
			zap.L().Error("Failed to fetch categories", zap.Error(err))
		}
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func (m Model) updateProduct(mutation session.Mutation, payload clients.ProductPayload) tea.Cmd {
	gateway := m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := gateway.UpdateProduct(ctx, mutation.ProductID, payload)
		if err != nil {
			zap.L().Error("Product update failed", zap.String("id", mutation.ProductID), zap.Error(err))
		}
		return saveResultMsg{mutation: mutation, err: err}
	}
}

func (m Model) deleteProduct(mutation session.Mutation) tea.Cmd {
	gateway := m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := gateway.DeleteProduct(ctx, mutation.ProductID)
		if err != nil {
			zap.L().Error("Product delete failed", zap.String("id", mutation.ProductID), zap.Error(err))
		}
		return deleteResultMsg{mutation: mutation, err: err}
	}
}

func (m Model) submitCreate(submission session.Submission) tea.Cmd {
	gateway := m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var err error
		if submission.Kind == session.KindCategory {
			err = gateway.CreateCategory(ctx, submission.Category)
		} else {
			err = gateway.CreateProduct(ctx, submission.Product)
		}
		if err != nil {
			zap.L().Error("Create failed", zap.Error(err))
		}
		return submitResultMsg{submission: submission, err: err}
	}
}
