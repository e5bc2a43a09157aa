package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storefront/models"
	"storefront/session"
)

const (
	createName = iota
	createBrand
	createPrice
	createQuantity
	createCategory
	createDescription
	createFieldCount
)

const (
	createTitle = iota
	createCategoryDescription
	createCategoryFieldCount
)

// createForm is the create modal: a product/category kind switch and
// the fields for the active kind. Switching kinds resets the form,
// matching the overlay's discard-on-switch rule.
type createForm struct {
	productInputs [4]textinput.Model // name, brand, price, quantity
	titleInput    textinput.Model
	description   textarea.Model
	categories    []models.Category
	catIndex      int
	focus         int
}

func newCreateForm() createForm {
	form := createForm{}
	for i, placeholder := range [...]string{"Product Name", "Brand", "Price (e.g. 99.99)", "Quantity (e.g. 10)"} {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 128
		input.Width = 32
		form.productInputs[i] = input
	}
	form.titleInput = textinput.New()
	form.titleInput.Placeholder = "Category Title"
	form.titleInput.CharLimit = 128
	form.titleInput.Width = 32

	form.description = textarea.New()
	form.description.SetWidth(40)
	form.description.SetHeight(3)
	return form
}

func (f *createForm) reset(kind session.CreateKind, categories []models.Category) tea.Cmd {
	for i := range f.productInputs {
		f.productInputs[i].SetValue("")
	}
	f.titleInput.SetValue("")
	f.description.SetValue("")
	f.categories = withoutSentinel(categories)
	f.catIndex = 0
	return f.focusField(kind, 0)
}

func (f *createForm) fieldCount(kind session.CreateKind) int {
	if kind == session.KindCategory {
		return createCategoryFieldCount
	}
	return createFieldCount
}

func (f *createForm) setFocus(field int) tea.Cmd {
	f.focus = field
	cmds := []tea.Cmd{}
	for i := range f.productInputs {
		if i == field {
			cmds = append(cmds, f.productInputs[i].Focus())
		} else {
			f.productInputs[i].Blur()
		}
	}
	f.titleInput.Blur()
	f.description.Blur()
	return tea.Batch(cmds...)
}

func (f *createForm) setCategoryFocus(field int) tea.Cmd {
	f.focus = field
	for i := range f.productInputs {
		f.productInputs[i].Blur()
	}
	var cmd tea.Cmd
	if field == createTitle {
		cmd = f.titleInput.Focus()
		f.description.Blur()
	} else {
		f.titleInput.Blur()
		cmd = f.description.Focus()
	}
	return cmd
}

func (f *createForm) focusField(kind session.CreateKind, field int) tea.Cmd {
	if kind == session.KindCategory {
		return f.setCategoryFocus(field)
	}
	if field == createDescription {
		for i := range f.productInputs {
			f.productInputs[i].Blur()
		}
		f.focus = field
		return f.description.Focus()
	}
	f.description.Blur()
	return f.setFocus(field)
}

func (f *createForm) nextField(kind session.CreateKind) tea.Cmd {
	return f.focusField(kind, (f.focus+1)%f.fieldCount(kind))
}

func (f *createForm) prevField(kind session.CreateKind) tea.Cmd {
	n := f.fieldCount(kind)
	return f.focusField(kind, (f.focus+n-1)%n)
}

func (f *createForm) update(kind session.CreateKind, msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && kind == session.KindProduct && f.focus == createCategory {
		switch key.String() {
		case "left":
			if len(f.categories) > 0 {
				f.catIndex = (f.catIndex + len(f.categories) - 1) % len(f.categories)
			}
			return nil
		case "right", " ":
			if len(f.categories) > 0 {
				f.catIndex = (f.catIndex + 1) % len(f.categories)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	if kind == session.KindCategory {
		switch f.focus {
		case createTitle:
			f.titleInput, cmd = f.titleInput.Update(msg)
		case createCategoryDescription:
			f.description, cmd = f.description.Update(msg)
		}
		return cmd
	}

	switch f.focus {
	case createDescription:
		f.description, cmd = f.description.Update(msg)
	case createName, createBrand, createPrice, createQuantity:
		f.productInputs[f.focus], cmd = f.productInputs[f.focus].Update(msg)
	}
	return cmd
}

// syncOverlay writes the form values into the overlay's active draft.
func (f *createForm) syncOverlay(overlay *session.CreateOverlay) {
	if overlay.Kind() == session.KindCategory {
		draft := overlay.Category()
		draft.Title = f.titleInput.Value()
		draft.Description = f.description.Value()
		return
	}
	draft := overlay.Product()
	draft.Name = f.productInputs[0].Value()
	draft.Brand = f.productInputs[1].Value()
	draft.Price = f.productInputs[2].Value()
	draft.Quantity = f.productInputs[3].Value()
	draft.Description = f.description.Value()
	if f.catIndex >= 0 && f.catIndex < len(f.categories) {
		draft.CategoryTitle = f.categories[f.catIndex].Title
	} else {
		draft.CategoryTitle = ""
	}
}

func (f *createForm) render(theme Theme, kind session.CreateKind, submitting bool) string {
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(12)
	focused := lipgloss.NewStyle().Foreground(theme.AccentColor).Width(12)
	row := func(field int, name, value string) string {
		style := label
		if f.focus == field {
			style = focused
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(name), value)
	}

	activeTab := lipgloss.NewStyle().
		Background(theme.AccentColor).Foreground(lipgloss.Color("0")).Padding(0, 2)
	tab := lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 2)

	tabs := [2]string{tab.Render("Product"), tab.Render("Category")}
	if kind == session.KindCategory {
		tabs[1] = activeTab.Render("Category")
	} else {
		tabs[0] = activeTab.Render("Product")
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, tabs[0], " ", tabs[1]),
		"",
	}

	if kind == session.KindCategory {
		lines = append(lines,
			row(createTitle, "Title", f.titleInput.View()),
			row(createCategoryDescription, "Description", f.description.View()),
		)
	} else {
		category := "(none)"
		if f.catIndex >= 0 && f.catIndex < len(f.categories) {
			category = "◂ " + f.categories[f.catIndex].Title + " ▸"
		}
		lines = append(lines,
			row(createName, "Name", f.productInputs[0].View()),
			row(createBrand, "Brand", f.productInputs[1].View()),
			row(createPrice, "Price", f.productInputs[2].View()),
			row(createQuantity, "Quantity", f.productInputs[3].View()),
			row(createCategory, "Category", category),
			row(createDescription, "Description", f.description.View()),
		)
	}

	footer := "ctrl+s create · ctrl+t switch kind · esc close"
	if submitting {
		footer = "submitting…"
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.HelpText).Render(footer))

	return strings.Join(lines, "\n")
}
