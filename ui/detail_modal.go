package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storefront/models"
	"storefront/session"
)

const (
	fieldName = iota
	fieldBrand
	fieldPrice
	fieldQuantity
	fieldCategory
	fieldDescription
	fieldCount
)

// detailForm is the edit half of the detail modal: one text input per
// scalar field, a textarea for the description, and a left/right
// category picker backed by the cached category list.
type detailForm struct {
	inputs      [4]textinput.Model // name, brand, price, quantity
	description textarea.Model
	categories  []models.Category // without the sentinel
	catIndex    int
	focus       int
}

func newDetailForm() detailForm {
	form := detailForm{}
	for i, placeholder := range [...]string{"Name", "Brand", "Price", "Quantity"} {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 128
		input.Width = 32
		form.inputs[i] = input
	}
	form.description = textarea.New()
	form.description.SetWidth(40)
	form.description.SetHeight(3)
	return form
}

// seed fills the form from a draft and the available categories.
func (f *detailForm) seed(draft *session.ProductDraft, categories []models.Category) {
	f.categories = withoutSentinel(categories)
	f.inputs[0].SetValue(draft.Name)
	f.inputs[1].SetValue(draft.Brand)
	f.inputs[2].SetValue(draft.Price)
	f.inputs[3].SetValue(draft.Quantity)
	f.description.SetValue(draft.Description)

	f.catIndex = 0
	for i, c := range f.categories {
		if c.Title == draft.CategoryTitle {
			f.catIndex = i
			break
		}
	}
	f.setFocus(fieldName)
}

// syncDraft writes the form values back into the draft.
func (f *detailForm) syncDraft(draft *session.ProductDraft) {
	draft.Name = f.inputs[0].Value()
	draft.Brand = f.inputs[1].Value()
	draft.Price = f.inputs[2].Value()
	draft.Quantity = f.inputs[3].Value()
	draft.Description = f.description.Value()
	if f.catIndex >= 0 && f.catIndex < len(f.categories) {
		draft.CategoryTitle = f.categories[f.catIndex].Title
	}
}

func (f *detailForm) setFocus(field int) tea.Cmd {
	f.focus = field
	cmds := []tea.Cmd{}
	for i := range f.inputs {
		if i == field {
			cmds = append(cmds, f.inputs[i].Focus())
		} else {
			f.inputs[i].Blur()
		}
	}
	if field == fieldDescription {
		cmds = append(cmds, f.description.Focus())
	} else {
		f.description.Blur()
	}
	return tea.Batch(cmds...)
}

func (f *detailForm) nextField() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

func (f *detailForm) prevField() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

// update routes a message to the focused field. Category selection is
// a picker, not a text field: left/right cycles the cached categories.
func (f *detailForm) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && f.focus == fieldCategory {
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
	switch f.focus {
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldName, fieldBrand, fieldPrice, fieldQuantity:
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return cmd
}

func (f *detailForm) render(theme Theme, saving bool) string {
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(12)
	focused := lipgloss.NewStyle().Foreground(theme.AccentColor).Width(12)

	row := func(field int, name, value string) string {
		style := label
		if f.focus == field {
			style = focused
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(name), value)
	}

	category := "(none)"
	if f.catIndex >= 0 && f.catIndex < len(f.categories) {
		category = "◂ " + f.categories[f.catIndex].Title + " ▸"
	}

	lines := []string{
		row(fieldName, "Name", f.inputs[0].View()),
		row(fieldBrand, "Brand", f.inputs[1].View()),
		row(fieldPrice, "Price", f.inputs[2].View()),
		row(fieldQuantity, "Quantity", f.inputs[3].View()),
		row(fieldCategory, "Category", category),
		row(fieldDescription, "Description", f.description.View()),
	}

	footer := "ctrl+s save · esc cancel · tab next field"
	if saving {
		footer = "saving…"
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.HelpText).Render(footer))

	return strings.Join(lines, "\n")
}

// renderDetailView renders the read-only half of the detail modal.
func renderDetailView(theme Theme, p models.Product, confirming, deleting bool) string {
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)

	lines := []string{
		title.Render(p.Name),
		"",
		faint.Render("Brand:       ") + p.Brand,
		faint.Render("Price:       ") + fmt.Sprintf("$%.2f", p.Price),
		faint.Render("Quantity:    ") + fmt.Sprintf("%d", p.Quantity),
		faint.Render("Category:    ") + p.Category.String(),
		faint.Render("Description: ") + p.Description,
		faint.Render("Image:       ") + p.ImageURL,
	}
	if p.UpdatedAt != "" {
		lines = append(lines, faint.Render("Updated:     ")+p.UpdatedAt)
	}

	footer := "e edit · d delete · esc close"
	switch {
	case confirming:
		footer = lipgloss.NewStyle().Foreground(theme.ErrorColor).
			Render("Delete this product? y confirm · n cancel")
	case deleting:
		footer = "deleting…"
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.HelpText).Render(footer))

	return strings.Join(lines, "\n")
}

func withoutSentinel(categories []models.Category) []models.Category {
	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.Title != models.AllProducts {
			out = append(out, c)
		}
	}
	return out
}
