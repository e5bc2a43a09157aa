package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"storefront/session"
)

func (m Model) View() string {
	slice := m.session.Visible()

	// Keep the paginator in step with the session pager; the session
	// owns the clamping, the widget only draws dots.
	pager := m.pager
	pager.PerPage = m.session.View.PageSize()
	pager.SetTotalPages(max(1, slice.FilteredCount))
	pager.Page = slice.Page - 1

	sections := []string{
		m.renderHeader(),
		m.renderCategoryBar(),
		m.renderProducts(slice),
		pager.View(),
		m.renderStatusBar(slice),
	}
	base := strings.Join(sections, "\n")

	switch {
	case m.session.Create.State() != session.CreateClosed:
		return m.renderModal("Create New", m.create.render(
			m.theme,
			m.session.Create.Kind(),
			m.session.Create.State() == session.CreateSubmitting,
		))
	case m.session.Detail.State() == session.DetailEditing,
		m.session.Detail.State() == session.DetailSaving:
		return m.renderModal("Edit Product", m.detail.render(
			m.theme,
			m.session.Detail.State() == session.DetailSaving,
		))
	case m.session.Detail.State() != session.DetailClosed:
		return m.renderModal("Product", renderDetailView(
			m.theme,
			m.session.Detail.Focused(),
			m.session.Detail.State() == session.DetailConfirmingDelete,
			m.session.Detail.State() == session.DetailDeleting,
		))
	}
	return base
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true).
		Render("City Mart")
	hint := lipgloss.NewStyle().
		Foreground(m.theme.HelpText).
		Render("  tab category · ←/→ page · enter open · n create · r refresh · q quit")
	return title + hint
}

func (m Model) renderCategoryBar() string {
	categories := m.session.Cache.Categories()
	if len(categories) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("loading categories…")
	}

	selected := lipgloss.NewStyle().
		Background(m.theme.SelectedBackground).
		Foreground(m.theme.SelectedForeground).
		Padding(0, 1)
	normal := lipgloss.NewStyle().
		Foreground(m.theme.FaintText).
		Padding(0, 1)

	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.Title == m.session.View.Category() {
			parts = append(parts, selected.Render(c.Title))
		} else {
			parts = append(parts, normal.Render(c.Title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderProducts(slice session.Slice) string {
	if m.loading {
		return lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("\n  loading products…\n")
	}
	if len(slice.Items) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("\n  no products\n")
	}

	name := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	selectedName := lipgloss.NewStyle().
		Background(m.theme.SelectedBackground).
		Foreground(m.theme.SelectedForeground)
	meta := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	price := lipgloss.NewStyle().Foreground(m.theme.PriceColor)

	rows := make([]string, 0, len(slice.Items))
	for i, p := range slice.Items {
		marker := "  "
		style := name
		if i == m.cursor {
			marker = "> "
			style = selectedName
		}
		rows = append(rows, fmt.Sprintf("%s%s  %s  %s",
			marker,
			style.Render(padRight(p.Name, 24)),
			price.Render(fmt.Sprintf("$%8.2f", p.Price)),
			meta.Render(fmt.Sprintf("%-16s %s", p.Brand, p.Category)),
		))
	}
	return "\n" + strings.Join(rows, "\n") + "\n"
}

func (m Model) renderStatusBar(slice session.Slice) string {
	left := fmt.Sprintf("page %d/%d · %d item(s)",
		slice.Page, max(1, slice.TotalPages), slice.FilteredCount)

	style := lipgloss.NewStyle().Foreground(m.theme.HelpText)
	if m.notice == "" {
		return style.Render(left)
	}

	noticeStyle := lipgloss.NewStyle().Foreground(m.theme.AccentColor)
	if m.isError {
		noticeStyle = noticeStyle.Foreground(m.theme.ErrorColor)
	}
	return style.Render(left) + "  " + noticeStyle.Render(m.notice)
}

func (m Model) renderModal(title, body string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderColor).
		Padding(1, 2)

	heading := lipgloss.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true).
		Render(title)

	content := box.Render(heading + "\n\n" + body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// padRight pads or truncates s to the given cell width. Product names
// can carry multi-byte runes, so byte slicing is not safe here.
func padRight(s string, width int) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}
