package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the storefront TUI. ANSI
// 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	AccentColor lipgloss.Color
	ErrorColor  lipgloss.Color
	PriceColor  lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	AccentColor: lipgloss.Color("114"), // green
	ErrorColor:  lipgloss.Color("196"), // red
	PriceColor:  lipgloss.Color("220"), // amber
}
