package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestPadRightPadsToCellWidth(t *testing.T) {
	padded := padRight("Thé", 8)
	assert.Equal(t, 8, lipgloss.Width(padded))
}

func TestPadRightTruncatesWithoutSplittingRunes(t *testing.T) {
	// "Café au lait" is 13 bytes but 12 cells; byte slicing at 5 would
	// cut the é in half.
	padded := padRight("Café au lait", 5)
	assert.Equal(t, 5, lipgloss.Width(padded))
	assert.NotContains(t, padded, "�")
}

func TestPadRightExactWidthUnchanged(t *testing.T) {
	assert.Equal(t, "Mango", padRight("Mango", 5))
}
