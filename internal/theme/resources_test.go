package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestParseLayout(t *testing.T) {
	tests := []struct {
		input    string
		expected Layout
	}{
		{"horizontal", LayoutHorizontal},
		{"vertical", LayoutVertical},
		{"", LayoutVertical},
		{"diagonal", LayoutVertical},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLayout(tt.input))
		})
	}
}

func TestDefaultResources_IndependentInstances(t *testing.T) {
	a := DefaultResources()
	b := DefaultResources()

	a.Register("custom", lipgloss.NewStyle().Bold(true))

	_, okA := a.Style("custom")
	_, okB := b.Style("custom")
	assert.True(t, okA)
	assert.False(t, okB, "registering on one instance must not leak into another")
}

func TestCompose_LaterNamesWin(t *testing.T) {
	r := DefaultResources()
	r.Register("red", lipgloss.NewStyle().Foreground(lipgloss.Color("1")))
	r.Register("blue", lipgloss.NewStyle().Foreground(lipgloss.Color("4")))

	s := r.Compose(lipgloss.NewStyle(), []string{"red", "blue", "missing"})

	assert.Equal(t, lipgloss.Color("4"), s.GetForeground())
}

func TestCompose_BaseFillsUnsetProperties(t *testing.T) {
	r := DefaultResources()
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true)

	s := r.Compose(base, []string{"muted"})

	assert.Equal(t, ColorMuted, s.GetForeground())
	assert.True(t, s.GetBold())
}
