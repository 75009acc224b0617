package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Layout controls where a field's label sits relative to its widget
type Layout int

const (
	LayoutVertical Layout = iota
	LayoutHorizontal
)

func (l Layout) String() string {
	if l == LayoutHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseLayout maps a settings value to a Layout. Unknown values are vertical.
func ParseLayout(s string) Layout {
	if s == "horizontal" {
		return LayoutHorizontal
	}
	return LayoutVertical
}

// Resources is the shared presentation configuration handed to forms at
// construction. Each form owns a pointer; nothing is lazily initialized.
type Resources struct {
	DateLayout     string
	Layout         Layout
	LabelWidth     int
	RequiredMarker string
	TimeLayout     string

	// FieldTheme styles the huh widgets backing every input field
	FieldTheme *huh.Theme

	AddSlotStyle  lipgloss.Style
	EditRowStyle  lipgloss.Style
	ErrorStyle    lipgloss.Style
	HelpStyle     lipgloss.Style
	LabelStyle    lipgloss.Style
	ReadOnlyStyle lipgloss.Style
	RequiredStyle lipgloss.Style
	SavedRowStyle lipgloss.Style
	TitleStyle    lipgloss.Style

	named map[string]lipgloss.Style
}

// DefaultResources returns a fresh Resources with the stock palette
func DefaultResources() *Resources {
	r := &Resources{
		DateLayout:     "2006-01-02",
		Layout:         LayoutVertical,
		LabelWidth:     18,
		RequiredMarker: "*",
		TimeLayout:     "15:04",

		FieldTheme: huh.ThemeCharm(),

		AddSlotStyle: lipgloss.NewStyle().
			Foreground(ColorAddSlot).
			Bold(true),

		EditRowStyle: lipgloss.NewStyle().
			Foreground(ColorEditing),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		HelpStyle: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0),

		LabelStyle: lipgloss.NewStyle().
			Foreground(ColorSubtle),

		ReadOnlyStyle: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Faint(true),

		RequiredStyle: lipgloss.NewStyle().
			Foreground(ColorRequired).
			Bold(true),

		SavedRowStyle: lipgloss.NewStyle().
			Foreground(ColorSaved),

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0),
	}

	r.named = map[string]lipgloss.Style{
		"bold":      lipgloss.NewStyle().Bold(true),
		"emphasis":  lipgloss.NewStyle().Foreground(ColorHighlight),
		"error":     r.ErrorStyle,
		"muted":     lipgloss.NewStyle().Foreground(ColorMuted),
		"secondary": lipgloss.NewStyle().Foreground(ColorSecondary),
	}

	return r
}

// Register adds or replaces a named style
func (r *Resources) Register(name string, style lipgloss.Style) {
	if r.named == nil {
		r.named = make(map[string]lipgloss.Style)
	}
	r.named[name] = style
}

// Style looks up a named style
func (r *Resources) Style(name string) (lipgloss.Style, bool) {
	s, ok := r.named[name]
	return s, ok
}

// Compose layers named styles over base. Later names win; unknown names are skipped.
func (r *Resources) Compose(base lipgloss.Style, names []string) lipgloss.Style {
	result := lipgloss.NewStyle()
	for i := len(names) - 1; i >= 0; i-- {
		if s, ok := r.named[names[i]]; ok {
			result = result.Inherit(s)
		}
	}
	return result.Inherit(base)
}
