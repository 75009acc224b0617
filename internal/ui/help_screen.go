package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/dynform/internal/theme"
)

// HelpScreen displays keyboard shortcuts organized by category
type HelpScreen struct {
	Completed   bool
	content     string
	initialized bool
	keys        *KeyMap
	resources   *theme.Resources
	viewport    viewport.Model
}

// buildHelpContent builds the complete help text content using key bindings
func buildHelpContent(keys *KeyMap, r *theme.Resources) string {
	group := func(title string) string {
		return r.LabelStyle.Bold(true).Render(title) + "\n"
	}
	shortcut := func(b key.Binding) string {
		help := b.Help()
		keyStyle := r.AddSlotStyle.Width(14)
		return keyStyle.Render(help.Key) + help.Desc + "\n"
	}

	var content string

	content += group("Navigation")
	content += shortcut(keys.Navigation.Up)
	content += shortcut(keys.Navigation.Down)
	content += shortcut(keys.Navigation.Nested)
	content += shortcut(keys.Navigation.Back)

	content += "\n" + group("Records")
	content += shortcut(keys.Record.Open)
	content += shortcut(keys.Record.Remove)
	content += shortcut(keys.Record.Discard)
	content += shortcut(keys.Record.Mark)

	content += "\n" + group("Application")
	content += shortcut(keys.Application.ToggleReadOnly)
	content += shortcut(keys.Application.ToggleRequired)
	content += shortcut(keys.Application.Help)
	content += shortcut(keys.Application.Quit)
	content += shortcut(keys.Application.ForceQuit)

	content += "\n" + group("Rows")
	content += r.AddSlotStyle.Render("+ new") + "  the record being added\n"
	content += r.EditRowStyle.Render("editing") + "  changes not saved yet\n"
	content += r.SavedRowStyle.Render("1. ...") + "  saved records\n"

	return content
}

// NewHelpScreen creates a new help screen component
func NewHelpScreen(keys *KeyMap, resources *theme.Resources) *HelpScreen {
	return &HelpScreen{
		content:   buildHelpContent(keys, resources),
		keys:      keys,
		resources: resources,
		viewport:  viewport.New(0, 0),
	}
}

// Init implements tea.Model
func (h *HelpScreen) Init() tea.Cmd {
	h.viewport.KeyMap.Up.SetKeys("up", "k")
	h.viewport.KeyMap.Down.SetKeys("down", "j")
	return nil
}

// Update implements tea.Model
func (h *HelpScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Dialog header: 3 lines, Footer: 2 lines
		viewportHeight := msg.Height - 5
		if viewportHeight < 5 {
			viewportHeight = 5
		}

		h.viewport.Width = msg.Width
		h.viewport.Height = viewportHeight
		h.viewport.SetContent(h.content)
		h.initialized = true
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "esc" || key.Matches(msg, h.keys.Application.Quit, h.keys.Application.Help) {
			h.Completed = true
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View implements tea.Model
func (h *HelpScreen) View() string {
	if !h.initialized {
		return "Loading help..."
	}

	footer := h.resources.HelpStyle.Render("Press esc, q or ? to close • ↑↓/jk/PgUp/PgDn to scroll")
	return h.viewport.View() + "\n" + footer
}
