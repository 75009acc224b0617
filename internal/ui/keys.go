package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/renato0307/dynform/internal/config"
)

// ApplicationKeys defines key bindings for application-level actions
type ApplicationKeys struct {
	ForceQuit      key.Binding
	Help           key.Binding
	Quit           key.Binding
	ToggleReadOnly key.Binding
	ToggleRequired key.Binding
}

// NavigationKeys defines key bindings for moving through lists
type NavigationKeys struct {
	Back   key.Binding
	Down   key.Binding
	Nested key.Binding
	Up     key.Binding
}

// RecordKeys defines key bindings acting on the selected record
type RecordKeys struct {
	Discard key.Binding
	Mark    key.Binding
	Open    key.Binding
	Remove  key.Binding
}

// KeyMap contains all keyboard shortcuts organized by context
type KeyMap struct {
	Application ApplicationKeys
	Navigation  NavigationKeys
	Record      RecordKeys
}

// NewKeyMap creates a new KeyMap with all key bindings initialized.
// Pass nil for customKeys to use default bindings.
func NewKeyMap(customKeys config.KeyBindingsConfig) KeyMap {
	defaults := GetDefaultKeyBindings()
	b := func(name string) key.Binding {
		return buildBinding(name, defaults, customKeys)
	}
	return KeyMap{
		Application: ApplicationKeys{
			ForceQuit:      b("force_quit"),
			Help:           b("help"),
			Quit:           b("quit"),
			ToggleReadOnly: b("toggle_read_only"),
			ToggleRequired: b("toggle_required"),
		},
		Navigation: NavigationKeys{
			Back:   b("back"),
			Down:   b("down"),
			Nested: b("nested"),
			Up:     b("up"),
		},
		Record: RecordKeys{
			Discard: b("discard"),
			Mark:    b("mark"),
			Open:    b("open"),
			Remove:  b("remove"),
		},
	}
}

// buildBinding creates a binding from the key definition, using custom keys if provided.
func buildBinding(name string, defaults map[string][]string, customKeys config.KeyBindingsConfig) key.Binding {
	def := GetKeyDefinition(name)
	if def == nil {
		panic("unknown key definition: " + name)
	}

	keys := defaults[name]
	if custom, ok := customKeys[name]; ok && len(custom) > 0 {
		keys = custom
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), def.Help),
	)
}

// ShortHelp returns a curated list of key bindings for the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Record.Open,
		k.Record.Remove,
		k.Record.Discard,
		k.Navigation.Nested,
		k.Navigation.Back,
		k.Application.Help,
		k.Application.Quit,
	}
}

// FullHelp returns every binding grouped by context
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigation.Up, k.Navigation.Down, k.Navigation.Nested, k.Navigation.Back},
		{k.Record.Open, k.Record.Remove, k.Record.Discard, k.Record.Mark},
		{k.Application.ToggleReadOnly, k.Application.ToggleRequired, k.Application.Help, k.Application.Quit, k.Application.ForceQuit},
	}
}
