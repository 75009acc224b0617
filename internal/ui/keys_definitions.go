package ui

import (
	"sort"
	"sync"
)

// KeyDefinition defines the metadata for a configurable key binding.
// All key bindings are defined here as the single source of truth.
type KeyDefinition struct {
	Defaults []string
	Help     string
	Name     string
}

// AllKeyDefinitions contains all configurable key bindings.
// This is the single source of truth for key names, defaults and help text.
var AllKeyDefinitions = []KeyDefinition{
	// Application keys
	{Name: "force_quit", Defaults: []string{"ctrl+c"}, Help: "force quit"},
	{Name: "help", Defaults: []string{"?"}, Help: "show keyboard shortcuts"},
	{Name: "quit", Defaults: []string{"q"}, Help: "exit application"},
	{Name: "toggle_read_only", Defaults: []string{"r"}, Help: "toggle read-only"},
	{Name: "toggle_required", Defaults: []string{"R"}, Help: "toggle required"},

	// Navigation keys
	{Name: "back", Defaults: []string{"backspace", "b"}, Help: "back to the enclosing list"},
	{Name: "down", Defaults: []string{"down", "j"}, Help: "select next record"},
	{Name: "nested", Defaults: []string{"n"}, Help: "open a nested list"},
	{Name: "up", Defaults: []string{"up", "k"}, Help: "select previous record"},

	// Record keys
	{Name: "discard", Defaults: []string{"esc"}, Help: "discard unsaved changes"},
	{Name: "mark", Defaults: []string{"m"}, Help: "mark record"},
	{Name: "open", Defaults: []string{"enter"}, Help: "edit record / fill the new record"},
	{Name: "remove", Defaults: []string{"x"}, Help: "remove record"},
}

var (
	defaultBindingsCache map[string][]string
	defaultBindingsOnce  sync.Once

	keyDefinitionsMap     map[string]KeyDefinition
	keyDefinitionsMapOnce sync.Once

	validKeyNames     []string
	validKeyNamesOnce sync.Once
)

// GetDefaultKeyBindings returns the default key bindings as a map.
// The result is cached after the first call.
func GetDefaultKeyBindings() map[string][]string {
	defaultBindingsOnce.Do(func() {
		defaultBindingsCache = make(map[string][]string, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			defaultBindingsCache[def.Name] = def.Defaults
		}
	})
	return defaultBindingsCache
}

// GetKeyDefinition returns the definition for a key by name.
// Returns nil if not found.
func GetKeyDefinition(name string) *KeyDefinition {
	keyDefinitionsMapOnce.Do(func() {
		keyDefinitionsMap = make(map[string]KeyDefinition, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			keyDefinitionsMap[def.Name] = def
		}
	})
	if def, ok := keyDefinitionsMap[name]; ok {
		return &def
	}
	return nil
}

// GetValidKeyNames returns all valid key binding names in sorted order.
// The result is cached after the first call.
func GetValidKeyNames() []string {
	validKeyNamesOnce.Do(func() {
		validKeyNames = make([]string, len(AllKeyDefinitions))
		for i, def := range AllKeyDefinitions {
			validKeyNames[i] = def.Name
		}
		sort.Strings(validKeyNames)
	})
	return validKeyNames
}

// IsValidKeyName reports whether name is a known key binding
func IsValidKeyName(name string) bool {
	return GetKeyDefinition(name) != nil
}
