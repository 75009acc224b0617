package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/theme"
)

// KeyBindingValue supports "a" or ["up", "k"] in JSON
type KeyBindingValue []string

// UnmarshalJSON implements custom unmarshaling for KeyBindingValue
func (kv *KeyBindingValue) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*kv = arr
		return nil
	}

	// Fall back to single string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str != "" {
		*kv = []string{str}
	}
	return nil
}

// MarshalJSON implements custom marshaling for KeyBindingValue
func (kv KeyBindingValue) MarshalJSON() ([]byte, error) {
	if len(kv) == 1 {
		return json.Marshal(kv[0])
	}
	return json.Marshal([]string(kv))
}

// KeyBindingsConfig holds custom key binding overrides as a map.
// Keys are binding names (e.g., "add", "remove"), values are the key sequences.
type KeyBindingsConfig map[string]KeyBindingValue

// Validate checks for configuration errors in key bindings.
// The validNames parameter should come from ui.GetValidKeyNames().
func (k KeyBindingsConfig) Validate(validNames []string) error {
	if k == nil {
		return nil
	}

	validSet := make(map[string]bool, len(validNames))
	for _, name := range validNames {
		validSet[name] = true
	}

	// Track all keys to detect duplicates
	keyToAction := make(map[string]string)

	for name, keys := range k {
		if !validSet[name] {
			return fmt.Errorf("unknown key binding '%s'", name)
		}
		for _, key := range keys {
			if key == "" {
				return fmt.Errorf("key binding for '%s' contains empty value", name)
			}
			if existing, found := keyToAction[key]; found {
				return fmt.Errorf("key '%s' is assigned to both '%s' and '%s'", key, existing, name)
			}
			keyToAction[key] = name
		}
	}

	return nil
}

// Defaults applied when a setting is absent
const (
	DefaultErrorClearDelay = 5
	DefaultLabelWidth      = 18
	DefaultMaxLogFiles     = 1000
	DefaultTheme           = "charm"
)

// Themes maps settings theme names to huh themes
var Themes = map[string]func() *huh.Theme{
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// Settings represents the structure of ~/.dynform/settings.json
type Settings struct {
	ConfirmRemove   *bool             `json:"confirm_remove,omitempty"`
	DateLayout      string            `json:"date_layout,omitempty"`
	Debug           *bool             `json:"debug,omitempty"`
	ErrorClearDelay *int              `json:"error_clear_delay,omitempty"`
	Keys            KeyBindingsConfig `json:"keys,omitempty"`
	LabelWidth      *int              `json:"label_width,omitempty"`
	Layout          string            `json:"layout,omitempty"`
	MaxLogFiles     *int              `json:"max_log_files,omitempty"`
	RequiredMarker  string            `json:"required_marker,omitempty"`
	Tags            StringArray       `json:"tags,omitempty"`
	Theme           string            `json:"theme,omitempty"`
	TimeLayout      string            `json:"time_layout,omitempty"`
}

// StringArray supports both JSON arrays and comma-separated strings
type StringArray []string

// UnmarshalJSON implements custom unmarshaling for StringArray
func (sa *StringArray) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = arr
		return nil
	}

	// Fall back to comma-separated string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = parseCommaSeparated(str)
	return nil
}

// parseCommaSeparated splits comma-separated string and trims whitespace
func parseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Validate checks values that would otherwise fail late, at render time
func (s *Settings) Validate(validKeyNames []string) error {
	if s.Layout != "" && s.Layout != "vertical" && s.Layout != "horizontal" {
		return fmt.Errorf("layout must be 'vertical' or 'horizontal', got '%s'", s.Layout)
	}
	if s.Theme != "" {
		if _, ok := Themes[s.Theme]; !ok {
			return fmt.Errorf("unknown theme '%s'", s.Theme)
		}
	}
	if err := validateLayout("date_layout", s.DateLayout); err != nil {
		return err
	}
	if err := validateLayout("time_layout", s.TimeLayout); err != nil {
		return err
	}
	if s.LabelWidth != nil && *s.LabelWidth < 0 {
		return fmt.Errorf("label_width must not be negative")
	}
	if s.MaxLogFiles != nil && *s.MaxLogFiles < 0 {
		return fmt.Errorf("max_log_files must not be negative")
	}
	if err := s.Keys.Validate(validKeyNames); err != nil {
		return fmt.Errorf("invalid keys: %w", err)
	}
	return nil
}

// validateLayout checks that a time layout formats a known instant into
// text it can parse back
func validateLayout(name, layout string) error {
	if layout == "" {
		return nil
	}
	ref := time.Date(2023, 11, 24, 13, 45, 0, 0, time.UTC)
	if _, err := time.Parse(layout, ref.Format(layout)); err != nil || ref.Format(layout) == layout {
		return fmt.Errorf("%s '%s' is not a Go time layout", name, layout)
	}
	return nil
}

// Resources returns the default presentation resources with these settings applied
func (s *Settings) Resources() *theme.Resources {
	r := theme.DefaultResources()
	if s.DateLayout != "" {
		r.DateLayout = s.DateLayout
	}
	if s.TimeLayout != "" {
		r.TimeLayout = s.TimeLayout
	}
	if s.Layout != "" {
		r.Layout = theme.ParseLayout(s.Layout)
	}
	if s.LabelWidth != nil {
		r.LabelWidth = *s.LabelWidth
	}
	if s.RequiredMarker != "" {
		r.RequiredMarker = s.RequiredMarker
	}
	if newTheme, ok := Themes[s.Theme]; ok {
		r.FieldTheme = newTheme()
	}
	return r
}

// LoadSettings loads settings from $DYNFORM_HOME/settings.json (or ~/.dynform/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $DYNFORM_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
