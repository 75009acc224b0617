package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/renato0307/dynform/internal/config"
	"github.com/renato0307/dynform/internal/logging"
	"github.com/renato0307/dynform/internal/ui"
)

// SettingsKeysCmd manages keyboard shortcuts
type SettingsKeysCmd struct {
	List  SettingsKeysListCmd  `cmd:"list" help:"List all key bindings (defaults and custom)" default:"1"`
	Reset SettingsKeysResetCmd `cmd:"reset" help:"Drop a custom key binding"`
	Set   SettingsKeysSetCmd   `cmd:"set" help:"Set a key binding"`
}

// SettingsKeysListCmd lists all key bindings
type SettingsKeysListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// SettingsKeysResetCmd restores a binding to its default
type SettingsKeysResetCmd struct {
	Key string `arg:"" help:"Key name (e.g., open, help, quit)"`
}

// SettingsKeysSetCmd sets a key binding
type SettingsKeysSetCmd struct {
	Key   string `arg:"" help:"Key name (e.g., open, help, quit)"`
	Value string `arg:"" help:"Key binding (e.g., o, ctrl+s, or comma-separated for multiple: up,k)"`
}

type keyBindingInfo struct {
	Custom  []string `json:"custom,omitempty"`
	Default []string `json:"default"`
	Help    string   `json:"help"`
}

// Run executes the list command
func (s *SettingsKeysListCmd) Run(cli *CLI) error {
	customKeys := cli.Container.Settings.Keys

	bindings := make(map[string]keyBindingInfo)
	for _, name := range ui.GetValidKeyNames() {
		def := ui.GetKeyDefinition(name)
		bindings[name] = keyBindingInfo{
			Custom:  customKeys[name],
			Default: def.Defaults,
			Help:    def.Help,
		}
	}

	if s.Format == "json" {
		data, err := json.MarshalIndent(bindings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Key bindings (settings file: %s)\n\n", config.GetSettingsPath())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Name\tDefault\tCustom\tAction")
	fmt.Fprintln(w, "────\t───────\t──────\t──────")
	for _, name := range ui.GetValidKeyNames() {
		b := bindings[name]
		custom := "-"
		if len(b.Custom) > 0 {
			custom = strings.Join(b.Custom, ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, strings.Join(b.Default, ", "), custom, b.Help)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Use 'dynform settings keys set <name> <value>' to customize.")
	return nil
}

// Run executes the set command
func (s *SettingsKeysSetCmd) Run(cli *CLI) error {
	if !ui.IsValidKeyName(s.Key) {
		return fmt.Errorf("unknown key '%s'. Valid keys: %s",
			s.Key, strings.Join(ui.GetValidKeyNames(), ", "))
	}

	values := parseKeyValues(s.Value)
	if len(values) == 0 {
		return errors.New("value cannot be empty")
	}

	logging.Logger.Debug("Setting key binding", "key", s.Key, "values", values)

	err := updateKeyBindings(func(keys config.KeyBindingsConfig) {
		keys[s.Key] = values
	})
	if err != nil {
		return err
	}

	fmt.Printf("Set '%s' to: %s\n", s.Key, strings.Join(values, ", "))
	return nil
}

// Run executes the reset command
func (s *SettingsKeysResetCmd) Run(cli *CLI) error {
	def := ui.GetKeyDefinition(s.Key)
	if def == nil {
		return fmt.Errorf("unknown key '%s'. Valid keys: %s",
			s.Key, strings.Join(ui.GetValidKeyNames(), ", "))
	}

	logging.Logger.Debug("Resetting key binding", "key", s.Key)

	err := updateKeyBindings(func(keys config.KeyBindingsConfig) {
		delete(keys, s.Key)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Reset '%s' to: %s\n", s.Key, strings.Join(def.Defaults, ", "))
	return nil
}

// updateKeyBindings applies change to the stored bindings, validates and saves them
func updateKeyBindings(change func(config.KeyBindingsConfig)) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.Keys == nil {
		settings.Keys = make(config.KeyBindingsConfig)
	}

	change(settings.Keys)

	if err := settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
		return fmt.Errorf("conflict: %w", err)
	}
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// parseKeyValues parses comma-separated key values
func parseKeyValues(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
