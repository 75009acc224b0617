package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/renato0307/dynform/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Keys SettingsKeysCmd `cmd:"keys" help:"Manage keyboard shortcuts"`
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()
	current, err := currentSettings(cli.Container.Settings)
	if err != nil {
		return err
	}

	if s.Format == "json" {
		output := map[string]any{
			"current":       current,
			"format":        example,
			"settings_file": settingsFile,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Setting\tExample\tCurrent")
	fmt.Fprintln(w, "───────\t───────\t───────")
	for _, key := range config.SortedKeys(example) {
		value, ok := current[key]
		if !ok {
			value = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, displayValue(example[key]), displayValue(value))
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Create or edit this file to configure dynform.")
	fmt.Println("All settings are optional and have sensible defaults.")

	return nil
}

// currentSettings returns the settings as they would be written to disk
func currentSettings(settings *config.Settings) (map[string]any, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	current := make(map[string]any)
	if err := json.Unmarshal(data, &current); err != nil {
		return nil, fmt.Errorf("failed to read settings back: %w", err)
	}
	return current, nil
}

// displayValue renders strings bare and everything else as JSON
func displayValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
