package config

import (
	"reflect"
	"sort"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings.
// This automatically stays in sync when new fields are added to Settings.
func GetSettingsExample() map[string]any {
	var s Settings
	t := reflect.TypeOf(s)
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// SortedKeys returns the keys of an example map in a stable order
func SortedKeys(example map[string]any) []string {
	keys := make([]string, 0, len(example))
	for k := range example {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "debug" || fieldName == "confirm_remove"
		case reflect.Int:
			switch fieldName {
			case "error_clear_delay":
				return DefaultErrorClearDelay
			case "label_width":
				return DefaultLabelWidth
			case "max_log_files":
				return DefaultMaxLogFiles
			}
			return 10
		}
	}

	if t.Name() == "KeyBindingsConfig" {
		return map[string]any{
			"mark": "ctrl+m",
			"help": []string{"H", "?"},
		}
	}

	switch t.Kind() {
	case reflect.String:
		switch fieldName {
		case "date_layout":
			return "2006-01-02"
		case "layout":
			return "vertical"
		case "required_marker":
			return "*"
		case "theme":
			return DefaultTheme
		case "time_layout":
			return "15:04"
		default:
			return "example"
		}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			if fieldName == "tags" {
				return []string{"family", "work", "friends"}
			}
			return []string{"example1", "example2"}
		}
	}

	return nil
}
