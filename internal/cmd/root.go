package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/dynform/internal/config"
	"github.com/renato0307/dynform/internal/logging"
	"github.com/renato0307/dynform/internal/ui"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run      RunCmd      `cmd:"" help:"Edit the demo contacts list (default)" default:"1"`
	Fields   FieldsCmd   `cmd:"fields" help:"List the field kinds a form can bind"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (meta, keys)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// CLI flags > env vars > settings.json > defaults
	if c.settings != nil {
		if c.MaxLogFiles == config.DefaultMaxLogFiles {
			if _, hasEnv := os.LookupEnv(logging.EnvMaxLogFiles); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv(logging.EnvDebug); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	opts := logging.Options{Debug: c.Debug, File: c.DebugFile, MaxFiles: c.MaxLogFiles}
	sink, err := logging.Initialize(opts.WithEnv(os.LookupEnv, config.DefaultMaxLogFiles))
	if err != nil {
		return err
	}
	if sink.Path != "" {
		logging.Logger.Info("Logging initialized", "path", sink.Path, "rotated", sink.Removed)
	}

	// Container is created after logging so its setup is logged
	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// RunCmd starts the TUI on the demo contacts list
type RunCmd struct {
	Dev             bool `help:"Enable development mode (shows version info in the header)"`
	Empty           bool `help:"Start with an empty list instead of the sample contacts"`
	ErrorClearDelay int  `help:"Seconds before error messages auto-clear" default:"5"`
	Print           bool `help:"Print the contacts as JSON on exit"`
	ReadOnly        bool `help:"Open the list read-only"`
	Required        bool `help:"Mark every field required"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings
	if r.ErrorClearDelay == config.DefaultErrorClearDelay && settings.ErrorClearDelay != nil {
		r.ErrorClearDelay = *settings.ErrorClearDelay
	}
	skipConfirm := settings.ConfirmRemove != nil && !*settings.ConfirmRemove

	contacts, err := cli.Container.NewContactsForm(!r.Empty)
	if err != nil {
		return err
	}
	contacts.SetReadOnly(r.ReadOnly)
	contacts.SetRequired(r.Required)

	logging.Logger.Info("Starting dynform TUI",
		"contacts", contacts.Len(),
		"read_only", r.ReadOnly,
		"required", r.Required)

	model := ui.NewModel(contacts, ui.Options{
		DevMode:                r.Dev,
		ErrorClearDelay:        time.Duration(r.ErrorClearDelay) * time.Second,
		Keys:                   settings.Keys,
		Resources:              cli.Container.Resources,
		SkipRemoveConfirmation: skipConfirm,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	logging.Logger.Info("TUI program exited normally", "contacts", contacts.Len())

	if r.Print {
		data, err := json.MarshalIndent(contacts.Value(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	}
	return nil
}
