package cmd

import (
	"fmt"

	"github.com/renato0307/dynform/internal/complexinput"
	"github.com/renato0307/dynform/internal/config"
	"github.com/renato0307/dynform/internal/logging"
	"github.com/renato0307/dynform/internal/sample"
	"github.com/renato0307/dynform/internal/theme"
	"github.com/renato0307/dynform/internal/ui"
)

// Container holds all dependencies for the application
type Container struct {
	Groups    []*sample.Group
	Resources *theme.Resources
	Settings  *config.Settings
}

// NewContainer validates settings and builds the shared resources from them
func NewContainer(settings *config.Settings) (*Container, error) {
	if settings == nil {
		settings = &config.Settings{}
	}
	if err := settings.Validate(ui.GetValidKeyNames()); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &Container{
		Groups:    sample.DefaultGroups(),
		Resources: settings.Resources(),
		Settings:  settings,
	}, nil
}

// NewContactsForm creates the demo contacts list, optionally filled with seed data
func (c *Container) NewContactsForm(seed bool) (*complexinput.ComplexInputForm[*sample.Contact], error) {
	template := sample.ContactTemplate{
		Groups: c.Groups,
		Tags:   c.Settings.Tags,
	}
	contacts, err := complexinput.NewFromTemplate[*sample.Contact](template, c.Resources)
	if err != nil {
		return nil, fmt.Errorf("failed to create contacts form: %w", err)
	}
	contacts.SetTitle("Contacts")

	if seed {
		if err := contacts.SetValue(sample.Seed(c.Groups)); err != nil {
			return nil, fmt.Errorf("failed to load seed contacts: %w", err)
		}
	}
	logging.Logger.Debug("Contacts form created", "contacts", contacts.Len())
	return contacts, nil
}
