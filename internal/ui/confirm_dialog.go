package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/complexinput"
	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/logging"
)

// ConfirmDialog asks the user to approve a destructive step and resolves
// the event's Confirmation with the answer
type ConfirmDialog struct {
	Completed bool
	event     complexinput.ConfirmationEvent
	form      *huh.Form
	proceed   bool
}

// NewConfirmDialog creates the dialog for e
func NewConfirmDialog(e complexinput.ConfirmationEvent) *ConfirmDialog {
	cd := &ConfirmDialog{event: e}

	question := "Remove this record?"
	affirmative := "Remove"
	if e.Reason == domain.ActionCancel {
		question = "Discard your changes?"
		affirmative = "Discard"
	}
	description := ""
	if e.HasSideEffect {
		description = "The record has unsaved changes that will be lost."
	}

	cd.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Description(description).
				Affirmative(affirmative).
				Negative("Keep").
				Value(&cd.proceed),
		),
	)
	return cd
}

// confirmationTitle is the dialog header for e
func confirmationTitle(e complexinput.ConfirmationEvent) string {
	if e.Reason == domain.ActionCancel {
		return "Discard changes"
	}
	return "Remove record"
}

func (cd *ConfirmDialog) Init() tea.Cmd {
	return cd.form.Init()
}

func (cd *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape leaves the decision open-ended: the step is abandoned
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			cd.event.Confirmation.Cancel()
			cd.Completed = true
			return cd, nil
		}
	}

	form, cmd := cd.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		cd.form = f
	}

	if cd.form.State == huh.StateCompleted {
		cd.Completed = true
		if cd.proceed {
			cd.event.Confirmation.Confirm()
		} else {
			cd.event.Confirmation.Decline()
		}
		logging.Logger.Info("Confirmation resolved",
			"reason", cd.event.Reason,
			"outcome", cd.event.Confirmation.Outcome())
		return cd, nil
	}

	return cd, cmd
}

func (cd *ConfirmDialog) View() string {
	return cd.form.View()
}

// Outcome returns the resolution, OutcomePending while the dialog is open
func (cd *ConfirmDialog) Outcome() domain.Outcome {
	return cd.event.Confirmation.Outcome()
}
