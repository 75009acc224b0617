package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clearErrorMsg asks to clear the error shown at generation
type clearErrorMsg struct {
	generation int
}

// ErrorManager holds the error on display and schedules its removal.
// Each new error starts a generation so an older timer cannot clear it.
type ErrorManager struct {
	current    error
	delay      time.Duration
	generation int
}

// NewErrorManager creates an ErrorManager clearing errors after delay
func NewErrorManager(delay time.Duration) *ErrorManager {
	return &ErrorManager{delay: delay}
}

// SetError shows err and returns the command that clears it after the delay
func (em *ErrorManager) SetError(err error) tea.Cmd {
	em.current = err
	em.generation++
	generation := em.generation
	return tea.Tick(em.delay, func(time.Time) tea.Msg {
		return clearErrorMsg{generation: generation}
	})
}

// Clear drops the error if msg belongs to its generation
func (em *ErrorManager) Clear(msg clearErrorMsg) {
	if msg.generation == em.generation {
		em.current = nil
	}
}

// GetError returns the error on display
func (em *ErrorManager) GetError() error {
	return em.current
}

// HasError reports whether an error is on display
func (em *ErrorManager) HasError() bool {
	return em.current != nil
}
