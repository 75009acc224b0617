package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/renato0307/dynform/internal/form"
)

const (
	errorPrefix    = "Error: "
	maxErrorLines  = 2
	minErrorWidth  = 10
	truncationMark = "..."
)

// formatErrorForDisplay wraps err to at most maxErrorLines lines that fit
// maxWidth once prefixed. Longer messages end in truncationMark.
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}

	message := strings.Join(strings.Fields(describeError(err)), " ")
	if message == "" {
		return errorPrefix + "unknown error"
	}

	width := max(maxWidth-len(errorPrefix), minErrorWidth)
	lines := strings.Split(ansi.Wordwrap(message, width, ""), "\n")
	if len(lines) > maxErrorLines {
		lines = lines[:maxErrorLines]
		last := ansi.Truncate(lines[maxErrorLines-1], width-len(truncationMark), "")
		lines[maxErrorLines-1] = last + truncationMark
	}

	return errorPrefix + strings.Join(lines, "\n")
}

// describeError names the offending field for validation failures
func describeError(err error) string {
	var verr *form.ValidationError
	if errors.As(err, &verr) && verr.Label != "" {
		return verr.Label + ": " + verr.Message
	}
	return err.Error()
}
