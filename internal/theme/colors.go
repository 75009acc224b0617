package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Record state colors
const (
	ColorAddSlot Color = "2"   // Green - the new record slot
	ColorEditing Color = "3"   // Yellow - record being edited
	ColorSaved   Color = "241" // Gray - saved rows
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorRequired  Color = "204" // Pink - required marker
	ColorSubtle    Color = "245" // Light gray - labels
)
