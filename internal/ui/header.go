package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/dynform/internal/theme"
)

// VersionInfo holds version information for display in the header.
// Populated by main.go from ldflags-injected values.
type VersionInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Tagline   string
	Version   string
}

// DefaultVersionInfo provides default values when version info is not available
var DefaultVersionInfo = VersionInfo{
	Commit:    "unknown",
	Date:      "unknown",
	GoVersion: "unknown",
	Tagline:   "Typed forms for lists of records",
	Version:   "dev",
}

var versionInfo = DefaultVersionInfo

// SetVersionInfo sets the global version info (called from main.go)
func SetVersionInfo(info VersionInfo) {
	versionInfo = info
}

// renderHeader shows the app name and tagline. In dev mode the build
// details follow the name.
func renderHeader(devMode bool, r *theme.Resources) string {
	named := func(names ...string) lipgloss.Style {
		return r.Compose(lipgloss.NewStyle(), names)
	}

	line := named("bold").Foreground(theme.ColorPrimary).Render("dynform")
	if devMode {
		commit := versionInfo.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		line += named("muted").Render(fmt.Sprintf(" %s | %s | %s | %s",
			versionInfo.Version,
			commit,
			versionInfo.Date,
			versionInfo.GoVersion))
	}
	return line + "\n" + named("secondary").Render(versionInfo.Tagline) + "\n"
}
