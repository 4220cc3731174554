package ui

import (
	"fmt"

	"github.com/renato0307/tutor/internal/theme"
)

// VersionInfo holds build information shown in the header in dev mode.
// Populated from ldflags-injected values.
type VersionInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Tagline   string
	Version   string
}

// DefaultVersionInfo is used until SetVersionInfo is called
var DefaultVersionInfo = VersionInfo{
	Commit:    "unknown",
	Date:      "unknown",
	GoVersion: "unknown",
	Tagline:   "Your study session, on the clock",
	Version:   "dev",
}

var versionInfo = DefaultVersionInfo

// SetVersionInfo sets the version info shown in headers
func SetVersionInfo(info VersionInfo) {
	versionInfo = info
}

// renderHeader renders the app name, the tagline and an optional subtitle
func renderHeader(devMode bool, subtitle string) string {
	line := theme.AppNameStyle.Render("Tutor")
	if devMode {
		commit := versionInfo.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		line += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s | %s | %s",
			versionInfo.Version, commit, versionInfo.Date, versionInfo.GoVersion))
	}

	result := line + "\n" + theme.TaglineStyle.Render(versionInfo.Tagline)
	if subtitle != "" {
		result += "\n\n" + theme.SubtitleStyle.Render(subtitle)
	}
	return result + "\n"
}
