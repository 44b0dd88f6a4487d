package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // e.g. "v0.3.0"
	Tagline string // optional
	Detail  string // optional muted line, e.g. the config path
}

// HeaderWidth is the default width of the header divider.
const HeaderWidth = 50

// RenderHeader renders the program name, version and an optional tagline
// above a divider.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	versionStyle := lipgloss.NewStyle().Foreground(ColorInfo)
	taglineStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var out strings.Builder
	out.WriteString(titleStyle.Render("ledmon"))
	if info.Version != "" {
		out.WriteString(" ")
		out.WriteString(versionStyle.Render(info.Version))
	}
	out.WriteString("\n")

	if info.Tagline != "" {
		out.WriteString(taglineStyle.Render(info.Tagline))
		out.WriteString("\n")
	}
	if info.Detail != "" {
		out.WriteString(MutedStyle().Render(info.Detail))
		out.WriteString("\n")
	}

	out.WriteString(Divider(HeaderWidth))
	out.WriteString("\n")
	return out.String()
}

// Divider renders a muted horizontal rule.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return MutedStyle().Render(strings.Repeat("━", width))
}
