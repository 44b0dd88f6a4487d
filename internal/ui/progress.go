package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Progress bar block characters.
const (
	progressFilled = '█'
	progressEmpty  = '░'
)

// RenderProgressBar renders a percentage as a colored bar followed by the
// number, e.g. "████████░░░░  67%". percent is clamped to 0-100.
func RenderProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(percent, 100))

	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat(string(progressFilled), filled) +
		strings.Repeat(string(progressEmpty), width-filled)

	style := lipgloss.NewStyle().Foreground(thresholdColor(percent))
	return style.Render(bar) + fmt.Sprintf(" %3.0f%%", percent)
}
