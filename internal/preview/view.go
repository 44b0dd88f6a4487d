package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/ledmon/internal/history"
	"github.com/rileyhilliard/ledmon/internal/render"
	"github.com/rileyhilliard/ledmon/internal/ui"
)

// panelGap is the number of blank columns between the two panels.
const panelGap = 4

var (
	matrixStyle = lipgloss.NewStyle().
			Foreground(ui.ColorAccent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorMuted)

	labelStyle = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Width(18)
	titleStyle = lipgloss.NewStyle().Foreground(ui.ColorAccent).Bold(true)
)

// RenderFrame draws both panels side by side as shade glyphs inside a border.
func RenderFrame(f render.Frame, size render.Size) string {
	return matrixStyle.Render(render.SideBySide(size, panelGap, f.Left, f.Right))
}

// RenderSeries lists every tracked series with a sparkline of its window and
// its newest value, under a gauge of how full the history window is.
func RenderSeries(r history.Reader) string {
	keys := r.Keys("")
	if len(keys) == 0 {
		return ui.MutedStyle().Render("no samples yet")
	}

	width := r.Capacity()
	filled := 0
	for _, k := range keys {
		filled = max(filled, len(r.Snapshot(k)))
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("window"))
	b.WriteString(ui.RenderProgressBar(float64(filled)/float64(width)*100, width))
	b.WriteByte('\n')
	for i, k := range keys {
		samples := r.Snapshot(k)
		latest, _ := r.Latest(k)
		ceiling := seriesCeiling(k.Category)

		b.WriteString(labelStyle.Render(k.String()))
		spark := ui.RenderSparkline(samples, width, ceiling)
		b.WriteString(spark)
		b.WriteString(strings.Repeat(" ", width-len(samples)+2))
		b.WriteString(formatValue(k.Category, latest))
		if i < len(keys)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// seriesCeiling returns the fixed scale of a category, or 0 for series that
// are scaled to their own window.
func seriesCeiling(category string) float64 {
	switch category {
	case history.CategoryCPU, history.CategoryMemory, history.CategoryBattery, history.CategoryTemp:
		return 100
	default:
		return 0
	}
}

func formatValue(category string, v float64) string {
	switch category {
	case history.CategoryTemp:
		return fmt.Sprintf("%5.1f°C", v)
	case history.CategoryCPU, history.CategoryMemory, history.CategoryBattery:
		return fmt.Sprintf("%5.1f%%", v)
	default:
		return formatBytes(v)
	}
}

// formatBytes formats a per-tick byte count as a human-readable string.
func formatBytes(bytes float64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%.0f B", bytes)
	}
	div, exp := float64(unit), 0
	for n := bytes / unit; n >= unit && exp < 3; n /= unit {
		div *= unit
		exp++
	}
	units := []string{"KB", "MB", "GB", "TB"}
	return fmt.Sprintf("%.1f %s", bytes/div, units[exp])
}
