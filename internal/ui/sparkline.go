package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline draws the most recent width values as block characters.
//
// When ceiling is positive the values are scaled against [0, ceiling] and the
// line is colored by the last value's share of the ceiling. Otherwise the
// window's own min/max is used and the line stays in the info color, which
// suits unbounded series such as byte rates.
func RenderSparkline(data []float64, width int, ceiling float64) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	lo, hi := 0.0, ceiling
	if ceiling <= 0 {
		lo, hi = data[0], data[0]
		for _, v := range data {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	var sb strings.Builder
	sb.Grow(len(data) * 3)

	levels := len(sparklineBlockRunes)
	span := hi - lo
	for _, v := range data {
		level := levels / 2
		if span > 0 {
			level = int((v - lo) / span * float64(levels-1))
			level = max(0, min(level, levels-1))
		}
		sb.WriteRune(sparklineBlockRunes[level])
	}

	color := ColorInfo
	if ceiling > 0 {
		color = thresholdColor(data[len(data)-1] / ceiling * 100)
	}
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}
