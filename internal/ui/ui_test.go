package ui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansi.ReplaceAllString(s, "") }

func TestThresholdColor(t *testing.T) {
	tests := []struct {
		percent float64
		want    lipgloss.Color
	}{
		{0, ColorSuccess},
		{59.9, ColorSuccess},
		{60, ColorWarning},
		{79, ColorWarning},
		{80, ColorError},
		{150, ColorError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, thresholdColor(tt.percent), "percent=%v", tt.percent)
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RenderSparkline(nil, 10, 100))
		assert.Empty(t, RenderSparkline([]float64{1, 2}, 0, 100))
	})

	t.Run("fixed ceiling", func(t *testing.T) {
		got := stripANSI(RenderSparkline([]float64{0, 50, 100}, 10, 100))
		assert.Equal(t, "▁▄█", got)
	})

	t.Run("keeps most recent values", func(t *testing.T) {
		got := stripANSI(RenderSparkline([]float64{100, 100, 0, 0}, 2, 100))
		assert.Equal(t, "▁▁", got)
	})

	t.Run("auto range", func(t *testing.T) {
		got := stripANSI(RenderSparkline([]float64{1000, 3000, 2000}, 10, 0))
		assert.Equal(t, "▁█▄", got)
	})

	t.Run("flat series uses middle level", func(t *testing.T) {
		got := stripANSI(RenderSparkline([]float64{7, 7, 7}, 10, 0))
		assert.Equal(t, "▅▅▅", got)
	})
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    string
	}{
		{"half", 50, "█████░░░░░  50%"},
		{"clamped high", 140, "██████████ 100%"},
		{"clamped low", -3, "░░░░░░░░░░   0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgressBar(tt.percent, 10)))
		})
	}
	assert.Empty(t, RenderProgressBar(50, 0))
}

func TestRenderDoctorTable(t *testing.T) {
	out := stripANSI(RenderDoctorTable([]DoctorCheckRow{
		{Status: "pass", Category: "CONFIG", Message: "Config is valid", Suggestion: "hidden"},
		{Status: "warn", Category: "SENSORS", Message: "No battery", Suggestion: "Remove the battery widget"},
		{Status: "fail", Category: "CONFIG", Message: "Bad rule", Details: []string{"sda -> default"}},
	}))

	assert.Less(t, strings.Index(out, "CONFIG"), strings.Index(out, "SENSORS"), "first-seen category order")
	assert.Less(t, strings.Index(out, "Bad rule"), strings.Index(out, "SENSORS"), "rows grouped under their category")
	assert.Contains(t, out, SymbolFail+" Bad rule")
	assert.Contains(t, out, "sda -> default")
	assert.Contains(t, out, "Remove the battery widget")
	assert.NotContains(t, out, "hidden", "suggestions are only shown for problems")

	assert.Equal(t, "No checks to display\n", RenderDoctorTable(nil))
}

func TestRenderSimpleTable(t *testing.T) {
	out := stripANSI(RenderSimpleTable(
		[]TableColumn{{Title: "SERIES", Width: 12}, {Title: "LATEST", Width: 8}},
		[][]string{{"cpu:avg", "42.0"}, {"mem", "63.5"}},
	))
	assert.Contains(t, out, "SERIES")
	assert.Contains(t, out, "cpu:avg")
	assert.Contains(t, out, "63.5")

	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "X", Width: 1}}, nil))
}

func TestRenderHeader(t *testing.T) {
	out := stripANSI(RenderHeader(HeaderInfo{Version: "v1.2.0", Tagline: "LED matrix monitor", Detail: "/etc/ledmon/config.yaml"}))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.Equal(t, "ledmon v1.2.0", lines[0])
	assert.Equal(t, "LED matrix monitor", lines[1])
	assert.Equal(t, "/etc/ledmon/config.yaml", lines[2])
	assert.Equal(t, strings.Repeat("━", HeaderWidth), lines[3])
	assert.Empty(t, Divider(0))
}
