package preview

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ledmon/internal/config"
	"github.com/rileyhilliard/ledmon/internal/history"
	"github.com/rileyhilliard/ledmon/internal/logger"
	"github.com/rileyhilliard/ledmon/internal/pipeline"
	sensorstest "github.com/rileyhilliard/ledmon/internal/sensors/testing"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func ip(v int) *int { return &v }

func fp(v float64) *float64 { return &v }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newDriver(t *testing.T, battery float64) *pipeline.Driver {
	t.Helper()
	src := sensorstest.NewFakeSource()
	src.SetBattery(battery)

	cfg := config.DefaultConfig()
	cfg.Render.Left = []config.WidgetConfig{
		{Kind: "battery", StartY: ip(0), MaxHeight: ip(14), Falloff: fp(0)},
	}
	cfg.Render.Right = nil

	d, err := pipeline.Build(cfg, pipeline.Deps{Source: src, Log: logger.Noop(), Offline: true})
	require.NoError(t, err)
	return d
}

func TestNew_Defaults(t *testing.T) {
	m := New(newDriver(t, 50), 0)
	assert.Equal(t, DefaultInterval, m.interval)
	assert.True(t, m.showSeries)
	assert.False(t, m.paused)
	assert.NotNil(t, m.Init())
}

func TestModel_StepRendersFrame(t *testing.T) {
	m := New(newDriver(t, 100), time.Second)

	msg := m.stepCmd(epoch)()
	updated, cmd := m.Update(msg)
	assert.Nil(t, cmd)

	got := updated.(Model)
	assert.Equal(t, 1, got.steps)
	assert.Equal(t, epoch, got.lastStep)
	require.NotNil(t, got.frame.Left)
	assert.Equal(t, 14, got.frame.Left.Lit())

	view := got.View()
	assert.Contains(t, view, "ledmon preview")
	assert.Contains(t, view, "1 frames")
	assert.Contains(t, view, "██")
	assert.Contains(t, view, "battery")
	assert.Contains(t, view, "100.0%")
}

func TestModel_Keys(t *testing.T) {
	m := New(newDriver(t, 50), time.Second)

	updated, _ := m.Update(runes("p"))
	m = updated.(Model)
	assert.True(t, m.paused)
	assert.Contains(t, m.View(), "paused")

	updated, cmd := m.Update(tickMsg(epoch))
	m = updated.(Model)
	assert.NotNil(t, cmd, "ticks keep running while paused")
	assert.Equal(t, 0, m.steps)

	updated, _ = m.Update(runes("s"))
	m = updated.(Model)
	assert.False(t, m.showSeries)
	assert.NotContains(t, m.View(), "no samples yet")

	updated, _ = m.Update(runes("?"))
	m = updated.(Model)
	assert.True(t, m.help.ShowAll)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m := New(newDriver(t, 50), time.Second)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 120, m.help.Width)
}

func TestRenderSeries(t *testing.T) {
	store := history.NewStore(4)
	assert.Contains(t, RenderSeries(store), "no samples yet")

	store.Push(history.K(history.CategoryMemory, ""), 40)
	store.Push(history.K(history.CategoryNetRx, "wifi"), 2048)

	out := RenderSeries(store)
	assert.Contains(t, out, "mem")
	assert.Contains(t, out, " 40.0%")
	assert.Contains(t, out, "net_rx:wifi")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "window")
	assert.Contains(t, out, " 25%", "one of four slots filled")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		category string
		value    float64
		want     string
	}{
		{history.CategoryCPU, 42, " 42.0%"},
		{history.CategoryTemp, 61.3, " 61.3°C"},
		{history.CategoryDiskRead, 512, "512 B"},
		{history.CategoryNetTx, 1536, "1.5 KB"},
		{history.CategoryDiskWrite, 3 * 1024 * 1024, "3.0 MB"},
		{history.CategoryNetRx, 5 * 1024 * 1024 * 1024, "5.0 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.category, tt.value))
		})
	}
}
