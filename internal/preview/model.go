// Package preview renders the LED matrix in a terminal. The live view behind
// 'ledmon preview --watch' is a bubbletea program that steps an offline
// pipeline driver on every tick.
package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/ledmon/internal/pipeline"
	"github.com/rileyhilliard/ledmon/internal/render"
	"github.com/rileyhilliard/ledmon/internal/ui"
)

// DefaultInterval is used when the model is created without a positive interval.
const DefaultInterval = 200 * time.Millisecond

// tickMsg triggers the next driver step.
type tickMsg time.Time

// frameMsg carries the frame rendered by a step.
type frameMsg struct {
	at    time.Time
	frame render.Frame
}

// Model is the live preview.
type Model struct {
	driver   *pipeline.Driver
	interval time.Duration
	keys     keyMap
	help     help.Model

	frame      render.Frame
	steps      int
	lastStep   time.Time
	paused     bool
	showSeries bool

	width  int
	height int
}

// New creates a preview stepping d every interval. d should be built offline
// so the preview never talks to the daemon.
func New(d *pipeline.Driver, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{
		driver:     d,
		interval:   interval,
		keys:       keys,
		help:       help.New(),
		showSeries: true,
	}
}

// Init starts the first step and the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.stepCmd(time.Now()), m.tickCmd())
}

// Update handles keys, resizes, ticks and rendered frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Series):
			m.showSeries = !m.showSeries
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if m.paused {
			return m, m.tickCmd()
		}
		return m, tea.Batch(m.tickCmd(), m.stepCmd(time.Time(msg)))

	case frameMsg:
		m.frame = msg.frame
		m.lastStep = msg.at
		m.steps++
	}
	return m, nil
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// stepCmd runs whatever the driver has due at now and renders the result.
func (m Model) stepCmd(now time.Time) tea.Cmd {
	d := m.driver
	return func() tea.Msg {
		d.Step(context.Background(), now)
		return frameMsg{at: now, frame: d.Frame()}
	}
}

// View renders the matrix, the series list and the help footer.
func (m Model) View() string {
	status := "live"
	if m.paused {
		status = "paused"
	}
	header := titleStyle.Render("ledmon preview") + "  " +
		ui.MutedStyle().Render(fmt.Sprintf("%s · %d frames · every %s", status, m.steps, m.interval))

	body := RenderFrame(m.frame, m.driver.Size())
	if m.showSeries {
		series := RenderSeries(m.driver.Collector().History())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", series)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", m.help.View(m.keys))
}

// Run starts the live preview on the alternate screen and blocks until the
// user quits.
func Run(d *pipeline.Driver, interval time.Duration) error {
	p := tea.NewProgram(New(d, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
