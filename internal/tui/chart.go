// SPDX-License-Identifier: MIT
//
// Package tui renders analysis output as an interactive terminal chart.
package tui

import (
	"fmt"
	"math"
	"strings"

	"onset/internal/numeric"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065"))
)

const (
	barRune  = "█"
	minSpan  = 8
	chromeHt = 5 // title, blank, blank, axis, help
)

var (
	keyQuit    = key.NewBinding(key.WithKeys("q", "ctrl+c"))
	keyLeft    = key.NewBinding(key.WithKeys("left", "h"))
	keyRight   = key.NewBinding(key.WithKeys("right", "l"))
	keyZoomIn  = key.NewBinding(key.WithKeys("+", "="))
	keyZoomOut = key.NewBinding(key.WithKeys("-", "_"))
)

// Point is one (index, value) pair of a chart series.
type Point struct {
	Index int
	Value float64
}

// PointsFrom converts a value sequence into chart points. Index 0 is skipped
// because the DC bin of the first frame dwarfs the rest of the spectrum.
func PointsFrom[T numeric.Float](values []T) []Point {
	if len(values) <= 1 {
		return nil
	}
	points := make([]Point, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		points = append(points, Point{Index: i, Value: float64(values[i])})
	}
	return points
}

// ChartModel is a Bubble Tea model showing a bar chart of points with
// panning and zooming.
type ChartModel struct {
	title    string
	points   []Point
	offset   int
	span     int
	viewport viewport.Model
	ready    bool
}

// NewChartModel creates a chart of points, initially showing the full series.
func NewChartModel(title string, points []Point) ChartModel {
	return ChartModel{
		title:  title,
		points: points,
		span:   len(points),
	}
}

// Init initializes the Bubble Tea model
func (m ChartModel) Init() tea.Cmd {
	return nil
}

// Visible returns the range [start, end) of points currently on screen.
func (m ChartModel) Visible() (start, end int) {
	return m.offset, min(len(m.points), m.offset+m.span)
}

func (m ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-chromeHt))
			m.viewport.Style = lipgloss.NewStyle()
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-chromeHt)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyQuit):
			return m, tea.Quit
		case key.Matches(msg, keyLeft):
			m.pan(-1)
		case key.Matches(msg, keyRight):
			m.pan(1)
		case key.Matches(msg, keyZoomIn):
			m.zoom(0.5)
		case key.Matches(msg, keyZoomOut):
			m.zoom(2)
		}
		m.refresh()
		return m, nil
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// pan moves the visible window by a quarter span in direction dir.
func (m *ChartModel) pan(dir int) {
	step := max(1, m.span/4)
	m.offset = clamp(m.offset+dir*step, 0, max(0, len(m.points)-m.span))
}

// zoom scales the visible span by factor, keeping the window centre fixed.
func (m *ChartModel) zoom(factor float64) {
	if len(m.points) == 0 {
		return
	}
	centre := m.offset + m.span/2
	m.span = clamp(int(float64(m.span)*factor), min(minSpan, len(m.points)), len(m.points))
	m.offset = clamp(centre-m.span/2, 0, len(m.points)-m.span)
}

func (m *ChartModel) refresh() {
	if m.ready {
		m.viewport.SetContent(m.Render(m.viewport.Width, m.viewport.Height))
	}
}

// View renders the UI
func (m ChartModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	start, end := m.Visible()
	title := titleStyle.Render(m.title)
	help := infoStyle.Render(fmt.Sprintf(
		"points %d-%d of %d • ←/→: Pan • +/-: Zoom • q: Quit", start, end, len(m.points)))

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.viewport.View(), help)
}

// Render draws the visible points as a bar chart of height rows followed by
// an index axis line, at most width columns wide. When there are more points
// than columns each column shows the largest value of its bucket.
func (m ChartModel) Render(width, height int) string {
	start, end := m.Visible()
	visible := m.points[start:end]
	if len(visible) == 0 || width <= 0 || height <= 0 {
		return "No data."
	}

	cols := bucket(visible, width)
	peak := 0.0
	for _, v := range cols {
		peak = max(peak, v)
	}

	bars := make([]int, len(cols))
	if peak > 0 {
		for i, v := range cols {
			bars[i] = int(math.Round(v / peak * float64(height)))
		}
	}

	var sb strings.Builder
	for row := height; row > 0; row-- {
		var line strings.Builder
		for _, b := range bars {
			if b >= row {
				line.WriteString(barRune)
			} else {
				line.WriteByte(' ')
			}
		}
		sb.WriteString(barStyle.Render(line.String()))
		sb.WriteByte('\n')
	}

	first := fmt.Sprintf("%d", visible[0].Index)
	last := fmt.Sprintf("%d (max %.4g)", visible[len(visible)-1].Index, peak)
	gap := max(1, len(cols)-len(first)-len(last))
	sb.WriteString(first + strings.Repeat(" ", gap) + last)

	return sb.String()
}

// bucket reduces points to at most width column values. Negative and
// non-finite values are drawn as empty columns.
func bucket(points []Point, width int) []float64 {
	n := len(points)
	cols := min(n, width)
	out := make([]float64, cols)
	for c := range cols {
		lo, hi := c*n/cols, (c+1)*n/cols
		for _, p := range points[lo:hi] {
			if p.Value > out[c] && !math.IsInf(p.Value, 1) {
				out[c] = p.Value
			}
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// RunChart launches the Bubble Tea TUI showing points.
func RunChart(title string, points []Point) error {
	p := tea.NewProgram(
		NewChartModel(title, points),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
