// Package chart draws profit/loss series as a terminal line chart.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rustyeddy/tradejournal/journal"
)

const (
	DefaultWidth  = 72
	DefaultHeight = 14

	MinWidth  = 20
	MinHeight = 5
)

// Size is the chart's content area in terminal cells. Height counts the
// plot rows plus the caption line.
type Size struct {
	Width  int
	Height int
}

// Validate rejects sizes too small to draw into.
func (s Size) Validate() error {
	if s.Width < MinWidth {
		return fmt.Errorf("chart width %d below minimum %d", s.Width, MinWidth)
	}
	if s.Height < MinHeight {
		return fmt.Errorf("chart height %d below minimum %d", s.Height, MinHeight)
	}
	return nil
}

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	profitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Chart holds a series and the size it is drawn at. Draw replaces the
// series and Resize changes the size; Render redraws from scratch.
type Chart struct {
	Title  string
	size   Size
	points []journal.Point
}

// New returns an empty chart. An invalid size falls back to the default.
func New(size Size) *Chart {
	if size.Validate() != nil {
		size = Size{Width: DefaultWidth, Height: DefaultHeight}
	}
	return &Chart{Title: "Profit/Loss", size: size}
}

// Size returns the current size.
func (c *Chart) Size() Size {
	return c.size
}

// Resize changes the drawing size; the series is kept.
func (c *Chart) Resize(width, height int) error {
	s := Size{Width: width, Height: height}
	if err := s.Validate(); err != nil {
		return err
	}
	c.size = s
	return nil
}

// Draw replaces the plotted series.
func (c *Chart) Draw(points []journal.Point) {
	c.points = append(c.points[:0], points...)
}

// Render returns the framed chart.
func (c *Chart) Render() string {
	body := c.Plot()
	if c.Title != "" {
		body = titleStyle.Render(c.Title) + "\n" + body
	}
	return frameStyle.Render(body)
}

// axisOffset is the gap asciigraph leaves between labels and plot.
const axisOffset = 3

// Plot returns the chart without title or frame, at most Height lines of
// at most Width cells. The y axis always includes zero and the caption
// names the first and last trade.
func (c *Chart) Plot() string {
	if len(c.points) == 0 {
		return axisStyle.Render("no trades to plot")
	}

	values := make([]float64, len(c.points))
	lo, hi := 0.0, 0.0
	for i, p := range c.points {
		values[i] = p.Float()
		lo = math.Min(lo, values[i])
		hi = math.Max(hi, values[i])
	}

	labelW := max(len(fmt.Sprintf("%.2f", lo)), len(fmt.Sprintf("%.2f", hi))) + 1
	plotW := max(c.size.Width-labelW-axisOffset-1, 2)
	// asciigraph draws Height+1 rows, one more when rounding the scale,
	// and the caption below them.
	plotH := max(c.size.Height-3, 1)

	graph := asciigraph.Plot(values,
		asciigraph.Width(plotW),
		asciigraph.Height(plotH),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(0),
		asciigraph.Offset(axisOffset),
		asciigraph.Precision(2),
		asciigraph.Caption(caption(c.points)),
	)

	lines := strings.Split(graph, "\n")
	if len(lines) > c.size.Height {
		// Keep the caption, drop plot rows from the bottom.
		lines = append(lines[:c.size.Height-1], lines[len(lines)-1])
	}
	for i, line := range lines {
		lines[i] = truncate(strings.TrimRight(line, " "), c.size.Width)
	}

	style := profitStyle
	if values[len(values)-1] < 0 {
		style = lossStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func caption(points []journal.Point) string {
	first := points[0].Label
	if len(points) == 1 {
		return first
	}
	return first + " .. " + points[len(points)-1].Label
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
