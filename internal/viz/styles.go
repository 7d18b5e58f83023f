package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func headerStyle() lipgloss.Style { return fg(CurrentTheme.Primary).Bold(true).MarginBottom(1) }
func labelStyle() lipgloss.Style  { return fg(CurrentTheme.Muted).Width(12) }
func valueStyle() lipgloss.Style  { return fg(CurrentTheme.Text) }
func helpStyle() lipgloss.Style   { return fg(CurrentTheme.Muted).Italic(true).MarginTop(1) }

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Muted).
		Padding(0, 1)
}

// FillBar renders fraction in [0,1] as a bar of the given width, colored by
// how full it is.
func FillBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = min(max(filled, 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case fraction > 0.8:
		return fg(CurrentTheme.Warning).Render(bar)
	case fraction > 0.4:
		return fg(CurrentTheme.Success).Render(bar)
	}
	return fg(CurrentTheme.Primary).Render(bar)
}

// Sparkline compresses values into a single row of block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return fg(CurrentTheme.Accent).Render(b.String())
}
