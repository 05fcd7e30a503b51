package components

import (
	"strings"

	"finsight/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// HBarRow is one labeled entry in a horizontal bar list.
type HBarRow struct {
	Label string
	Value float64
	Note  string // right-aligned annotation, e.g. a formatted amount
}

// HBarList renders a horizontal bar chart, one row per entry, scaled to
// the largest value. Suited to category breakdowns where labels matter
// more than a shared axis.
func HBarList(rows []HBarRow, color lipgloss.Color, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	noteW := 0
	maxVal := 0.0
	for _, r := range rows {
		if len(r.Label) > labelW {
			labelW = len(r.Label)
		}
		if lipgloss.Width(r.Note) > noteW {
			noteW = lipgloss.Width(r.Note)
		}
		if r.Value > maxVal {
			maxVal = r.Value
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	barW := width - labelW - noteW - 4
	if barW < 8 {
		barW = 8
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		filled := int(r.Value / maxVal * float64(barW))
		if filled > barW {
			filled = barW
		}
		if filled < 1 && r.Value > 0 {
			filled = 1
		}
		b.WriteString(labelStyle.Render(padRight(r.Label, labelW)))
		b.WriteString("  ")
		b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		b.WriteString(emptyStyle.Render(strings.Repeat("░", barW-filled)))
		b.WriteString("  ")
		b.WriteString(noteStyle.Render(padLeft(r.Note, noteW)))
	}
	return b.String()
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func padLeft(s string, w int) string {
	n := lipgloss.Width(s)
	if n >= w {
		return s
	}
	return strings.Repeat(" ", w-n) + s
}
