package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	panel    lipgloss.Style
	active   lipgloss.Style
	visited  lipgloss.Style
	cell     lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	logLine  lipgloss.Style
	logBox   lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	done     lipgloss.Style
	keyHint  lipgloss.Style
	selected lipgloss.Style
}

const cellWidth = 5

func newStyles(t Theme) styles {
	base := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).MarginRight(1)
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(t.Border).
			MarginBottom(1),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(1, 2),
		active:   base.Bold(true).Foreground(t.Text).Background(t.Active),
		visited:  base.Foreground(t.Text).Background(t.Visited),
		cell:     base.Foreground(t.Muted).Background(t.Cell),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		logLine:  lipgloss.NewStyle().Foreground(t.Log),
		logBox:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1).Width(30).Height(3),
		running:  lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		paused:   lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		done:     lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		keyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
	}
}

// ProgressBar renders a fixed-width bar for percent in [0, 1].
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
