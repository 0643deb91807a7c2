package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/task"
	"taskflow/internal/theme"
)

type palette struct {
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Danger  lipgloss.Color
	Success lipgloss.Color
	Low     lipgloss.Color
	Medium  lipgloss.Color
	High    lipgloss.Color
}

var palettes = map[theme.Theme]palette{
	theme.Dark: {
		Accent:  lipgloss.Color("#7C3AED"),
		Text:    lipgloss.Color("#E5E7EB"),
		Dim:     lipgloss.Color("#6B7280"),
		Danger:  lipgloss.Color("#EF4444"),
		Success: lipgloss.Color("#10B981"),
		Low:     lipgloss.Color("#10B981"),
		Medium:  lipgloss.Color("#F59E0B"),
		High:    lipgloss.Color("#EF4444"),
	},
	theme.Light: {
		Accent:  lipgloss.Color("#5B21B6"),
		Text:    lipgloss.Color("#111827"),
		Dim:     lipgloss.Color("#6B7280"),
		Danger:  lipgloss.Color("#B91C1C"),
		Success: lipgloss.Color("#047857"),
		Low:     lipgloss.Color("#047857"),
		Medium:  lipgloss.Color("#B45309"),
		High:    lipgloss.Color("#B91C1C"),
	},
}

type styles struct {
	palette   palette
	Header    lipgloss.Style
	Dim       lipgloss.Style
	Text      lipgloss.Style
	Done      lipgloss.Style
	Active    lipgloss.Style
	Inactive  lipgloss.Style
	Badge     lipgloss.Style
	Overdue   lipgloss.Style
	Error     lipgloss.Style
	Cursor    lipgloss.Style
	Field     lipgloss.Style
	FieldOn   lipgloss.Style
	Priority  map[task.Priority]lipgloss.Style
	Separator lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[theme.Dark]
	}
	return styles{
		palette:   p,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Dim:       lipgloss.NewStyle().Foreground(p.Dim),
		Text:      lipgloss.NewStyle().Foreground(p.Text),
		Done:      lipgloss.NewStyle().Foreground(p.Dim).Strikethrough(true),
		Active:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Underline(true),
		Inactive:  lipgloss.NewStyle().Foreground(p.Dim),
		Badge:     lipgloss.NewStyle().Foreground(p.Dim),
		Overdue:   lipgloss.NewStyle().Bold(true).Foreground(p.Danger),
		Error:     lipgloss.NewStyle().Foreground(p.Danger),
		Cursor:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Field:     lipgloss.NewStyle().Foreground(p.Dim),
		FieldOn:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Separator: lipgloss.NewStyle().Foreground(p.Dim),
		Priority: map[task.Priority]lipgloss.Style{
			task.PriorityLow:    lipgloss.NewStyle().Foreground(p.Low),
			task.PriorityMedium: lipgloss.NewStyle().Foreground(p.Medium),
			task.PriorityHigh:   lipgloss.NewStyle().Foreground(p.High),
		},
	}
}
