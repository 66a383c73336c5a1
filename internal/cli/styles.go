package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/workforce/internal/domain"
)

// Colors defines the palette for status and priority values.
var Colors = struct {
	Muted lipgloss.Color
	Error lipgloss.Color

	// Status colors
	Assigned  lipgloss.Color
	Started   lipgloss.Color
	Completed lipgloss.Color
	Cancelled lipgloss.Color

	// Priority colors
	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color
}{
	Muted: lipgloss.Color("#636E72"), // Gray
	Error: lipgloss.Color("#D63031"), // Red

	Assigned:  lipgloss.Color("#74B9FF"), // Light blue
	Started:   lipgloss.Color("#FDCB6E"), // Yellow
	Completed: lipgloss.Color("#00B894"), // Green
	Cancelled: lipgloss.Color("#636E72"), // Gray

	High:   lipgloss.Color("#D63031"), // Red
	Medium: lipgloss.Color("#FDCB6E"), // Yellow
	Low:    lipgloss.Color("#636E72"), // Gray
}

// styles holds the rendering styles used by command output.
type styles struct {
	Header    lipgloss.Style
	OK        lipgloss.Style
	Violation lipgloss.Style
	Muted     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header:    lipgloss.NewStyle().Bold(true),
		OK:        lipgloss.NewStyle().Foreground(Colors.Completed).Bold(true),
		Violation: lipgloss.NewStyle().Foreground(Colors.Error).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(Colors.Muted),
	}
}

// statusColor returns the color for a task status.
func statusColor(s domain.Status) lipgloss.Color {
	switch s {
	case domain.StatusAssigned:
		return Colors.Assigned
	case domain.StatusStarted:
		return Colors.Started
	case domain.StatusCompleted:
		return Colors.Completed
	case domain.StatusCancelled:
		return Colors.Cancelled
	default:
		return Colors.Muted
	}
}

// priorityColor returns the color for a task priority.
func priorityColor(p domain.Priority) lipgloss.Color {
	switch p {
	case domain.PriorityHigh:
		return Colors.High
	case domain.PriorityMedium:
		return Colors.Medium
	default:
		return Colors.Low
	}
}

// renderStatus renders a status value in its color.
// lipgloss drops the color when stdout is not a terminal.
func renderStatus(s domain.Status) string {
	return lipgloss.NewStyle().Foreground(statusColor(s)).Render(string(s))
}

// renderPriority renders a priority value in its color.
func renderPriority(p domain.Priority) string {
	return lipgloss.NewStyle().Foreground(priorityColor(p)).Render(string(p))
}
