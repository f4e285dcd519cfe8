package styles

import (
	"github.com/charmbracelet/lipgloss"

	"shelfmerge/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Source colors
	Goodreads  = lipgloss.Color("#B45309") // Brown
	StoryGraph = lipgloss.Color("#0EA5E9") // Sky

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Record columns
	Column = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	FieldLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	FieldDiffer = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	Absent = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	// List rows
	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Row = lipgloss.NewStyle()

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// SourceColor returns the accent color of a catalog
func SourceColor(src domain.Source) lipgloss.Color {
	switch src {
	case domain.SourceGoodreads:
		return Goodreads
	case domain.SourceStoryGraph:
		return StoryGraph
	default:
		return Primary
	}
}

// SourceHeader renders a catalog name in its color
func SourceHeader(src domain.Source) string {
	return lipgloss.NewStyle().Bold(true).Foreground(SourceColor(src)).Render(src.String())
}
