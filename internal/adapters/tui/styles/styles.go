package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Class accent colors
	ClassTitan   = lipgloss.Color("#F87171") // Red
	ClassHunter  = lipgloss.Color("#60A5FA") // Blue
	ClassWarlock = lipgloss.Color("#FBBF24") // Gold

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

	// Character cards
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 2).
		Width(20).
		Align(lipgloss.Center)

	CardSelected = Card.
			BorderForeground(Primary)

	CardGrabbed = Card.
			BorderForeground(Warning).
			Bold(true)

	CardClass = lipgloss.NewStyle().
			Bold(true)

	CardPower = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	CardArtifact = lipgloss.NewStyle().
			Foreground(ClassWarlock)

	// Aggregates line
	Aggregates = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status / messages
	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Success = lipgloss.NewStyle().
		Foreground(Secondary)

	// Help
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// ClassColor returns the accent color for a character class name.
func ClassColor(class string) lipgloss.Color {
	switch class {
	case "Titan":
		return ClassTitan
	case "Hunter":
		return ClassHunter
	case "Warlock":
		return ClassWarlock
	default:
		return Primary
	}
}
