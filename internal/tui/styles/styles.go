// Package styles provides Lip Gloss styles for the plotdev terminal UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the terminal UI.
var (
	Primary     = lipgloss.Color("#7C3AED") // Purple
	Secondary   = lipgloss.Color("#06B6D4") // Cyan
	Success     = lipgloss.Color("#10B981") // Green
	Warning     = lipgloss.Color("#F59E0B") // Amber
	Error       = lipgloss.Color("#EF4444") // Red
	Muted       = lipgloss.Color("#6B7280") // Gray
	MutedLight  = lipgloss.Color("#9CA3AF") // Light Gray
	Background  = lipgloss.Color("#1F2937") // Dark Gray
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
)

// Text styles.
var (
	// TitleStyle is for section titles.
	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Bold(true).
			Padding(0, 1)

	// MutedTextStyle is for de-emphasized text.
	MutedTextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// ErrorTextStyle is for error messages.
	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(Error)

	// SuccessTextStyle is for success messages.
	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(Success)

	// WarningTextStyle is for warning messages.
	WarningTextStyle = lipgloss.NewStyle().
				Foreground(Warning)
)

// Status icons for step results.
var (
	// IconDone marks a finished step.
	IconDone = lipgloss.NewStyle().
			Foreground(Success).
			Render("✓")

	// IconFailed marks a failed step.
	IconFailed = lipgloss.NewStyle().
			Foreground(Error).
			Render("✗")

	// IconSkipped marks a skipped step.
	IconSkipped = lipgloss.NewStyle().
			Foreground(Warning).
			Render("⊘")
)

// Box styles.
var (
	// BoxStyle is a standard box with border.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)
)

// Button styles for the confirm dialog.
var (
	// ButtonPrimaryStyle is for primary buttons.
	ButtonPrimaryStyle = lipgloss.NewStyle().
				Foreground(Background).
				Background(Primary).
				Bold(true).
				Padding(0, 2)

	// ButtonSecondaryStyle is for secondary buttons.
	ButtonSecondaryStyle = lipgloss.NewStyle().
				Foreground(MutedLight).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Muted).
				Padding(0, 1)

	// ButtonDangerStyle is for buttons confirming destructive actions.
	ButtonDangerStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Error).
				Bold(true).
				Padding(0, 2)
)
