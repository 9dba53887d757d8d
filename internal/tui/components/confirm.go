// Package components provides reusable terminal UI components for plotdev.
package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plotlyst/plotdev/internal/tui/styles"
)

// ConfirmAction represents the action being confirmed.
type ConfirmAction string

const (
	// ConfirmActionPrune is for deleting stale local branches.
	ConfirmActionPrune ConfirmAction = "prune"
	// ConfirmActionRefresh is for reinstalling the dependency set.
	ConfirmActionRefresh ConfirmAction = "refresh"
)

// ConfirmDialog displays a confirmation prompt for destructive actions.
type ConfirmDialog struct {
	visible     bool
	action      ConfirmAction
	title       string
	message     string
	width       int
	destructive bool
}

// NewConfirmDialog creates a new ConfirmDialog component.
func NewConfirmDialog() *ConfirmDialog {
	return &ConfirmDialog{
		visible: false,
		width:   50,
	}
}

// Show displays the dialog with the given action, title, and message.
func (c *ConfirmDialog) Show(action ConfirmAction, title, message string, destructive bool) {
	c.visible = true
	c.action = action
	c.title = title
	c.message = message
	c.destructive = destructive
}

// ShowPrune shows the branch deletion confirmation.
func (c *ConfirmDialog) ShowPrune(count int) {
	noun := "branches"
	if count == 1 {
		noun = "branch"
	}
	c.Show(ConfirmActionPrune, "Delete Stale Branches?",
		"This will delete "+strconv.Itoa(count)+" local "+noun+". Deleted branches cannot be recovered.",
		true)
}

// ShowRefresh shows the dependency refresh confirmation.
func (c *ConfirmDialog) ShowRefresh(count int) {
	c.Show(ConfirmActionRefresh, "Refresh Dependencies?",
		"This will uninstall and reinstall "+strconv.Itoa(count)+" packages from their git sources.",
		false)
}

// Hide hides the dialog.
func (c *ConfirmDialog) Hide() {
	c.visible = false
}

// IsVisible returns whether the dialog is visible.
func (c *ConfirmDialog) IsVisible() bool {
	return c.visible
}

// Action returns the current action being confirmed.
func (c *ConfirmDialog) Action() ConfirmAction {
	return c.action
}

// SetSize sets the dialog width.
func (c *ConfirmDialog) SetSize(width int) {
	c.width = width
}

// Update handles input messages.
func (c *ConfirmDialog) Update(msg tea.Msg) tea.Cmd {
	if !c.visible {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch strings.ToLower(msg.String()) {
		case "y", "enter":
			action := c.action
			c.Hide()
			return func() tea.Msg {
				return ConfirmYesMsg{Action: action}
			}
		case "n", "esc":
			c.Hide()
			return func() tea.Msg {
				return ConfirmNoMsg{}
			}
		}
	}
	return nil
}

// View renders the confirmation dialog.
func (c *ConfirmDialog) View() string {
	if !c.visible {
		return ""
	}

	var b strings.Builder

	titleBg := styles.Warning
	if c.destructive {
		titleBg = styles.Error
	}
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Background(titleBg).
		Bold(true).
		Padding(0, 1).
		Width(c.width - 4)
	b.WriteString(titleStyle.Render("  " + c.title))
	b.WriteString("\n\n")

	msgStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Width(c.width - 8)
	b.WriteString(msgStyle.Render(c.message))
	b.WriteString("\n\n")

	yesStyle := styles.ButtonDangerStyle
	if !c.destructive {
		yesStyle = styles.ButtonPrimaryStyle
	}

	b.WriteString(yesStyle.Render("[Y]es"))
	b.WriteString("  ")
	b.WriteString(styles.ButtonSecondaryStyle.Render("[N]o"))

	borderColor := styles.Warning
	if c.destructive {
		borderColor = styles.Error
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}

// ConfirmYesMsg is sent when the user confirms.
type ConfirmYesMsg struct {
	Action ConfirmAction
}

// ConfirmNoMsg is sent when the user cancels.
type ConfirmNoMsg struct{}
