// Package tui provides the interactive terminal prompts and progress
// display for plotdev commands.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plotlyst/plotdev/internal/tui/components"
)

// confirmModel hosts a ConfirmDialog as a standalone program.
type confirmModel struct {
	dialog    *components.ConfirmDialog
	confirmed bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case components.ConfirmYesMsg:
		m.confirmed = true
		return m, tea.Quit
	case components.ConfirmNoMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.dialog.SetSize(msg.Width)
		return m, nil
	}
	return m, m.dialog.Update(msg)
}

func (m confirmModel) View() string {
	return m.dialog.View() + "\n"
}

// Confirm shows a yes/no dialog and blocks until the user answers.
func Confirm(action components.ConfirmAction, title, message string, destructive bool) (bool, error) {
	dialog := components.NewConfirmDialog()
	dialog.Show(action, title, message, destructive)

	final, err := tea.NewProgram(confirmModel{dialog: dialog}).Run()
	if err != nil {
		return false, err
	}
	return final.(confirmModel).confirmed, nil
}

// ConfirmPrune asks before deleting stale branches.
func ConfirmPrune(count int) (bool, error) {
	dialog := components.NewConfirmDialog()
	dialog.ShowPrune(count)

	final, err := tea.NewProgram(confirmModel{dialog: dialog}).Run()
	if err != nil {
		return false, err
	}
	return final.(confirmModel).confirmed, nil
}

// ConfirmRefresh asks before reinstalling the dependency set.
func ConfirmRefresh(count int) (bool, error) {
	dialog := components.NewConfirmDialog()
	dialog.ShowRefresh(count)

	final, err := tea.NewProgram(confirmModel{dialog: dialog}).Run()
	if err != nil {
		return false, err
	}
	return final.(confirmModel).confirmed, nil
}

// taskStatusMsg updates the spinner's status line.
type taskStatusMsg string

// taskDoneMsg signals that the background task finished.
type taskDoneMsg struct {
	err error
}

// spinnerModel shows a spinner while a background task runs.
type spinnerModel struct {
	spinner *components.Spinner
	events  chan tea.Msg
	err     error
}

func (m spinnerModel) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), m.listen())
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskStatusMsg:
		m.spinner.SetStatusText(string(msg))
		return m, m.listen()
	case taskDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	return m.spinner.View() + "\n"
}

// RunWithSpinner runs fn in the background while showing an animated
// spinner. fn receives a callback to update the status line.
func RunWithSpinner(initial string, fn func(setStatus func(string)) error) error {
	events := make(chan tea.Msg, 16)

	sp := components.NewSpinner()
	sp.SetStatusText(initial)
	sp.Start()

	go func() {
		err := fn(func(status string) {
			events <- taskStatusMsg(status)
		})
		events <- taskDoneMsg{err: err}
	}()

	final, err := tea.NewProgram(spinnerModel{spinner: sp, events: events}).Run()
	if err != nil {
		return err
	}
	return final.(spinnerModel).err
}
