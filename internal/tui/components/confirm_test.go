package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewConfirmDialog(t *testing.T) {
	c := NewConfirmDialog()

	if c.IsVisible() {
		t.Error("ConfirmDialog should be hidden by default")
	}

	if c.width != 50 {
		t.Errorf("Default width should be 50, got %d", c.width)
	}
}

func TestConfirmDialogShow(t *testing.T) {
	c := NewConfirmDialog()

	c.Show(ConfirmActionPrune, "Test Title", "Test Message", true)

	if !c.IsVisible() {
		t.Error("Show should make dialog visible")
	}
	if c.Action() != ConfirmActionPrune {
		t.Error("Action should be prune")
	}
	if c.title != "Test Title" {
		t.Errorf("Title should be 'Test Title', got %s", c.title)
	}
	if c.message != "Test Message" {
		t.Errorf("Message should be 'Test Message', got %s", c.message)
	}
	if !c.destructive {
		t.Error("Destructive should be true")
	}
}

func TestConfirmDialogShowPrune(t *testing.T) {
	c := NewConfirmDialog()

	c.ShowPrune(3)

	if !c.IsVisible() {
		t.Error("ShowPrune should make dialog visible")
	}
	if c.Action() != ConfirmActionPrune {
		t.Error("Action should be prune")
	}
	if !c.destructive {
		t.Error("Branch deletion should be destructive")
	}
	if !strings.Contains(c.message, "3 local branches") {
		t.Errorf("Message should contain branch count, got %s", c.message)
	}
}

func TestConfirmDialogShowPruneSingular(t *testing.T) {
	c := NewConfirmDialog()

	c.ShowPrune(1)

	if !strings.Contains(c.message, "1 local branch.") {
		t.Errorf("Message should use singular form, got %s", c.message)
	}
}

func TestConfirmDialogShowRefresh(t *testing.T) {
	c := NewConfirmDialog()

	c.ShowRefresh(4)

	if !c.IsVisible() {
		t.Error("ShowRefresh should make dialog visible")
	}
	if c.Action() != ConfirmActionRefresh {
		t.Error("Action should be refresh")
	}
	if c.destructive {
		t.Error("Refresh should not be destructive")
	}
	if !strings.Contains(c.message, "4 packages") {
		t.Errorf("Message should contain package count, got %s", c.message)
	}
}

func TestConfirmDialogHide(t *testing.T) {
	c := NewConfirmDialog()
	c.ShowPrune(2)
	c.Hide()

	if c.IsVisible() {
		t.Error("Hide should make dialog hidden")
	}
}

func TestConfirmDialogSetSize(t *testing.T) {
	c := NewConfirmDialog()

	c.SetSize(80)

	if c.width != 80 {
		t.Errorf("Width should be 80, got %d", c.width)
	}
}

func TestConfirmDialogUpdateWhenHidden(t *testing.T) {
	c := NewConfirmDialog()

	cmd := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd != nil {
		t.Error("Update when hidden should return nil")
	}
}

func TestConfirmDialogUpdateYes(t *testing.T) {
	yesKeys := []string{"y", "Y", "enter"}

	for _, key := range yesKeys {
		c := NewConfirmDialog()
		c.ShowPrune(2)

		var msg tea.KeyMsg
		if key == "enter" {
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}

		cmd := c.Update(msg)

		if c.IsVisible() {
			t.Errorf("Key '%s' should hide the dialog", key)
		}

		if cmd == nil {
			t.Errorf("Key '%s' should return a command", key)
			continue
		}

		result := cmd()
		if yesMsg, ok := result.(ConfirmYesMsg); !ok {
			t.Errorf("Key '%s' should return ConfirmYesMsg", key)
		} else if yesMsg.Action != ConfirmActionPrune {
			t.Errorf("Action should be prune, got %s", yesMsg.Action)
		}
	}
}

func TestConfirmDialogUpdateNo(t *testing.T) {
	noKeys := []string{"n", "N", "esc"}

	for _, key := range noKeys {
		c := NewConfirmDialog()
		c.ShowPrune(2)

		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}

		cmd := c.Update(msg)

		if c.IsVisible() {
			t.Errorf("Key '%s' should hide the dialog", key)
		}

		if cmd == nil {
			t.Errorf("Key '%s' should return a command", key)
			continue
		}

		result := cmd()
		if _, ok := result.(ConfirmNoMsg); !ok {
			t.Errorf("Key '%s' should return ConfirmNoMsg", key)
		}
	}
}

func TestConfirmDialogViewWhenHidden(t *testing.T) {
	c := NewConfirmDialog()

	view := c.View()
	if view != "" {
		t.Error("View should be empty when hidden")
	}
}

func TestConfirmDialogViewWhenVisible(t *testing.T) {
	c := NewConfirmDialog()
	c.ShowPrune(2)

	view := c.View()

	if !strings.Contains(view, "Delete") {
		t.Error("View should contain the title")
	}
	if !strings.Contains(view, "[Y]es") {
		t.Error("View should contain Yes button")
	}
	if !strings.Contains(view, "[N]o") {
		t.Error("View should contain No button")
	}
}
