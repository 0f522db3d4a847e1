package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m fieldModel, s string) fieldModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(fieldModel)
}

func press(m fieldModel, k tea.KeyType) (fieldModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(fieldModel), cmd
}

func TestFieldModel_ValidatesOnEnter(t *testing.T) {
	m := newFieldModel("Serial", validEight)

	m = typeText(m, "short")
	m, cmd := press(m, tea.KeyEnter)
	if m.done {
		t.Fatal("invalid value accepted")
	}
	if cmd != nil {
		t.Error("form quit on invalid value")
	}
	if m.errMsg == "" {
		t.Error("no validation error shown")
	}

	m.input.SetValue("")
	m = typeText(m, "00e20100")
	m, cmd = press(m, tea.KeyEnter)
	if !m.done || m.value != "00e20100" {
		t.Errorf("done = %v, value = %q", m.done, m.value)
	}
	if cmd == nil {
		t.Error("form did not quit on valid value")
	}
	if m.View() != "" {
		t.Error("View() not empty after completion")
	}
}

func TestFieldModel_Cancel(t *testing.T) {
	m := newFieldModel("Address", nil)
	m, cmd := press(m, tea.KeyEsc)
	if !m.cancelled {
		t.Error("cancelled = false after esc")
	}
	if cmd == nil {
		t.Error("form did not quit on esc")
	}
}
