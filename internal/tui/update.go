package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"column79/internal/ask"
)

// Update handles key events. Enter submits the typed answer; anything other
// than empty, y/yes, or n/no clears the input and asks again.
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			answer, ok := ask.ParseAnswer(m.Input.Value(), m.Default)
			if !ok {
				m.Invalid = m.Input.Value()
				m.Input.SetValue("")
				return m, nil
			}
			m.Answer = answer
			m.Done = true
			m.Invalid = ""
			return m, tea.Quit
		}
	}

	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}
