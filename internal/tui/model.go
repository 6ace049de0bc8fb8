package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptModel holds the state of one yes/no question.
type PromptModel struct {
	Question string
	Default  bool

	// Result
	Answer    bool
	Done      bool
	Cancelled bool

	// UI State
	Input   textinput.Model
	Invalid string // Last unrecognized input, shown as a hint
}

// NewPromptModel returns a focused prompt for question.
func NewPromptModel(question string, def bool) PromptModel {
	ti := textinput.New()
	ti.Placeholder = "y/n"
	ti.CharLimit = 8
	ti.Width = 8
	ti.Prompt = ""
	ti.Focus()

	return PromptModel{
		Question: question,
		Default:  def,
		Input:    ti,
	}
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}
