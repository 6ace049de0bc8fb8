// Package tui provides the terminal front end: an interactive yes/no prompt
// and a styled report printer.
package tui

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"column79/internal/model"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Prompt asks questions with a bubbletea text input.
type Prompt struct {
	in  io.Reader
	out io.Writer
}

// NewPrompt returns a prompt reading keys from in and drawing on out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

// Ask runs one prompt program until an answer is given.
func (p *Prompt) Ask(question string, def bool) (bool, error) {
	prog := tea.NewProgram(NewPromptModel(question, def), tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		return false, &model.Error{Kind: model.ErrIO, Op: "prompt", Question: question, Err: err}
	}
	m, ok := final.(PromptModel)
	if !ok || m.Cancelled || !m.Done {
		return false, &model.Error{Kind: model.ErrIO, Op: "prompt", Question: question, Err: ErrCancelled}
	}
	return m.Answer, nil
}
