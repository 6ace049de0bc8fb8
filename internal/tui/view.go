package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"column79/internal/ask"
	"column79/internal/model"
)

var (
	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")) // Pinkish

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Grey

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)

	lengthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green
)

func (m PromptModel) View() string {
	if m.Done || m.Cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(questionStyle.Render(model.IconPrompt + " " + m.Question))
	b.WriteString(" ")
	b.WriteString(hintStyle.Render(ask.Hint(m.Default)))
	b.WriteString(" ")
	b.WriteString(m.Input.View())
	if m.Invalid != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("  %q is not an answer; type y, n, or press enter for the default", m.Invalid)))
	}
	b.WriteString("\n")
	return b.String()
}

// Reporter renders report lines with terminal styling.
type Reporter struct {
	W io.Writer
}

// Violation prints d with the path, length and line styled apart.
func (r Reporter) Violation(d model.Diagnostic) {
	fmt.Fprintf(r.W, "%s %s %s %s\n",
		lengthStyle.Render(model.IconViolation),
		pathStyle.Render(fmt.Sprintf("%s(%d):", d.Path, d.Row)),
		lengthStyle.Render(fmt.Sprintf("%d :", d.Length)),
		lineStyle.Render(d.Line),
	)
}

// Committed prints the backup and replaced paths of c.
func (r Reporter) Committed(c model.Commit) {
	fmt.Fprintf(r.W, "%s %s\n", hintStyle.Render(model.IconBackup+" backup:"), c.Backup)
	fmt.Fprintf(r.W, "%s %s\n", doneStyle.Render(model.IconReplace+" replace:"), pathStyle.Render(c.Path))
}
