package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	minorStyle = titleStyle.Foreground(lipgloss.Color("12"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Terminal prints diagrams as bordered text blocks.
type Terminal struct {
	w io.Writer
}

// NewTerminal writes to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Diagram prints a title line and the boxed grid.
func (t *Terminal) Diagram(title string, lines []string, minor bool) error {
	style := titleStyle
	if minor {
		style = minorStyle
	}
	_, err := fmt.Fprintf(t.w, "%s\n%s\n", style.Render(title), boxStyle.Render(strings.Join(lines, "\n")))
	return err
}

// Error prints a failure message.
func (t *Terminal) Error(msg string) error {
	_, err := fmt.Fprintln(t.w, errorStyle.Render(msg))
	return err
}

// Message prints a plain reply.
func (t *Terminal) Message(msg string) error {
	_, err := fmt.Fprintln(t.w, msg)
	return err
}
