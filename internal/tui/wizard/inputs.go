package wizard

import (
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/oli/internal/tui/theme"
)

// newTextInput creates a prompt-less text input with the theme's styles.
func newTextInput(placeholder string, width int) textinput.Model {
	t := theme.Current()
	c := lipgloss.Color

	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(c(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(c(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(c(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: c(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	in.SetWidth(width)
	return in
}

// newSpinner creates the dot spinner shown during simulated latency.
func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Current().S().Accent),
	)
}
