// Package markdown renders booking summaries and catalog listings for the
// terminal.
package markdown

import (
	"strings"

	"charm.land/glamour/v2"
	"github.com/charmbracelet/x/ansi"
)

// MaxWidth caps the wrap width for readability on wide terminals.
const MaxWidth = 120

// Render renders markdown content using glamour with the dark style.
// Falls back to plain word wrapping if rendering fails.
func Render(content string, width int) string {
	if width > MaxWidth {
		width = MaxWidth
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return Wrap(content, width)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return Wrap(content, width)
	}

	return trimTrailingBlank(rendered)
}

// trimTrailingBlank drops the padded blank lines glamour appends. A line is
// blank when only spaces remain after stripping styling.
func trimTrailingBlank(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Wrap breaks each line of text on word boundaries so no line exceeds width
// cells, unless a single word is longer than width.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		current := words[0]
		for _, w := range words[1:] {
			if ansi.StringWidth(current)+1+ansi.StringWidth(w) > width {
				out = append(out, current)
				current = w
				continue
			}
			current += " " + w
		}
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}
