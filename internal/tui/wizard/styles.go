package wizard

import (
	"strings"

	"github.com/mark3labs/oli/internal/tui/theme"
)

// renderHintBar renders a hint bar with the given key-description pairs.
// Example: renderHintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

// renderError renders an inline validation message.
func renderError(msg string) string {
	return theme.Current().S().Error.Render("✗ " + msg)
}

// renderSuccess renders an inline confirmation message.
func renderSuccess(msg string) string {
	return theme.Current().S().Success.Render("✓ " + msg)
}

// label renders a muted form label.
func label(text string) string {
	return theme.Current().S().Subtitle.Render(text)
}
