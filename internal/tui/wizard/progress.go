package wizard

import (
	"strings"

	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/tui/theme"
)

// renderProgress renders one marker per step: done, current or pending.
func renderProgress(steps []booking.StepStatus) string {
	s := theme.Current().S()
	parts := make([]string, 0, len(steps))
	for _, st := range steps {
		switch {
		case st.Current:
			parts = append(parts, s.ProgressCurrent.Render("● "+st.Title))
		case st.Completed:
			parts = append(parts, s.ProgressDone.Render("✓ "+st.Title))
		default:
			parts = append(parts, s.ProgressPending.Render("○ "+st.Title))
		}
	}
	return strings.Join(parts, s.HintSeparator.Render(" › "))
}
