package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/tui/theme"
)

const (
	slotColumns  = 4
	visibleDates = 5
)

// DateTimeStep shows a strip of upcoming dates and the available times for
// the highlighted one.
type DateTimeStep struct {
	now     time.Time
	dates   []string
	dateIdx int

	slots      []booking.TimeSlot // available slots for loadedDate
	loadedDate string
	loading    bool
	spinner    spinner.Model
	slotIdx    int
	err        string

	chosenDate string
	chosenTime string
	width      int
}

// NewDateTimeStep creates the picker over dates; now drives "Tomorrow".
func NewDateTimeStep(dates []string, now time.Time) *DateTimeStep {
	return &DateTimeStep{
		now:     now,
		dates:   dates,
		spinner: newSpinner(),
		width:   60,
	}
}

// SetSize updates the dimensions for the step.
func (s *DateTimeStep) SetSize(width, _ int) {
	s.width = width
}

// SetDraft highlights the draft's date and time when present.
func (s *DateTimeStep) SetDraft(d booking.Draft) {
	s.chosenDate, s.chosenTime = d.Date, d.Time
	for i, date := range s.dates {
		if date == d.Date {
			s.dateIdx = i
		}
	}
}

// Date returns the highlighted date, or "" when there are none.
func (s *DateTimeStep) Date() string {
	if len(s.dates) == 0 {
		return ""
	}
	return s.dates[s.dateIdx]
}

// NeedsSlots reports whether the highlighted date has no query yet.
func (s *DateTimeStep) NeedsSlots() bool {
	return s.Date() != "" && !s.loading && s.loadedDate != s.Date()
}

// Loading reports whether a slot query is in flight.
func (s *DateTimeStep) Loading() bool {
	return s.loading
}

// StartLoading clears the grid and shows the loading spinner.
func (s *DateTimeStep) StartLoading() tea.Cmd {
	s.loading = true
	s.loadedDate = ""
	s.slots = nil
	s.err = ""
	return s.spinner.Tick
}

// SetSlots fills the grid with the available slots of a finished query.
// Results for a date that is no longer highlighted are dropped.
func (s *DateTimeStep) SetSlots(date string, slots []booking.TimeSlot, err error) {
	if date != s.Date() {
		return
	}
	s.loading = false
	s.loadedDate = date
	s.slots = s.slots[:0]
	for _, slot := range slots {
		if slot.Available {
			s.slots = append(s.slots, slot)
		}
	}
	s.slotIdx = 0
	for i, slot := range s.slots {
		if date == s.chosenDate && slot.Time == s.chosenTime {
			s.slotIdx = i
		}
	}
	s.err = ""
	if err != nil && !errors.Is(err, booking.ErrNoAvailableSlots) {
		s.err = booking.UserMessage(err)
	}
}

// SetError shows an inline error under the grid.
func (s *DateTimeStep) SetError(msg string) {
	s.err = msg
}

// Slots returns the available slots shown in the grid.
func (s *DateTimeStep) Slots() []booking.TimeSlot {
	return s.slots
}

// Reset forgets the loaded slots and the chosen time.
func (s *DateTimeStep) Reset() {
	s.dateIdx = 0
	s.slots = nil
	s.loadedDate = ""
	s.loading = false
	s.slotIdx = 0
	s.err = ""
	s.chosenDate, s.chosenTime = "", ""
}

// Update handles messages for the date/time step.
func (s *DateTimeStep) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tick)
		return cmd
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "left", "h":
		if s.dateIdx > 0 {
			s.dateIdx--
			return emit(DateChangedMsg{Date: s.Date()})
		}
	case "right", "l":
		if s.dateIdx < len(s.dates)-1 {
			s.dateIdx++
			return emit(DateChangedMsg{Date: s.Date()})
		}
	case "up", "k":
		if s.slotIdx >= slotColumns {
			s.slotIdx -= slotColumns
		}
	case "down", "j":
		// A short last row has no cell below; land on its last slot.
		switch {
		case s.slotIdx+slotColumns < len(s.slots):
			s.slotIdx += slotColumns
		case s.slotIdx/slotColumns < (len(s.slots)-1)/slotColumns:
			s.slotIdx = len(s.slots) - 1
		}
	case "shift+left":
		if s.slotIdx > 0 {
			s.slotIdx--
		}
	case "shift+right":
		if s.slotIdx < len(s.slots)-1 {
			s.slotIdx++
		}
	case "r":
		if s.Date() != "" && !s.loading {
			return emit(DateChangedMsg{Date: s.Date()})
		}
	case "enter":
		if s.loading || len(s.slots) == 0 {
			return nil
		}
		return emit(SlotChosenMsg{Date: s.Date(), Slot: s.slots[s.slotIdx]})
	case "tab":
		return emit(TabExitMsg{})
	}
	return nil
}

// View renders the date/time step.
func (s *DateTimeStep) View() string {
	st := theme.Current().S()
	var b strings.Builder

	b.WriteString(label("Choose Date"))
	b.WriteString("\n\n")
	b.WriteString(s.renderDateStrip())
	b.WriteString("\n\n")

	b.WriteString(label("Choose Time"))
	if date := s.Date(); date != "" {
		b.WriteString(label(" · " + booking.FormatDateMedium(date)))
	}
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(s.spinner.View() + " Loading available times...")
	case s.loadedDate != "" && len(s.slots) == 0:
		b.WriteString(st.Warning.Render("No available times for this date."))
		b.WriteString("\n")
		b.WriteString(st.Muted.Render("Please select another date."))
	default:
		b.WriteString(s.renderSlotGrid())
	}
	b.WriteString("\n")

	if s.err != "" {
		b.WriteString(renderError(s.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHintBar("←→", "date", "↑↓ ⇧←→", "time", "enter", "select", "r", "refresh", "esc", "back"))
	return b.String()
}

// renderDateStrip renders a window of dates around the highlighted one.
func (s *DateTimeStep) renderDateStrip() string {
	if len(s.dates) == 0 {
		return ""
	}
	st := theme.Current().S()

	start := s.dateIdx - visibleDates/2
	if start > len(s.dates)-visibleDates {
		start = len(s.dates) - visibleDates
	}
	if start < 0 {
		start = 0
	}
	end := min(start+visibleDates, len(s.dates))

	cells := make([]string, 0, end-start+2)
	if start > 0 {
		cells = append(cells, st.Muted.Render("‹"))
	}
	for i := start; i < end; i++ {
		text := booking.FormatDateShort(s.dates[i], s.now)
		if i == s.dateIdx {
			cells = append(cells, st.CardSelected.Render(text))
		} else {
			cells = append(cells, st.Card.Render(text))
		}
	}
	if end < len(s.dates) {
		cells = append(cells, st.Muted.Render("›"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}

// renderSlotGrid lays the available slots out in rows of slotColumns.
func (s *DateTimeStep) renderSlotGrid() string {
	st := theme.Current().S()
	var rows []string
	var row []string
	for i, slot := range s.slots {
		text := booking.FormatTime(slot.Time)
		if s.loadedDate == s.chosenDate && slot.Time == s.chosenTime {
			text = "✓ " + text
		}
		text = fmt.Sprintf("%-10s", text)
		cell := st.ButtonNormal.Render(text)
		if i == s.slotIdx {
			cell = st.ButtonFocused.Render(text)
		}
		row = append(row, cell)
		if len(row) == slotColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}
