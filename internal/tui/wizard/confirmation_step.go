package wizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/tui/markdown"
)

// ConfirmationStep shows the confirmed booking and offers to start over.
type ConfirmationStep struct {
	draft     booking.Draft
	bookingID string
	buttons   *ButtonBar
	width     int
	rendered  string // cached markdown render
}

// NewConfirmationStep creates the confirmation screen.
func NewConfirmationStep() *ConfirmationStep {
	bar := NewButtonBar(CreateConfirmationButtons())
	bar.FocusFirst()
	return &ConfirmationStep{buttons: bar, width: 60}
}

// SetSize updates the dimensions for the step.
func (s *ConfirmationStep) SetSize(width, _ int) {
	if width != s.width {
		s.rendered = ""
	}
	s.width = width
	s.buttons.SetWidth(width)
}

// SetBooking sets the confirmed draft and ID.
func (s *ConfirmationStep) SetBooking(d booking.Draft, bookingID string) {
	s.draft = d
	s.bookingID = bookingID
	s.rendered = ""
	s.buttons.FocusFirst()
}

// Update handles messages for the confirmation step.
func (s *ConfirmationStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "left", "shift+tab":
		s.buttons.FocusPrev()
	case "right", "tab":
		s.buttons.FocusNext()
	case "enter":
		id, _ := s.buttons.Selected()
		if id == ButtonExit {
			return emit(ExitMsg{})
		}
		return emit(NewBookingMsg{})
	case "n":
		return emit(NewBookingMsg{})
	case "q":
		return emit(ExitMsg{})
	}
	return nil
}

// View renders the confirmation step.
func (s *ConfirmationStep) View() string {
	if s.rendered == "" {
		s.rendered = markdown.Render(ConfirmationMarkdown(s.draft, s.bookingID), s.width)
	}
	return s.rendered + "\n\n" + s.buttons.Render() + "\n\n" +
		renderHintBar("←→", "choose", "enter", "select", "n", "new booking", "q", "exit")
}

// ConfirmationMarkdown renders the booking as a markdown document.
func ConfirmationMarkdown(d booking.Draft, bookingID string) string {
	var b strings.Builder

	b.WriteString("# ✓ Booking Confirmed!\n\n")
	b.WriteString("Your appointment has been successfully scheduled.\n\n")
	fmt.Fprintf(&b, "Booking ID: `%s`\n\n", bookingID)

	b.WriteString("## Appointment Details\n\n")
	if d.Service != nil {
		fmt.Fprintf(&b, "- **%s** (%d minutes): %s\n", d.Service.Name, d.Service.Duration, d.Service.Description)
	}
	if d.Date != "" {
		fmt.Fprintf(&b, "- **When:** %s at %s\n", booking.FormatDateLong(d.Date), booking.FormatTime(d.Time))
	}
	if d.Address != nil {
		fmt.Fprintf(&b, "- **Where:** %s. Your provider will arrive at your location.\n", d.Address.Formatted)
	}
	if d.Provider != nil {
		fmt.Fprintf(&b, "- **Provider:** %s, %s (★ %.1f)\n", d.Provider.Name, d.Provider.Title, d.Provider.Rating)
	}
	if d.GuestInfo != nil {
		fmt.Fprintf(&b, "- **Contact:** %s, %s, %s\n", d.GuestInfo.Name, d.GuestInfo.Email, d.GuestInfo.Phone)
	}

	b.WriteString("\n## What's Next?\n\n")
	b.WriteString("- You'll receive a confirmation email with all the details\n")
	b.WriteString("- Your provider will call you 24 hours before your appointment\n")
	b.WriteString("- Please ensure someone is available at the scheduled time\n")
	b.WriteString("- If you need to reschedule, please call us at least 4 hours in advance\n")

	return b.String()
}
