package wizard

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/oli/internal/booking"
)

// Step components never touch the controller. They report user intent with
// these messages and the WizardModel applies them.

// AddressSubmittedMsg is sent when a 5-digit ZIP is submitted for checking.
type AddressSubmittedMsg struct {
	Zip string
}

// ServiceChosenMsg is sent when a service card is picked.
type ServiceChosenMsg struct {
	ServiceID string
}

// DateChangedMsg asks for a fresh availability query for Date.
type DateChangedMsg struct {
	Date string
}

// SlotChosenMsg is sent when an available time slot is picked.
type SlotChosenMsg struct {
	Date string
	Slot booking.TimeSlot
}

// ProviderContinueMsg is sent when the user accepts the assigned provider.
type ProviderContinueMsg struct{}

// ContactSubmittedMsg carries a locally validated contact form.
type ContactSubmittedMsg struct {
	Guest         booking.GuestInfo
	CreateProfile bool
}

// NewBookingMsg starts over from the confirmation screen.
type NewBookingMsg struct{}

// ExitMsg closes the wizard from the confirmation screen.
type ExitMsg struct{}

// TabExitMsg moves keyboard focus from step content to the button bar.
type TabExitMsg struct{}

// AdvanceMsg applies a staged auto-advance once the display delay elapses.
type AdvanceMsg struct {
	Advance booking.Advance
}

// Simulated latency completions.
type (
	zipCheckedMsg  struct{ zip string }
	slotsLoadedMsg struct{ date string }
	submitReadyMsg struct {
		guest         booking.GuestInfo
		createProfile bool
	}
)

// emit wraps msg in a command.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// after delivers msg once d has elapsed. A zero delay delivers immediately.
func after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return emit(msg)
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
