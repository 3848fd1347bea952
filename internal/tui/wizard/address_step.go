package wizard

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/catalog"
)

const zipLength = 5

// AddressStep collects a ZIP code and shows whether the area is served.
type AddressStep struct {
	input      textinput.Model
	spinner    spinner.Model
	validating bool
	err        string
	confirmed  string // formatted address once accepted
	suggestion int    // index into catalog.PopularZips, -1 before cycling
	width      int
}

// NewAddressStep creates the ZIP entry step.
func NewAddressStep() *AddressStep {
	in := newTextInput("Enter your ZIP code", 20)
	in.CharLimit = zipLength
	return &AddressStep{
		input:      in,
		spinner:    newSpinner(),
		suggestion: -1,
		width:      60,
	}
}

// Focus focuses the ZIP input.
func (s *AddressStep) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes focus from the ZIP input.
func (s *AddressStep) Blur() {
	s.input.Blur()
}

// SetSize updates the dimensions for the step.
func (s *AddressStep) SetSize(width, _ int) {
	s.width = width
}

// SetDraft shows the address already on the draft, if any.
func (s *AddressStep) SetDraft(d booking.Draft) {
	if d.Address == nil {
		s.confirmed = ""
		return
	}
	s.confirmed = d.Address.Formatted
	if s.input.Value() == "" {
		s.input.SetValue(d.Address.ZipCode)
		s.input.CursorEnd()
	}
}

// Value returns the current ZIP input.
func (s *AddressStep) Value() string {
	return s.input.Value()
}

// Validating reports whether a ZIP check is in flight.
func (s *AddressStep) Validating() bool {
	return s.validating
}

// StartValidating shows the "Validating..." spinner.
func (s *AddressStep) StartValidating() tea.Cmd {
	s.validating = true
	s.err = ""
	return s.spinner.Tick
}

// Validated ends the check with either an accepted address or an error.
func (s *AddressStep) Validated(addr *booking.Address, err error) {
	s.validating = false
	if err != nil {
		s.err = booking.UserMessage(err)
		s.confirmed = ""
		return
	}
	if addr != nil {
		s.confirmed = addr.Formatted
	}
}

// Reset clears the input and any messages.
func (s *AddressStep) Reset() {
	s.input.Reset()
	s.err = ""
	s.confirmed = ""
	s.validating = false
	s.suggestion = -1
}

// Update handles messages for the address step.
func (s *AddressStep) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !s.validating {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tick)
		return cmd
	}

	keyMsg, isKey := msg.(tea.KeyPressMsg)
	if isKey && s.validating {
		return nil
	}
	if isKey {
		switch keyMsg.String() {
		case "enter":
			zip := strings.TrimSpace(s.input.Value())
			if len(zip) != zipLength {
				s.err = booking.UserMessage(booking.ErrInvalidZip)
				return nil
			}
			return emit(AddressSubmittedMsg{Zip: zip})
		case "tab":
			return emit(TabExitMsg{})
		case "ctrl+n":
			s.cycleSuggestion(1)
			return nil
		case "ctrl+p":
			s.cycleSuggestion(-1)
			return nil
		}
		if keyMsg.Text != "" && !isDigits(keyMsg.Text) {
			return nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if isKey {
		s.err = ""
	}
	return cmd
}

func (s *AddressStep) cycleSuggestion(delta int) {
	n := len(catalog.PopularZips)
	if n == 0 {
		return
	}
	if s.suggestion < 0 && delta < 0 {
		s.suggestion = 0
	}
	s.suggestion = ((s.suggestion+delta)%n + n) % n
	s.input.SetValue(catalog.PopularZips[s.suggestion])
	s.input.CursorEnd()
	s.err = ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// View renders the address step.
func (s *AddressStep) View() string {
	var b strings.Builder

	b.WriteString(label("Where do you need service?"))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")

	switch {
	case s.validating:
		b.WriteString(s.spinner.View() + " Validating...")
		b.WriteString("\n")
	case s.err != "":
		b.WriteString(renderError(s.err))
		b.WriteString("\n")
	case s.confirmed != "":
		b.WriteString(renderSuccess("Service area confirmed: " + s.confirmed))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(label("Popular service areas: " + strings.Join(catalog.PopularZips, "  ")))
	b.WriteString("\n\n")
	b.WriteString(renderHintBar("enter", "check", "ctrl+n/p", "popular", "tab", "buttons", "ctrl+c", "quit"))

	return b.String()
}
