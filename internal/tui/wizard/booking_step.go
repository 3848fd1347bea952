package wizard

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/tui/theme"
)

var contactFields = []struct {
	field       booking.Field
	label       string
	placeholder string
}{
	{booking.FieldName, "Full Name", "Enter your full name"},
	{booking.FieldEmail, "Email Address", "Enter your email"},
	{booking.FieldPhone, "Phone Number", "(555) 123-4567"},
}

const createProfileLabel = "Create a profile for faster future bookings"

// BookingStep shows the booking summary and the contact form. Focus runs
// over the inputs and then the create-profile checkbox.
type BookingStep struct {
	inputs        []textinput.Model
	focusIndex    int
	createProfile bool
	errors     map[booking.Field]string
	submitting bool
	spinner    spinner.Model
	draft      booking.Draft
	width      int
}

// NewBookingStep creates the contact form.
func NewBookingStep() *BookingStep {
	inputs := make([]textinput.Model, len(contactFields))
	for i, f := range contactFields {
		inputs[i] = newTextInput(f.placeholder, 40)
		inputs[i].CharLimit = 120
	}
	return &BookingStep{
		inputs:  inputs,
		spinner: newSpinner(),
		width:   60,
	}
}

// Focus focuses the first field.
func (s *BookingStep) Focus() tea.Cmd {
	s.focusIndex = 0
	return s.updateFocus()
}

// FocusLast focuses the create-profile checkbox.
func (s *BookingStep) FocusLast() tea.Cmd {
	s.focusIndex = s.checkboxIndex()
	return s.updateFocus()
}

func (s *BookingStep) checkboxIndex() int {
	return len(s.inputs)
}

// CreateProfile reports whether the create-profile box is checked.
func (s *BookingStep) CreateProfile() bool {
	return s.createProfile
}

// Blur removes focus from every field.
func (s *BookingStep) Blur() {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
}

// FocusIndex returns the focused field index.
func (s *BookingStep) FocusIndex() int {
	return s.focusIndex
}

// SetSize updates the dimensions for the step.
func (s *BookingStep) SetSize(width, _ int) {
	s.width = width
	for i := range s.inputs {
		s.inputs[i].SetWidth(max(width-10, 20))
	}
}

// SetDraft sets the summary and restores saved contact details into empty
// fields.
func (s *BookingStep) SetDraft(d booking.Draft) {
	s.draft = d
	if d.GuestInfo == nil {
		return
	}
	values := []string{d.GuestInfo.Name, d.GuestInfo.Email, d.GuestInfo.Phone}
	for i, v := range values {
		if s.inputs[i].Value() == "" {
			s.inputs[i].SetValue(v)
		}
	}
}

// Guest returns the form values.
func (s *BookingStep) Guest() booking.GuestInfo {
	return booking.GuestInfo{
		Name:  s.inputs[0].Value(),
		Email: s.inputs[1].Value(),
		Phone: s.inputs[2].Value(),
	}
}

// Errors returns the current field errors.
func (s *BookingStep) Errors() map[booking.Field]string {
	return s.errors
}

// SetErrors shows field errors and ends any submission in flight.
func (s *BookingStep) SetErrors(errs map[booking.Field]string) {
	s.errors = errs
	s.submitting = false
}

// Submitting reports whether a submission is in flight.
func (s *BookingStep) Submitting() bool {
	return s.submitting
}

// StartSubmitting shows the "Creating Booking..." spinner.
func (s *BookingStep) StartSubmitting() tea.Cmd {
	s.submitting = true
	s.errors = nil
	return s.spinner.Tick
}

// Submitted ends a successful submission.
func (s *BookingStep) Submitted() {
	s.submitting = false
}

// Reset clears every field.
func (s *BookingStep) Reset() {
	for i := range s.inputs {
		s.inputs[i].Reset()
	}
	s.errors = nil
	s.submitting = false
	s.focusIndex = 0
	s.createProfile = false
	s.draft = booking.Draft{}
}

// Update handles messages for the booking step.
func (s *BookingStep) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !s.submitting {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tick)
		return cmd
	}

	keyMsg, isKey := msg.(tea.KeyPressMsg)
	if isKey && s.submitting {
		return nil
	}
	if isKey {
		switch keyMsg.String() {
		case "tab", "down":
			if s.focusIndex == s.checkboxIndex() {
				if keyMsg.String() == "down" {
					return nil
				}
				s.Blur()
				return emit(TabExitMsg{})
			}
			s.focusIndex++
			return s.updateFocus()
		case "shift+tab", "up":
			if s.focusIndex > 0 {
				s.focusIndex--
				return s.updateFocus()
			}
			return nil
		case "enter":
			g := s.Guest()
			if errs := booking.FieldErrors(booking.ValidateGuestInfo(g)); errs != nil {
				s.errors = errs
				return nil
			}
			return emit(ContactSubmittedMsg{Guest: g, CreateProfile: s.createProfile})
		}
	}

	if s.focusIndex == s.checkboxIndex() {
		if isKey && (keyMsg.String() == "space" || keyMsg.String() == "x") {
			s.createProfile = !s.createProfile
		}
		return nil
	}

	var cmd tea.Cmd
	s.inputs[s.focusIndex], cmd = s.inputs[s.focusIndex].Update(msg)
	if isKey && s.errors != nil {
		delete(s.errors, contactFields[s.focusIndex].field)
	}
	return cmd
}

func (s *BookingStep) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range s.inputs {
		if i == s.focusIndex {
			cmd = s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	return cmd
}

// View renders the booking step.
func (s *BookingStep) View() string {
	st := theme.Current().S()
	var b strings.Builder

	b.WriteString(st.Card.Render(s.renderSummary()))
	b.WriteString("\n\n")
	b.WriteString(label("Your Information"))
	b.WriteString("\n\n")

	for i, f := range contactFields {
		b.WriteString(label(f.label))
		b.WriteString("\n")
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n")
		if msg := s.errors[f.field]; msg != "" {
			b.WriteString(renderError(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if s.submitting {
		b.WriteString(s.spinner.View() + " Creating Booking...")
		b.WriteString("\n\n")
	}

	b.WriteString(s.renderCheckbox())
	b.WriteString("\n\n")

	b.WriteString(renderHintBar("tab", "next field", "space", "toggle", "enter", "confirm booking", "esc", "back"))
	return b.String()
}

func (s *BookingStep) renderCheckbox() string {
	st := theme.Current().S()
	box := "[ ]"
	if s.createProfile {
		box = "[x]"
	}
	if s.focusIndex == s.checkboxIndex() {
		return st.Accent.Render(box + " " + createProfileLabel)
	}
	return st.Text.Render(box + " " + createProfileLabel)
}

func (s *BookingStep) renderSummary() string {
	st := theme.Current().S()
	d := s.draft

	row := func(name, value string) string {
		return st.Muted.Render(name+": ") + st.Text.Render(value)
	}

	lines := []string{st.Bright.Render("Booking Summary")}
	if d.Service != nil {
		lines = append(lines, st.Accent.Render(d.Service.Name)+"  "+st.Text.Render(booking.StartingPrice(d.Service.PriceRange)))
	}
	if d.Provider != nil {
		lines = append(lines, row("Provider", d.Provider.Name))
	}
	if d.Date != "" {
		lines = append(lines, row("Date", booking.FormatDateLong(d.Date)))
	}
	if d.Time != "" {
		lines = append(lines, row("Time", booking.FormatTime(d.Time)))
	}
	if d.Address != nil {
		lines = append(lines, row("Location", d.Address.Formatted))
	}
	return strings.Join(lines, "\n")
}
