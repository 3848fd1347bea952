package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/oli/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// ButtonID identifies what a button does when pressed.
type ButtonID int

const (
	ButtonBack ButtonID = iota
	ButtonNext
	ButtonNewBooking
	ButtonExit
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling and an
// optional keyboard focus.
type ButtonBar struct {
	buttons []Button
	focus   int // index into buttons, -1 when the bar is not focused
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focus:   -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// SetButtons replaces the buttons. Focus stays on the same index when that
// button is still enabled, otherwise it moves to the nearest enabled one.
func (b *ButtonBar) SetButtons(buttons []Button) {
	b.buttons = buttons
	if b.focus < 0 {
		return
	}
	if b.focus >= len(buttons) {
		b.focus = len(buttons) - 1
	}
	if b.focus < 0 || buttons[b.focus].State == ButtonDisabled {
		if !b.FocusFirst() {
			b.Blur()
		}
	}
}

// Buttons returns the buttons as currently configured.
func (b *ButtonBar) Buttons() []Button {
	return b.buttons
}

// Focused reports whether a button has keyboard focus.
func (b *ButtonBar) Focused() bool {
	return b.focus >= 0
}

// FocusFirst focuses the first enabled button. It returns false when every
// button is disabled.
func (b *ButtonBar) FocusFirst() bool {
	for i, btn := range b.buttons {
		if btn.State != ButtonDisabled {
			b.focus = i
			return true
		}
	}
	b.focus = -1
	return false
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() bool {
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.focus = i
			return true
		}
	}
	b.focus = -1
	return false
}

// Blur removes keyboard focus from the bar.
func (b *ButtonBar) Blur() {
	b.focus = -1
}

// FocusNext moves focus to the next enabled button, wrapping around.
func (b *ButtonBar) FocusNext() {
	b.move(1)
}

// FocusPrev moves focus to the previous enabled button, wrapping around.
func (b *ButtonBar) FocusPrev() {
	b.move(-1)
}

func (b *ButtonBar) move(delta int) {
	n := len(b.buttons)
	if n == 0 || b.focus < 0 {
		return
	}
	for i := 1; i <= n; i++ {
		idx := ((b.focus+delta*i)%n + n) % n
		if b.buttons[idx].State != ButtonDisabled {
			b.focus = idx
			return
		}
	}
}

// Selected returns the focused button's ID.
func (b *ButtonBar) Selected() (ButtonID, bool) {
	if b.focus < 0 || b.focus >= len(b.buttons) {
		return 0, false
	}
	return b.buttons[b.focus].ID, true
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(b.buttons))
	for i, btn := range b.buttons {
		state := btn.State
		if i == b.focus && state != ButtonDisabled {
			state = ButtonFocused
		}
		switch state {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}

	// Center the button bar
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// CreateBackNextButtons creates the standard Back/Next button set. An empty
// nextLabel leaves out the forward button.
func CreateBackNextButtons(backEnabled, nextEnabled bool, nextLabel string) []Button {
	buttons := make([]Button, 0, 2)

	backState := ButtonNormal
	if !backEnabled {
		backState = ButtonDisabled
	}
	buttons = append(buttons, Button{ID: ButtonBack, Label: "← Back", State: backState})

	if nextLabel == "" {
		return buttons
	}
	nextState := ButtonNormal
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	buttons = append(buttons, Button{ID: ButtonNext, Label: nextLabel, State: nextState})

	return buttons
}

// CreateConfirmationButtons creates the buttons shown after a booking.
func CreateConfirmationButtons() []Button {
	return []Button{
		{ID: ButtonNewBooking, Label: "Book Another Service", State: ButtonNormal},
		{ID: ButtonExit, Label: "Exit", State: ButtonNormal},
	}
}
