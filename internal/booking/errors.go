package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Guard failures. None of these are fatal; the wizard stays on the current
// step and waits for fresh input. UserMessage has the text to show for each.
var (
	ErrInvalidZip       = errors.New("invalid zip code")
	ErrAreaNotServed    = errors.New("area not served")
	ErrUnknownService   = errors.New("unknown service")
	ErrInvalidDate      = errors.New("invalid date")
	ErrSlotUnavailable  = errors.New("slot unavailable")
	ErrNoProviders      = errors.New("no providers available")
	ErrNoAvailableSlots = errors.New("no available slots")
)

var userMessages = []struct {
	err error
	msg string
}{
	{ErrInvalidZip, "Please enter a 5-digit ZIP code"},
	{ErrAreaNotServed, "Sorry, we don't currently service this area. We're expanding soon!"},
	{ErrUnknownService, "Selected service is not in our catalog"},
	{ErrInvalidDate, "Date must be in YYYY-MM-DD format"},
	{ErrSlotUnavailable, "That time is no longer available. Please pick another time."},
	{ErrNoProviders, "No providers are available right now"},
	{ErrNoAvailableSlots, "No available times for this date."},
}

// UserMessage returns the text shown to the customer for err. Errors without
// customer-facing copy fall back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}

// StepError is returned when an operation is attempted from the wrong step.
type StepError struct {
	Op      string
	Current Step
	Want    Step
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: not allowed on %s step (expected %s)", e.Op, e.Current, e.Want)
}

// Field identifies a contact form field.
type Field string

// Contact form fields.
const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldPhone Field = "phone"
)

// ValidationError carries per-field messages from contact validation.
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[Field(k)]))
	}
	return "invalid contact details (" + strings.Join(parts, "; ") + ")"
}

// Message returns the message for a field, or "" if the field is valid.
func (e *ValidationError) Message(f Field) string {
	if e == nil {
		return ""
	}
	return e.Fields[f]
}

// FieldErrors extracts field messages from err, or nil if err is not a
// validation failure.
func FieldErrors(err error) map[Field]string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
