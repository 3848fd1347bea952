package booking

import "time"

// EventType names a controller lifecycle event.
type EventType string

// Controller lifecycle events.
const (
	EventAddressSelected  EventType = "address.selected"
	EventServiceSelected  EventType = "service.selected"
	EventSlotSelected     EventType = "slot.selected"
	EventProviderAssigned EventType = "provider.assigned"
	EventStepChanged      EventType = "step.changed"
	EventValidationFailed EventType = "validation.failed"
	EventConfirmed        EventType = "booking.confirmed"
	EventReset            EventType = "booking.reset"
)

// Event is a snapshot emitted after the controller changes state or rejects input.
type Event struct {
	Type      EventType `json:"type"`
	Step      Step      `json:"step"`
	From      Step      `json:"from"`
	BookingID string    `json:"booking_id,omitempty"`
	Message   string    `json:"message,omitempty"`
	Draft     Draft     `json:"draft"`
	At        time.Time `json:"at"`
}

// Sink receives controller events. Implementations must not block; the
// controller calls Publish synchronously.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

// Publish calls f(e).
func (f SinkFunc) Publish(e Event) { f(e) }

type discardSink struct{}

func (discardSink) Publish(Event) {}

// MarshalText encodes the step as its machine name.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a machine name.
func (s *Step) UnmarshalText(b []byte) error {
	parsed, err := ParseStep(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
