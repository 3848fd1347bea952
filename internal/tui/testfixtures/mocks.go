package testfixtures

import (
	"sync"

	"github.com/mark3labs/oli/internal/booking"
)

// RecordingSink is a booking.Sink that keeps every published event.
type RecordingSink struct {
	mu     sync.Mutex
	events []booking.Event
}

// NewRecordingSink creates an empty sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Publish records the event.
func (s *RecordingSink) Publish(e booking.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of the recorded events.
func (s *RecordingSink) Events() []booking.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]booking.Event(nil), s.events...)
}

// Types returns the recorded event types in order.
func (s *RecordingSink) Types() []booking.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]booking.EventType, len(s.events))
	for i, e := range s.events {
		types[i] = e.Type
	}
	return types
}

// Reset clears all recorded events.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
