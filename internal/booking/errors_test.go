package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"invalid zip", ErrInvalidZip, "Please enter a 5-digit ZIP code"},
		{"area not served", ErrAreaNotServed, "Sorry, we don't currently service this area. We're expanding soon!"},
		{"wrapped", fmt.Errorf("%w: %q", ErrUnknownService, "x"), "Selected service is not in our catalog"},
		{"no slots", ErrNoAvailableSlots, "No available times for this date."},
		{"step error", &StepError{Op: "submit", Current: StepAddress, Want: StepBooking}, "submit: not allowed on address step (expected booking)"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestSentinelsAreGoStyle(t *testing.T) {
	t.Parallel()

	for _, m := range userMessages {
		text := m.err.Error()
		require.Regexp(t, `^[a-z][a-z ]*[a-z]$`, text, "lowercase without trailing punctuation")
		require.NotEqual(t, m.msg, text)
	}
}
