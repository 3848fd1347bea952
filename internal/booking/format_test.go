package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"09:00", "9:00 AM"},
		{"00:30", "12:30 AM"},
		{"12:00", "12:00 PM"},
		{"14:30", "2:30 PM"},
		{"18:30", "6:30 PM"},
		{"noon", "noon"},
		{"ab:00", "ab:00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, FormatTime(tt.in))
		})
	}
}

func TestFormatDates(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)

	require.Equal(t, "Tomorrow", FormatDateShort("2026-03-15", now))
	require.Equal(t, "Mon, Mar 16", FormatDateShort("2026-03-16", now))
	require.Equal(t, "Tomorrow", FormatDateShort("2027-01-01", time.Date(2026, 12, 31, 8, 0, 0, 0, time.UTC)))

	require.Equal(t, "Sunday, March 15", FormatDateMedium("2026-03-15"))
	require.Equal(t, "Thursday, December 31, 2026", FormatDateLong("2026-12-31"))

	// Bad input passes through untouched.
	require.Equal(t, "soon", FormatDateShort("soon", now))
	require.Equal(t, "soon", FormatDateLong("soon"))
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	require.Equal(t, time.March, d.Month())

	_, err = ParseDate("2026-3-15")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestStartingPrice(t *testing.T) {
	t.Parallel()

	require.Equal(t, "$120", StartingPrice("$120-150"))
	require.Equal(t, "$45", StartingPrice("$45"))
}

func TestNewBookingID(t *testing.T) {
	t.Parallel()

	id := NewBookingID(DefaultIDPrefix, time.UnixMilli(1_700_000_000_123))
	require.Equal(t, "OLI-00000123", id)
	require.Regexp(t, BookingIDPattern, id)

	require.Regexp(t, BookingIDPattern, NewBookingID("SPA", time.Now()))
}
