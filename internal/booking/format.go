package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for draft dates.
const DateLayout = "2006-01-02"

// ParseDate parses a draft date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatTime renders "HH:MM" as a 12-hour clock, e.g. "14:30" -> "2:30 PM".
// Unparseable input is returned unchanged.
func FormatTime(hhmm string) string {
	hour, minute, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	h, err := strconv.Atoi(hour)
	if err != nil {
		return hhmm
	}

	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	display := h
	switch {
	case h > 12:
		display = h - 12
	case h == 0:
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, minute, ampm)
}

// FormatDateShort renders a date for the date strip: "Tomorrow" for the day
// after now, otherwise "Mon, Jan 2".
func FormatDateShort(date string, now time.Time) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	tomorrow := now.AddDate(0, 0, 1)
	if t.Year() == tomorrow.Year() && t.YearDay() == tomorrow.YearDay() {
		return "Tomorrow"
	}
	return t.Format("Mon, Jan 2")
}

// FormatDateMedium renders "Monday, January 2".
func FormatDateMedium(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2")
}

// FormatDateLong renders "Monday, January 2, 2006".
func FormatDateLong(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// StartingPrice returns the low end of a "$low-high" price range.
func StartingPrice(priceRange string) string {
	low, _, _ := strings.Cut(priceRange, "-")
	return low
}
