package catalog

import (
	"fmt"
	"slices"

	"github.com/mark3labs/oli/internal/booking"
)

// SupportedZips is the service-area allow-list. Matching is exact.
var SupportedZips = []string{
	"90210", "90211", "90212", "90213", "90401", "90402", "90403",
	"10001", "10002", "10003", "10004", "10005", "10006", "10007", "10099",
	"60601", "60602", "60603", "60604", "60605", "60606", "60607",
	"33101", "33102", "33103", "33104", "33105", "33106", "33107",
	"75201", "75202", "75203", "75204", "75205", "75206", "75207",
}

// PopularZips are offered as suggestions on the location step.
var PopularZips = []string{"90210", "10001", "60601", "33101", "75201"}

// knownAddresses gives display-quality city and state for a few ZIPs.
var knownAddresses = map[string]struct{ city, state string }{
	"90210": {"Beverly Hills", "CA"},
	"10001": {"New York", "NY"},
	"60601": {"Chicago", "IL"},
	"33101": {"Miami", "FL"},
	"75201": {"Dallas", "TX"},
}

// Placeholder city and state for supported ZIPs without a table entry.
const (
	PlaceholderCity  = "Your City"
	PlaceholderState = "ST"
)

// IsSupported reports whether zip is in the service-area allow-list.
func IsSupported(zip string) bool {
	return slices.Contains(SupportedZips, zip)
}

// ResolveAddress maps a supported ZIP to an address. Unsupported ZIPs return
// false; supported ZIPs without a table entry get the placeholder city.
func ResolveAddress(zip string) (booking.Address, bool) {
	if !IsSupported(zip) {
		return booking.Address{}, false
	}

	city, state := PlaceholderCity, PlaceholderState
	if known, ok := knownAddresses[zip]; ok {
		city, state = known.city, known.state
	}
	return booking.Address{
		ZipCode:   zip,
		City:      city,
		State:     state,
		Formatted: fmt.Sprintf("%s, %s %s", city, state, zip),
	}, true
}
