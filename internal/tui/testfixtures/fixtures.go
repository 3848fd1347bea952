package testfixtures

import (
	"time"

	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/catalog"
)

// FixedNow is the clock every TUI test runs at. Tomorrow is 2026-03-15.
var FixedNow = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

// Dates relative to FixedNow.
const (
	Tomorrow = "2026-03-15"
	DayAfter = "2026-03-16"
)

// ScriptedRand replays fixed values. Floats and Ints cycle; empty slices
// yield 0.9 (slot available) and 0.
type ScriptedRand struct {
	Floats []float64
	Ints   []int
	fi, ii int
}

// Float64 returns the next scripted float.
func (r *ScriptedRand) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0.9
	}
	f := r.Floats[r.fi%len(r.Floats)]
	r.fi++
	return f
}

// IntN returns the next scripted int reduced modulo n.
func (r *ScriptedRand) IntN(n int) int {
	if len(r.Ints) == 0 || n <= 0 {
		return 0
	}
	v := r.Ints[r.ii%len(r.Ints)]
	r.ii++
	return v % n
}

// AllAvailable makes every generated slot available and every provider pick
// the first provider.
func AllAvailable() *ScriptedRand {
	return &ScriptedRand{Floats: []float64{0.9}, Ints: []int{0}}
}

// NoneAvailable makes every generated slot unavailable.
func NoneAvailable() *ScriptedRand {
	return &ScriptedRand{Floats: []float64{0.1}}
}

// NewController returns a controller over the default catalog at FixedNow.
func NewController(rnd *ScriptedRand, opts ...booking.Option) *booking.Controller {
	if rnd == nil {
		rnd = AllAvailable()
	}
	base := []booking.Option{
		booking.WithRand(rnd),
		booking.WithClock(func() time.Time { return FixedNow }),
	}
	return booking.New(catalog.New(rnd), append(base, opts...)...)
}

// Guest is a contact form that passes validation.
var Guest = booking.GuestInfo{
	Name:  "Jane Doe",
	Email: "jane@example.com",
	Phone: "(555) 123-4567",
}
