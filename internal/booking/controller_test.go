package booking_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed values so provider assignment is deterministic.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func newController(t *testing.T, opts ...booking.Option) *booking.Controller {
	t.Helper()
	base := []booking.Option{
		booking.WithRand(&scriptedRand{ints: []int{2}}),
		booking.WithClock(func() time.Time { return fixedNow }),
	}
	return booking.New(catalog.New(&scriptedRand{}), append(base, opts...)...)
}

var validGuest = booking.GuestInfo{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "(555) 123-4567"}

// driveToBooking walks the controller to the details step.
func driveToBooking(t *testing.T, c *booking.Controller) {
	t.Helper()
	adv, err := c.SelectAddress("90210")
	require.NoError(t, err)
	require.True(t, c.Advance(adv))

	adv, err = c.SelectService("massage-60")
	require.NoError(t, err)
	require.True(t, c.Advance(adv))

	adv, err = c.SelectSlot("2026-03-15", booking.TimeSlot{Time: "10:30", Available: true})
	require.NoError(t, err)
	require.True(t, c.Advance(adv))

	require.NoError(t, c.ContinueFromProvider())
	require.Equal(t, booking.StepBooking, c.Step())
}

func TestController_InitialState(t *testing.T) {
	t.Parallel()

	c := newController(t)
	require.Equal(t, booking.StepAddress, c.Step())
	require.True(t, c.Draft().IsEmpty())
	require.Empty(t, c.BookingID())
	require.False(t, c.CanGoBack())
	require.False(t, c.CanGoForward())
}

func TestController_SelectAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		zip     string
		wantErr error
		want    *booking.Address
	}{
		{
			name: "tabulated zip",
			zip:  "90210",
			want: &booking.Address{ZipCode: "90210", City: "Beverly Hills", State: "CA", Formatted: "Beverly Hills, CA 90210"},
		},
		{
			name: "supported but untabulated zip",
			zip:  "10099",
			want: &booking.Address{ZipCode: "10099", City: "Your City", State: "ST", Formatted: "Your City, ST 10099"},
		},
		{
			name: "surrounding whitespace is trimmed",
			zip:  " 60601 ",
			want: &booking.Address{ZipCode: "60601", City: "Chicago", State: "IL", Formatted: "Chicago, IL 60601"},
		},
		{name: "unsupported zip", zip: "99999", wantErr: booking.ErrAreaNotServed},
		{name: "too short", zip: "9021", wantErr: booking.ErrInvalidZip},
		{name: "not numeric", zip: "9021a", wantErr: booking.ErrInvalidZip},
		{name: "empty", zip: "", wantErr: booking.ErrInvalidZip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newController(t)
			adv, err := c.SelectAddress(tt.zip)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, c.Draft().Address)
				require.False(t, c.Advance(adv))
				require.Equal(t, booking.StepAddress, c.Step())
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, c.Draft().Address)
			require.Equal(t, booking.Advance{From: booking.StepAddress, To: booking.StepService}, adv)

			// Selection alone doesn't move; the staged advance does.
			require.Equal(t, booking.StepAddress, c.Step())
			require.True(t, c.Advance(adv))
			require.Equal(t, booking.StepService, c.Step())
		})
	}
}

func TestController_EverySupportedZipAdvances(t *testing.T) {
	t.Parallel()

	for _, zip := range catalog.SupportedZips {
		c := newController(t)
		adv, err := c.SelectAddress(zip)
		require.NoError(t, err, zip)
		require.True(t, c.Advance(adv), zip)
		require.Equal(t, booking.StepService, c.Step(), zip)
		require.Equal(t, zip, c.Draft().Address.ZipCode)
	}
}

func TestController_SelectService(t *testing.T) {
	t.Parallel()

	c := newController(t)
	adv, err := c.SelectAddress("10001")
	require.NoError(t, err)
	require.True(t, c.Advance(adv))

	_, err = c.SelectService("haircut")
	require.ErrorIs(t, err, booking.ErrUnknownService)
	require.Nil(t, c.Draft().Service)

	for _, svc := range catalog.New(nil).Services() {
		adv, err = c.SelectService(svc.ID)
		require.NoError(t, err)
		require.Equal(t, svc.ID, c.Draft().Service.ID)
		require.Equal(t, booking.StepDateTime, adv.To)
	}

	require.True(t, c.Advance(adv))
	require.Equal(t, booking.StepDateTime, c.Step())
}

func TestController_SelectSlotAssignsProvider(t *testing.T) {
	t.Parallel()

	c := newController(t)
	for _, step := range []func() (booking.Advance, error){
		func() (booking.Advance, error) { return c.SelectAddress("33101") },
		func() (booking.Advance, error) { return c.SelectService("facial-classic") },
	} {
		adv, err := step()
		require.NoError(t, err)
		require.True(t, c.Advance(adv))
	}

	adv, err := c.SelectSlot("2026-03-15", booking.TimeSlot{Time: "14:00", Available: true, ProviderID: "david-kim"})
	require.NoError(t, err)

	d := c.Draft()
	require.Equal(t, "2026-03-15", d.Date)
	require.Equal(t, "14:00", d.Time)
	require.NotNil(t, d.Provider, "provider must be assigned immediately")
	// Scripted IntN returns 2: the third provider, regardless of the slot's own provider.
	require.Equal(t, "emily-rodriguez", d.Provider.ID)

	require.True(t, c.Advance(adv))
	require.Equal(t, booking.StepProvider, c.Step())
}

func TestController_SelectSlotRejectsUnavailable(t *testing.T) {
	t.Parallel()

	c := newController(t)
	adv, _ := c.SelectAddress("90210")
	c.Advance(adv)
	adv, _ = c.SelectService("massage-90")
	c.Advance(adv)

	_, err := c.SelectSlot("2026-03-15", booking.TimeSlot{Time: "09:00", Available: false})
	require.ErrorIs(t, err, booking.ErrSlotUnavailable)

	_, err = c.SelectSlot("15/03/2026", booking.TimeSlot{Time: "09:00", Available: true})
	require.ErrorIs(t, err, booking.ErrInvalidDate)

	d := c.Draft()
	require.Empty(t, d.Date)
	require.Empty(t, d.Time)
	require.Nil(t, d.Provider)
	require.Equal(t, booking.StepDateTime, c.Step())
}

func TestController_OperationsRequireTheirStep(t *testing.T) {
	t.Parallel()

	c := newController(t)

	_, err := c.SelectService("massage-60")
	var stepErr *booking.StepError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, booking.StepAddress, stepErr.Current)
	require.Equal(t, booking.StepService, stepErr.Want)

	_, err = c.SelectSlot("2026-03-15", booking.TimeSlot{Time: "09:00", Available: true})
	require.ErrorAs(t, err, &stepErr)

	require.ErrorAs(t, c.ContinueFromProvider(), &stepErr)

	_, err = c.Submit(validGuest)
	require.ErrorAs(t, err, &stepErr)

	require.ErrorAs(t, c.NewBooking(), &stepErr)
	require.Equal(t, booking.StepAddress, c.Step())
}

func TestController_SubmitValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		guest booking.GuestInfo
		field booking.Field
	}{
		{"empty name", booking.GuestInfo{Name: "  ", Email: "a@b.co", Phone: "5551234567"}, booking.FieldName},
		{"email without at", booking.GuestInfo{Name: "Ada", Email: "ada.example.com", Phone: "5551234567"}, booking.FieldEmail},
		{"email without domain dot", booking.GuestInfo{Name: "Ada", Email: "ada@example", Phone: "5551234567"}, booking.FieldEmail},
		{"short phone", booking.GuestInfo{Name: "Ada", Email: "a@b.co", Phone: "555-1234"}, booking.FieldPhone},
		{"missing phone", booking.GuestInfo{Name: "Ada", Email: "a@b.co"}, booking.FieldPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newController(t)
			driveToBooking(t, c)

			id, err := c.Submit(tt.guest)
			require.Error(t, err)
			require.Empty(t, id)

			fields := booking.FieldErrors(err)
			require.Contains(t, fields, tt.field)
			require.Equal(t, booking.StepBooking, c.Step())
			require.Nil(t, c.Draft().GuestInfo)
			require.Empty(t, c.BookingID())
		})
	}
}

func TestController_SubmitConfirms(t *testing.T) {
	t.Parallel()

	c := newController(t)
	driveToBooking(t, c)

	id, err := c.Submit(booking.GuestInfo{Name: " Ada Lovelace ", Email: "ada@example.com", Phone: "555.123.4567"})
	require.NoError(t, err)
	require.Equal(t, booking.StepConfirmation, c.Step())
	require.Regexp(t, booking.BookingIDPattern, id)
	require.Equal(t, "OLI-80413589", id)
	require.Equal(t, id, c.BookingID())
	require.Equal(t, "Ada Lovelace", c.Draft().GuestInfo.Name)

	// Confirmation is terminal for navigation.
	require.False(t, c.Back())
	require.False(t, c.Forward())
	require.Equal(t, booking.StepConfirmation, c.Step())
}

func TestController_NewBookingResets(t *testing.T) {
	t.Parallel()

	c := newController(t, booking.WithIDPrefix("spa"))
	driveToBooking(t, c)
	id, err := c.Submit(validGuest)
	require.NoError(t, err)
	require.Regexp(t, `^SPA-`, id)

	require.NoError(t, c.NewBooking())
	require.Equal(t, booking.StepAddress, c.Step())
	require.True(t, c.Draft().IsEmpty())
	require.Empty(t, c.BookingID())
}

func TestController_BackNavigation(t *testing.T) {
	t.Parallel()

	c := newController(t)
	require.False(t, c.Back(), "back is a no-op on address")
	require.Equal(t, booking.StepAddress, c.Step())

	driveToBooking(t, c)

	expected := []booking.Step{booking.StepProvider, booking.StepDateTime, booking.StepService, booking.StepAddress}
	for _, want := range expected {
		require.True(t, c.Back())
		require.Equal(t, want, c.Step())
	}
	require.False(t, c.Back())

	// Going back never rolls the draft back.
	d := c.Draft()
	require.NotNil(t, d.Address)
	require.NotNil(t, d.Service)
	require.NotNil(t, d.Provider)
}

func TestController_ForwardNavigation(t *testing.T) {
	t.Parallel()

	c := newController(t)
	require.False(t, c.Forward(), "address incomplete")

	driveToBooking(t, c)
	for c.Step() != booking.StepAddress {
		c.Back()
	}

	for _, want := range []booking.Step{booking.StepService, booking.StepDateTime, booking.StepProvider, booking.StepBooking} {
		require.True(t, c.CanGoForward())
		require.True(t, c.Forward())
		require.Equal(t, want, c.Step())
	}

	// Details has no forward control; only Submit leaves it.
	require.False(t, c.CanGoForward())
	require.False(t, c.Forward())
	require.Equal(t, booking.StepBooking, c.Step())
}

func TestController_ForwardBlockedOnIncompleteStep(t *testing.T) {
	t.Parallel()

	c := newController(t)
	adv, err := c.SelectAddress("75201")
	require.NoError(t, err)
	require.True(t, c.Forward(), "address is complete, forward works without waiting for the advance")
	require.Equal(t, booking.StepService, c.Step())

	require.False(t, c.CanGoForward())
	require.False(t, c.Forward())

	// The staged advance is stale now and must not fire.
	require.False(t, c.Advance(adv))
	require.Equal(t, booking.StepService, c.Step())
}

func TestController_AdvanceIgnoresStaleTransition(t *testing.T) {
	t.Parallel()

	c := newController(t)
	adv, err := c.SelectAddress("90210")
	require.NoError(t, err)
	require.True(t, c.Advance(adv))

	// A second delivery of the same timer is ignored.
	require.False(t, c.Advance(adv))
	require.Equal(t, booking.StepService, c.Step())

	// Transitions that skip steps are never applied.
	require.False(t, c.Advance(booking.Advance{From: booking.StepService, To: booking.StepBooking}))
	require.Equal(t, booking.StepService, c.Step())
}

func TestController_QuerySlots(t *testing.T) {
	t.Parallel()

	c := booking.New(catalog.New(&scriptedRand{floats: allTaken()}))
	slots, err := c.QuerySlots("2026-03-15")
	require.ErrorIs(t, err, booking.ErrNoAvailableSlots)
	require.Len(t, slots, catalog.SlotsPerDay)

	c = booking.New(catalog.New(&scriptedRand{}))
	slots, err = c.QuerySlots("2026-03-15")
	require.NoError(t, err)
	require.Len(t, slots, catalog.SlotsPerDay)

	_, err = c.QuerySlots("tomorrow")
	require.ErrorIs(t, err, booking.ErrInvalidDate)
}

func allTaken() []float64 {
	out := make([]float64, catalog.SlotsPerDay)
	for i := range out {
		out[i] = 0.1
	}
	return out
}

func TestController_Events(t *testing.T) {
	t.Parallel()

	var events []booking.Event
	sink := booking.SinkFunc(func(e booking.Event) { events = append(events, e) })

	c := newController(t, booking.WithSink(sink))
	_, err := c.SelectAddress("99999")
	require.True(t, errors.Is(err, booking.ErrAreaNotServed))

	driveToBooking(t, c)
	_, err = c.Submit(validGuest)
	require.NoError(t, err)

	var types []booking.EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []booking.EventType{
		booking.EventValidationFailed,
		booking.EventAddressSelected,
		booking.EventStepChanged,
		booking.EventServiceSelected,
		booking.EventStepChanged,
		booking.EventSlotSelected,
		booking.EventProviderAssigned,
		booking.EventStepChanged,
		booking.EventStepChanged,
		booking.EventStepChanged,
		booking.EventConfirmed,
	}, types)

	last := events[len(events)-1]
	assert.Equal(t, booking.StepConfirmation, last.Step)
	assert.Equal(t, c.BookingID(), last.BookingID)
	assert.Equal(t, "Ada Lovelace", last.Draft.GuestInfo.Name)
}

func TestController_DraftIsASnapshot(t *testing.T) {
	t.Parallel()

	c := newController(t)
	_, err := c.SelectAddress("90210")
	require.NoError(t, err)

	d := c.Draft()
	d.Address.City = "Elsewhere"
	require.Equal(t, "Beverly Hills", c.Draft().Address.City)
}
