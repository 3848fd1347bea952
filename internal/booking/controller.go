package booking

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

// DefaultIDPrefix prefixes generated booking IDs.
const DefaultIDPrefix = "OLI"

// BookingIDPattern matches every ID produced by NewBookingID.
var BookingIDPattern = regexp.MustCompile(`^[A-Z]+-[0-9]{8}$`)

var zipPattern = regexp.MustCompile(`^[0-9]{5}$`)

// Advance is a staged step transition returned by a successful selection.
// The caller applies it with Controller.Advance, typically after a short
// display delay so the user sees the confirmed selection first.
type Advance struct {
	From Step
	To   Step
}

// Controller owns the booking draft and the current wizard step. All state
// changes go through its methods; views only ever see Draft snapshots.
//
// Controller is not safe for concurrent use.
type Controller struct {
	catalog  Catalog
	rnd      Rand
	now      func() time.Time
	idPrefix string
	sink     Sink

	step      Step
	draft     Draft
	bookingID string
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the randomness used for provider assignment.
func WithRand(r Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rnd = r
		}
	}
}

// WithClock sets the clock used for booking IDs and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDPrefix sets the booking ID prefix. Empty values keep the default.
func WithIDPrefix(prefix string) Option {
	return func(c *Controller) {
		prefix = strings.ToUpper(strings.TrimSpace(prefix))
		if prefix != "" {
			c.idPrefix = prefix
		}
	}
}

// WithSink sets the receiver for lifecycle events.
func WithSink(s Sink) Option {
	return func(c *Controller) {
		if s != nil {
			c.sink = s
		}
	}
}

// New creates a controller on the Address step with an empty draft.
func New(catalog Catalog, opts ...Option) *Controller {
	seed := uint64(time.Now().UnixNano())
	c := &Controller{
		catalog:  catalog,
		rnd:      rand.New(rand.NewPCG(seed, seed>>1)),
		now:      time.Now,
		idPrefix: DefaultIDPrefix,
		sink:     discardSink{},
		step:     StepAddress,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return c.step
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft {
	return c.draft.Clone()
}

// BookingID returns the generated booking ID, or "" before submission.
func (c *Controller) BookingID() string {
	return c.bookingID
}

// Catalog returns the catalog the controller reads from.
func (c *Controller) Catalog() Catalog {
	return c.catalog
}

// Steps returns the progress entries for the current state.
func (c *Controller) Steps() []StepStatus {
	return Steps(c.draft, c.step)
}

// CanGoBack reports whether Back would move.
func (c *Controller) CanGoBack() bool {
	return sequenceIndex(c.step) > 0
}

// CanGoForward reports whether Forward would move. Only Address through
// Provider have a forward control; Booking exits through Submit.
func (c *Controller) CanGoForward() bool {
	idx := sequenceIndex(c.step)
	if idx < 0 || c.step == StepBooking {
		return false
	}
	next := forwardSequence[idx+1]
	return Completed(c.draft, c.step) && PrerequisitesMet(c.draft, next)
}

// SelectAddress resolves zip against the supported service areas and stores
// the address.
func (c *Controller) SelectAddress(zip string) (Advance, error) {
	if err := c.expect("select address", StepAddress); err != nil {
		return Advance{}, err
	}

	zip = strings.TrimSpace(zip)
	if !zipPattern.MatchString(zip) {
		c.reject(ErrInvalidZip)
		return Advance{}, ErrInvalidZip
	}

	addr, ok := c.catalog.ResolveAddress(zip)
	if !ok {
		c.reject(ErrAreaNotServed)
		return Advance{}, ErrAreaNotServed
	}

	c.draft.Address = &addr
	c.emit(EventAddressSelected, c.step, "")
	return Advance{From: StepAddress, To: StepService}, nil
}

// SelectService stores the catalog service with the given ID.
func (c *Controller) SelectService(id string) (Advance, error) {
	if err := c.expect("select service", StepService); err != nil {
		return Advance{}, err
	}

	svc, ok := c.catalog.Service(id)
	if !ok {
		c.reject(ErrUnknownService)
		return Advance{}, fmt.Errorf("%w: %q", ErrUnknownService, id)
	}

	c.draft.Service = &svc
	c.emit(EventServiceSelected, c.step, "")
	return Advance{From: StepService, To: StepDateTime}, nil
}

// QuerySlots returns a fresh availability query for date. The error is
// ErrNoAvailableSlots when every slot is taken; the slots are still returned.
func (c *Controller) QuerySlots(date string) ([]TimeSlot, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	slots := c.catalog.Slots(date)
	for _, s := range slots {
		if s.Available {
			return slots, nil
		}
	}
	return slots, ErrNoAvailableSlots
}

// SelectSlot stores date and time and assigns a provider uniformly at random
// from the catalog. The assignment ignores service, date, time and location.
func (c *Controller) SelectSlot(date string, slot TimeSlot) (Advance, error) {
	if err := c.expect("select time", StepDateTime); err != nil {
		return Advance{}, err
	}
	if _, err := ParseDate(date); err != nil {
		c.reject(err)
		return Advance{}, err
	}
	if !slot.Available {
		c.reject(ErrSlotUnavailable)
		return Advance{}, ErrSlotUnavailable
	}
	if _, err := time.Parse("15:04", slot.Time); err != nil {
		c.reject(ErrSlotUnavailable)
		return Advance{}, fmt.Errorf("%w: bad time %q", ErrSlotUnavailable, slot.Time)
	}

	providers := c.catalog.Providers()
	if len(providers) == 0 {
		c.reject(ErrNoProviders)
		return Advance{}, ErrNoProviders
	}

	c.draft.Date = date
	c.draft.Time = slot.Time
	c.emit(EventSlotSelected, c.step, "")

	assigned := providers[c.rnd.IntN(len(providers))]
	assigned.Specialties = append([]string(nil), assigned.Specialties...)
	c.draft.Provider = &assigned
	c.emit(EventProviderAssigned, c.step, assigned.ID)

	return Advance{From: StepDateTime, To: StepProvider}, nil
}

// ContinueFromProvider moves from the assigned provider to the details form.
func (c *Controller) ContinueFromProvider() error {
	if err := c.expect("continue", StepProvider); err != nil {
		return err
	}
	c.setStep(StepBooking)
	return nil
}

// Submit validates the contact details, stores them, generates the booking ID
// and moves to Confirmation. Validation failures return a *ValidationError and
// leave the state untouched.
func (c *Controller) Submit(g GuestInfo) (string, error) {
	if err := c.expect("submit booking", StepBooking); err != nil {
		return "", err
	}
	if err := ValidateGuestInfo(g); err != nil {
		c.reject(err)
		return "", err
	}

	g = g.Normalize()
	c.draft.GuestInfo = &g
	c.bookingID = NewBookingID(c.idPrefix, c.now())
	c.setStep(StepConfirmation)
	c.emit(EventConfirmed, c.step, "")
	return c.bookingID, nil
}

// Back moves one step back. It is a no-op on Address and Confirmation.
func (c *Controller) Back() bool {
	idx := sequenceIndex(c.step)
	if idx <= 0 {
		return false
	}
	c.setStep(forwardSequence[idx-1])
	return true
}

// Forward moves one step forward when the current step is complete.
func (c *Controller) Forward() bool {
	if !c.CanGoForward() {
		return false
	}
	c.setStep(forwardSequence[sequenceIndex(c.step)+1])
	return true
}

// Advance applies a staged transition. It is ignored when the user has
// already moved off a.From or the step is no longer complete, so a late
// timer can't drag the wizard somewhere unexpected.
func (c *Controller) Advance(a Advance) bool {
	if c.step != a.From || !Completed(c.draft, a.From) {
		return false
	}
	idx := sequenceIndex(a.From)
	if idx < 0 || idx+1 >= len(forwardSequence) || forwardSequence[idx+1] != a.To {
		return false
	}
	c.setStep(a.To)
	return true
}

// NewBooking clears the draft and returns to Address. Only valid from
// Confirmation.
func (c *Controller) NewBooking() error {
	if err := c.expect("new booking", StepConfirmation); err != nil {
		return err
	}
	c.draft = Draft{}
	c.bookingID = ""
	c.setStep(StepAddress)
	c.emit(EventReset, c.step, "")
	return nil
}

// NewBookingID derives an ID from the last eight digits of now in
// milliseconds, e.g. "OLI-12345678". IDs are not guaranteed unique.
func NewBookingID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%08d", prefix, now.UnixMilli()%100_000_000)
}

func (c *Controller) expect(op string, want Step) error {
	if c.step != want {
		return &StepError{Op: op, Current: c.step, Want: want}
	}
	return nil
}

func (c *Controller) setStep(to Step) {
	from := c.step
	c.step = to
	c.sink.Publish(Event{
		Type:      EventStepChanged,
		Step:      to,
		From:      from,
		BookingID: c.bookingID,
		Draft:     c.draft.Clone(),
		At:        c.now(),
	})
}

func (c *Controller) emit(t EventType, step Step, msg string) {
	c.sink.Publish(Event{
		Type:      t,
		Step:      step,
		From:      step,
		BookingID: c.bookingID,
		Message:   msg,
		Draft:     c.draft.Clone(),
		At:        c.now(),
	})
}

func (c *Controller) reject(err error) {
	c.emit(EventValidationFailed, c.step, UserMessage(err))
}
