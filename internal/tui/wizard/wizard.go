// Package wizard implements the full-screen booking wizard.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/catalog"
	"github.com/mark3labs/oli/internal/logger"
	"github.com/mark3labs/oli/internal/tui/theme"
)

// Options controls the simulated latencies and the date window.
type Options struct {
	AdvanceDelay  time.Duration // pause on a confirmed selection before moving on
	ValidateDelay time.Duration // "Validating..." after a ZIP is submitted
	SlotsDelay    time.Duration // slot query
	SubmitDelay   time.Duration // "Creating Booking..."
	LookaheadDays int
	Now           func() time.Time
}

// Result is what the wizard reports when it exits.
type Result struct {
	BookingIDs []string // bookings confirmed during the session, in order
	Cancelled  bool     // user quit with ctrl+c
}

// WizardModel is the main BubbleTea model for the booking wizard. It is the
// only component that calls the controller; steps are views over draft
// snapshots that report intent with messages.
type WizardModel struct {
	ctrl      *booking.Controller
	opts      Options
	width     int
	height    int
	cancelled bool
	bookings  []string

	buttons *ButtonBar

	// Step components
	addressStep      *AddressStep
	serviceStep      *ServiceStep
	dateTimeStep     *DateTimeStep
	providerStep     *ProviderStep
	bookingStep      *BookingStep
	confirmationStep *ConfirmationStep
}

// New creates the wizard over ctrl.
func New(ctrl *booking.Controller, opts Options) *WizardModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LookaheadDays <= 0 {
		opts.LookaheadDays = 14
	}

	return &WizardModel{
		ctrl:             ctrl,
		opts:             opts,
		buttons:          NewButtonBar(nil),
		addressStep:      NewAddressStep(),
		serviceStep:      NewServiceStep(ctrl.Catalog().Services()),
		dateTimeStep:     NewDateTimeStep(catalog.UpcomingDates(opts.Now(), opts.LookaheadDays), opts.Now()),
		providerStep:     NewProviderStep(),
		bookingStep:      NewBookingStep(),
		confirmationStep: NewConfirmationStep(),
	}
}

// Run is the entry point for the booking wizard. It runs a standalone
// BubbleTea program until the user exits.
func Run(ctx context.Context, ctrl *booking.Controller, opts Options) (*Result, error) {
	m := New(ctrl, opts)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*WizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", finalModel)
	}
	return wizModel.Result(), nil
}

// Result returns the bookings made so far.
func (m *WizardModel) Result() *Result {
	return &Result{
		BookingIDs: append([]string(nil), m.bookings...),
		Cancelled:  m.cancelled,
	}
}

// Init initializes the wizard model.
func (m *WizardModel) Init() tea.Cmd {
	return m.enterStep()
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.buttons.SetButtons(m.stepButtons())
	return m, cmd
}

func (m *WizardModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return tea.Quit
		}
		if m.buttons.Focused() {
			return m.handleButtonKey(msg)
		}
		if msg.String() == "esc" {
			return m.back()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateStepSizes()
		return nil

	case spinner.TickMsg:
		// Only the current step can be spinning

	case TabExitMsg:
		if m.buttons.FocusFirst() {
			m.blurSteps()
		}
		return nil

	case AdvanceMsg:
		if m.ctrl.Advance(msg.Advance) {
			return m.enterStep()
		}
		return nil

	case AddressSubmittedMsg:
		if m.ctrl.Step() != booking.StepAddress || m.addressStep.Validating() {
			return nil
		}
		return tea.Batch(
			m.addressStep.StartValidating(),
			after(m.opts.ValidateDelay, zipCheckedMsg{zip: msg.Zip}),
		)

	case zipCheckedMsg:
		if m.ctrl.Step() != booking.StepAddress {
			m.addressStep.Validated(nil, nil)
			return nil
		}
		adv, err := m.ctrl.SelectAddress(msg.zip)
		d := m.ctrl.Draft()
		m.addressStep.Validated(d.Address, err)
		if err != nil {
			logger.Debug("zip %s rejected: %v", msg.zip, err)
			return nil
		}
		return after(m.opts.AdvanceDelay, AdvanceMsg{Advance: adv})

	case ServiceChosenMsg:
		adv, err := m.ctrl.SelectService(msg.ServiceID)
		if err != nil {
			logger.Debug("service %s rejected: %v", msg.ServiceID, err)
			return nil
		}
		m.serviceStep.SetDraft(m.ctrl.Draft())
		return after(m.opts.AdvanceDelay, AdvanceMsg{Advance: adv})

	case DateChangedMsg:
		if m.ctrl.Step() != booking.StepDateTime {
			return nil
		}
		return tea.Batch(
			m.dateTimeStep.StartLoading(),
			after(m.opts.SlotsDelay, slotsLoadedMsg{date: msg.Date}),
		)

	case slotsLoadedMsg:
		slots, err := m.ctrl.QuerySlots(msg.date)
		m.dateTimeStep.SetSlots(msg.date, slots, err)
		return nil

	case SlotChosenMsg:
		adv, err := m.ctrl.SelectSlot(msg.Date, msg.Slot)
		if err != nil {
			m.dateTimeStep.SetError(booking.UserMessage(err))
			return nil
		}
		m.dateTimeStep.SetDraft(m.ctrl.Draft())
		m.providerStep.SetDraft(m.ctrl.Draft())
		return after(m.opts.AdvanceDelay, AdvanceMsg{Advance: adv})

	case ProviderContinueMsg:
		if err := m.ctrl.ContinueFromProvider(); err != nil {
			logger.Debug("continue rejected: %v", err)
			return nil
		}
		return m.enterStep()

	case ContactSubmittedMsg:
		if m.ctrl.Step() != booking.StepBooking || m.bookingStep.Submitting() {
			return nil
		}
		return tea.Batch(
			m.bookingStep.StartSubmitting(),
			after(m.opts.SubmitDelay, submitReadyMsg{guest: msg.Guest, createProfile: msg.CreateProfile}),
		)

	case submitReadyMsg:
		id, err := m.ctrl.Submit(msg.guest)
		if err != nil {
			m.bookingStep.SetErrors(booking.FieldErrors(err))
			logger.Debug("submit rejected: %v", err)
			return nil
		}
		m.bookingStep.Submitted()
		m.bookings = append(m.bookings, id)
		logger.Info("booking %s confirmed (create profile: %t)", id, msg.createProfile)
		return m.enterStep()

	case NewBookingMsg:
		if err := m.ctrl.NewBooking(); err != nil {
			return nil
		}
		m.resetSteps()
		return m.enterStep()

	case ExitMsg:
		return tea.Quit
	}

	return m.updateCurrentStep(msg)
}

// updateCurrentStep forwards msg to the current step component.
func (m *WizardModel) updateCurrentStep(msg tea.Msg) tea.Cmd {
	switch m.ctrl.Step() {
	case booking.StepAddress:
		return m.addressStep.Update(msg)
	case booking.StepService:
		return m.serviceStep.Update(msg)
	case booking.StepDateTime:
		return m.dateTimeStep.Update(msg)
	case booking.StepProvider:
		return m.providerStep.Update(msg)
	case booking.StepBooking:
		return m.bookingStep.Update(msg)
	case booking.StepConfirmation:
		return m.confirmationStep.Update(msg)
	}
	return nil
}

// handleButtonKey handles keys while the button bar has focus.
func (m *WizardModel) handleButtonKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "left", "shift+tab":
		m.buttons.FocusPrev()
	case "right":
		m.buttons.FocusNext()
	case "tab":
		m.buttons.Blur()
		return m.focusStep()
	case "up":
		m.buttons.Blur()
		if m.ctrl.Step() == booking.StepBooking {
			return m.bookingStep.FocusLast()
		}
		return m.focusStep()
	case "esc":
		m.buttons.Blur()
		return m.back()
	case "enter", "space":
		id, ok := m.buttons.Selected()
		if !ok || m.busy() {
			return nil
		}
		switch id {
		case ButtonBack:
			return m.back()
		case ButtonNext:
			if m.ctrl.Forward() {
				return m.enterStep()
			}
		}
	}
	return nil
}

// back moves one step back; no-op on Address and Confirmation.
func (m *WizardModel) back() tea.Cmd {
	if m.busy() || !m.ctrl.Back() {
		return nil
	}
	return m.enterStep()
}

// busy reports whether a ZIP check or submission is in flight.
func (m *WizardModel) busy() bool {
	return m.addressStep.Validating() || m.bookingStep.Submitting()
}

// enterStep syncs the current step component with the draft and focuses it.
func (m *WizardModel) enterStep() tea.Cmd {
	m.buttons.Blur()
	m.blurSteps()
	d := m.ctrl.Draft()

	switch m.ctrl.Step() {
	case booking.StepAddress:
		m.addressStep.SetDraft(d)
	case booking.StepService:
		m.serviceStep.SetDraft(d)
	case booking.StepDateTime:
		m.dateTimeStep.SetDraft(d)
		if m.dateTimeStep.NeedsSlots() {
			return emit(DateChangedMsg{Date: m.dateTimeStep.Date()})
		}
	case booking.StepProvider:
		m.providerStep.SetDraft(d)
	case booking.StepBooking:
		m.bookingStep.SetDraft(d)
	case booking.StepConfirmation:
		m.confirmationStep.SetBooking(d, m.ctrl.BookingID())
	}
	return m.focusStep()
}

// focusStep gives keyboard focus back to the current step's inputs.
func (m *WizardModel) focusStep() tea.Cmd {
	switch m.ctrl.Step() {
	case booking.StepAddress:
		return m.addressStep.Focus()
	case booking.StepBooking:
		return m.bookingStep.Focus()
	}
	return nil
}

func (m *WizardModel) blurSteps() {
	m.addressStep.Blur()
	m.bookingStep.Blur()
}

func (m *WizardModel) resetSteps() {
	m.addressStep.Reset()
	m.serviceStep.Reset()
	m.dateTimeStep.Reset()
	m.bookingStep.Reset()
	m.providerStep.SetDraft(booking.Draft{})
}

// stepButtons returns the navigation buttons for the current step.
func (m *WizardModel) stepButtons() []Button {
	switch m.ctrl.Step() {
	case booking.StepConfirmation:
		return nil
	case booking.StepBooking:
		return CreateBackNextButtons(true, false, "")
	case booking.StepProvider:
		return CreateBackNextButtons(true, m.ctrl.CanGoForward(), "Continue →")
	default:
		return CreateBackNextButtons(m.ctrl.CanGoBack(), m.ctrl.CanGoForward(), "Next →")
	}
}

// size returns the terminal size, with a fallback before the first
// WindowSizeMsg.
func (m *WizardModel) size() (int, int) {
	if m.width <= 0 || m.height <= 0 {
		return 100, 40
	}
	return m.width, m.height
}

// modalWidth returns the width of the centered modal.
func (m *WizardModel) modalWidth() int {
	w, _ := m.size()
	return min(max(w-10, 60), 100)
}

// updateStepSizes updates the size of every step component.
func (m *WizardModel) updateStepSizes() {
	_, h := m.size()
	contentWidth := m.modalWidth() - 8
	contentHeight := max(h-12, 10)

	m.buttons.SetWidth(contentWidth)
	m.addressStep.SetSize(contentWidth, contentHeight)
	m.serviceStep.SetSize(contentWidth, contentHeight)
	m.dateTimeStep.SetSize(contentWidth, contentHeight)
	m.providerStep.SetSize(contentWidth, contentHeight)
	m.bookingStep.SetSize(contentWidth, contentHeight)
	m.confirmationStep.SetSize(contentWidth, contentHeight)
}

// View renders the wizard UI.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	w, h := m.size()
	canvas := uv.NewScreenBuffer(w, h)
	uv.NewStyledString(m.render()).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: w, Y: h},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render draws the modal with the current step centered on screen.
func (m *WizardModel) render() string {
	s := theme.Current().S()
	step := m.ctrl.Step()

	var sections []string
	sections = append(sections, s.HeaderTitle.Render(theme.ApplyGradient("oli", theme.Current().Primary, theme.Current().Secondary)+" · Book a Service"))
	sections = append(sections, "")

	if step != booking.StepConfirmation {
		sections = append(sections, renderProgress(m.ctrl.Steps()))
		sections = append(sections, "")
		sections = append(sections, s.Subtitle.Render(fmt.Sprintf("Step %d of %d: %s", int(step)+1, len(booking.AllSteps)-1, step.Title())))
		sections = append(sections, "")
	}

	sections = append(sections, m.stepView())

	if step != booking.StepConfirmation {
		sections = append(sections, "")
		sections = append(sections, m.buttons.Render())
	}

	modal := s.ModalContainer.Width(m.modalWidth()).Render(strings.Join(sections, "\n"))

	w, h := m.size()
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modal)
}

func (m *WizardModel) stepView() string {
	switch m.ctrl.Step() {
	case booking.StepAddress:
		return m.addressStep.View()
	case booking.StepService:
		return m.serviceStep.View()
	case booking.StepDateTime:
		return m.dateTimeStep.View()
	case booking.StepProvider:
		return m.providerStep.View()
	case booking.StepBooking:
		return m.bookingStep.View()
	case booking.StepConfirmation:
		return m.confirmationStep.View()
	}
	return ""
}
