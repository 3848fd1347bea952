package booking

import "fmt"

// Step is one screen of the booking wizard.
type Step int

// Step enumeration in wizard order.
const (
	StepAddress Step = iota
	StepService
	StepDateTime
	StepProvider
	StepBooking
	StepConfirmation
)

// AllSteps lists every step in display order.
var AllSteps = []Step{StepAddress, StepService, StepDateTime, StepProvider, StepBooking, StepConfirmation}

// forwardSequence is the order reachable by back/forward navigation.
// Confirmation is only reachable through Submit.
var forwardSequence = []Step{StepAddress, StepService, StepDateTime, StepProvider, StepBooking}

// String returns the machine name of the step.
func (s Step) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepService:
		return "service"
	case StepDateTime:
		return "datetime"
	case StepProvider:
		return "provider"
	case StepBooking:
		return "booking"
	case StepConfirmation:
		return "confirmation"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Title returns the label shown in the progress header.
func (s Step) Title() string {
	switch s {
	case StepAddress:
		return "Location"
	case StepService:
		return "Service"
	case StepDateTime:
		return "Date & Time"
	case StepProvider:
		return "Provider"
	case StepBooking:
		return "Details"
	case StepConfirmation:
		return "Confirmation"
	default:
		return s.String()
	}
}

// ParseStep parses a machine name back into a Step.
func ParseStep(name string) (Step, error) {
	for _, s := range AllSteps {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", name)
}

// sequenceIndex returns the position of s in the forward sequence, or -1.
func sequenceIndex(s Step) int {
	for i, candidate := range forwardSequence {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Completed reports whether the draft fields owned by step are populated.
func Completed(d Draft, step Step) bool {
	switch step {
	case StepAddress:
		return d.Address != nil
	case StepService:
		return d.Service != nil
	case StepDateTime:
		return d.Date != "" && d.Time != ""
	case StepProvider:
		return d.Provider != nil
	case StepBooking:
		return d.GuestInfo != nil
	default:
		return false
	}
}

// PrerequisitesMet reports whether every step before target in the forward
// sequence is completed.
func PrerequisitesMet(d Draft, target Step) bool {
	idx := sequenceIndex(target)
	if idx < 0 {
		return false
	}
	for _, s := range forwardSequence[:idx] {
		if !Completed(d, s) {
			return false
		}
	}
	return true
}

// StepStatus is one entry of the progress header.
type StepStatus struct {
	Step      Step
	Title     string
	Completed bool
	Current   bool
}

// Steps derives the progress entries for a draft and current step.
func Steps(d Draft, current Step) []StepStatus {
	out := make([]StepStatus, 0, len(AllSteps))
	for _, s := range AllSteps {
		out = append(out, StepStatus{
			Step:      s,
			Title:     s.Title(),
			Completed: Completed(d, s),
			Current:   s == current,
		})
	}
	return out
}
