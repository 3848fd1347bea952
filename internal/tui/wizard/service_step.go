package wizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/tui/theme"
)

// ServiceStep lists the catalog services as selectable cards.
type ServiceStep struct {
	services   []booking.Service
	cursor     int
	selectedID string
	width      int
}

// NewServiceStep creates the service list over services.
func NewServiceStep(services []booking.Service) *ServiceStep {
	return &ServiceStep{services: services, width: 60}
}

// SetSize updates the dimensions for the step.
func (s *ServiceStep) SetSize(width, _ int) {
	s.width = width
}

// SetDraft marks the draft's service as selected and moves the cursor to it.
func (s *ServiceStep) SetDraft(d booking.Draft) {
	if d.Service == nil {
		s.selectedID = ""
		return
	}
	s.selectedID = d.Service.ID
	for i, svc := range s.services {
		if svc.ID == d.Service.ID {
			s.cursor = i
		}
	}
}

// Cursor returns the highlighted card index.
func (s *ServiceStep) Cursor() int {
	return s.cursor
}

// Reset clears the selection.
func (s *ServiceStep) Reset() {
	s.cursor = 0
	s.selectedID = ""
}

// Update handles messages for the service step.
func (s *ServiceStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.services)-1 {
			s.cursor++
		}
	case "enter":
		if len(s.services) == 0 {
			return nil
		}
		return emit(ServiceChosenMsg{ServiceID: s.services[s.cursor].ID})
	case "tab":
		return emit(TabExitMsg{})
	}
	return nil
}

// View renders the service step.
func (s *ServiceStep) View() string {
	st := theme.Current().S()
	var b strings.Builder

	b.WriteString(label("Choose a service"))
	b.WriteString("\n\n")

	if len(s.services) == 0 {
		b.WriteString(st.Muted.Render("No services available in your area yet."))
		return b.String()
	}

	for i, svc := range s.services {
		marker := "  "
		name := st.Bright.Render(svc.Name)
		if i == s.cursor {
			marker = st.Accent.Render("› ")
			name = st.Accent.Render(svc.Name)
		}
		line := marker + name + " " + st.Badge.Render(svc.Category)
		if svc.ID == s.selectedID {
			line += " " + st.Success.Render("✓ Selected")
		}
		b.WriteString(line + "\n")
		b.WriteString("  " + st.Muted.Render(svc.Description) + "\n")
		b.WriteString("  " + st.Text.Render(fmt.Sprintf("%d min · from %s", svc.Duration, booking.StartingPrice(svc.PriceRange))) + "\n")
		if i < len(s.services)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(renderHintBar("↑↓", "navigate", "enter", "select", "tab", "buttons", "esc", "back"))
	return b.String()
}
