package wizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/tui/markdown"
	"github.com/mark3labs/oli/internal/tui/theme"
)

// ProviderStep shows the provider assigned to the chosen slot.
type ProviderStep struct {
	draft booking.Draft
	width int
}

// NewProviderStep creates the provider card step.
func NewProviderStep() *ProviderStep {
	return &ProviderStep{width: 60}
}

// SetSize updates the dimensions for the step.
func (s *ProviderStep) SetSize(width, _ int) {
	s.width = width
}

// SetDraft sets the draft the card is rendered from.
func (s *ProviderStep) SetDraft(d booking.Draft) {
	s.draft = d
}

// Update handles messages for the provider step.
func (s *ProviderStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "enter":
		if s.draft.Provider == nil {
			return nil
		}
		return emit(ProviderContinueMsg{})
	case "tab":
		return emit(TabExitMsg{})
	}
	return nil
}

// View renders the provider step.
func (s *ProviderStep) View() string {
	st := theme.Current().S()
	var b strings.Builder

	b.WriteString(label("Your provider"))
	b.WriteString("\n\n")

	p := s.draft.Provider
	if p == nil {
		b.WriteString(st.Muted.Render("No provider assigned yet."))
		return b.String()
	}

	var card strings.Builder
	card.WriteString(st.Bright.Render(p.Name) + "  " + st.Muted.Render(p.Title) + "\n")
	card.WriteString(st.Warning.Render(fmt.Sprintf("★ %.1f", p.Rating)) + " " + st.Muted.Render("(50+ reviews)") + "\n\n")
	card.WriteString(st.Text.Render(markdown.Wrap(p.Bio, max(s.width-8, 20))) + "\n\n")
	badges := make([]string, 0, len(p.Specialties))
	for _, sp := range p.Specialties {
		badges = append(badges, st.Badge.Render(sp))
	}
	card.WriteString(strings.Join(badges, " ") + "\n")
	card.WriteString(st.Success.Render("● Available in your area"))
	b.WriteString(st.CardSelected.Render(card.String()))
	b.WriteString("\n\n")

	if s.draft.Service != nil {
		b.WriteString(st.Text.Render(fmt.Sprintf("%s · %s at %s",
			s.draft.Service.Name,
			booking.FormatDateMedium(s.draft.Date),
			booking.FormatTime(s.draft.Time))))
		b.WriteString("\n\n")
	}

	b.WriteString(renderHintBar("enter", "continue", "tab", "buttons", "esc", "back"))
	return b.String()
}
