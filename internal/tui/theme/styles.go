package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle    lipgloss.Style
	Subtitle       lipgloss.Style
	ModalContainer lipgloss.Style

	Text    lipgloss.Style
	Bright  lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Badge        lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	ProgressDone    lipgloss.Style
	ProgressCurrent lipgloss.Style
	ProgressPending lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style
}
