package wizard

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestCreateBackNextButtons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		backEnabled bool
		nextEnabled bool
		nextLabel   string
		want        []Button
	}{
		{
			name:      "first step",
			nextLabel: "Next →",
			want: []Button{
				{ID: ButtonBack, Label: "← Back", State: ButtonDisabled},
				{ID: ButtonNext, Label: "Next →", State: ButtonDisabled},
			},
		},
		{
			name:        "both enabled",
			backEnabled: true,
			nextEnabled: true,
			nextLabel:   "Continue →",
			want: []Button{
				{ID: ButtonBack, Label: "← Back", State: ButtonNormal},
				{ID: ButtonNext, Label: "Continue →", State: ButtonNormal},
			},
		},
		{
			name:        "no forward button",
			backEnabled: true,
			want: []Button{
				{ID: ButtonBack, Label: "← Back", State: ButtonNormal},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, CreateBackNextButtons(tt.backEnabled, tt.nextEnabled, tt.nextLabel))
		})
	}
}

func TestButtonBar_Focus(t *testing.T) {
	t.Parallel()

	bar := NewButtonBar(CreateBackNextButtons(false, true, "Next →"))
	require.False(t, bar.Focused())

	_, ok := bar.Selected()
	require.False(t, ok)

	require.True(t, bar.FocusFirst())
	id, ok := bar.Selected()
	require.True(t, ok)
	require.Equal(t, ButtonNext, id, "disabled back button is skipped")

	bar.FocusNext()
	id, _ = bar.Selected()
	require.Equal(t, ButtonNext, id, "only one enabled button")

	bar.SetButtons(CreateBackNextButtons(true, true, "Next →"))
	bar.FocusPrev()
	id, _ = bar.Selected()
	require.Equal(t, ButtonBack, id)

	bar.SetButtons(CreateBackNextButtons(true, false, "Next →"))
	id, _ = bar.Selected()
	require.Equal(t, ButtonBack, id)

	bar.SetButtons(CreateBackNextButtons(false, false, "Next →"))
	require.False(t, bar.Focused())

	require.False(t, bar.FocusLast())
}

func TestButtonBar_Render(t *testing.T) {
	t.Parallel()

	bar := NewButtonBar(CreateConfirmationButtons())
	bar.SetWidth(80)
	out := ansi.Strip(bar.Render())
	require.Contains(t, out, "Book Another Service")
	require.Contains(t, out, "Exit")

	require.Empty(t, NewButtonBar(nil).Render())
}
