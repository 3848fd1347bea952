package testfixtures

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/stretchr/testify/require"
)

func TestRecordingSink(t *testing.T) {
	t.Parallel()

	sink := NewRecordingSink()
	ctrl := NewController(nil, booking.WithSink(sink))

	adv, err := ctrl.SelectAddress("90210")
	require.NoError(t, err)
	require.True(t, ctrl.Advance(adv))

	require.Equal(t, []booking.EventType{booking.EventAddressSelected, booking.EventStepChanged}, sink.Types())
	require.Len(t, sink.Events(), 2)

	sink.Reset()
	require.Empty(t, sink.Events())
}

func TestScriptedRand(t *testing.T) {
	t.Parallel()

	r := &ScriptedRand{Floats: []float64{0.1, 0.5}, Ints: []int{3, 5}}
	require.Equal(t, 0.1, r.Float64())
	require.Equal(t, 0.5, r.Float64())
	require.Equal(t, 0.1, r.Float64())
	require.Equal(t, 3, r.IntN(4))
	require.Equal(t, 1, r.IntN(4))

	var empty ScriptedRand
	require.Equal(t, 0.9, empty.Float64())
	require.Zero(t, empty.IntN(4))
}

func TestType(t *testing.T) {
	t.Parallel()

	msgs := Type("90")
	require.Len(t, msgs, 2)
	require.Equal(t, "9", msgs[0].(tea.KeyPressMsg).String())
	require.Equal(t, "enter", Key(tea.KeyEnter).String())
	require.Equal(t, "ctrl+n", Ctrl('n').String())
}
