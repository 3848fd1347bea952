package theme

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestInterpolateColor(t *testing.T) {
	t.Parallel()

	require.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	require.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	require.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	r, g, b := ParseHexColor("#cba6f7")
	require.Equal(t, []uint8{0xcb, 0xa6, 0xf7}, []uint8{r, g, b})

	r, g, b = ParseHexColor("nope")
	require.Zero(t, r)
	require.Zero(t, g)
	require.Zero(t, b)
}

func TestApplyGradient_KeepsText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "oli  ok", ansi.Strip(ApplyGradient("oli  ok", "#cba6f7", "#b4befe")))
	require.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	th := Current()
	require.Same(t, th, Current())
	require.Equal(t, "catppuccin-mocha", th.Name)
	require.Same(t, th.S(), th.S())
}
