package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/catalog"
	"github.com/mark3labs/oli/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// isolate points config lookup at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func flagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	fs := cmd.Flags()
	fs.String("log-level", "", "")
	fs.String("log-file", "", "")
	fs.Uint64("seed", 0, "")
	fs.String("id-prefix", "", "")
	fs.Int("lookahead-days", 0, "")
	fs.Bool("events", false, "")
	fs.Int("events-port", 0, "")
	fs.Int("port", 0, "")
	fs.Bool("instant", false, "")
	require.NoError(t, fs.Parse(args))
	return cmd
}

func TestApplyFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "unset flags keep config",
			check: func(t *testing.T, cfg *config.Config) {
				require.Equal(t, config.Default(), cfg)
			},
		},
		{
			name: "instant zeroes delays",
			args: []string{"--instant"},
			check: func(t *testing.T, cfg *config.Config) {
				require.Zero(t, cfg.AdvanceDelay)
				require.Zero(t, cfg.ValidateDelay)
				require.Zero(t, cfg.SlotsDelay)
				require.Zero(t, cfg.SubmitDelay)
			},
		},
		{
			name: "events port enables events",
			args: []string{"--events-port", "4333"},
			check: func(t *testing.T, cfg *config.Config) {
				require.True(t, cfg.EventsEnabled)
				require.Equal(t, 4333, cfg.EventsPort)
			},
		},
		{
			name: "session values",
			args: []string{"--seed", "42", "--id-prefix", "BK", "--lookahead-days", "3", "--port", "8123", "--log-level", "debug"},
			check: func(t *testing.T, cfg *config.Config) {
				require.Equal(t, uint64(42), cfg.Seed)
				require.Equal(t, "BK", cfg.IDPrefix)
				require.Equal(t, 3, cfg.LookaheadDays)
				require.Equal(t, 8123, cfg.MCPPort)
				require.Equal(t, "debug", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			require.NoError(t, applyFlags(flagCmd(t, tt.args...), cfg))
			tt.check(t, cfg)
		})
	}
}

func TestApplyFlags_Invalid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	err := applyFlags(flagCmd(t, "--lookahead-days", "0"), cfg)
	require.ErrorContains(t, err, "lookahead_days")

	cfg = config.Default()
	err = applyFlags(flagCmd(t, "--id-prefix", "A-B"), cfg)
	require.ErrorContains(t, err, "id_prefix")
}

func TestNewController_SeedIsDeterministic(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Seed = 7
	date := catalog.UpcomingDates(time.Now(), 1)[0]

	first, errA := newController(cfg, nil).QuerySlots(date)
	second, errB := newController(cfg, nil).QuerySlots(date)
	require.Equal(t, errA, errB)
	require.Equal(t, first, second)
}

func TestStartEvents_Disabled(t *testing.T) {
	t.Parallel()

	bus, closeBus, err := startEvents(config.Default(), "")
	require.NoError(t, err)
	require.Nil(t, bus)
	closeBus()
}

func TestFormatSlots(t *testing.T) {
	t.Parallel()

	lines := formatSlots([]booking.TimeSlot{
		{Time: "09:00", Available: true, ProviderID: "sarah-johnson"},
		{Time: "09:30", Available: false},
		{Time: "14:30", Available: true},
	})
	require.Equal(t, []string{
		"   9:00 AM  sarah-johnson",
		"   2:30 PM",
	}, lines)
}

func TestCatalogMarkdown(t *testing.T) {
	t.Parallel()

	cat := catalog.New(nil)
	md := catalogMarkdown(cat)

	require.Contains(t, md, "# Services")
	require.Contains(t, md, "# Providers")
	require.Contains(t, md, "# Service Areas")
	for _, s := range cat.Services() {
		require.Contains(t, md, "`"+s.ID+"`")
	}
	for _, p := range cat.Providers() {
		require.Contains(t, md, p.Name)
	}
	require.Contains(t, md, strings.Join(catalog.PopularZips, ", "))
}

func TestDescribeEvent(t *testing.T) {
	t.Parallel()

	addr := booking.Address{Formatted: "Beverly Hills, CA 90210"}
	tests := []struct {
		name string
		e    booking.Event
		want string
	}{
		{"address", booking.Event{Type: booking.EventAddressSelected, Draft: booking.Draft{Address: &addr}}, "Beverly Hills, CA 90210"},
		{"slot", booking.Event{Type: booking.EventSlotSelected, Draft: booking.Draft{Date: "2026-03-15", Time: "14:30"}}, "Sunday, March 15, 2026 at 2:30 PM"},
		{"step", booking.Event{Type: booking.EventStepChanged, From: booking.StepAddress, Step: booking.StepService}, booking.StepAddress.Title() + " → " + booking.StepService.Title()},
		{"confirmed", booking.Event{Type: booking.EventConfirmed, BookingID: "OLI-12345678"}, "OLI-12345678"},
		{"validation", booking.Event{Type: booking.EventValidationFailed, Message: "nope"}, "nope"},
		{"reset", booking.Event{Type: booking.EventReset}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, describeEvent(tt.e))
		})
	}
}

func TestFormatEvent(t *testing.T) {
	t.Parallel()

	line := ansi.Strip(formatEvent(booking.Event{
		Type:      booking.EventConfirmed,
		BookingID: "OLI-12345678",
		At:        time.Now(),
	}))
	require.Contains(t, line, "booking.confirmed")
	require.True(t, strings.HasSuffix(line, "OLI-12345678"))
}

func TestZipCommand(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	zipCmd.SetOut(&out)
	t.Cleanup(func() { zipCmd.SetOut(nil) })

	require.NoError(t, zipCmd.RunE(zipCmd, []string{"90210"}))
	require.Equal(t, "Service area confirmed: Beverly Hills, CA 90210\n", out.String())

	require.ErrorIs(t, zipCmd.RunE(zipCmd, []string{"12345"}), booking.ErrAreaNotServed)
	require.EqualError(t, zipCmd.RunE(zipCmd, []string{"12345"}), "zip 12345: area not served")
	require.ErrorIs(t, zipCmd.RunE(zipCmd, []string{"902"}), booking.ErrInvalidZip)
}

func TestSetupCommand(t *testing.T) {
	dir := isolate(t)

	setupFlags.project = true
	t.Cleanup(func() { setupFlags.project, setupFlags.force = false, false })

	var out bytes.Buffer
	setupCmd.SetOut(&out)
	t.Cleanup(func() { setupCmd.SetOut(nil) })

	require.NoError(t, runSetup(setupCmd, nil))
	require.Contains(t, out.String(), "Config written to: oli.yml")
	require.FileExists(t, dir+"/oli.yml")

	err := runSetup(setupCmd, nil)
	require.ErrorContains(t, err, "already exists")

	setupFlags.force = true
	require.NoError(t, runSetup(setupCmd, nil))

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("oli.yml", []byte("id_prefix: BK\n"), 0o644))

	var out bytes.Buffer
	configShowCmd.SetOut(&out)
	t.Cleanup(func() { configShowCmd.SetOut(nil) })

	require.NoError(t, runConfigShow(configShowCmd, nil))
	require.Contains(t, out.String(), "id_prefix: BK")
	require.Contains(t, out.String(), "lookahead_days: 14")
}
