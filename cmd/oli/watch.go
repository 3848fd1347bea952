package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/events"
	"github.com/mark3labs/oli/internal/tui/theme"
	"github.com/spf13/cobra"
)

var watchFlags struct {
	url     string
	session string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow booking events from a running wizard or MCP server",
	Long: `Follow the events published by 'oli book --events' or 'oli serve --events'.

The URL defaults to the configured events_port on 127.0.0.1. Without
--session every session on the bus is shown.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchFlags.url, "url", "", "NATS URL of the event bus")
	watchCmd.Flags().StringVar(&watchFlags.session, "session", "", "Only show this session")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	url := watchFlags.url
	if url == "" {
		if cfg.EventsPort == 0 {
			return fmt.Errorf("no event bus to watch: pass --url or set events_port")
		}
		url = fmt.Sprintf("nats://127.0.0.1:%d", cfg.EventsPort)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	session := ""
	if watchFlags.session != "" {
		session = events.SessionName(watchFlags.session)
	}
	fmt.Fprintf(out, "Watching %s (ctrl+c to stop)\n", url)
	return events.Watch(ctx, url, session, func(e booking.Event) {
		fmt.Fprintln(out, formatEvent(e))
	})
}

// formatEvent renders one event as a log line.
func formatEvent(e booking.Event) string {
	s := theme.Current().S()
	line := s.Muted.Render(e.At.Local().Format(time.TimeOnly)) + "  " + s.Accent.Render(fmt.Sprintf("%-18s", e.Type))
	if detail := describeEvent(e); detail != "" {
		line += " " + detail
	}
	return line
}

// describeEvent returns the part of the draft an event is about.
func describeEvent(e booking.Event) string {
	d := e.Draft
	switch e.Type {
	case booking.EventAddressSelected:
		if d.Address != nil {
			return d.Address.Formatted
		}
	case booking.EventServiceSelected:
		if d.Service != nil {
			return d.Service.Name
		}
	case booking.EventSlotSelected:
		return booking.FormatDateLong(d.Date) + " at " + booking.FormatTime(d.Time)
	case booking.EventProviderAssigned:
		if d.Provider != nil {
			return d.Provider.Name
		}
	case booking.EventStepChanged:
		return e.From.Title() + " → " + e.Step.Title()
	case booking.EventConfirmed:
		return e.BookingID
	case booking.EventValidationFailed:
		return e.Message
	}
	return ""
}
