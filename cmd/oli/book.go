package main

import (
	"fmt"

	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/config"
	"github.com/mark3labs/oli/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var bookFlags struct {
	session string
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a service with the interactive wizard",
	Long: `Run the full-screen booking wizard.

The wizard asks for your ZIP code, a service and a time, assigns a provider,
collects your contact details and confirms the booking. Press esc to go back a
step, tab to reach the buttons and ctrl+c to quit.

With --events (or events_enabled in config) every step is published on an
embedded NATS server that 'oli watch' can follow.`,
	RunE: runBook,
}

func init() {
	bookCmd.Flags().Uint64("seed", 0, "Seed for availability and provider assignment (0 = random)")
	bookCmd.Flags().String("id-prefix", "", "Booking ID prefix (default: OLI)")
	bookCmd.Flags().Int("lookahead-days", 0, "Number of bookable days starting tomorrow (default: 14)")
	bookCmd.Flags().Bool("instant", false, "Skip the simulated delays")
	bookCmd.Flags().Bool("events", false, "Publish wizard events on an embedded NATS server")
	bookCmd.Flags().Int("events-port", 0, "Port for the event bus (implies --events)")
	bookCmd.Flags().StringVar(&bookFlags.session, "session", "", "Session name events are published under (default: per process)")
}

func runBook(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bus, closeBus, err := startEvents(cfg, bookFlags.session)
	if err != nil {
		return err
	}
	defer closeBus()

	var sink booking.Sink
	if bus != nil {
		sink = bus
		if url := bus.ClientURL(); url != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Publishing events: oli watch --url %s --session %s\n", url, bus.Session())
		}
	}

	result, err := wizard.Run(cmd.Context(), newController(cfg, sink), wizardOptions(cfg))
	if err != nil {
		return err
	}

	for _, id := range result.BookingIDs {
		fmt.Fprintf(cmd.OutOrStdout(), "Booked %s\n", id)
	}
	return nil
}

func wizardOptions(cfg *config.Config) wizard.Options {
	return wizard.Options{
		AdvanceDelay:  cfg.AdvanceDelay,
		ValidateDelay: cfg.ValidateDelay,
		SlotsDelay:    cfg.SlotsDelay,
		SubmitDelay:   cfg.SubmitDelay,
		LookaheadDays: cfg.LookaheadDays,
	}
}
