package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/mcpserver"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	session string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the booking flow as MCP tools",
	Long: `Serve one booking session as MCP tools over streamable HTTP on 127.0.0.1.

An agent books the same way a person does in the wizard: check-zip,
select-service, list-slots, select-slot, provider-continue, submit-contact.
Selections advance immediately. Stop with ctrl+c.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Port for the MCP endpoint (0 = random)")
	serveCmd.Flags().Uint64("seed", 0, "Seed for availability and provider assignment (0 = random)")
	serveCmd.Flags().String("id-prefix", "", "Booking ID prefix (default: OLI)")
	serveCmd.Flags().Int("lookahead-days", 0, "Number of bookable days starting tomorrow (default: 14)")
	serveCmd.Flags().Bool("events", false, "Publish booking events on an embedded NATS server")
	serveCmd.Flags().Int("events-port", 0, "Port for the event bus (implies --events)")
	serveCmd.Flags().StringVar(&serveFlags.session, "session", "", "Session name events are published under (default: per process)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bus, closeBus, err := startEvents(cfg, serveFlags.session)
	if err != nil {
		return err
	}
	defer closeBus()

	var sink booking.Sink
	if bus != nil {
		sink = bus
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.New(newController(cfg, sink), mcpserver.Options{
		Port:          cfg.MCPPort,
		LookaheadDays: cfg.LookaheadDays,
	})
	if _, err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "MCP endpoint: %s\n", srv.URL())
	if bus != nil && bus.ClientURL() != "" {
		fmt.Fprintf(out, "Events: oli watch --url %s --session %s\n", bus.ClientURL(), bus.Session())
	}

	<-ctx.Done()
	fmt.Fprintln(out, "\nShutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
