package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/catalog"
	"github.com/mark3labs/oli/internal/config"
	"github.com/mark3labs/oli/internal/events"
	"github.com/mark3labs/oli/internal/logger"
	"github.com/spf13/cobra"
)

// loadConfig loads the layered config, applies flags the user set on cmd
// and configures logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags over cfg and revalidates it.
// Flags a command doesn't define are never reported as changed.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}

	set("log-level", func() (e error) { cfg.LogLevel, e = fs.GetString("log-level"); return })
	set("log-file", func() (e error) { cfg.LogFile, e = fs.GetString("log-file"); return })
	set("seed", func() (e error) { cfg.Seed, e = fs.GetUint64("seed"); return })
	set("id-prefix", func() (e error) { cfg.IDPrefix, e = fs.GetString("id-prefix"); return })
	set("lookahead-days", func() (e error) { cfg.LookaheadDays, e = fs.GetInt("lookahead-days"); return })
	set("events", func() (e error) { cfg.EventsEnabled, e = fs.GetBool("events"); return })
	set("events-port", func() (e error) {
		cfg.EventsEnabled = true
		cfg.EventsPort, e = fs.GetInt("events-port")
		return
	})
	set("port", func() (e error) { cfg.MCPPort, e = fs.GetInt("port"); return })
	set("instant", func() error {
		instant, e := fs.GetBool("instant")
		if instant {
			cfg.AdvanceDelay, cfg.ValidateDelay, cfg.SlotsDelay, cfg.SubmitDelay = 0, 0, 0, 0
		}
		return e
	})
	if err != nil {
		return fmt.Errorf("reading flags: %w", err)
	}
	return cfg.Validate()
}

// newRand returns the randomness shared by the catalog and the controller.
// A zero seed means time-seeded.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1))
}

// newController builds a controller over the default catalog.
func newController(cfg *config.Config, sink booking.Sink) *booking.Controller {
	rnd := newRand(cfg.Seed)
	opts := []booking.Option{
		booking.WithRand(rnd),
		booking.WithIDPrefix(cfg.IDPrefix),
	}
	if sink != nil {
		opts = append(opts, booking.WithSink(sink))
	}
	return booking.New(catalog.New(rnd), opts...)
}

// startEvents starts the event bus when enabled. The returned close func is
// always safe to call. With events enabled and no port configured the bus
// listens on a random port so watchers can connect.
func startEvents(cfg *config.Config, session string) (*events.Bus, func(), error) {
	if !cfg.EventsEnabled {
		return nil, func() {}, nil
	}

	port := cfg.EventsPort
	if port == 0 {
		port = -1
	}
	bus, err := events.Start(events.Options{Port: port, Session: session})
	if err != nil {
		return nil, nil, err
	}
	return bus, func() {
		if err := bus.Close(); err != nil {
			logger.Warn("Closing event bus: %v", err)
		}
	}, nil
}
