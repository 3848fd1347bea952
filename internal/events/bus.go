// Package events publishes wizard lifecycle events on an embedded NATS
// server so other processes can follow a booking as it happens.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gosimple/slug"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

const subjectRoot = "oli"

// SubjectForSession returns the wildcard subject for all events in a
// session, or for every session when session is empty.
// Example: "oli.front-desk.>"
func SubjectForSession(session string) string {
	if session == "" {
		return subjectRoot + ".>"
	}
	return fmt.Sprintf("%s.%s.>", subjectRoot, session)
}

// SubjectForEvent returns the subject one event type is published on.
// Example: "oli.front-desk.booking.confirmed"
func SubjectForEvent(session string, t booking.EventType) string {
	return fmt.Sprintf("%s.%s.%s", subjectRoot, session, t)
}

// SessionName turns free text into a subject-safe session token.
func SessionName(name string) string {
	s := slug.Make(name)
	if s == "" {
		s = fmt.Sprintf("pid-%d", os.Getpid())
	}
	return strings.ReplaceAll(s, ".", "-")
}

// Options configures a Bus.
type Options struct {
	// Port for external subscribers. 0 keeps the bus in-process.
	Port    int
	Session string
}

// Bus owns an embedded NATS server and publishes booking events to it.
// It implements booking.Sink.
type Bus struct {
	ns      *server.Server
	nc      *nats.Conn
	session string
}

var _ booking.Sink = (*Bus)(nil)

// Start boots the embedded server and connects to it in-process.
func Start(opts Options) (*Bus, error) {
	ns, err := StartServer(opts.Port)
	if err != nil {
		return nil, fmt.Errorf("starting event bus: %w", err)
	}
	nc, err := ConnectInProcess(ns)
	if err != nil {
		_ = Shutdown(nil, ns)
		return nil, fmt.Errorf("connecting event bus: %w", err)
	}

	b := &Bus{ns: ns, nc: nc, session: SessionName(opts.Session)}
	logger.Info("Event bus started for session %s (url %q)", b.session, b.ClientURL())
	return b, nil
}

// Session returns the session token events are published under.
func (b *Bus) Session() string {
	return b.session
}

// ClientURL returns the URL external subscribers connect to, or "" when the
// bus is in-process only.
func (b *Bus) ClientURL() string {
	if b.ns.Addr() == nil {
		return ""
	}
	return b.ns.ClientURL()
}

// Publish sends e as JSON. Failures are logged and dropped.
func (b *Bus) Publish(e booking.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		logger.Warn("Encoding %s event: %v", e.Type, err)
		return
	}
	if err := b.nc.Publish(SubjectForEvent(b.session, e.Type), data); err != nil {
		logger.Warn("Publishing %s event: %v", e.Type, err)
	}
}

// Subscribe delivers this session's events to handler over the in-process
// connection.
func (b *Bus) Subscribe(handler func(booking.Event)) (*nats.Subscription, error) {
	return b.nc.Subscribe(SubjectForSession(b.session), decode(handler))
}

// Flush waits until the server has processed everything published so far.
func (b *Bus) Flush() error {
	return b.nc.Flush()
}

// Close drains the connection and stops the server.
func (b *Bus) Close() error {
	return Shutdown(b.nc, b.ns)
}

// Watch connects to a running bus at url and delivers events until ctx is
// done. An empty session follows every session.
func Watch(ctx context.Context, url, session string, handler func(booking.Event)) error {
	nc, err := nats.Connect(url, nats.Name("oli-watch"))
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", url, err)
	}

	if _, err := nc.Subscribe(SubjectForSession(session), decode(handler)); err != nil {
		nc.Close()
		return fmt.Errorf("subscribing: %w", err)
	}
	if err := nc.Flush(); err != nil {
		nc.Close()
		return fmt.Errorf("subscribing: %w", err)
	}

	<-ctx.Done()
	return Shutdown(nc, nil)
}

func decode(handler func(booking.Event)) nats.MsgHandler {
	return func(msg *nats.Msg) {
		var e booking.Event
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			logger.Warn("Dropping malformed event on %s: %v", msg.Subject, err)
			return
		}
		handler(e)
	}
}
