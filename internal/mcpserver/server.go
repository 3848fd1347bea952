// Package mcpserver exposes a booking wizard session as MCP tools over
// streamable HTTP, so an agent can book the same way a person does in the TUI.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/logger"
)

// Options configures a Server.
type Options struct {
	// Port to listen on. 0 picks a free port.
	Port int
	// LookaheadDays bounds which dates list-slots accepts.
	LookaheadDays int
	// Now is the clock for the date window. Defaults to time.Now.
	Now func() time.Time
}

// Server holds one booking session and serves it over MCP. Tool calls are
// serialized, so the controller only ever sees one operation at a time.
type Server struct {
	opts Options

	// ctrlMu guards ctrl and slots.
	ctrlMu sync.Mutex
	ctrl   *booking.Controller
	// slots is the last availability offered per date; select-slot must
	// pick from it.
	slots map[string][]booking.TimeSlot

	mu        sync.Mutex
	mcpServer *server.MCPServer
	stdServer *http.Server
	port      int
}

// New creates a server around ctrl. The server is not started until Start
// is called.
func New(ctrl *booking.Controller, opts Options) *Server {
	if opts.LookaheadDays <= 0 {
		opts.LookaheadDays = 14
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		opts:  opts,
		ctrl:  ctrl,
		slots: make(map[string][]booking.TimeSlot),
	}
}

// Start starts the MCP HTTP server and returns the bound port.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	s.mcpServer = server.NewMCPServer(
		"oli-booking",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", s.opts.Port))
	if err != nil {
		return 0, fmt.Errorf("listening on port %d: %w", s.opts.Port, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	// Stateless: the session lives in the controller, not in MCP sessions.
	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s.mcpServer, server.WithStateLess(true)))
	s.stdServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Info("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	if err := s.stdServer.Shutdown(ctx); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.stdServer = nil
	s.mcpServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://127.0.0.1:%d/mcp", s.port)
}
