package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/oli/internal/logger"
	"github.com/mark3labs/oli/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀█ █   █"
	logoText2 = "█▄█ █▄▄ █"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootFlags struct {
	logLevel string
	logFile  string
}

var rootCmd = &cobra.Command{
	Use:   "oli",
	Short: "Book an in-home service from the terminal",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.Current()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

oli walks you through booking an in-home service: pick your location, a
service, a date and time, meet your assigned provider, leave your contact
details and get a booking ID.

The same booking flow is available to agents over MCP (oli serve), and every
step can be followed live from another terminal (oli watch).`

	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(zipCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(configCmd)
}
