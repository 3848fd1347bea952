package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/catalog"
	"github.com/mark3labs/oli/internal/tui/markdown"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List services, providers and service areas",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.Render(catalogMarkdown(catalog.New(nil)), 100))
		return nil
	},
}

var zipCmd = &cobra.Command{
	Use:   "zip <zip>",
	Short: "Check whether a ZIP code is in a served area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctrl := newController(cfg, nil)
		if _, err := ctrl.SelectAddress(args[0]); err != nil {
			return fmt.Errorf("zip %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Service area confirmed: %s\n", ctrl.Draft().Address.Formatted)
		return nil
	},
}

var slotsFlags struct {
	date string
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Show one availability query for a date",
	Long: `Show the available times for a date (default: tomorrow).

Availability is simulated and changes on every query unless --seed is set.`,
	RunE: runSlots,
}

func init() {
	slotsCmd.Flags().StringVarP(&slotsFlags.date, "date", "d", "", "Date as YYYY-MM-DD (default: tomorrow)")
	slotsCmd.Flags().Uint64("seed", 0, "Seed for availability (0 = random)")
}

func runSlots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	date := slotsFlags.date
	if date == "" {
		date = catalog.UpcomingDates(time.Now(), 1)[0]
	}

	slots, err := newController(cfg, nil).QuerySlots(date)
	out := cmd.OutOrStdout()
	switch {
	case errors.Is(err, booking.ErrNoAvailableSlots):
		fmt.Fprintf(out, "%s\n%s\n", booking.FormatDateLong(date), booking.UserMessage(err))
		return nil
	case err != nil:
		return fmt.Errorf("slots for %q: %w", date, err)
	}

	fmt.Fprintln(out, booking.FormatDateLong(date))
	fmt.Fprintln(out, strings.Join(formatSlots(slots), "\n"))
	return nil
}

// formatSlots lists every available slot with its provider ID.
func formatSlots(slots []booking.TimeSlot) []string {
	lines := make([]string, 0, len(slots))
	for _, s := range slots {
		if !s.Available {
			continue
		}
		line := fmt.Sprintf("  %8s", booking.FormatTime(s.Time))
		if s.ProviderID != "" {
			line += "  " + s.ProviderID
		}
		lines = append(lines, line)
	}
	return lines
}

// catalogMarkdown renders the catalog as markdown tables.
func catalogMarkdown(cat booking.Catalog) string {
	var b strings.Builder

	b.WriteString("# Services\n\n")
	b.WriteString("| ID | Service | Category | Duration | Price |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, s := range cat.Services() {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %d min | %s |\n", s.ID, s.Name, s.Category, s.Duration, s.PriceRange)
	}

	b.WriteString("\n# Providers\n\n")
	b.WriteString("| Provider | Title | Rating | Specialties |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, p := range cat.Providers() {
		fmt.Fprintf(&b, "| %s | %s | %.1f | %s |\n", p.Name, p.Title, p.Rating, strings.Join(p.Specialties, ", "))
	}

	b.WriteString("\n# Service Areas\n\n")
	fmt.Fprintf(&b, "Popular: %s\n\n", strings.Join(catalog.PopularZips, ", "))
	fmt.Fprintf(&b, "All supported ZIP codes: %s\n", strings.Join(catalog.SupportedZips, ", "))

	return b.String()
}
