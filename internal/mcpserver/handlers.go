package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/oli/internal/booking"
	"github.com/mark3labs/oli/internal/catalog"
	"github.com/mark3labs/oli/internal/logger"
)

// status is the booking-status payload.
type status struct {
	Step         booking.Step        `json:"step"`
	Title        string              `json:"title"`
	Progress     []progressEntry     `json:"progress"`
	Draft        booking.Draft       `json:"draft"`
	BookingID    string              `json:"booking_id,omitempty"`
	CanGoBack    bool                `json:"can_go_back"`
	CanGoForward bool                `json:"can_go_forward"`
	Slots        map[string][]string `json:"offered_times,omitempty"`
	Hint         string              `json:"hint"`
}

type progressEntry struct {
	Step      booking.Step `json:"step"`
	Completed bool         `json:"completed"`
	Current   bool         `json:"current"`
}

// locked runs fn while holding the controller lock.
func (s *Server) locked(fn func(c *booking.Controller) *mcp.CallToolResult) (*mcp.CallToolResult, error) {
	s.ctrlMu.Lock()
	defer s.ctrlMu.Unlock()
	return fn(s.ctrl), nil
}

// toolError renders err as a tool error. Step errors get a hint about
// where the wizard currently is.
func toolError(c *booking.Controller, err error) *mcp.CallToolResult {
	var stepErr *booking.StepError
	if errors.As(err, &stepErr) {
		return mcp.NewToolResultError(fmt.Sprintf("%v. %s", err, nextHint(c)))
	}
	if fields := booking.FieldErrors(err); fields != nil {
		var lines []string
		for _, f := range []booking.Field{booking.FieldName, booking.FieldEmail, booking.FieldPhone} {
			if msg, ok := fields[f]; ok {
				lines = append(lines, fmt.Sprintf("%s: %s", f, msg))
			}
		}
		return mcp.NewToolResultError(strings.Join(lines, "\n"))
	}
	return mcp.NewToolResultError(booking.UserMessage(err))
}

// nextHint names the tool that makes progress from the current step.
func nextHint(c *booking.Controller) string {
	switch c.Step() {
	case booking.StepAddress:
		return "Next: call check-zip with a 5-digit ZIP."
	case booking.StepService:
		return "Next: call list-services, then select-service."
	case booking.StepDateTime:
		return "Next: call list-slots for a date, then select-slot."
	case booking.StepProvider:
		return "Next: call provider-continue."
	case booking.StepBooking:
		return "Next: call submit-contact with name, email and phone."
	case booking.StepConfirmation:
		return "Booking confirmed. Call new-booking to start over."
	default:
		return ""
	}
}

func (s *Server) handleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		st := status{
			Step:         c.Step(),
			Title:        c.Step().Title(),
			Draft:        c.Draft(),
			BookingID:    c.BookingID(),
			CanGoBack:    c.CanGoBack(),
			CanGoForward: c.CanGoForward(),
			Hint:         nextHint(c),
		}
		for _, p := range c.Steps() {
			st.Progress = append(st.Progress, progressEntry{Step: p.Step, Completed: p.Completed, Current: p.Current})
		}
		if c.Step() == booking.StepDateTime && len(s.slots) > 0 {
			st.Slots = make(map[string][]string, len(s.slots))
			for date, slots := range s.slots {
				st.Slots[date] = availableTimes(slots)
			}
		}

		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding status: %v", err))
		}
		return mcp.NewToolResultText(string(data))
	})
}

func (s *Server) handleCheckZip(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	zip, err := request.RequireString("zip")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		adv, err := c.SelectAddress(zip)
		if err != nil {
			return toolError(c, err)
		}
		c.Advance(adv)
		return mcp.NewToolResultText(fmt.Sprintf("Service area confirmed: %s. %s", c.Draft().Address.Formatted, nextHint(c)))
	})
}

func (s *Server) handleListServices(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		var b strings.Builder
		for _, svc := range c.Catalog().Services() {
			fmt.Fprintf(&b, "- %s: %s [%s] %d min, from %s\n  %s\n",
				svc.ID, svc.Name, svc.Category, svc.Duration, booking.StartingPrice(svc.PriceRange), svc.Description)
		}
		return mcp.NewToolResultText(b.String())
	})
}

func (s *Server) handleSelectService(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("service_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		adv, err := c.SelectService(id)
		if err != nil {
			return toolError(c, err)
		}
		c.Advance(adv)
		return mcp.NewToolResultText(fmt.Sprintf("Selected %s. %s", c.Draft().Service.Name, nextHint(c)))
	})
}

func (s *Server) handleListSlots(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := strings.TrimSpace(request.GetString("date", ""))
	dates := catalog.UpcomingDates(s.opts.Now(), s.opts.LookaheadDays)

	if date == "" {
		var b strings.Builder
		b.WriteString("Bookable dates:\n")
		for _, d := range dates {
			fmt.Fprintf(&b, "- %s (%s)\n", d, booking.FormatDateShort(d, s.opts.Now()))
		}
		return mcp.NewToolResultText(b.String()), nil
	}
	if _, err := booking.ParseDate(date); err != nil {
		return mcp.NewToolResultError(booking.UserMessage(err)), nil
	}
	if !slices.Contains(dates, date) {
		return mcp.NewToolResultError(fmt.Sprintf("Choose a date between %s and %s", dates[0], dates[len(dates)-1])), nil
	}

	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		slots, err := c.QuerySlots(date)
		s.slots[date] = slots
		if errors.Is(err, booking.ErrNoAvailableSlots) {
			return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", booking.FormatDateLong(date), booking.UserMessage(err)))
		}
		if err != nil {
			return toolError(c, err)
		}
		logger.Debug("Offered %d slots for %s", len(availableTimes(slots)), date)
		return mcp.NewToolResultText(fmt.Sprintf("%s, available times (HH:MM):\n%s",
			booking.FormatDateLong(date), strings.Join(availableTimes(slots), ", ")))
	})
}

func (s *Server) handleSelectSlot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	at, err := request.RequireString("time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		offered, ok := s.slots[date]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("No times have been offered for %s yet. Call list-slots with that date first.", date))
		}
		idx := slices.IndexFunc(offered, func(t booking.TimeSlot) bool { return t.Time == at })
		if idx < 0 {
			return mcp.NewToolResultError(fmt.Sprintf("%s is not a slot time. Times run every 30 minutes from 09:00 to 18:30.", at))
		}

		adv, err := c.SelectSlot(date, offered[idx])
		if err != nil {
			return toolError(c, err)
		}
		c.Advance(adv)

		d := c.Draft()
		return mcp.NewToolResultText(fmt.Sprintf("Booked slot %s at %s. Your provider is %s, %s (rated %.1f). %s",
			booking.FormatDateMedium(d.Date), booking.FormatTime(d.Time),
			d.Provider.Name, d.Provider.Title, d.Provider.Rating, nextHint(c)))
	})
}

func (s *Server) handleProviderContinue(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		if err := c.ContinueFromProvider(); err != nil {
			return toolError(c, err)
		}
		return mcp.NewToolResultText(nextHint(c))
	})
}

func (s *Server) handleSubmitContact(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	guest := booking.GuestInfo{
		Name:  request.GetString("name", ""),
		Email: request.GetString("email", ""),
		Phone: request.GetString("phone", ""),
	}

	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		id, err := c.Submit(guest)
		if err != nil {
			return toolError(c, err)
		}
		clear(s.slots)

		d := c.Draft()
		return mcp.NewToolResultText(fmt.Sprintf(
			"Booking confirmed. Booking ID: %s\n%s with %s on %s at %s, %s.\nA confirmation email will be sent to %s.",
			id, d.Service.Name, d.Provider.Name,
			booking.FormatDateLong(d.Date), booking.FormatTime(d.Time), d.Address.Formatted, d.GuestInfo.Email))
	})
}

func (s *Server) handleGoBack(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		if !c.Back() {
			return mcp.NewToolResultError(fmt.Sprintf("Can't go back from the %s step.", c.Step().Title()))
		}
		return mcp.NewToolResultText(fmt.Sprintf("Now on %s. %s", c.Step().Title(), nextHint(c)))
	})
}

func (s *Server) handleGoForward(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		if !c.Forward() {
			return mcp.NewToolResultError(fmt.Sprintf("Can't go forward from the %s step. %s", c.Step().Title(), nextHint(c)))
		}
		return mcp.NewToolResultText(fmt.Sprintf("Now on %s. %s", c.Step().Title(), nextHint(c)))
	})
}

func (s *Server) handleNewBooking(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.locked(func(c *booking.Controller) *mcp.CallToolResult {
		if err := c.NewBooking(); err != nil {
			return toolError(c, err)
		}
		return mcp.NewToolResultText(nextHint(c))
	})
}

func availableTimes(slots []booking.TimeSlot) []string {
	var out []string
	for _, s := range slots {
		if s.Available {
			out = append(out, s.Time)
		}
	}
	return out
}
