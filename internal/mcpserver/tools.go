package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers one tool per wizard action.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("booking-status",
			mcp.WithDescription("Show the current wizard step, progress, draft booking and available navigation"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleStatus,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("check-zip",
			mcp.WithDescription("Check a 5-digit ZIP code against the service area and set it as the booking location"),
			mcp.WithString("zip", mcp.Required(),
				mcp.Description("5-digit US ZIP code, e.g. 90210"),
				mcp.Pattern(`^[0-9]{5}$`),
			),
		),
		s.handleCheckZip,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-services",
			mcp.WithDescription("List every bookable service with duration and starting price"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListServices,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("select-service",
			mcp.WithDescription("Choose the service to book"),
			mcp.WithString("service_id", mcp.Required(),
				mcp.Description("Service ID from list-services, e.g. massage-60"),
			),
		),
		s.handleSelectService,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-slots",
			mcp.WithDescription("Query available times for a date. Without a date, lists the dates that can be booked. Each query draws fresh availability"),
			mcp.WithString("date",
				mcp.Description("Date in YYYY-MM-DD format"),
			),
		),
		s.handleListSlots,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("select-slot",
			mcp.WithDescription("Choose a date and time from the last list-slots result for that date. A provider is assigned automatically"),
			mcp.WithString("date", mcp.Required(),
				mcp.Description("Date in YYYY-MM-DD format"),
			),
			mcp.WithString("time", mcp.Required(),
				mcp.Description("Time in 24-hour HH:MM format, e.g. 14:30"),
			),
		),
		s.handleSelectSlot,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("provider-continue",
			mcp.WithDescription("Accept the assigned provider and move on to contact details"),
		),
		s.handleProviderContinue,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("submit-contact",
			mcp.WithDescription("Submit contact details and confirm the booking"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Full name")),
			mcp.WithString("email", mcp.Required(), mcp.Description("Email address")),
			mcp.WithString("phone", mcp.Required(), mcp.Description("10-digit phone number, e.g. (555) 123-4567")),
		),
		s.handleSubmitContact,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("go-back",
			mcp.WithDescription("Return to the previous step. Earlier selections are kept"),
		),
		s.handleGoBack,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("go-forward",
			mcp.WithDescription("Move to the next step when the current one is complete"),
		),
		s.handleGoForward,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("new-booking",
			mcp.WithDescription("Start over after a confirmed booking"),
		),
		s.handleNewBooking,
	)
}
