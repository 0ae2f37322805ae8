package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listToolDef = mcp.NewTool(
	"advent_list",
	mcp.WithDescription("List all 25 calendar days with unlock dates and open state. Content is only included for opened days."),
	mcp.WithBoolean("opened_only",
		mcp.Description("Only return days that have been opened"),
	),
)

var showToolDef = mcp.NewTool(
	"advent_show",
	mcp.WithDescription("Show the content of a day that has already been opened. Does not open anything."),
	mcp.WithNumber("day",
		mcp.Required(),
		mcp.Description("Day number, 1-25"),
		mcp.Min(1),
		mcp.Max(25),
	),
)

var openToolDef = mcp.NewTool(
	"advent_open",
	mcp.WithDescription("Open a calendar day. Fails with NOT_YET_UNLOCKED before December <day>. Opening an already-open day succeeds."),
	mcp.WithNumber("day",
		mcp.Required(),
		mcp.Description("Day number, 1-25"),
		mcp.Min(1),
		mcp.Max(25),
	),
)

var progressToolDef = mcp.NewTool(
	"advent_progress",
	mcp.WithDescription("Report how many of the 25 days have been opened."),
)

var resetToolDef = mcp.NewTool(
	"advent_reset",
	mcp.WithDescription("Close every day and forget saved progress. The open history is kept."),
	mcp.WithBoolean("confirm",
		mcp.Required(),
		mcp.Description("Must be true to reset"),
	),
)

var historyToolDef = mcp.NewTool(
	"advent_history",
	mcp.WithDescription("List past open attempts and resets, newest first."),
	mcp.WithNumber("day",
		mcp.Description("Only events for this day (0 for resets)"),
		mcp.Min(0),
		mcp.Max(25),
	),
	mcp.WithString("outcome",
		mcp.Description("Only events with this outcome"),
		mcp.Enum("opened", "rejected", "reset"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Max events to return (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Events to skip"),
	),
)
