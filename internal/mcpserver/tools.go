// Package mcpserver exposes the vault to MCP clients over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names.
const (
	ToolAppendDailyNote  = "append_daily_note"
	ToolUpdateTaskStatus = "update_task_status"
	ToolQueryKnowledge   = "query_knowledge"
	ToolSummarizeToday   = "summarize_today"
)

// Search result bounds for query_knowledge.
const (
	defaultQueryLimit = 5
	maxQueryLimit     = 50
)

// appendDailyNoteTool returns the tool definition for appending to today's note.
func appendDailyNoteTool() mcp.Tool {
	return mcp.NewTool(ToolAppendDailyNote,
		mcp.WithDescription("Append text to today's daily note"),
		mcp.WithTitleAnnotation("Append Daily Note"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithString("entry",
			mcp.Required(),
			mcp.Description("Freeform text that will be appended to today's daily note.")),
	)
}

// updateTaskStatusTool returns the tool definition for completing or reopening a task.
func updateTaskStatusTool() mcp.Tool {
	return mcp.NewTool(ToolUpdateTaskStatus,
		mcp.WithDescription("Mark a task as done or reopen it. Identify the task by id or by exact title."),
		mcp.WithTitleAnnotation("Update Task Status"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("id",
			mcp.Min(1),
			mcp.Description("Task id as shown in parentheses in the ledger")),
		mcp.WithString("title",
			mcp.Description("Exact task title, used when id is not given")),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Enum("done", "completed", "complete", "open", "todo", "pending"),
			mcp.Description("Target status")),
	)
}

// queryKnowledgeTool returns the tool definition for searching the vault.
func queryKnowledgeTool() mcp.Tool {
	return mcp.NewTool(ToolQueryKnowledge,
		mcp.WithDescription("Search the vault for matching lines"),
		mcp.WithTitleAnnotation("Query Knowledge"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Regular expression passed to ripgrep")),
		mcp.WithNumber("limit",
			mcp.Min(1),
			mcp.Max(maxQueryLimit),
			mcp.DefaultNumber(defaultQueryLimit),
			mcp.Description("Maximum number of matching lines to return")),
	)
}

// summarizeTodayTool returns the tool definition for summarising today's note.
func summarizeTodayTool() mcp.Tool {
	return mcp.NewTool(ToolSummarizeToday,
		mcp.WithDescription("Summarize today's daily note in plain text"),
		mcp.WithTitleAnnotation("Summarize Today"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("scope",
			mcp.Enum("today"),
			mcp.DefaultString("today"),
			mcp.Description("Only \"today\" is supported")),
	)
}
