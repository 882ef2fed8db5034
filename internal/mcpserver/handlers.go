package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JamesPrial/obsctl/internal/config"
	"github.com/JamesPrial/obsctl/internal/history"
	"github.com/JamesPrial/obsctl/internal/search"
	"github.com/JamesPrial/obsctl/internal/vault"
)

const (
	summaryMaxLines = 12
	summaryRule     = "----------------------------------------"
	summaryEmpty    = "No notable entries found for today."
)

// Handlers holds the services the tool handlers operate on.
type Handlers struct {
	Ledger   *vault.Ledger
	Journal  *vault.Journal
	Searcher *search.Searcher
	// History may be nil.
	History *history.Recorder
}

// NewHandlers opens the vault described by app. History failures are
// reported to logger.
func NewHandlers(app *config.AppContext, logger *log.Logger) (*Handlers, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tpl, err := app.Templates()
	if err != nil {
		return nil, err
	}
	ledger, err := vault.OpenLedger(app.VaultRoot, tpl)
	if err != nil {
		return nil, fmt.Errorf("open task ledger: %w", err)
	}
	journal, err := vault.OpenJournal(app.VaultRoot, tpl)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	h := &Handlers{
		Ledger:   ledger,
		Journal:  journal,
		Searcher: search.New(app.VaultRoot, app.Config.Search.Tool, app.Config.Search.FZFPreview),
	}

	backend, err := history.New(app.Config.History, app.Home)
	if err != nil {
		logger.Printf("history disabled: %v", err)
	} else {
		h.History = history.NewRecorder(backend, history.SourceMCP, logger)
	}
	return h, nil
}

// HandleAppendDailyNote appends the entry parameter to today's daily note.
func (h *Handlers) HandleAppendDailyNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, err := request.RequireString("entry")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: entry"), nil
	}

	if err := h.Journal.AppendToday(entry); err != nil {
		return internalError("append daily note", err), nil
	}

	path := h.Journal.TodayPath()
	h.History.Record(history.ActionNoteAppend, 0, "", path)
	return mcp.NewToolResultText(fmt.Sprintf("Appended entry to %s", path)), nil
}

// HandleUpdateTaskStatus completes or reopens a task chosen by id or title.
func (h *Handlers) HandleUpdateTaskStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := request.RequireString("status")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: status"), nil
	}
	done, err := normalizeStatus(status)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	_, hasID := args["id"]
	title := strings.TrimSpace(request.GetString("title", ""))
	if !hasID && title == "" {
		return mcp.NewToolResultError("either `id` or `title` must be provided"), nil
	}

	var target *vault.TaskRecord
	if hasID {
		id := request.GetInt("id", 0)
		if id < 1 {
			return mcp.NewToolResultError("id must be a positive integer"), nil
		}
		records, err := h.Ledger.All()
		if err != nil {
			return internalError("read tasks", err), nil
		}
		for i := range records {
			if records[i].ID == uint64(id) {
				target = &records[i]
				break
			}
		}
	} else {
		target, err = h.Ledger.FindByTitle(title)
		if err != nil {
			return internalError("search task by title", err), nil
		}
	}
	if target == nil {
		return mcp.NewToolResultError("task not found"), nil
	}

	if err := h.Ledger.SetStatus(target.ID, done); err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return mcp.NewToolResultError("task not found"), nil
		}
		return internalError("update task status", err), nil
	}

	label, action := "open", history.ActionTaskReopen
	if done {
		label, action = "done", history.ActionTaskDone
	}
	h.History.Record(action, target.ID, target.Title, h.Ledger.Path())
	return mcp.NewToolResultText(fmt.Sprintf("Task #%d marked as %s", target.ID, label)), nil
}

// HandleQueryKnowledge returns matching vault lines, one per line.
func (h *Handlers) HandleQueryKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", defaultQueryLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxQueryLimit {
		limit = maxQueryLimit
	}

	matches, err := h.Searcher.Matches(ctx, query, limit)
	if err != nil {
		return internalError("run search", err), nil
	}
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No matches for %q", query)), nil
	}

	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = m.String()
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

// HandleSummarizeToday returns the headings and bullets of today's note.
// The note is created from the daily template if it does not exist yet.
func (h *Handlers) HandleSummarizeToday(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope := request.GetString("scope", "today")
	if !strings.EqualFold(scope, "today") {
		return mcp.NewToolResultError(`scope must be "today"`), nil
	}

	path, err := h.Journal.PathFor("")
	if err != nil {
		return internalError("locate daily note", err), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return internalError("read daily note", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n%s\n%s", path, summaryRule, summarizeText(string(content)))), nil
}

// normalizeStatus maps status words onto done (true) or open (false).
func normalizeStatus(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "done", "complete", "completed", "finished":
		return true, nil
	case "open", "todo", "pending", "reopen", "reopened":
		return false, nil
	default:
		return false, fmt.Errorf("unknown status: %s", strings.ToLower(s))
	}
}

// summarizeText keeps up to summaryMaxLines headings and list items.
func summarizeText(content string) string {
	var highlights []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			highlights = append(highlights, trimmed)
		}
		if len(highlights) >= summaryMaxLines {
			break
		}
	}
	if len(highlights) == 0 {
		return summaryEmpty
	}
	return strings.Join(highlights, "\n")
}

func internalError(op string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", op, err))
}
