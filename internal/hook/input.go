// Package hook mirrors agent task events into the vault's task ledger.
//
// An agent runtime invokes the hook binary after each tool call with a JSON
// PostToolUse payload on stdin. TaskCreate and TaskUpdate events are parsed
// here. Everything else is ignored.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
)

// Tool names handled by the hook.
const (
	ToolTaskCreate = "TaskCreate"
	ToolTaskUpdate = "TaskUpdate"
)

// Input is the PostToolUse payload received on stdin.
type Input struct {
	// ToolName is the name of the invoked tool (e.g., "TaskCreate").
	ToolName string `json:"tool_name"`

	// ToolInput is the raw JSON of the tool's input parameters.
	ToolInput json.RawMessage `json:"tool_input"`

	SessionID string `json:"session_id"`
	Cwd       string `json:"cwd"`
}

// TaskInput holds the task fields of a TaskCreate or TaskUpdate call.
type TaskInput struct {
	TaskID      string         `json:"taskId"`
	Subject     string         `json:"subject"`
	Description string         `json:"description"`
	ActiveForm  string         `json:"activeForm"`
	Status      string         `json:"status"`
	Metadata    map[string]any `json:"metadata"`
}

// ReadInput decodes one payload from r.
//
// Returns (nil, nil) for tools other than TaskCreate and TaskUpdate; these
// are reported to debug when it is non-nil. Returns an error for malformed
// JSON.
func ReadInput(r io.Reader, debug *log.Logger) (*Input, error) {
	var input Input
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, fmt.Errorf("failed to decode hook input: %w", err)
	}

	if input.ToolName != ToolTaskCreate && input.ToolName != ToolTaskUpdate {
		if debug != nil {
			debug.Printf("ignoring %q event", input.ToolName)
		}
		return nil, nil
	}
	return &input, nil
}

// Task decodes the tool input. Malformed or missing input yields a zero
// TaskInput. Values are trimmed.
func (in *Input) Task() TaskInput {
	var t TaskInput
	if len(in.ToolInput) == 0 {
		return t
	}
	if err := json.Unmarshal(in.ToolInput, &t); err != nil {
		return TaskInput{}
	}
	t.TaskID = strings.TrimSpace(t.TaskID)
	t.Subject = strings.TrimSpace(t.Subject)
	t.Status = strings.TrimSpace(t.Status)
	return t
}

// metaString returns metadata[key] as a trimmed string, or "".
func (t TaskInput) metaString(key string) string {
	v, ok := t.Metadata[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}
