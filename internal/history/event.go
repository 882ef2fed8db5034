// Package history keeps an append-only record of vault mutations.
//
// The vault files remain the source of truth. History is written after a
// mutation succeeds and is only read back by the history command.
package history

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is ISO 8601 UTC with millisecond precision and a Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Sources.
const (
	SourceCLI  = "cli"
	SourceMCP  = "mcp"
	SourceHook = "hook"
)

// Actions.
const (
	ActionNoteAppend = "note.append"
	ActionTaskAdd    = "task.add"
	ActionTaskDone   = "task.done"
	ActionTaskReopen = "task.reopen"
	ActionTaskClean  = "task.clean"
)

// Event is a single recorded mutation.
type Event struct {
	ID        string `json:"id" yaml:"id"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Source    string `json:"source" yaml:"source"`
	Action    string `json:"action" yaml:"action"`
	TaskID    uint64 `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Subject   string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
}

// NewEvent returns an Event with a fresh ID and the current time.
func NewEvent(source, action string) Event {
	return Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(TimestampLayout),
		Source:    source,
		Action:    action,
	}
}

// Backend defines the contract for history persistence.
type Backend interface {
	// Load returns every event in the order it was appended. An empty store
	// yields an empty, non-nil slice.
	Load() ([]Event, error)

	// Append adds an event to the end of the store.
	Append(e Event) error
}

// Queryable is implemented by backends that can filter server-side.
type Queryable interface {
	Backend

	// EventsByAction returns the events with the given action, oldest first.
	EventsByAction(action string) ([]Event, error)
}

// ByAction returns the events for action, using the backend's own query
// when it has one. An empty action returns everything.
func ByAction(b Backend, action string) ([]Event, error) {
	if action == "" {
		return b.Load()
	}
	if q, ok := b.(Queryable); ok {
		return q.EventsByAction(action)
	}

	all, err := b.Load()
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(all))
	for _, e := range all {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out, nil
}

// Nop discards events. It backs the "none" configuration.
type Nop struct{}

// Load returns an empty slice.
func (Nop) Load() ([]Event, error) { return make([]Event, 0), nil }

// Append does nothing.
func (Nop) Append(Event) error { return nil }
