package hook

import (
	"fmt"
	"time"

	"github.com/JamesPrial/obsctl/internal/vault"
)

// Outcome describes what Apply did to the ledger.
type Outcome struct {
	// Action is "added", "completed" or "" when the event changed nothing.
	Action  string
	TaskID  uint64
	Subject string
	// Reason explains an ignored event.
	Reason string
}

// Changed reports whether the ledger was modified.
func (o Outcome) Changed() bool {
	return o.Action != ""
}

func (o Outcome) String() string {
	switch o.Action {
	case "added":
		return fmt.Sprintf("Added task #%d: %s", o.TaskID, o.Subject)
	case "completed":
		return fmt.Sprintf("Completed task #%d: %s", o.TaskID, o.Subject)
	default:
		return "Ignored: " + o.Reason
	}
}

// Apply mirrors in onto the ledger.
//
// TaskCreate with a subject adds an open task titled with the subject.
// metadata.priority (low, medium, high) and metadata.due are carried over
// when valid. TaskUpdate with status "completed" and a subject completes
// the first task with that title. Any other event, or an update for a title
// the ledger does not hold, is ignored.
func Apply(in *Input, l *vault.Ledger) (Outcome, error) {
	task := in.Task()

	switch in.ToolName {
	case ToolTaskCreate:
		if task.Subject == "" {
			return Outcome{Reason: "TaskCreate without subject"}, nil
		}
		nt := vault.NewTask{Title: task.Subject}
		if due := task.metaString("due"); due != "" {
			if _, err := time.Parse(vault.DateLayout, due); err == nil {
				nt.DueDate = due
			}
		}
		if p, err := vault.ParsePriority(task.metaString("priority")); err == nil {
			nt.Priority = p
		}
		id, err := l.Add(nt)
		if err != nil {
			return Outcome{}, fmt.Errorf("add task: %w", err)
		}
		return Outcome{Action: "added", TaskID: id, Subject: task.Subject}, nil

	case ToolTaskUpdate:
		if task.Status != "completed" {
			return Outcome{Reason: fmt.Sprintf("TaskUpdate status %q", task.Status)}, nil
		}
		if task.Subject == "" {
			return Outcome{Reason: "TaskUpdate without subject"}, nil
		}
		rec, err := l.FindByTitle(task.Subject)
		if err != nil {
			return Outcome{}, fmt.Errorf("find task: %w", err)
		}
		if rec == nil {
			return Outcome{Reason: fmt.Sprintf("no task titled %q", task.Subject)}, nil
		}
		if err := l.Complete(rec.ID); err != nil {
			return Outcome{}, fmt.Errorf("complete task #%d: %w", rec.ID, err)
		}
		return Outcome{Action: "completed", TaskID: rec.ID, Subject: rec.Title}, nil

	default:
		return Outcome{Reason: fmt.Sprintf("unsupported tool %q", in.ToolName)}, nil
	}
}
