package history_test

import (
	"fmt"

	"github.com/JamesPrial/obsctl/internal/history"
)

// makeEvent builds a deterministic Event for backend tests.
func makeEvent(n int, action string) history.Event {
	return history.Event{
		ID:        fmt.Sprintf("00000000-0000-0000-0000-%012d", n),
		Timestamp: fmt.Sprintf("2024-03-09T10:00:%02d.000Z", n%60),
		Source:    history.SourceCLI,
		Action:    action,
		TaskID:    uint64(n),
		Subject:   fmt.Sprintf("task %d", n),
		Path:      "/vault/Tasks/tasks.md",
	}
}

// fakeBackend records appends in memory and can be made to fail.
type fakeBackend struct {
	events []history.Event
	err    error
}

func (f *fakeBackend) Load() ([]history.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]history.Event(nil), f.events...), nil
}

func (f *fakeBackend) Append(e history.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}
