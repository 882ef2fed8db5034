package history

import (
	"io"
	"log"
)

// Recorder writes events for one source. Failures are logged and never
// returned, so a broken history store cannot fail a vault mutation.
// A nil *Recorder records nothing.
type Recorder struct {
	backend Backend
	source  string
	logger  *log.Logger
}

// NewRecorder returns a Recorder. A nil logger discards failures.
func NewRecorder(b Backend, source string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Recorder{backend: b, source: source, logger: logger}
}

// Record appends an event for action. taskID, subject and path may be zero.
func (r *Recorder) Record(action string, taskID uint64, subject, path string) {
	if r == nil || r.backend == nil {
		return
	}
	e := NewEvent(r.source, action)
	e.TaskID = taskID
	e.Subject = subject
	e.Path = path
	if err := r.backend.Append(e); err != nil {
		r.logger.Printf("history: record %s: %v", action, err)
	}
}
