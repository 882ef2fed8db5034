package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// JSONBackend stores all events as a single indented JSON array.
type JSONBackend struct {
	// Path is the absolute path to the JSON file.
	Path string
}

// NewJSONBackend creates a JSONBackend for path. The file and its parent
// directories are created on first Append.
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{Path: path}
}

// Load reads all events. A missing, unreadable or corrupt file yields an
// empty slice so a damaged history never blocks new writes.
func (b *JSONBackend) Load() ([]Event, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		return make([]Event, 0), nil
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil || events == nil {
		return make([]Event, 0), nil
	}
	return events, nil
}

// Append rewrites the file with e added at the end. The file is replaced
// atomically and ends with a newline.
func (b *JSONBackend) Append(e Event) error {
	if err := os.MkdirAll(filepath.Dir(b.Path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	events, err := b.Load()
	if err != nil {
		return err
	}
	events = append(events, e)

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(b.Path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write history %s: %w", b.Path, err)
	}
	return nil
}
