package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// LedgerFile is the ledger location relative to the vault root.
const LedgerFile = "Tasks/tasks.md"

// Ledger owns the task ledger file of a vault.
type Ledger struct {
	path string
}

// OpenLedger returns the ledger of the vault at root. The ledger file is
// created from the task template when it does not exist yet.
func OpenLedger(root string, tpl TemplateSource) (*Ledger, error) {
	l := &Ledger{path: filepath.Join(root, filepath.FromSlash(LedgerFile))}

	if _, err := os.Stat(l.path); err == nil {
		return l, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, ioErr("stat", l.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, ioErr("mkdir", filepath.Dir(l.path), err)
	}
	content, err := tpl.TaskTemplate()
	if err != nil {
		return nil, fmt.Errorf("load task template: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(content), 0o644); err != nil {
		return nil, ioErr("write", l.path, err)
	}
	return l, nil
}

// Path returns the absolute path of the ledger file.
func (l *Ledger) Path() string {
	return l.path
}

// Add appends a new open task and returns its id, one greater than the
// largest id present in the file.
func (l *Ledger) Add(task NewTask) (uint64, error) {
	data, err := l.read()
	if err != nil {
		return 0, err
	}

	var maxID uint64
	for _, line := range splitLines(string(data)) {
		if rec, ok := ParseRecord(line); ok && rec.ID > maxID {
			maxID = rec.ID
		}
	}
	id := maxID + 1

	var buf strings.Builder
	if len(data) > 0 && data[len(data)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(task.Render(id))
	buf.WriteByte('\n')

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, ioErr("open", l.path, err)
	}
	_, writeErr := f.WriteString(buf.String())
	closeErr := f.Close()
	if writeErr != nil {
		return 0, ioErr("append", l.path, writeErr)
	}
	if closeErr != nil {
		return 0, ioErr("close", l.path, closeErr)
	}
	return id, nil
}

// SetStatus marks the task with the given id done or open. Only the status
// token of that line changes. Returns ErrNotFound, without touching the
// file, when no record has the id.
func (l *Ledger) SetStatus(id uint64, done bool) error {
	lines, err := l.lines()
	if err != nil {
		return err
	}

	found := false
	for i, line := range lines {
		rec, ok := ParseRecord(line)
		if !ok || rec.ID != id {
			continue
		}
		lines[i] = flipStatus(line, done)
		found = true
	}
	if !found {
		return fmt.Errorf("task #%d: %w", id, ErrNotFound)
	}
	return l.write(lines)
}

// Complete marks a task done.
func (l *Ledger) Complete(id uint64) error {
	return l.SetStatus(id, true)
}

// Reopen marks a task open.
func (l *Ledger) Reopen(id uint64) error {
	return l.SetStatus(id, false)
}

// List returns the raw text of every record matching filter, in file order.
func (l *Ledger) List(filter Filter) ([]string, error) {
	records, err := l.All()
	if err != nil {
		return nil, err
	}
	items := make([]string, 0, len(records))
	for _, r := range records {
		if filter.match(r) {
			items = append(items, r.Raw)
		}
	}
	return items, nil
}

// Purge removes every completed record and returns how many were dropped.
// Lines that are not records are always kept.
func (l *Ledger) Purge() (int, error) {
	lines, err := l.lines()
	if err != nil {
		return 0, err
	}

	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if rec, ok := ParseRecord(line); ok && rec.Done {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if err := l.write(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// FindByTitle returns the first record whose title equals title, ignoring
// case, or nil when there is none.
func (l *Ledger) FindByTitle(title string) (*TaskRecord, error) {
	records, err := l.All()
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(title)
	for i := range records {
		if strings.ToLower(records[i].Title) == want {
			return &records[i], nil
		}
	}
	return nil, nil
}

// All returns every record in file order.
func (l *Ledger) All() ([]TaskRecord, error) {
	lines, err := l.lines()
	if err != nil {
		return nil, err
	}
	records := make([]TaskRecord, 0, len(lines))
	for _, line := range lines {
		if rec, ok := ParseRecord(line); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (l *Ledger) read() ([]byte, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, ioErr("read", l.path, err)
	}
	return data, nil
}

func (l *Ledger) lines() ([]string, error) {
	data, err := l.read()
	if err != nil {
		return nil, err
	}
	return splitLines(string(data)), nil
}

func (l *Ledger) write(lines []string) error {
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := atomic.WriteFile(l.path, strings.NewReader(content)); err != nil {
		return ioErr("write", l.path, err)
	}
	return nil
}

// splitLines splits on '\n' only. A trailing newline does not produce an
// empty final line, and a '\r' before the newline stays with its line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
