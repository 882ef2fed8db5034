package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// JournalDir is the journal directory relative to the vault root.
	JournalDir = "Journal"

	// DateLayout is the layout of journal file names and date arguments.
	DateLayout = "2006-01-02"

	datePlaceholder = "{{date}}"
)

// Journal owns the per-day note files of a vault.
type Journal struct {
	dir string
	tpl TemplateSource
	now func() time.Time
}

// JournalOption configures a Journal.
type JournalOption func(*Journal)

// WithClock sets the function used to determine "today".
func WithClock(now func() time.Time) JournalOption {
	return func(j *Journal) {
		j.now = now
	}
}

// OpenJournal returns the journal of the vault at root, creating the
// journal directory if needed.
func OpenJournal(root string, tpl TemplateSource, opts ...JournalOption) (*Journal, error) {
	j := &Journal{
		dir: filepath.Join(root, JournalDir),
		tpl: tpl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return nil, ioErr("mkdir", j.dir, err)
	}
	return j, nil
}

// Dir returns the journal directory.
func (j *Journal) Dir() string {
	return j.dir
}

// AppendToday appends text and a newline to today's note.
func (j *Journal) AppendToday(text string) error {
	return j.AppendForDate(j.today(), text)
}

// AppendForDate appends text and a newline to the note of the given date,
// creating the note from the daily template first if it does not exist.
func (j *Journal) AppendForDate(date time.Time, text string) error {
	path := j.pathFor(date)
	if err := j.ensure(path, date); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return ioErr("open", path, err)
	}
	_, writeErr := f.WriteString(text + "\n")
	closeErr := f.Close()
	if writeErr != nil {
		return ioErr("append", path, writeErr)
	}
	if closeErr != nil {
		return ioErr("close", path, closeErr)
	}
	return nil
}

// PathFor returns the note path for date, or for today when date is empty.
// The note is created from the daily template if it is missing; existing
// content is never rewritten.
func (j *Journal) PathFor(date string) (string, error) {
	target := j.today()
	if date != "" {
		parsed, err := time.Parse(DateLayout, date)
		if err != nil {
			return "", fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, date)
		}
		target = parsed
	}

	path := j.pathFor(target)
	if err := j.ensure(path, target); err != nil {
		return "", err
	}
	return path, nil
}

// TodayPath returns the path of today's note without creating it.
func (j *Journal) TodayPath() string {
	return j.pathFor(j.today())
}

// ListRecent returns up to limit note paths, newest first. Only *.md files
// directly inside the journal directory are considered.
func (j *Journal) ListRecent(limit int) ([]string, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return nil, ioErr("readdir", j.dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		paths = append(paths, filepath.Join(j.dir, e.Name()))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))

	if limit < 0 {
		limit = 0
	}
	if len(paths) > limit {
		paths = paths[:limit]
	}
	return paths, nil
}

func (j *Journal) today() time.Time {
	return j.now()
}

func (j *Journal) pathFor(date time.Time) string {
	return filepath.Join(j.dir, date.Format(DateLayout)+".md")
}

func (j *Journal) ensure(path string, date time.Time) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return ioErr("stat", path, err)
	}

	tpl, err := j.tpl.DailyTemplate()
	if err != nil {
		return fmt.Errorf("load daily template: %w", err)
	}
	content := strings.ReplaceAll(tpl, datePlaceholder, date.Format(DateLayout))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ioErr("mkdir", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return ioErr("write", path, err)
	}
	return nil
}
