package vault_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JamesPrial/obsctl/internal/vault"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

var fixedDay = time.Date(2024, time.March, 9, 15, 4, 5, 0, time.Local)

func newJournal(t *testing.T) (*vault.Journal, string) {
	t.Helper()
	root := t.TempDir()
	j, err := vault.OpenJournal(root, defaultTemplates(), vault.WithClock(func() time.Time { return fixedDay }))
	if err != nil {
		t.Fatalf("OpenJournal() error: %v", err)
	}
	return j, root
}

// ---------------------------------------------------------------------------
// OpenJournal
// ---------------------------------------------------------------------------

func Test_OpenJournal_CreatesDirectory(t *testing.T) {
	t.Parallel()

	j, root := newJournal(t)
	want := filepath.Join(root, "Journal")
	if j.Dir() != want {
		t.Errorf("Dir() = %q, want %q", j.Dir(), want)
	}
	info, err := os.Stat(want)
	if err != nil || !info.IsDir() {
		t.Fatalf("journal directory not created: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Append
// ---------------------------------------------------------------------------

func Test_Journal_AppendToday_SeedsTemplateOnce(t *testing.T) {
	t.Parallel()

	j, root := newJournal(t)
	if err := j.AppendToday("first"); err != nil {
		t.Fatalf("AppendToday() error: %v", err)
	}
	if err := j.AppendToday("- [ ] second"); err != nil {
		t.Fatalf("AppendToday() error: %v", err)
	}

	path := filepath.Join(root, "Journal", "2024-03-09.md")
	want := "# Daily 2024-03-09\n\n## Notes\n\nfirst\n- [ ] second\n"
	if got := readFile(t, path); got != want {
		t.Errorf("note = %q, want %q", got, want)
	}
}

func Test_Journal_AppendForDate_OtherDay(t *testing.T) {
	t.Parallel()

	j, root := newJournal(t)
	day := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
	if err := j.AppendForDate(day, "new year's eve"); err != nil {
		t.Fatalf("AppendForDate() error: %v", err)
	}
	got := readFile(t, filepath.Join(root, "Journal", "2023-12-31.md"))
	if want := "# Daily 2023-12-31\n\n## Notes\n\nnew year's eve\n"; got != want {
		t.Errorf("note = %q, want %q", got, want)
	}
}

func Test_Journal_AppendToday_TemplateError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	j, err := vault.OpenJournal(t.TempDir(), stubTemplates{err: boom})
	if err != nil {
		t.Fatalf("OpenJournal() error: %v", err)
	}
	if err := j.AppendToday("x"); !errors.Is(err, boom) {
		t.Errorf("AppendToday() error = %v, want wrapping %v", err, boom)
	}
}

// ---------------------------------------------------------------------------
// PathFor / TodayPath
// ---------------------------------------------------------------------------

func Test_Journal_PathFor_IdempotentCreation(t *testing.T) {
	t.Parallel()

	j, _ := newJournal(t)
	first, err := j.PathFor("2024-01-01")
	if err != nil {
		t.Fatalf("PathFor() error: %v", err)
	}
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := j.AppendForDate(day, "kept"); err != nil {
		t.Fatalf("AppendForDate() error: %v", err)
	}
	before := readFile(t, first)

	second, err := j.PathFor("2024-01-01")
	if err != nil {
		t.Fatalf("PathFor() second call error: %v", err)
	}
	if first != second {
		t.Errorf("PathFor() paths differ: %q vs %q", first, second)
	}
	if diff := cmp.Diff(before, readFile(t, second)); diff != "" {
		t.Errorf("second PathFor rewrote the note (-before +after):\n%s", diff)
	}
}

func Test_Journal_PathFor_TodayWhenEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newJournal(t)
	path, err := j.PathFor("")
	if err != nil {
		t.Fatalf("PathFor(\"\") error: %v", err)
	}
	if path != j.TodayPath() {
		t.Errorf("PathFor(\"\") = %q, want %q", path, j.TodayPath())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("PathFor(\"\") did not create note: %v", err)
	}
}

func Test_Journal_PathFor_InvalidDate(t *testing.T) {
	t.Parallel()

	j, _ := newJournal(t)
	for _, input := range []string{"yesterday", "2024-13-01", "2024/01/01", "2024-1-1"} {
		if _, err := j.PathFor(input); !errors.Is(err, vault.ErrInvalidDate) {
			t.Errorf("PathFor(%q) error = %v, want ErrInvalidDate", input, err)
		}
	}
}

func Test_Journal_TodayPath_DoesNotCreate(t *testing.T) {
	t.Parallel()

	j, root := newJournal(t)
	path := j.TodayPath()
	if want := filepath.Join(root, "Journal", "2024-03-09.md"); path != want {
		t.Errorf("TodayPath() = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("TodayPath() created the note, stat err = %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListRecent
// ---------------------------------------------------------------------------

func Test_Journal_ListRecent_NewestFirst(t *testing.T) {
	t.Parallel()

	j, root := newJournal(t)
	dir := filepath.Join(root, "Journal")
	for _, name := range []string{"2024-01-02.md", "2023-12-30.md", "2024-02-10.md", "notes.txt"} {
		writeFile(t, filepath.Join(dir, name), "x\n")
	}
	if err := os.Mkdir(filepath.Join(dir, "2025-01-01.md"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"limit larger than count", 10, []string{"2024-02-10.md", "2024-01-02.md", "2023-12-30.md"}},
		{"truncated", 2, []string{"2024-02-10.md", "2024-01-02.md"}},
		{"zero", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := j.ListRecent(tt.limit)
			if err != nil {
				t.Fatalf("ListRecent() error: %v", err)
			}
			names := make([]string, len(got))
			for i, p := range got {
				names[i] = filepath.Base(p)
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Errorf("ListRecent(%d) mismatch (-want +got):\n%s", tt.limit, diff)
			}
		})
	}
}

func Test_Journal_ListRecent_MissingDirectory(t *testing.T) {
	t.Parallel()

	j, root := newJournal(t)
	if err := os.RemoveAll(filepath.Join(root, "Journal")); err != nil {
		t.Fatalf("remove journal dir: %v", err)
	}
	_, err := j.ListRecent(5)
	var ioErr *vault.IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("ListRecent() error = %v, want *vault.IOError", err)
	}
}
