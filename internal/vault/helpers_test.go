package vault_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stubTemplates is a TemplateSource with fixed contents.
type stubTemplates struct {
	daily string
	task  string
	err   error
}

func (s stubTemplates) DailyTemplate() (string, error) { return s.daily, s.err }
func (s stubTemplates) TaskTemplate() (string, error)  { return s.task, s.err }

func defaultTemplates() stubTemplates {
	return stubTemplates{
		daily: "# Daily {{date}}\n\n## Notes\n\n",
		task:  "# Tasks\n\n",
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func removeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove %s: %v", path, err)
	}
}
