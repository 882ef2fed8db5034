// Package templates supplies the skeletons used to seed new vault files.
//
// Each template lives as a plain markdown file (by default under
// <vault>/templates/) so users can edit it. Loading a template first writes
// the built-in default if the file is missing.
package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDaily is the built-in daily note skeleton. {{date}} is replaced
// with the note's date when a journal file is created.
const DefaultDaily = `# Daily {{date}}

## Highlights

- 

## Tasks

- [ ] 

## Notes

- 
`

// DefaultTask is the built-in task ledger skeleton.
const DefaultTask = `# Tasks

- [ ] Example task
`

// Dir is the default template directory relative to the vault root.
const Dir = "templates"

// Provider loads templates from configurable file paths.
type Provider struct {
	DailyPath string
	TaskPath  string
}

// NewProvider returns a Provider using <vaultRoot>/templates/daily.md and
// <vaultRoot>/templates/task.md.
func NewProvider(vaultRoot string) *Provider {
	return &Provider{
		DailyPath: DailyPath(vaultRoot),
		TaskPath:  TaskPath(vaultRoot),
	}
}

// DailyPath returns the default daily template path for a vault.
func DailyPath(vaultRoot string) string {
	return filepath.Join(vaultRoot, Dir, "daily.md")
}

// TaskPath returns the default task template path for a vault.
func TaskPath(vaultRoot string) string {
	return filepath.Join(vaultRoot, Dir, "task.md")
}

// DailyTemplate returns the daily template, installing the default first if needed.
func (p *Provider) DailyTemplate() (string, error) {
	return load(p.DailyPath, DefaultDaily)
}

// TaskTemplate returns the task template, installing the default first if needed.
func (p *Provider) TaskTemplate() (string, error) {
	return load(p.TaskPath, DefaultTask)
}

// InstallDefaults writes both default templates where they do not exist.
// Existing templates are left alone.
func (p *Provider) InstallDefaults() error {
	if err := ensureFile(p.DailyPath, DefaultDaily); err != nil {
		return err
	}
	return ensureFile(p.TaskPath, DefaultTask)
}

func load(path, fallback string) (string, error) {
	if err := ensureFile(path, fallback); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", path, err)
	}
	return string(data), nil
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat template %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create template directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write template %s: %w", path, err)
	}
	return nil
}
