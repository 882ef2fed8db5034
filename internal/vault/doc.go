// Package vault implements the flat-file data layer of an obsctl vault.
//
// Two kinds of markdown files are treated as a small line-oriented database:
// the task ledger (Tasks/tasks.md) and the per-day journal files
// (Journal/YYYY-MM-DD.md). Every operation re-reads the file it owns, lines
// that are not task records pass through untouched, and mutations rewrite
// the whole file. There is no cross-process locking; the last full write wins.
package vault

// TemplateSource supplies the file skeletons used when a vault file is
// created for the first time.
type TemplateSource interface {
	DailyTemplate() (string, error)
	TaskTemplate() (string, error)
}
