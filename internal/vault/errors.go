package vault

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a status update targets a task id that
	// does not exist in the ledger.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidDate is returned when a journal date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)

// IOError records a file or directory failure together with the path that
// caused it.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
