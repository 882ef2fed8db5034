// Package main implements the obsctl PostToolUse hook.
//
// This program reads one hook event from stdin (JSON format) and mirrors
// TaskCreate/TaskUpdate events into the vault's task ledger.
//
// Exit codes:
//   - 0: Success (ledger updated, or event ignored)
//   - 1: Error (invalid input, unreadable configuration, ledger failure)
//
// Environment variables:
//   - OBSCTL_HOME: Optional. Directory holding config.toml (default ~/.obsctl).
//   - OBSCTL_DEBUG: Optional. Enable debug logging to stderr.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/JamesPrial/obsctl/internal/config"
	"github.com/JamesPrial/obsctl/internal/history"
	"github.com/JamesPrial/obsctl/internal/hook"
	"github.com/JamesPrial/obsctl/internal/vault"
)

// run contains the main logic, returning an exit code.
//
// Process flow:
//  1. Read and parse hook input from stdin
//  2. Return 0 if not a TaskCreate/TaskUpdate event
//  3. Load configuration and open the ledger
//  4. Apply the event and record it in history
func run(stdin io.Reader, stdout io.Writer) int {
	errLogger := log.New(os.Stderr, "[obsctl-hook] ", log.LstdFlags)
	var debug *log.Logger
	if strings.TrimSpace(os.Getenv("OBSCTL_DEBUG")) != "" {
		debug = errLogger
	}

	input, err := hook.ReadInput(stdin, debug)
	if err != nil {
		errLogger.Printf("Error reading hook input: %v", err)
		return 1
	}
	if input == nil {
		return 0
	}

	app, err := config.Load("")
	if err != nil {
		errLogger.Printf("Error loading configuration: %v", err)
		return 1
	}
	tpl, err := app.Templates()
	if err != nil {
		errLogger.Printf("Error loading templates: %v", err)
		return 1
	}
	ledger, err := vault.OpenLedger(app.VaultRoot, tpl)
	if err != nil {
		errLogger.Printf("Error opening ledger: %v", err)
		return 1
	}

	outcome, err := hook.Apply(input, ledger)
	if err != nil {
		errLogger.Printf("Error updating ledger: %v", err)
		return 1
	}
	if !outcome.Changed() {
		if debug != nil {
			debug.Print(outcome.String())
		}
		return 0
	}

	if backend, err := history.New(app.Config.History, app.Home); err != nil {
		errLogger.Printf("history disabled: %v", err)
	} else {
		action := history.ActionTaskAdd
		if outcome.Action == "completed" {
			action = history.ActionTaskDone
		}
		history.NewRecorder(backend, history.SourceHook, errLogger).
			Record(action, outcome.TaskID, outcome.Subject, ledger.Path())
	}

	fmt.Fprintln(stdout, outcome.String())
	return 0
}

func main() {
	os.Exit(run(os.Stdin, os.Stdout))
}
