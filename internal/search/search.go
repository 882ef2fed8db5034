// Package search runs ripgrep and fzf over the vault.
package search

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// ErrToolNotFound is returned when a required executable is not on PATH.
var ErrToolNotFound = errors.New("search tool not found")

const fzfPreviewCmd = "cat {}"

// Match is a single matching line.
type Match struct {
	Path       string
	LineNumber int
	Line       string
}

// String formats the match as "path:line: text".
func (m Match) String() string {
	return fmt.Sprintf("%s:%d: %s", m.Path, m.LineNumber, m.Line)
}

// Searcher runs searches rooted at a vault directory.
type Searcher struct {
	// Root is the working directory for every subprocess.
	Root string
	// Tool is the configured grep tool. "ripgrep" and "" select rg;
	// anything else is used as the executable name.
	Tool string
	// FZFPreview enables the fzf preview pane.
	FZFPreview bool
}

// New returns a Searcher for root.
func New(root, tool string, preview bool) *Searcher {
	return &Searcher{Root: root, Tool: tool, FZFPreview: preview}
}

func (s *Searcher) rg() string {
	switch strings.TrimSpace(s.Tool) {
	case "", "ripgrep":
		return "rg"
	default:
		return s.Tool
	}
}

// Grep streams ripgrep output for query to stdout. Any non-zero exit,
// including "no matches", is an error.
func (s *Searcher) Grep(ctx context.Context, query string, stdout, stderr io.Writer) error {
	bin := s.rg()
	cmd := exec.CommandContext(ctx, bin, "--hidden", "--glob", "!.git", query, ".")
	cmd.Dir = s.Root
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return execError(bin, err)
	}
	return nil
}

// Fuzzy pipes the vault's file list into fzf with query pre-filled.
// fzf draws its interface on the controlling terminal.
func (s *Searcher) Fuzzy(ctx context.Context, query string, stdout, stderr io.Writer) error {
	bin := s.rg()

	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("create pipe: %w", err)
	}

	list := exec.CommandContext(ctx, bin, "--files")
	list.Dir = s.Root
	list.Stdout = pw
	list.Stderr = stderr

	args := []string{"--ansi", "--query", query}
	if s.FZFPreview {
		args = append(args, "--preview", fzfPreviewCmd)
	}
	picker := exec.CommandContext(ctx, "fzf", args...)
	picker.Dir = s.Root
	picker.Stdin = pr
	picker.Stdout = stdout
	picker.Stderr = stderr

	if err := list.Start(); err != nil {
		pr.Close()
		pw.Close()
		return execError(bin, err)
	}
	pw.Close()

	if err := picker.Start(); err != nil {
		pr.Close()
		_ = list.Wait()
		return execError("fzf", err)
	}
	pr.Close()

	pickErr := picker.Wait()
	listErr := list.Wait()
	if pickErr != nil {
		return execError("fzf", pickErr)
	}
	// fzf may exit after a selection before the listing is drained.
	if listErr != nil && !brokenPipe(listErr) {
		return fmt.Errorf("%s --files: %w", bin, listErr)
	}
	return nil
}

// brokenPipe reports whether err is a process exit caused by SIGPIPE.
func brokenPipe(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	return ok && ws.Signaled() && ws.Signal() == syscall.SIGPIPE
}

// Matches returns up to limit matching lines for query. A ripgrep exit
// status of 1 means no matches and yields an empty result. A limit of zero
// or less returns nothing without running ripgrep.
func (s *Searcher) Matches(ctx context.Context, query string, limit int) ([]Match, error) {
	if limit <= 0 {
		return nil, nil
	}

	bin := s.rg()
	cmd := exec.CommandContext(ctx, bin, "--hidden", "--glob", "!.git", "--json", query, ".")
	cmd.Dir = s.Root
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("%w: %s", execError(bin, err), msg)
			}
			return nil, execError(bin, err)
		}
	}

	return parseMatches(bytes.NewReader(out), limit)
}

type rgMessage struct {
	Type string  `json:"type"`
	Data *rgData `json:"data"`
}

type rgData struct {
	Path       rgText `json:"path"`
	Lines      rgText `json:"lines"`
	LineNumber int    `json:"line_number"`
}

type rgText struct {
	Text string `json:"text"`
}

// parseMatches decodes ripgrep --json output. Lines that are not match
// messages, or that fail to decode, are skipped.
func parseMatches(r io.Reader, limit int) ([]Match, error) {
	var out []Match

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() && len(out) < limit {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg rgMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}
		if msg.Type != "match" || msg.Data == nil {
			continue
		}
		out = append(out, Match{
			Path:       msg.Data.Path.Text,
			LineNumber: msg.Data.LineNumber,
			Line:       strings.TrimRight(msg.Data.Lines.Text, "\r\n"),
		})
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read ripgrep output: %w", err)
	}
	return out, nil
}

func execError(tool string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: `%s` was not found in PATH. Please install it before using `obsctl search`. For example:\n"+
			"  • macOS (Homebrew): brew install %s\n"+
			"  • Ubuntu/Debian:   sudo apt-get install %s\n"+
			"  • Arch Linux:      sudo pacman -S %s",
			ErrToolNotFound, tool, tool, tool, tool)
	}
	return fmt.Errorf("%s: %w", tool, err)
}
