// Package pathutil resolves user-supplied paths for obsctl.
//
// Configured locations (vault root, template files, history stores) may be
// written with a leading "~" and may point at files that do not exist yet.
// Locations that must stay inside a managed directory are checked after
// symlink resolution.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEscapesBase is returned when a path resolves outside its base directory.
var ErrEscapesBase = errors.New("path escapes base directory")

// ExpandHome replaces a leading "~" or "~/" with the current user's home
// directory. Other paths are returned cleaned but otherwise unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Absolute expands "~" and makes path absolute.
func Absolute(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path is empty or whitespace-only")
	}
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	return abs, nil
}

// ResolveWithin resolves userPath against baseDir and verifies the result,
// after following symlinks, is baseDir or below it. Relative paths are
// joined to baseDir; absolute paths and "~" paths are checked as given.
// The target does not need to exist.
func ResolveWithin(baseDir, userPath string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", fmt.Errorf("path is empty or whitespace-only")
	}
	if strings.ContainsRune(userPath, 0) {
		return "", fmt.Errorf("path contains null byte")
	}

	candidate, err := ExpandHome(userPath)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}

	resolved, err := resolveExisting(filepath.Clean(candidate))
	if err != nil {
		return "", err
	}
	base, err := resolveExisting(filepath.Clean(baseDir))
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(base, resolved)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrEscapesBase, userPath)
	}
	return resolved, nil
}

// resolveExisting follows symlinks for the longest existing prefix of path
// and re-appends the missing tail.
func resolveExisting(path string) (string, error) {
	var missing []string
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to resolve symlinks: %w", err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing parent directory found for %s", path)
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}
