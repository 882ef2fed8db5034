package history

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JamesPrial/obsctl/internal/config"
	"github.com/JamesPrial/obsctl/internal/pathutil"
)

// Default file names inside the obsctl home directory.
const (
	DefaultJSONFile   = "history.json"
	DefaultSQLiteFile = "history.db"
)

// New returns the backend selected by cfg. File-backed stores default to
// home and a custom path must resolve inside home.
func New(cfg config.HistoryConfig, home string) (Backend, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "json"
	}

	switch backend {
	case "none", "off":
		return Nop{}, nil

	case "json":
		path, err := storePath(home, cfg.Path, DefaultJSONFile)
		if err != nil {
			return nil, fmt.Errorf("failed to determine JSON history path: %w", err)
		}
		return NewJSONBackend(path), nil

	case "sqlite":
		path, err := storePath(home, cfg.Path, DefaultSQLiteFile)
		if err != nil {
			return nil, fmt.Errorf("failed to determine SQLite history path: %w", err)
		}
		b, err := NewSQLiteBackend(path)
		if err != nil {
			return nil, err
		}
		return b, nil

	case "postgres":
		dsn := strings.TrimSpace(cfg.DSN)
		if dsn == "" {
			return nil, fmt.Errorf("history backend %q requires history.dsn", backend)
		}
		b, err := NewPostgresBackend(dsn)
		if err != nil {
			return nil, err
		}
		return b, nil

	default:
		return nil, fmt.Errorf("unknown history backend: %q. Expected 'none', 'json', 'sqlite' or 'postgres'", backend)
	}
}

func storePath(home, custom, fallback string) (string, error) {
	if custom = strings.TrimSpace(custom); custom != "" {
		safe, err := pathutil.ResolveWithin(home, custom)
		if err != nil {
			return "", fmt.Errorf("invalid history.path: %w", err)
		}
		return safe, nil
	}
	return filepath.Join(home, fallback), nil
}
