package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JamesPrial/obsctl/internal/config"
	"github.com/JamesPrial/obsctl/internal/history"
)

func Test_New_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.HistoryConfig
		wantErr bool
		check   func(t *testing.T, home string, b history.Backend)
	}{
		{
			name: "empty backend defaults to json in home",
			cfg:  config.HistoryConfig{},
			check: func(t *testing.T, home string, b history.Backend) {
				t.Helper()
				jb, ok := b.(*history.JSONBackend)
				if !ok {
					t.Fatalf("got %T, want *history.JSONBackend", b)
				}
				if want := filepath.Join(home, history.DefaultJSONFile); jb.Path != want {
					t.Errorf("Path = %q, want %q", jb.Path, want)
				}
			},
		},
		{
			name: "json with custom relative path",
			cfg:  config.HistoryConfig{Backend: "JSON", Path: "logs/events.json"},
			check: func(t *testing.T, home string, b history.Backend) {
				t.Helper()
				jb, ok := b.(*history.JSONBackend)
				if !ok {
					t.Fatalf("got %T, want *history.JSONBackend", b)
				}
				resolved, _ := filepath.EvalSymlinks(home)
				if want := filepath.Join(resolved, "logs", "events.json"); jb.Path != want {
					t.Errorf("Path = %q, want %q", jb.Path, want)
				}
			},
		},
		{
			name: "sqlite default path",
			cfg:  config.HistoryConfig{Backend: "sqlite"},
			check: func(t *testing.T, home string, b history.Backend) {
				t.Helper()
				sb, ok := b.(*history.SQLiteBackend)
				if !ok {
					t.Fatalf("got %T, want *history.SQLiteBackend", b)
				}
				if want := filepath.Join(home, history.DefaultSQLiteFile); sb.DBPath != want {
					t.Errorf("DBPath = %q, want %q", sb.DBPath, want)
				}
				if _, err := os.Stat(sb.DBPath); err != nil {
					t.Errorf("database not created: %v", err)
				}
			},
		},
		{
			name: "none",
			cfg:  config.HistoryConfig{Backend: "none"},
			check: func(t *testing.T, _ string, b history.Backend) {
				t.Helper()
				if _, ok := b.(history.Nop); !ok {
					t.Errorf("got %T, want history.Nop", b)
				}
			},
		},
		{name: "json path escaping home", cfg: config.HistoryConfig{Backend: "json", Path: "../escape.json"}, wantErr: true},
		{name: "sqlite absolute path outside home", cfg: config.HistoryConfig{Backend: "sqlite", Path: "/tmp/elsewhere.db"}, wantErr: true},
		{name: "postgres without dsn", cfg: config.HistoryConfig{Backend: "postgres"}, wantErr: true},
		{name: "postgres unparsable dsn", cfg: config.HistoryConfig{Backend: "postgres", DSN: "::not a dsn::"}, wantErr: true},
		{name: "unknown backend", cfg: config.HistoryConfig{Backend: "mongodb"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			home := t.TempDir()
			b, err := history.New(tt.cfg, home)
			if tt.wantErr {
				if err == nil {
					t.Errorf("New(%+v) = %T, want error", tt.cfg, b)
				}
				if b != nil {
					t.Errorf("New(%+v) backend = %#v, want nil interface on error", tt.cfg, b)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%+v): %v", tt.cfg, err)
			}
			tt.check(t, home, b)
		})
	}
}
