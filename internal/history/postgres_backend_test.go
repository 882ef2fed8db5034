package history_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/JamesPrial/obsctl/internal/config"
	"github.com/JamesPrial/obsctl/internal/history"
)

// dockerAvailable checks whether the Docker daemon is reachable.
// testcontainers-go panics when Docker is not installed.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// newTestPostgres starts a PostgreSQL 16 container and returns its
// connection string. The test is skipped without Docker.
func newTestPostgres(t *testing.T) string {
	t.Helper()

	if !dockerAvailable() {
		t.Skip("Docker not available, skipping PostgreSQL integration tests")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("obsctl"),
		postgres.WithUsername("obsctl"),
		postgres.WithPassword("obsctl"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	return connStr
}

func Test_PostgresBackend_ImplementsQueryable(t *testing.T) {
	var _ history.Queryable = (*history.PostgresBackend)(nil)
}

func Test_PostgresBackend_Lifecycle(t *testing.T) {
	connStr := newTestPostgres(t)

	b, err := history.NewPostgresBackend(connStr)
	if err != nil {
		t.Fatalf("NewPostgresBackend: %v", err)
	}

	t.Run("empty store", func(t *testing.T) {
		got, err := b.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	events := []history.Event{
		makeEvent(1, history.ActionTaskAdd),
		makeEvent(2, history.ActionTaskDone),
		makeEvent(3, history.ActionTaskAdd),
	}
	events[2].Subject = "Tâche ✓ 日本語"

	t.Run("append and load in order", func(t *testing.T) {
		for _, e := range events {
			if err := b.Append(e); err != nil {
				t.Fatalf("Append: %v", err)
			}
		}
		got, err := b.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if diff := cmp.Diff(events, got); diff != "" {
			t.Errorf("Load mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("events by action", func(t *testing.T) {
		got, err := b.EventsByAction(history.ActionTaskAdd)
		if err != nil {
			t.Fatalf("EventsByAction: %v", err)
		}
		if diff := cmp.Diff([]history.Event{events[0], events[2]}, got); diff != "" {
			t.Errorf("EventsByAction mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("schema is idempotent", func(t *testing.T) {
		again, err := history.NewPostgresBackend(connStr)
		if err != nil {
			t.Fatalf("second NewPostgresBackend: %v", err)
		}
		got, err := again.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(got) != len(events) {
			t.Errorf("len = %d, want %d", len(got), len(events))
		}
	})

	t.Run("factory selects postgres", func(t *testing.T) {
		backend, err := history.New(config.HistoryConfig{Backend: "postgres", DSN: connStr}, t.TempDir())
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, ok := backend.(*history.PostgresBackend); !ok {
			t.Errorf("New returned %T, want *history.PostgresBackend", backend)
		}
	})
}

func Test_NewPostgresBackend_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := history.NewPostgresBackend("postgres://nobody@127.0.0.1:1/none?connect_timeout=1"); err == nil {
		t.Fatal("expected connection error")
	}
}
