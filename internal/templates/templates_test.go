package templates_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JamesPrial/obsctl/internal/templates"
	"github.com/JamesPrial/obsctl/internal/vault"
)

func Test_Provider_ImplementsTemplateSource(t *testing.T) {
	t.Parallel()
	var _ vault.TemplateSource = templates.NewProvider("/vault")
}

func Test_NewProvider_DefaultPaths(t *testing.T) {
	t.Parallel()

	p := templates.NewProvider("/vault")
	if want := filepath.Join("/vault", "templates", "daily.md"); p.DailyPath != want {
		t.Errorf("DailyPath = %q, want %q", p.DailyPath, want)
	}
	if want := filepath.Join("/vault", "templates", "task.md"); p.TaskPath != want {
		t.Errorf("TaskPath = %q, want %q", p.TaskPath, want)
	}
}

func Test_Provider_LoadInstallsDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		load func(p *templates.Provider) (string, error)
		path func(p *templates.Provider) string
		want string
	}{
		{
			name: "daily",
			load: (*templates.Provider).DailyTemplate,
			path: func(p *templates.Provider) string { return p.DailyPath },
			want: templates.DefaultDaily,
		},
		{
			name: "task",
			load: (*templates.Provider).TaskTemplate,
			path: func(p *templates.Provider) string { return p.TaskPath },
			want: templates.DefaultTask,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := templates.NewProvider(t.TempDir())

			got, err := tt.load(p)
			if err != nil {
				t.Fatalf("load error: %v", err)
			}
			if got != tt.want {
				t.Errorf("template = %q, want %q", got, tt.want)
			}
			if _, err := os.Stat(tt.path(p)); err != nil {
				t.Errorf("template file not written: %v", err)
			}
		})
	}
}

func Test_Provider_KeepsUserTemplate(t *testing.T) {
	t.Parallel()

	p := templates.NewProvider(t.TempDir())
	if err := os.MkdirAll(filepath.Dir(p.DailyPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := "## {{date}} custom\n"
	if err := os.WriteFile(p.DailyPath, []byte(custom), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := p.InstallDefaults(); err != nil {
		t.Fatalf("InstallDefaults() error: %v", err)
	}
	got, err := p.DailyTemplate()
	if err != nil {
		t.Fatalf("DailyTemplate() error: %v", err)
	}
	if got != custom {
		t.Errorf("DailyTemplate() = %q, want %q", got, custom)
	}
}

func Test_DefaultDaily_HasDatePlaceholder(t *testing.T) {
	t.Parallel()
	if !strings.Contains(templates.DefaultDaily, "{{date}}") {
		t.Error("DefaultDaily has no {{date}} placeholder")
	}
}
