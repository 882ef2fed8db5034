// Package config loads and persists the obsctl configuration file and
// prepares the vault layout it points at.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"
	"github.com/spf13/viper"

	"github.com/JamesPrial/obsctl/internal/pathutil"
	"github.com/JamesPrial/obsctl/internal/templates"
	"github.com/JamesPrial/obsctl/internal/vault"
)

const (
	// HomeEnv overrides the obsctl home directory (default ~/.obsctl).
	HomeEnv = "OBSCTL_HOME"
	// DirName is the obsctl home directory name under the user's home.
	DirName = ".obsctl"
	// FileName is the configuration file name inside the obsctl home.
	FileName = "config.toml"

	envPrefix = "OBSCTL"
)

// Vault sub-directories created on initialisation.
var layoutDirs = []string{"Journal", "Tasks", "Projects", templates.Dir}

// Config is the on-disk configuration.
type Config struct {
	Vault     VaultConfig     `toml:"vault" mapstructure:"vault"`
	Templates TemplatesConfig `toml:"templates" mapstructure:"templates"`
	Search    SearchConfig    `toml:"search" mapstructure:"search"`
	History   HistoryConfig   `toml:"history" mapstructure:"history"`
}

// VaultConfig locates the vault root.
type VaultConfig struct {
	Path string `toml:"path" mapstructure:"path"`
}

// TemplatesConfig locates the daily and task templates.
type TemplatesConfig struct {
	Daily string `toml:"daily" mapstructure:"daily"`
	Task  string `toml:"task" mapstructure:"task"`
}

// SearchConfig configures the search subprocesses.
type SearchConfig struct {
	Tool       string `toml:"tool" mapstructure:"tool"`
	FZFPreview bool   `toml:"fzf_preview" mapstructure:"fzf_preview"`
}

// HistoryConfig selects the activity history backend.
// Backend is one of "none", "json", "sqlite" or "postgres".
type HistoryConfig struct {
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path,omitempty" mapstructure:"path"`
	DSN     string `toml:"dsn,omitempty" mapstructure:"dsn"`
}

// Default returns the configuration written on first run for vaultRoot.
func Default(vaultRoot string) Config {
	return Config{
		Vault: VaultConfig{Path: vaultRoot},
		Templates: TemplatesConfig{
			Daily: templates.DailyPath(vaultRoot),
			Task:  templates.TaskPath(vaultRoot),
		},
		Search:  SearchConfig{Tool: "ripgrep", FZFPreview: true},
		History: HistoryConfig{Backend: "json"},
	}
}

// Home returns the obsctl home directory: $OBSCTL_HOME when set,
// otherwise ~/.obsctl.
func Home() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return pathutil.Absolute(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to locate home directory for obsctl config: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// DefaultPath returns <Home>/config.toml.
func DefaultPath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}

// Manager reads and writes a single configuration file.
type Manager struct {
	path string
}

// NewManager returns a Manager for the file at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the configuration file path.
func (m *Manager) Path() string {
	return m.path
}

// Exists reports whether the configuration file is present.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Load reads the configuration file. Values missing from the file fall
// back to Default for the default vault location, and OBSCTL_<SECTION>_<KEY>
// environment variables override file values.
func (m *Manager) Load() (Config, error) {
	vaultRoot, err := m.defaultVaultRoot()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(m.path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default(vaultRoot))

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", m.path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse obsctl configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("vault.path", d.Vault.Path)
	v.SetDefault("templates.daily", d.Templates.Daily)
	v.SetDefault("templates.task", d.Templates.Task)
	v.SetDefault("search.tool", d.Search.Tool)
	v.SetDefault("search.fzf_preview", d.Search.FZFPreview)
	v.SetDefault("history.backend", d.History.Backend)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("history.dsn", d.History.DSN)
}

// Save writes cfg as TOML, replacing the file atomically.
func (m *Manager) Save(cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := atomic.WriteFile(m.path, &buf); err != nil {
		return fmt.Errorf("write config file %s: %w", m.path, err)
	}
	return nil
}

// EnsureInitialized writes a default configuration if none exists and
// prepares the vault layout. A non-empty explicitVault replaces the
// configured vault path. The resulting configuration is returned.
func (m *Manager) EnsureInitialized(explicitVault string) (Config, error) {
	var cfg Config

	if m.Exists() {
		loaded, err := m.Load()
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
		if explicitVault != "" {
			root, err := pathutil.Absolute(explicitVault)
			if err != nil {
				return Config{}, err
			}
			cfg.Vault.Path = root
			if err := m.Save(cfg); err != nil {
				return Config{}, err
			}
		}
	} else {
		root := explicitVault
		if root == "" {
			def, err := m.defaultVaultRoot()
			if err != nil {
				return Config{}, err
			}
			root = def
		}
		root, err := pathutil.Absolute(root)
		if err != nil {
			return Config{}, err
		}
		cfg = Default(root)
		if err := m.Save(cfg); err != nil {
			return Config{}, err
		}
	}

	root, err := pathutil.Absolute(cfg.Vault.Path)
	if err != nil {
		return Config{}, err
	}
	if err := EnsureLayout(root); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UpdateVaultPath points the configuration at newPath and prepares its layout.
func (m *Manager) UpdateVaultPath(newPath string) error {
	cfg, err := m.Load()
	if err != nil {
		return err
	}
	root, err := pathutil.Absolute(newPath)
	if err != nil {
		return err
	}
	cfg.Vault.Path = root
	if err := m.Save(cfg); err != nil {
		return err
	}
	return EnsureLayout(root)
}

// defaultVaultRoot is <dir of config file>/vault.
func (m *Manager) defaultVaultRoot() (string, error) {
	dir, err := filepath.Abs(filepath.Dir(m.path))
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "vault"), nil
}

// EnsureLayout creates the vault sub-directories, seeds an empty task
// ledger and installs the default templates. Existing files are kept.
func EnsureLayout(vaultRoot string) error {
	for _, dir := range layoutDirs {
		if err := os.MkdirAll(filepath.Join(vaultRoot, dir), 0o755); err != nil {
			return fmt.Errorf("create vault directory %s: %w", dir, err)
		}
	}

	ledger := filepath.Join(vaultRoot, filepath.FromSlash(vault.LedgerFile))
	if _, err := os.Stat(ledger); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(ledger, []byte("# Tasks\n\n"), 0o644); err != nil {
			return fmt.Errorf("seed task ledger: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("stat task ledger: %w", err)
	}

	if err := templates.NewProvider(vaultRoot).InstallDefaults(); err != nil {
		return fmt.Errorf("install templates: %w", err)
	}
	return nil
}
