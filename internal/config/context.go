package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JamesPrial/obsctl/internal/pathutil"
	"github.com/JamesPrial/obsctl/internal/templates"
)

// AppContext is the resolved runtime configuration shared by the binaries.
type AppContext struct {
	// ConfigPath is the configuration file in use.
	ConfigPath string
	// Home is the directory holding the configuration file. History
	// stores live here.
	Home      string
	Config    Config
	VaultRoot string
}

// Load resolves the configuration at configPath (DefaultPath when empty),
// initialising the file and vault layout on first use.
func Load(configPath string) (*AppContext, error) {
	if configPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}
	configPath, err := pathutil.Absolute(configPath)
	if err != nil {
		return nil, err
	}

	m := NewManager(configPath)
	if !m.Exists() {
		if _, err := m.EnsureInitialized(""); err != nil {
			return nil, fmt.Errorf("initialise obsctl: %w", err)
		}
	}

	cfg, err := m.Load()
	if err != nil {
		return nil, err
	}

	root, err := pathutil.Absolute(cfg.Vault.Path)
	if err != nil {
		return nil, fmt.Errorf("vault path: %w", err)
	}
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		if err := EnsureLayout(root); err != nil {
			return nil, err
		}
	}

	return &AppContext{
		ConfigPath: configPath,
		Home:       filepath.Dir(configPath),
		Config:     cfg,
		VaultRoot:  root,
	}, nil
}

// Manager returns a Manager for the context's configuration file.
func (c *AppContext) Manager() *Manager {
	return NewManager(c.ConfigPath)
}

// Templates returns a template provider for the configured template paths.
// Blank entries fall back to <vault>/templates.
func (c *AppContext) Templates() (*templates.Provider, error) {
	p := templates.NewProvider(c.VaultRoot)
	if c.Config.Templates.Daily != "" {
		daily, err := pathutil.Absolute(c.Config.Templates.Daily)
		if err != nil {
			return nil, fmt.Errorf("daily template path: %w", err)
		}
		p.DailyPath = daily
	}
	if c.Config.Templates.Task != "" {
		task, err := pathutil.Absolute(c.Config.Templates.Task)
		if err != nil {
			return nil, fmt.Errorf("task template path: %w", err)
		}
		p.TaskPath = task
	}
	return p, nil
}
