// Package cli implements the obsctl command tree.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/JamesPrial/obsctl/internal/config"
	"github.com/JamesPrial/obsctl/internal/history"
	"github.com/JamesPrial/obsctl/internal/search"
	"github.com/JamesPrial/obsctl/internal/vault"
)

// BuildInfo carries the version metadata injected at link time.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// options is shared by every command of one tree.
type options struct {
	configPath string
	build      BuildInfo
	app        *config.AppContext
}

// context loads the configuration once per invocation.
func (o *options) context() (*config.AppContext, error) {
	if o.app != nil {
		return o.app, nil
	}
	app, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	o.app = app
	return app, nil
}

func (o *options) ledger() (*vault.Ledger, error) {
	app, err := o.context()
	if err != nil {
		return nil, err
	}
	tpl, err := app.Templates()
	if err != nil {
		return nil, err
	}
	return vault.OpenLedger(app.VaultRoot, tpl)
}

func (o *options) journal() (*vault.Journal, error) {
	app, err := o.context()
	if err != nil {
		return nil, err
	}
	tpl, err := app.Templates()
	if err != nil {
		return nil, err
	}
	return vault.OpenJournal(app.VaultRoot, tpl)
}

func (o *options) searcher() (*search.Searcher, error) {
	app, err := o.context()
	if err != nil {
		return nil, err
	}
	return search.New(app.VaultRoot, app.Config.Search.Tool, app.Config.Search.FZFPreview), nil
}

// recorder returns a history recorder for CLI mutations. A misconfigured
// history store is reported on stderr and recording is skipped.
func (o *options) recorder(stderr io.Writer) *history.Recorder {
	app, err := o.context()
	if err != nil {
		return nil
	}
	logger := log.New(stderr, "[obsctl] ", 0)
	backend, err := history.New(app.Config.History, app.Home)
	if err != nil {
		logger.Printf("history disabled: %v", err)
		return nil
	}
	return history.NewRecorder(backend, history.SourceCLI, logger)
}

// NewRootCmd builds the obsctl command tree.
func NewRootCmd(build BuildInfo) *cobra.Command {
	opts := &options{build: build}

	rootCmd := &cobra.Command{
		Use:           "obsctl",
		Short:         "Local AI knowledge and task CLI",
		Long:          "obsctl manages a markdown vault of daily notes and a task ledger.",
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		fmt.Sprintf("config file (default $%s/%s or ~/%s/%s)", config.HomeEnv, config.FileName, config.DirName, config.FileName))

	rootCmd.AddCommand(newNoteCmd(opts))
	rootCmd.AddCommand(newTaskCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute(build BuildInfo) error {
	if build.Version == "" {
		build.Version = "dev"
	}
	if err := NewRootCmd(build).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
