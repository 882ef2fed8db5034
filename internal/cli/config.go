package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JamesPrial/obsctl/internal/config"
	"github.com/JamesPrial/obsctl/internal/pathutil"
)

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage obsctl configuration",
	}

	var vaultDir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the vault layout and default config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := opts.manager()
			if err != nil {
				return err
			}
			cfg, err := m.EnsureInitialized(vaultDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Vault initialized at %s\n", cfg.Vault.Path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&vaultDir, "vault", "", "Explicit vault directory path")

	var newPath string
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show or update the configured vault path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.context()
			if err != nil {
				return err
			}
			if newPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), app.VaultRoot)
				return nil
			}
			if err := app.Manager().UpdateVaultPath(newPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated vault path to %s\n", newPath)
			return nil
		},
	}
	pathCmd.Flags().StringVar(&newPath, "set", "", "Update the vault path to the provided location")

	configCmd.AddCommand(initCmd, pathCmd)
	return configCmd
}

// manager returns a Manager for --config or the default location without
// loading or creating the file.
func (o *options) manager() (*config.Manager, error) {
	path := o.configPath
	if path == "" {
		def, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = def
	}
	abs, err := pathutil.Absolute(path)
	if err != nil {
		return nil, err
	}
	return config.NewManager(abs), nil
}
